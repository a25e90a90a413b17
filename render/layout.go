package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Every layout step below takes the current vertical cursor and returns
// the cursor for the next step, so the whole layout is an explicit,
// deterministic fold over y.

func setFill(pdf *gofpdf.Fpdf, c rgb) {
	pdf.SetTextColor(c.r, c.g, c.b)
}

func setStroke(pdf *gofpdf.Fpdf, c rgb) {
	pdf.SetDrawColor(c.r, c.g, c.b)
}

func centeredText(pdf *gofpdf.Fpdf, y float64, text string, height float64) {
	pdf.SetXY(50, y)
	pdf.CellFormat(pageWidth-100, height, text, "", 0, "C", false, 0, "")
}

// drawWatermark paints the watermark behind all content at low opacity,
// fitted into a 300x300 box above the page center.
func drawWatermark(pdf *gofpdf.Fpdf, img []byte) {
	pdf.RegisterImageOptionsReader(
		"watermark", gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(img),
	)
	pdf.SetAlpha(0.12, "Normal")
	pdf.ImageOptions(
		"watermark", pageMid-150, 180, 300, 300, false,
		gofpdf.ImageOptions{ImageType: "PNG"}, 0, "",
	)
	pdf.SetAlpha(1, "Normal")
}

// drawBorders draws the two concentric decorative border rectangles.
func drawBorders(pdf *gofpdf.Fpdf) {
	pdf.SetLineWidth(3)
	setStroke(pdf, colorGold)
	pdf.RoundedRect(25, 25, pageWidth-50, pageHeight-50, 15, "1234", "D")

	pdf.SetLineWidth(1.5)
	setStroke(pdf, colorSilver)
	pdf.RoundedRect(45, 45, pageWidth-90, pageHeight-90, 10, "1234", "D")
}

func titleBlock(pdf *gofpdf.Fpdf, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 18)
	setFill(pdf, colorGold)
	centeredText(pdf, y, "CERTIFICATE", 20)
	y += 24

	pdf.SetFont("Helvetica", "B", 32)
	setFill(pdf, colorDarkBlue)
	centeredText(pdf, y, "OF ACHIEVEMENT", 36)
	return y + 56
}

func separator(pdf *gofpdf.Fpdf, y float64) float64 {
	setStroke(pdf, colorGold)
	pdf.SetLineWidth(1.5)
	pdf.Line(pageMid-130, y, pageMid+130, y)
	return y + 28
}

func subtitle(pdf *gofpdf.Fpdf, y float64) float64 {
	pdf.SetFont("Helvetica", "", 13)
	setFill(pdf, colorGray)
	centeredText(pdf, y, "THIS IS TO CERTIFY THAT", 15)
	return y + 30
}

func recipientName(pdf *gofpdf.Fpdf, y float64, name string) float64 {
	pdf.SetFont("Helvetica", "B", 28)
	setFill(pdf, colorBlack)
	centeredText(pdf, y, name, 32)
	y += 44

	setStroke(pdf, colorGold)
	pdf.SetLineWidth(1)
	pdf.Line(pageMid-160, y, pageMid+160, y)
	return y + 26
}

func achievementParagraph(pdf *gofpdf.Fpdf, y float64, fields Fields) float64 {
	paragraph := fmt.Sprintf(
		`%s has successfully completed the requirements for the course "%s" demonstrating dedication and proficiency. This certificate is issued as official recognition of the achievement.`,
		fields.UserName, fields.ResourceName,
	)
	pdf.SetFont("Helvetica", "", 13)
	setFill(pdf, colorGray)
	pdf.SetXY(pageMid-200, y)
	pdf.MultiCell(400, 17, paragraph, "", "C", false)
	return pdf.GetY() + 24
}

func resourceLine(pdf *gofpdf.Fpdf, y float64, resource string) float64 {
	pdf.SetFont("Helvetica", "B", 22)
	setFill(pdf, colorDarkBlue)
	centeredText(pdf, y, resource, 26)
	y += 44

	setStroke(pdf, colorFaint)
	pdf.SetLineWidth(1)
	pdf.Line(90, y, pageWidth-90, y)
	return y + 26
}

// metadataRow renders the three-column date / email / issuer block.
func metadataRow(pdf *gofpdf.Fpdf, y float64, fields Fields) float64 {
	columns := []struct {
		x       float64
		caption string
		value   string
	}{
		{70, "DATE", fields.IssuedAt.Format("1/2/2006")},
		{pageMid - 75, "EMAIL", fields.UserEmail},
		{pageWidth - 220, "ISSUED BY", fields.IssuerOrDefault()},
	}

	pdf.SetFont("Helvetica", "", 11)
	setFill(pdf, colorGray)
	for _, col := range columns {
		pdf.SetXY(col.x, y)
		pdf.CellFormat(150, 13, col.caption, "", 0, "C", false, 0, "")
	}
	y += 18

	pdf.SetFont("Helvetica", "", 12)
	setFill(pdf, colorBlack)
	for _, col := range columns {
		pdf.SetXY(col.x, y)
		pdf.CellFormat(150, 14, col.value, "", 0, "C", false, 0, "")
	}
	return y + 36
}

func signatureImage(pdf *gofpdf.Fpdf, y float64, img []byte) float64 {
	pdf.RegisterImageOptionsReader(
		"signature", gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(img),
	)
	pdf.ImageOptions(
		"signature", pageMid-60, y, 120, 90, false,
		gofpdf.ImageOptions{ImageType: "PNG"}, 0, "",
	)
	return y + 98
}

func signatureRule(pdf *gofpdf.Fpdf, y float64) float64 {
	setStroke(pdf, colorGold)
	pdf.SetLineWidth(1)
	pdf.Line(pageMid-120, y, pageMid+120, y)
	y += 6

	pdf.SetFont("Helvetica", "", 12)
	setFill(pdf, colorBlack)
	pdf.SetXY(pageMid-120, y)
	pdf.CellFormat(240, 14, "Authorized Signature", "", 0, "C", false, 0, "")
	return y + 40
}

func qrBlock(pdf *gofpdf.Fpdf, y float64, qrPNG []byte) float64 {
	pdf.RegisterImageOptionsReader(
		"qr", gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG),
	)
	pdf.ImageOptions(
		"qr", pageMid-45, y, 90, 90, false,
		gofpdf.ImageOptions{ImageType: "PNG"}, 0, "",
	)
	return y + 114
}

func footer(pdf *gofpdf.Fpdf, y float64, fields Fields) {
	pdf.SetFont("Helvetica", "", 10)
	setFill(pdf, colorGray)
	centeredText(pdf, y, "Certificate ID: "+fields.CertificateID, 12)
	y += 14

	setFill(pdf, colorDarkBlue)
	centeredText(pdf, y, "Verify: "+fields.VerifyURL, 12)
}
