package render

import (
	"bytes"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"
)

// A4 page geometry in points.
const (
	pageWidth  = 595.28
	pageHeight = 841.89
	pageMid    = pageWidth / 2
)

// Certificate color palette.
var (
	colorGold     = rgb{212, 175, 55}
	colorDarkBlue = rgb{29, 59, 139}
	colorGray     = rgb{111, 111, 111}
	colorSilver   = rgb{170, 170, 170}
	colorFaint    = rgb{221, 221, 221}
	colorBlack    = rgb{0, 0, 0}
)

type rgb struct {
	r, g, b int
}

// Fields carries everything the certificate document displays.
type Fields struct {
	UserName      string
	UserEmail     string
	ResourceName  string
	Issuer        string
	CertificateID string
	IssuedAt      time.Time
	VerifyURL     string
}

// IssuerOrDefault returns the issuer name or the placeholder used when no
// issuer was supplied at issuance.
func (f Fields) IssuerOrDefault() string {
	if f.Issuer == "" {
		return "Organization"
	}
	return f.Issuer
}

// Renderer produces certificate PDF documents. AssetsDir may hold optional
// branding assets (signature.png, watermark.png); a missing or unreadable
// asset is skipped, it never fails a render.
type Renderer struct {
	AssetsDir string
}

// Render lays out the certificate for the passed fields and embeds the
// passed QR PNG. It returns the complete PDF bytes; nothing is written to
// disk here.
func (r Renderer) Render(fields Fields, qrPNG []byte) ([]byte, error) {
	if len(qrPNG) == 0 {
		return nil, errors.New("render: missing qr code image")
	}
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(50, 60, 50)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	if wm, ok := r.findAsset("watermark.png"); ok {
		drawWatermark(pdf, wm)
	}
	drawBorders(pdf)

	y := 70.0
	y = titleBlock(pdf, y)
	y = separator(pdf, y)
	y = subtitle(pdf, y)
	y = recipientName(pdf, y, fields.UserName)
	y = achievementParagraph(pdf, y, fields)
	y = resourceLine(pdf, y, fields.ResourceName)
	y = metadataRow(pdf, y, fields)
	y += 20
	if sig, ok := r.findAsset("signature.png"); ok {
		y = signatureImage(pdf, y, sig)
	}
	y = signatureRule(pdf, y)
	y = qrBlock(pdf, y, qrPNG)
	footer(pdf, y, fields)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "render: pdf output failed")
	}
	return buf.Bytes(), nil
}
