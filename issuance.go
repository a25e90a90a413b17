package certmint

import (
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/certmint/certmint/internal/qr"
	"github.com/certmint/certmint/mail"
	"github.com/certmint/certmint/render"
	"github.com/certmint/certmint/storage/model"
)

// ValidationError signals that required issuance fields are missing
type ValidationError string

// Error implements the error interface
func (e ValidationError) Error() string {
	return string(e)
}

// IssueRequest carries the fields supplied by the caller for one issuance.
type IssueRequest struct {
	UserName     string `json:"userName"`
	UserEmail    string `json:"userEmail"`
	ResourceName string `json:"resourceName"`
	Issuer       string `json:"issuer"`
	AutoEmail    bool   `json:"autoEmail"`
}

// Issued is the result of a successful issuance.
type Issued struct {
	CertificateID    string
	PDFPath          string
	VerificationHash string
	VerifyURL        string
	IssuedAt         time.Time
}

// Issuer orchestrates a single certificate issuance: id and token
// generation, qr encoding, document rendering, the durable artifact write
// and finally the store write. The artifact is always completely written
// before the record is persisted, so a record never references a partial
// or missing document. The reverse (an artifact without a record, when the
// store write fails) can happen and is accepted.
type Issuer struct {
	baseURL  string
	certsDir string
	renderer render.Renderer
	store    model.CertificateStore
}

// NewIssuer creates an Issuer writing artifacts to certsDir and building
// verification links on baseURL.
func NewIssuer(baseURL, certsDir, assetsDir string, store model.CertificateStore) *Issuer {
	return &Issuer{
		baseURL:  baseURL,
		certsDir: certsDir,
		renderer: render.Renderer{AssetsDir: assetsDir},
		store:    store,
	}
}

// VerifyURL returns the public verification link for the passed token.
func (i *Issuer) VerifyURL(hash string) string {
	u, err := url.JoinPath(i.baseURL, "verify.html")
	if err != nil {
		u = i.baseURL + "/verify.html"
	}
	return u + "?hash=" + hash
}

// Issue produces one certificate for the passed request.
func (i *Issuer) Issue(req IssueRequest) (*Issued, error) {
	if req.UserName == "" || req.UserEmail == "" || req.ResourceName == "" {
		return nil, ValidationError("userName, userEmail and resourceName required")
	}

	certificateID, err := NewCertificateID()
	if err != nil {
		return nil, err
	}
	hash := NewVerificationHash(certificateID, req.UserEmail)
	verifyURL := i.VerifyURL(hash)

	qrPNG, err := qr.Encode(verifyURL, qr.DefaultSize)
	if err != nil {
		return nil, err
	}

	issuedAt := time.Now()
	pdfBytes, err := i.renderer.Render(
		render.Fields{
			UserName:      req.UserName,
			UserEmail:     req.UserEmail,
			ResourceName:  req.ResourceName,
			Issuer:        req.Issuer,
			CertificateID: certificateID,
			IssuedAt:      issuedAt,
			VerifyURL:     verifyURL,
		}, qrPNG,
	)
	if err != nil {
		return nil, err
	}

	fileName := certificateID + ".pdf"
	if err = writeArtifact(filepath.Join(i.certsDir, fileName), pdfBytes); err != nil {
		return nil, err
	}

	cert := model.Certificate{
		CertificateID:    certificateID,
		UserName:         req.UserName,
		UserEmail:        req.UserEmail,
		ResourceName:     req.ResourceName,
		Issuer:           req.Issuer,
		IssuedAt:         issuedAt,
		PDFPath:          "/certificates/" + fileName,
		VerificationHash: hash,
	}
	// An id or token collision surfaces here as an AlreadyExistsError and
	// is not retried with fresh values; at 40 bits of id randomness this
	// is vanishingly rare, but a collision does become a server error for
	// the caller.
	if err = i.store.Persist(&cert); err != nil {
		return nil, err
	}

	return &Issued{
		CertificateID:    certificateID,
		PDFPath:          cert.PDFPath,
		VerificationHash: hash,
		VerifyURL:        verifyURL,
		IssuedAt:         issuedAt,
	}, nil
}

// ArtifactPath returns the filesystem path of the artifact for a public
// pdf path as stored on a certificate record.
func (i *Issuer) ArtifactPath(pdfPath string) string {
	return filepath.Join(i.certsDir, filepath.Base(pdfPath))
}

// writeArtifact durably writes the rendered document. The write is only
// considered complete once the file is synced and closed; any failure
// aborts the issuance before a record is created.
func writeArtifact(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrap(err, "failed to create artifact")
	}
	if _, err = f.Write(data); err != nil {
		f.Close()
		return errors.Wrap(err, "failed to write artifact")
	}
	if err = f.Sync(); err != nil {
		f.Close()
		return errors.Wrap(err, "failed to sync artifact")
	}
	if err = f.Close(); err != nil {
		return errors.Wrap(err, "failed to close artifact")
	}
	return nil
}

// addGenerateEndpoint adds the public issuance endpoint
func (cm *CertMint) addGenerateEndpoint(r fiber.Router, mailer *mail.Mailer) {
	r.Post(
		"/generate", func(c *fiber.Ctx) error {
			var req IssueRequest
			if err := c.BodyParser(&req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(
					fiber.Map{"message": "userName, userEmail and resourceName required"},
				)
			}
			issued, err := cm.issuer.Issue(req)
			if err != nil {
				if _, ok := err.(ValidationError); ok {
					return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
				}
				log.WithError(err).Error("certificate issuance failed")
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
			}
			if req.AutoEmail && mailer != nil {
				// Delivery is awaited before responding; a failure here is
				// reported to the caller even though the record and
				// artifact already exist and are not rolled back.
				err = mailer.SendCertificate(
					req.UserEmail, req.UserName,
					cm.issuer.ArtifactPath(issued.PDFPath),
				)
				if err != nil {
					log.WithError(err).WithField("certificate_id", issued.CertificateID).
						Error("certificate mail delivery failed")
					return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
				}
			}
			return c.JSON(
				fiber.Map{
					"message":          "Certificate generated",
					"certificateId":    issued.CertificateID,
					"pdfPath":          issued.PDFPath,
					"verificationHash": issued.VerificationHash,
				},
			)
		},
	)
}
