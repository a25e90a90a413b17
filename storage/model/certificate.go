package model

import (
	"time"

	"gorm.io/datatypes"
)

// Certificate represents an issued certificate record in the database.
// All fields are set once at issuance and never mutated afterwards;
// records are only ever created and deleted.
type Certificate struct {
	ID               uint           `gorm:"primarykey" json:"-"`
	CertificateID    string         `gorm:"uniqueIndex" json:"certificateId"`
	UserName         string         `json:"userName"`
	UserEmail        string         `json:"userEmail"`
	ResourceName     string         `json:"resourceName"`
	Issuer           string         `json:"issuer,omitempty"`
	IssuedAt         time.Time      `gorm:"index" json:"issuedAt"`
	PDFPath          string         `json:"pdfPath"`
	VerificationHash string         `gorm:"uniqueIndex" json:"verificationHash"`
	Extra            datatypes.JSON `json:"extra,omitempty"`
}

// PublicProjection is the subset of a Certificate that may be exposed on
// the public verification endpoint. UserEmail deliberately has no place
// here.
type PublicProjection struct {
	Valid         bool      `json:"valid"`
	CertificateID string    `json:"certificateId"`
	UserName      string    `json:"userName"`
	ResourceName  string    `json:"resourceName"`
	Issuer        string    `json:"issuer,omitempty"`
	IssuedAt      time.Time `json:"issuedAt"`
	PDFPath       string    `json:"pdfPath"`
}

// Public returns the public verification projection of the certificate.
func (c Certificate) Public() PublicProjection {
	return PublicProjection{
		Valid:         true,
		CertificateID: c.CertificateID,
		UserName:      c.UserName,
		ResourceName:  c.ResourceName,
		Issuer:        c.Issuer,
		IssuedAt:      c.IssuedAt,
		PDFPath:       c.PDFPath,
	}
}

// CertificateStore is the storage interface for certificate records.
type CertificateStore interface {
	// Persist stores a new certificate record. It returns an
	// AlreadyExistsError if the certificate id or verification hash
	// collides with an existing record.
	Persist(cert *Certificate) error
	// ByCertificateID returns the record with the passed certificate id or
	// a NotFoundError.
	ByCertificateID(certificateID string) (*Certificate, error)
	// ByVerificationHash returns the record with the passed verification
	// hash or a NotFoundError.
	ByVerificationHash(hash string) (*Certificate, error)
	// List returns a page of records ordered by issuance time, newest
	// first. page counts from 0.
	List(page, limit int) ([]Certificate, error)
	// Delete removes the record with the passed certificate id and returns
	// it, or returns a NotFoundError.
	Delete(certificateID string) (*Certificate, error)
}
