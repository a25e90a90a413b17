package storage

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/certmint/certmint/storage/model"
)

// CertificateStorage implements model.CertificateStore using GORM
type CertificateStorage struct {
	db *gorm.DB
}

// Persist stores a new certificate record. Uniqueness of the certificate
// id and the verification hash is enforced here by the database, not by
// the caller.
func (s *CertificateStorage) Persist(cert *model.Certificate) error {
	if err := s.db.Create(cert).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return model.AlreadyExistsErrorFmt(
				"certificate already exists: %s", cert.CertificateID,
			)
		}
		return errors.Wrap(err, "failed to persist certificate")
	}
	return nil
}

// ByCertificateID retrieves a certificate by its certificate id
func (s *CertificateStorage) ByCertificateID(certificateID string) (*model.Certificate, error) {
	var cert model.Certificate
	if err := s.db.Where("certificate_id = ?", certificateID).First(&cert).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.NotFoundErrorFmt("certificate not found: %s", certificateID)
		}
		return nil, errors.Wrap(err, "failed to find certificate")
	}
	return &cert, nil
}

// ByVerificationHash retrieves a certificate by its verification hash
func (s *CertificateStorage) ByVerificationHash(hash string) (*model.Certificate, error) {
	var cert model.Certificate
	if err := s.db.Where("verification_hash = ?", hash).First(&cert).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.NotFoundErrorFmt("certificate not found")
		}
		return nil, errors.Wrap(err, "failed to find certificate")
	}
	return &cert, nil
}

// List returns a page of certificates ordered by issuance time descending.
// page counts from 0; limit must be at least 1.
func (s *CertificateStorage) List(page, limit int) ([]model.Certificate, error) {
	if page < 0 {
		page = 0
	}
	if limit < 1 {
		limit = 1
	}
	var certs []model.Certificate
	err := s.db.Model(&model.Certificate{}).
		Order("issued_at DESC").
		Offset(page * limit).
		Limit(limit).
		Find(&certs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list certificates")
	}
	return certs, nil
}

// Delete removes a certificate by certificate id and returns the removed
// record so the caller can clean up the associated artifact.
func (s *CertificateStorage) Delete(certificateID string) (*model.Certificate, error) {
	var cert model.Certificate
	err := s.db.Transaction(
		func(tx *gorm.DB) error {
			if err := tx.Where("certificate_id = ?", certificateID).First(&cert).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return model.NotFoundErrorFmt("certificate not found: %s", certificateID)
				}
				return err
			}
			return tx.Delete(&cert).Error
		},
	)
	if err != nil {
		return nil, err
	}
	return &cert, nil
}
