package storage

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/certmint/certmint/storage/model"
)

// Storage is a GORM-based storage implementation
type Storage struct {
	db *gorm.DB
}

var models = []any{
	&model.Certificate{},
}

// NewStorage creates a new GORM-based storage
func NewStorage(config Config) (*Storage, error) {
	db, err := Connect(config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto migrate the schemas
	if err = db.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Storage{db: db}, nil
}

// CertificateStorage returns a CertificateStorage
func (s *Storage) CertificateStorage() *CertificateStorage {
	return &CertificateStorage{db: s.db}
}
