package certmint

import (
	"sort"
	"sync"

	"github.com/certmint/certmint/storage/model"
)

// memStore is an in-memory model.CertificateStore used by the tests in
// this package.
type memStore struct {
	mutex       sync.Mutex
	certs       []model.Certificate
	failPersist error
}

func (m *memStore) Persist(cert *model.Certificate) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.failPersist != nil {
		return m.failPersist
	}
	for _, existing := range m.certs {
		if existing.CertificateID == cert.CertificateID ||
			existing.VerificationHash == cert.VerificationHash {
			return model.AlreadyExistsErrorFmt("certificate already exists: %s", cert.CertificateID)
		}
	}
	m.certs = append(m.certs, *cert)
	return nil
}

func (m *memStore) ByCertificateID(certificateID string) (*model.Certificate, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for _, cert := range m.certs {
		if cert.CertificateID == certificateID {
			c := cert
			return &c, nil
		}
	}
	return nil, model.NotFoundErrorFmt("certificate not found: %s", certificateID)
}

func (m *memStore) ByVerificationHash(hash string) (*model.Certificate, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for _, cert := range m.certs {
		if cert.VerificationHash == hash {
			c := cert
			return &c, nil
		}
	}
	return nil, model.NotFoundErrorFmt("certificate not found")
}

func (m *memStore) List(page, limit int) ([]model.Certificate, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if page < 0 {
		page = 0
	}
	if limit < 1 {
		limit = 1
	}
	sorted := make([]model.Certificate, len(m.certs))
	copy(sorted, m.certs)
	sort.Slice(
		sorted, func(i, j int) bool {
			return sorted[i].IssuedAt.After(sorted[j].IssuedAt)
		},
	)
	start := page * limit
	if start >= len(sorted) {
		return nil, nil
	}
	end := start + limit
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[start:end], nil
}

func (m *memStore) Delete(certificateID string) (*model.Certificate, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for i, cert := range m.certs {
		if cert.CertificateID == certificateID {
			c := cert
			m.certs = append(m.certs[:i], m.certs[i+1:]...)
			return &c, nil
		}
	}
	return nil, model.NotFoundErrorFmt("certificate not found: %s", certificateID)
}
