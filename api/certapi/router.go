// Package certapi provides the admin certificate API: record lookup,
// listing and deletion, protected by a shared bearer secret.
package certapi

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/certmint/certmint/storage/model"
)

// Config controls the admin API registration.
type Config struct {
	// AdminToken is the shared bearer secret admin requests must present.
	AdminToken string
	// CertsDir is the directory holding rendered documents, used for
	// best-effort artifact removal on delete.
	CertsDir string
}

// Register mounts the admin certificate routes under the provided group.
// The group is expected to already carry the public generate and verify
// routes; they must be registered before this, since the lookup route
// matches any single path segment.
func Register(r fiber.Router, conf Config, storages model.Backends) {
	auth := authMiddleware(conf.AdminToken)
	registerList(r, auth, storages.Certificates)
	registerLookup(r, auth, storages.Certificates)
	registerDelete(r, auth, conf.CertsDir, storages.Certificates)
}

func registerLookup(r fiber.Router, auth fiber.Handler, certs model.CertificateStore) {
	r.Get(
		"/:id", auth, func(c *fiber.Ctx) error {
			cert, err := certs.ByCertificateID(c.Params("id"))
			if err != nil {
				if _, ok := err.(model.NotFoundError); ok {
					return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Not found"})
				}
				log.WithError(err).Error("certificate lookup failed")
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
			}
			return c.JSON(cert)
		},
	)
}

func registerList(r fiber.Router, auth fiber.Handler, certs model.CertificateStore) {
	r.Get(
		"/", auth, func(c *fiber.Ctx) error {
			page := parseQueryInt(c, "page", 0, 0)
			limit := parseQueryInt(c, "limit", 50, 1)
			results, err := certs.List(page, limit)
			if err != nil {
				log.WithError(err).Error("certificate listing failed")
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
			}
			if results == nil {
				results = []model.Certificate{}
			}
			return c.JSON(
				fiber.Map{
					"page":    page,
					"limit":   limit,
					"results": results,
				},
			)
		},
	)
}

func registerDelete(r fiber.Router, auth fiber.Handler, certsDir string, certs model.CertificateStore) {
	r.Delete(
		"/:id", auth, func(c *fiber.Ctx) error {
			cert, err := certs.Delete(c.Params("id"))
			if err != nil {
				if _, ok := err.(model.NotFoundError); ok {
					return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Not found"})
				}
				log.WithError(err).Error("certificate deletion failed")
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
			}
			// Artifact removal is best-effort: an already missing document
			// does not fail the deletion.
			artifact := filepath.Join(certsDir, filepath.Base(cert.PDFPath))
			if err = os.Remove(artifact); err != nil && !os.IsNotExist(err) {
				log.WithError(err).WithField("artifact", artifact).Warn("failed to remove artifact")
			}
			return c.JSON(fiber.Map{"message": "Deleted"})
		},
	)
}

func parseQueryInt(c *fiber.Ctx, name string, def, min int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	if v < min {
		return min
	}
	return v
}
