package certmint

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/certmint/certmint/internal/cache"
	"github.com/certmint/certmint/storage/model"
)

// verificationCachePeriod is how long positive verification lookups are
// cached. Records are immutable, so the only staleness window is towards
// deletion.
const verificationCachePeriod = 5 * time.Second

// Verifier resolves verification tokens to the public projection of a
// certificate record. It only ever reads from the store.
type Verifier struct {
	store model.CertificateStore
}

// NewVerifier creates a Verifier on top of the passed store.
func NewVerifier(store model.CertificateStore) *Verifier {
	return &Verifier{store: store}
}

// Verify resolves a token. An unknown token is a negative but successful
// result, not an error: it returns a zero projection and found == false.
func (v *Verifier) Verify(hash string) (model.PublicProjection, bool, error) {
	cert, err := v.store.ByVerificationHash(hash)
	if err != nil {
		if _, ok := err.(model.NotFoundError); ok {
			return model.PublicProjection{}, false, nil
		}
		return model.PublicProjection{}, false, err
	}
	return cert.Public(), true, nil
}

// addVerifyEndpoint adds the public verification endpoint used by the
// document's QR code.
func (cm *CertMint) addVerifyEndpoint(r fiber.Router) {
	r.Get(
		"/verify/:hash", func(c *fiber.Ctx) error {
			hash := c.Params("hash")
			cacheKey := "verify:" + hash
			cached, set, err := cache.Get(cacheKey)
			if err != nil {
				log.WithError(err).Warn("verification cache lookup failed")
			}
			if set {
				c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
				return c.Send(cached)
			}

			projection, found, err := cm.verifier.Verify(hash)
			if err != nil {
				log.WithError(err).Error("certificate verification failed")
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
			}
			if !found {
				return c.Status(fiber.StatusNotFound).JSON(
					fiber.Map{
						"valid":   false,
						"message": "Certificate not found or invalid",
					},
				)
			}

			body, err := json.Marshal(projection)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
			}
			if err = cache.Set(cacheKey, body, verificationCachePeriod); err != nil {
				log.WithError(err).Warn("verification cache store failed")
			}
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(body)
		},
	)
}
