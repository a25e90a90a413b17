package certmint

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// certificateIDPrefix is the constant prefix of all certificate ids.
const certificateIDPrefix = "CERT-"

// certificateIDLength is the length of the random code after the prefix.
const certificateIDLength = 8

// certificateIDAlphabet is the unambiguous uppercase alphabet certificate
// ids are drawn from. 32 characters, so a byte maps onto it without
// modulo bias and 8 characters give 40 bits of randomness.
const certificateIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewCertificateID generates a new human-readable certificate id of the
// form CERT-XXXXXXXX. Ids are random and not checked for collisions here;
// uniqueness is enforced by the certificate store at persist time.
func NewCertificateID() (string, error) {
	var buf [certificateIDLength]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", errors.Wrap(err, "failed to generate certificate id")
	}
	code := make([]byte, certificateIDLength)
	for i, b := range buf {
		code[i] = certificateIDAlphabet[int(b)%len(certificateIDAlphabet)]
	}
	return certificateIDPrefix + string(code), nil
}

// NewVerificationHash derives the opaque verification token for a
// certificate. The digest input includes the generation time, so the token
// cannot be recomputed from the stored fields; it is only usable as a
// lookup key, not as a self-verifying signature. A keyed MAC over the
// stable fields would allow offline verification instead, but that would
// change the verification contract.
func NewVerificationHash(certificateID, userEmail string) string {
	sum := sha256.Sum256(
		[]byte(fmt.Sprintf("%s:%s:%d", certificateID, userEmail, time.Now().UnixMilli())),
	)
	return hex.EncodeToString(sum[:])
}
