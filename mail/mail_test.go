package mail

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSendCertificateMissingAttachment(t *testing.T) {
	m := NewMailer(
		Config{
			Host: "localhost",
			From: "certs@example.com",
		},
	)

	err := m.SendCertificate("alice@example.com", "Alice", "/does/not/exist.pdf")
	require.Error(t, err)
	require.IsType(t, DeliveryError(""), err)
}

func TestNewMailerDefaultPort(t *testing.T) {
	m := NewMailer(Config{Host: "localhost"})
	require.Equal(t, 587, m.conf.Port)
}
