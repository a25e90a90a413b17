package certmint

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	store := &memStore{}
	issuer, _ := newTestIssuer(t, store)
	verifier := NewVerifier(store)

	issued, err := issuer.Issue(
		IssueRequest{
			UserName:     "Alice",
			UserEmail:    "alice@example.com",
			ResourceName: "Intro to Systems",
			Issuer:       "Acme Academy",
		},
	)
	require.NoError(t, err)

	projection, found, err := verifier.Verify(issued.VerificationHash)
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, projection.Valid)
	require.Equal(t, issued.CertificateID, projection.CertificateID)
	require.Equal(t, "Alice", projection.UserName)
	require.Equal(t, "Intro to Systems", projection.ResourceName)
	require.Equal(t, "Acme Academy", projection.Issuer)
	require.Equal(t, issued.PDFPath, projection.PDFPath)

	// The public projection must never leak the recipient's email.
	body, err := json.Marshal(projection)
	require.NoError(t, err)
	require.NotContains(t, string(body), "alice@example.com")
	require.NotContains(t, string(body), "userEmail")
}

func TestVerifyUnknownToken(t *testing.T) {
	verifier := NewVerifier(&memStore{})

	_, found, err := verifier.Verify("0000000000000000000000000000000000000000000000000000000000000000")
	require.NoError(t, err)
	require.False(t, found)
}
