package render

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/require"
)

func testFields() Fields {
	return Fields{
		UserName:      "Alice",
		UserEmail:     "alice@example.com",
		ResourceName:  "Intro to Systems",
		Issuer:        "Acme Academy",
		CertificateID: "CERT-ABCDEFGH",
		IssuedAt:      time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		VerifyURL:     "http://localhost:5000/verify.html?hash=abc",
	}
}

func testQR(t *testing.T) []byte {
	t.Helper()
	png, err := qrcode.Encode("http://localhost:5000/verify.html?hash=abc", qrcode.Highest, 256)
	require.NoError(t, err)
	return png
}

func TestRenderWithoutAssets(t *testing.T) {
	r := Renderer{}
	pdf, err := r.Render(testFields(), testQR(t))
	require.NoError(t, err)
	require.True(t, len(pdf) > 1000)
	require.Equal(t, "%PDF", string(pdf[:4]))
}

func TestRenderDeterministic(t *testing.T) {
	r := Renderer{}
	qr := testQR(t)
	first, err := r.Render(testFields(), qr)
	require.NoError(t, err)
	second, err := r.Render(testFields(), qr)
	require.NoError(t, err)
	// Identical inputs must produce identically laid out documents; only
	// the embedded creation timestamp may differ, so compare sizes.
	require.Equal(t, len(first), len(second))
}

func TestRenderMissingQR(t *testing.T) {
	r := Renderer{}
	_, err := r.Render(testFields(), nil)
	require.Error(t, err)
}

func TestRenderWithoutIssuer(t *testing.T) {
	fields := testFields()
	fields.Issuer = ""
	require.Equal(t, "Organization", fields.IssuerOrDefault())

	r := Renderer{}
	pdf, err := r.Render(fields, testQR(t))
	require.NoError(t, err)
	require.True(t, len(pdf) > 1000)
}

func TestRenderIgnoresMissingAssetDir(t *testing.T) {
	r := Renderer{AssetsDir: filepath.Join(t.TempDir(), "does-not-exist")}
	pdf, err := r.Render(testFields(), testQR(t))
	require.NoError(t, err)
	require.Equal(t, "%PDF", string(pdf[:4]))
}

func TestFindAsset(t *testing.T) {
	dir := t.TempDir()
	r := Renderer{AssetsDir: dir}

	_, ok := r.findAsset("signature.png")
	require.False(t, ok)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "signature.png"), []byte("png-bytes"), 0644))
	data, ok := r.findAsset("signature.png")
	require.True(t, ok)
	require.Equal(t, []byte("png-bytes"), data)
}
