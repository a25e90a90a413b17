package certmint

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/certmint/certmint/storage/model"
)

func newTestServer(t *testing.T) (*CertMint, *memStore, string) {
	t.Helper()
	store := &memStore{}
	certsDir := t.TempDir()
	cm, err := NewCertMint(
		ServerConf{Port: 5000},
		Config{
			BaseURL:    "http://localhost:5000",
			CertsDir:   certsDir,
			AdminToken: "test-admin-token",
		},
		model.Backends{Certificates: store},
		nil,
	)
	require.NoError(t, err)
	return cm, store, certsDir
}

func doJSON(t *testing.T, cm *CertMint, method, path, token, body string) (*http.Response, map[string]any) {
	t.Helper()
	var reqBody *strings.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	} else {
		reqBody = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reqBody)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	cm.HttpHandlerFunc()(rec, req)
	resp := rec.Result()
	var parsed map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&parsed)
	return resp, parsed
}

func TestGenerateEndpoint(t *testing.T) {
	cm, _, certsDir := newTestServer(t)

	resp, body := doJSON(
		t, cm, http.MethodPost, "/api/certificates/generate", "",
		`{"userName":"Alice","userEmail":"alice@example.com","resourceName":"Intro to Systems","issuer":"Acme Academy"}`,
	)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Certificate generated", body["message"])

	certificateID, _ := body["certificateId"].(string)
	require.Regexp(t, certificateIDPattern, certificateID)
	require.Equal(t, "/certificates/"+certificateID+".pdf", body["pdfPath"])
	require.Regexp(t, `^[0-9a-f]{64}$`, body["verificationHash"])

	_, err := os.Stat(filepath.Join(certsDir, certificateID+".pdf"))
	require.NoError(t, err)
}

func TestGenerateEndpointValidation(t *testing.T) {
	cm, _, _ := newTestServer(t)

	resp, body := doJSON(
		t, cm, http.MethodPost, "/api/certificates/generate", "",
		`{"userName":"Alice"}`,
	)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "userName, userEmail and resourceName required", body["message"])
}

func TestVerifyEndpoint(t *testing.T) {
	cm, _, _ := newTestServer(t)

	_, issued := doJSON(
		t, cm, http.MethodPost, "/api/certificates/generate", "",
		`{"userName":"Alice","userEmail":"alice@example.com","resourceName":"Intro to Systems","issuer":"Acme Academy"}`,
	)
	hash := issued["verificationHash"].(string)

	resp, body := doJSON(t, cm, http.MethodGet, "/api/certificates/verify/"+hash, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["valid"])
	require.Equal(t, issued["certificateId"], body["certificateId"])
	require.Equal(t, "Alice", body["userName"])
	require.Equal(t, "Intro to Systems", body["resourceName"])
	require.Equal(t, "Acme Academy", body["issuer"])
	require.NotEmpty(t, body["issuedAt"])
	require.Equal(t, issued["pdfPath"], body["pdfPath"])
	// Confidentiality contract: no email in the public projection.
	require.NotContains(t, body, "userEmail")

	// Served from cache on repeat.
	resp, cachedBody := doJSON(t, cm, http.MethodGet, "/api/certificates/verify/"+hash, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, body["certificateId"], cachedBody["certificateId"])
}

func TestVerifyEndpointUnknownToken(t *testing.T) {
	cm, _, _ := newTestServer(t)

	resp, body := doJSON(
		t, cm, http.MethodGet,
		"/api/certificates/verify/ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
		"", "",
	)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, false, body["valid"])
}

func TestAdminAuth(t *testing.T) {
	cm, _, _ := newTestServer(t)

	resp, body := doJSON(t, cm, http.MethodGet, "/api/certificates", "", "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "Missing Authorization header", body["message"])

	resp, body = doJSON(t, cm, http.MethodGet, "/api/certificates", "wrong-token", "")
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, "Forbidden", body["message"])

	resp, _ = doJSON(t, cm, http.MethodGet, "/api/certificates", "test-admin-token", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminLookupAndList(t *testing.T) {
	cm, _, _ := newTestServer(t)

	for i := 0; i < 12; i++ {
		resp, _ := doJSON(
			t, cm, http.MethodPost, "/api/certificates/generate", "",
			`{"userName":"Alice","userEmail":"alice@example.com","resourceName":"Intro to Systems"}`,
		)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, body := doJSON(
		t, cm, http.MethodGet, "/api/certificates?page=0&limit=10", "test-admin-token", "",
	)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	results := body["results"].([]any)
	require.Len(t, results, 10)

	first := results[0].(map[string]any)
	certificateID := first["certificateId"].(string)
	resp, record := doJSON(
		t, cm, http.MethodGet, "/api/certificates/"+certificateID, "test-admin-token", "",
	)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	// The admin view is the full record, email included.
	require.Equal(t, "alice@example.com", record["userEmail"])

	resp, _ = doJSON(
		t, cm, http.MethodGet, "/api/certificates/CERT-UNKNOWN1", "test-admin-token", "",
	)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminDelete(t *testing.T) {
	cm, _, certsDir := newTestServer(t)

	_, issued := doJSON(
		t, cm, http.MethodPost, "/api/certificates/generate", "",
		`{"userName":"Alice","userEmail":"alice@example.com","resourceName":"Intro to Systems"}`,
	)
	certificateID := issued["certificateId"].(string)
	artifact := filepath.Join(certsDir, certificateID+".pdf")
	_, err := os.Stat(artifact)
	require.NoError(t, err)

	resp, body := doJSON(
		t, cm, http.MethodDelete, "/api/certificates/"+certificateID, "test-admin-token", "",
	)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Deleted", body["message"])

	_, err = os.Stat(artifact)
	require.True(t, os.IsNotExist(err))

	resp, _ = doJSON(
		t, cm, http.MethodGet, "/api/certificates/"+certificateID, "test-admin-token", "",
	)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Deleting again reports not found, artifact removal stays idempotent.
	resp, _ = doJSON(
		t, cm, http.MethodDelete, "/api/certificates/"+certificateID, "test-admin-token", "",
	)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
