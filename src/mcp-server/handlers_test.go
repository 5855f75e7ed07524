// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCert struct {
	cert *x509.Certificate
	key  *ecdsa.PrivateKey
}

// mintCert creates a certificate fixture, self-signed when parent is nil.
func mintCert(t *testing.T, cn string, dnsNames []string, isCA bool, notAfter time.Time, parent *testCert) *testCert {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	keyUsage := x509.KeyUsageDigitalSignature
	if isCA {
		keyUsage = x509.KeyUsageCertSign | x509.KeyUsageCRLSign
	}

	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(time.Now().UnixNano()),
		Subject:               pkix.Name{CommonName: cn},
		DNSNames:              dnsNames,
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              notAfter,
		IsCA:                  isCA,
		BasicConstraintsValid: true,
		KeyUsage:              keyUsage,
	}

	parentCert, parentKey := tmpl, key
	if parent != nil {
		parentCert, parentKey = parent.cert, parent.key
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, parentCert, &key.PublicKey, parentKey)
	require.NoError(t, err)

	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)

	return &testCert{cert: cert, key: key}
}

func encodePEM(certs ...*x509.Certificate) []byte {
	var data []byte
	for _, cert := range certs {
		data = append(data, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: cert.Raw})...)
	}
	return data
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

// resultText concatenates the text content of a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	var sb strings.Builder
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			sb.WriteString(tc.Text)
		}
	}
	return sb.String()
}

func testConfig(t *testing.T) *Config {
	t.Helper()

	t.Setenv("MCP_X509_CONFIG_FILE", "")
	config, err := loadConfig("")
	require.NoError(t, err)
	return config
}

func TestCreateTools(t *testing.T) {
	tools := createTools()
	require.Len(t, tools, 3)

	expected := map[string]string{
		"validate_cert_chain": "chainValidator",
		"match_hostname":      "nameMatcher",
		"check_cert_expiry":   "expiryChecker",
	}

	for _, def := range tools {
		role, ok := expected[def.Tool.Name]
		require.True(t, ok, "unexpected tool %q", def.Tool.Name)
		assert.Equal(t, role, def.Role)
		assert.NotNil(t, def.Handler)
		assert.NotEmpty(t, def.Tool.Description)
	}
}

func TestHandleValidateCertChain_Accepted(t *testing.T) {
	notAfter := time.Now().Add(24 * time.Hour)
	root := mintCert(t, "Test Root CA", nil, true, notAfter, nil)
	leaf := mintCert(t, "www.example.com", []string{"www.example.com"}, false, notAfter, root)

	chainB64 := base64.StdEncoding.EncodeToString(encodePEM(leaf.cert, root.cert))
	anchorsB64 := base64.StdEncoding.EncodeToString(encodePEM(root.cert))

	handler := handleValidateCertChain(testConfig(t))
	result, err := handler(context.Background(), callRequest("validate_cert_chain", map[string]any{
		"chain":   chainB64,
		"anchors": anchorsB64,
		"host":    "www.example.com",
	}))

	require.NoError(t, err)
	require.False(t, result.IsError)

	output := resultText(t, result)
	assert.Contains(t, output, "Verdict: ACCEPTED")
	assert.Contains(t, output, "www.example.com")
}

func TestHandleValidateCertChain_Rejected(t *testing.T) {
	notAfter := time.Now().Add(24 * time.Hour)
	root := mintCert(t, "Test Root CA", nil, true, notAfter, nil)
	leaf := mintCert(t, "www.example.com", []string{"www.example.com"}, false, notAfter, root)

	chainB64 := base64.StdEncoding.EncodeToString(encodePEM(leaf.cert, root.cert))

	// No anchors: the self-signed terminal is untrusted.
	handler := handleValidateCertChain(testConfig(t))
	result, err := handler(context.Background(), callRequest("validate_cert_chain", map[string]any{
		"chain": chainB64,
	}))

	require.NoError(t, err)
	require.False(t, result.IsError)

	output := resultText(t, result)
	assert.Contains(t, output, "Verdict: REJECTED")
	assert.Contains(t, output, "SelfSigned")
}

func TestHandleValidateCertChain_FilePathInput(t *testing.T) {
	dir := t.TempDir()
	notAfter := time.Now().Add(24 * time.Hour)
	root := mintCert(t, "Test Root CA", nil, true, notAfter, nil)
	leaf := mintCert(t, "www.example.com", []string{"www.example.com"}, false, notAfter, root)

	chainFile := filepath.Join(dir, "chain.pem")
	require.NoError(t, os.WriteFile(chainFile, encodePEM(leaf.cert, root.cert), 0644))
	anchorsFile := filepath.Join(dir, "anchors.pem")
	require.NoError(t, os.WriteFile(anchorsFile, encodePEM(root.cert), 0644))

	handler := handleValidateCertChain(testConfig(t))
	result, err := handler(context.Background(), callRequest("validate_cert_chain", map[string]any{
		"chain":   chainFile,
		"anchors": anchorsFile,
	}))

	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Verdict: ACCEPTED")
}

func TestHandleValidateCertChain_ConfigAnchorsFile(t *testing.T) {
	dir := t.TempDir()
	notAfter := time.Now().Add(24 * time.Hour)
	root := mintCert(t, "Test Root CA", nil, true, notAfter, nil)
	leaf := mintCert(t, "www.example.com", []string{"www.example.com"}, false, notAfter, root)

	anchorsFile := filepath.Join(dir, "anchors.pem")
	require.NoError(t, os.WriteFile(anchorsFile, encodePEM(root.cert), 0644))

	config := testConfig(t)
	config.AnchorsFile = anchorsFile

	chainB64 := base64.StdEncoding.EncodeToString(encodePEM(leaf.cert, root.cert))

	handler := handleValidateCertChain(config)
	result, err := handler(context.Background(), callRequest("validate_cert_chain", map[string]any{
		"chain": chainB64,
	}))

	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Verdict: ACCEPTED")
}

func TestHandleValidateCertChain_JSONFormat(t *testing.T) {
	notAfter := time.Now().Add(24 * time.Hour)
	root := mintCert(t, "Test Root CA", nil, true, notAfter, nil)
	leaf := mintCert(t, "www.example.com", []string{"www.example.com"}, false, notAfter, root)

	chainB64 := base64.StdEncoding.EncodeToString(encodePEM(leaf.cert, root.cert))
	anchorsB64 := base64.StdEncoding.EncodeToString(encodePEM(root.cert))

	handler := handleValidateCertChain(testConfig(t))
	result, err := handler(context.Background(), callRequest("validate_cert_chain", map[string]any{
		"chain":   chainB64,
		"anchors": anchorsB64,
		"format":  "json",
	}))

	require.NoError(t, err)
	require.False(t, result.IsError)

	var decoded struct {
		Accepted   bool `json:"accepted"`
		PathLength int  `json:"pathLength"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &decoded))
	assert.True(t, decoded.Accepted)
	assert.Equal(t, 2, decoded.PathLength)
}

func TestHandleValidateCertChain_AtTime(t *testing.T) {
	notAfter := time.Now().Add(24 * time.Hour)
	root := mintCert(t, "Test Root CA", nil, true, notAfter, nil)
	leaf := mintCert(t, "www.example.com", []string{"www.example.com"}, false, notAfter, root)

	chainB64 := base64.StdEncoding.EncodeToString(encodePEM(leaf.cert, root.cert))
	anchorsB64 := base64.StdEncoding.EncodeToString(encodePEM(root.cert))

	handler := handleValidateCertChain(testConfig(t))

	future := time.Now().Add(365 * 24 * time.Hour).Format(time.RFC3339)
	result, err := handler(context.Background(), callRequest("validate_cert_chain", map[string]any{
		"chain":   chainB64,
		"anchors": anchorsB64,
		"at":      future,
	}))

	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Expired")

	result, err = handler(context.Background(), callRequest("validate_cert_chain", map[string]any{
		"chain": chainB64,
		"at":    "not-a-time",
	}))

	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleValidateCertChain_BadInput(t *testing.T) {
	handler := handleValidateCertChain(testConfig(t))

	// Missing required parameter
	result, err := handler(context.Background(), callRequest("validate_cert_chain", map[string]any{}))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	// Not a file path and not valid base64
	result, err = handler(context.Background(), callRequest("validate_cert_chain", map[string]any{
		"chain": "!!! definitely not base64 !!!",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleMatchHostname(t *testing.T) {
	notAfter := time.Now().Add(24 * time.Hour)
	leaf := mintCert(t, "www.example.com", []string{"www.example.com", "*.api.example.com"}, false, notAfter, nil)
	certB64 := base64.StdEncoding.EncodeToString(encodePEM(leaf.cert))

	handler := handleMatchHostname(testConfig(t))

	result, err := handler(context.Background(), callRequest("match_hostname", map[string]any{
		"certificate": certB64,
		"host":        "www.example.com",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Match: YES")

	result, err = handler(context.Background(), callRequest("match_hostname", map[string]any{
		"certificate": certB64,
		"host":        "v1.api.example.com",
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "Match: YES")

	result, err = handler(context.Background(), callRequest("match_hostname", map[string]any{
		"certificate": certB64,
		"host":        "wrong.example.org",
	}))
	require.NoError(t, err)
	output := resultText(t, result)
	assert.Contains(t, output, "Match: NO")
	assert.Contains(t, output, "NameMismatch")
}

func TestHandleMatchHostname_MissingParams(t *testing.T) {
	handler := handleMatchHostname(testConfig(t))

	result, err := handler(context.Background(), callRequest("match_hostname", map[string]any{
		"host": "www.example.com",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	notAfter := time.Now().Add(24 * time.Hour)
	leaf := mintCert(t, "www.example.com", nil, false, notAfter, nil)
	certB64 := base64.StdEncoding.EncodeToString(encodePEM(leaf.cert))

	result, err = handler(context.Background(), callRequest("match_hostname", map[string]any{
		"certificate": certB64,
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleCheckCertExpiry(t *testing.T) {
	handler := handleCheckCertExpiry(testConfig(t))

	// Healthy certificate far from expiry
	healthy := mintCert(t, "www.example.com", nil, false, time.Now().Add(365*24*time.Hour), nil)
	result, err := handler(context.Background(), callRequest("check_cert_expiry", map[string]any{
		"certificate": base64.StdEncoding.EncodeToString(encodePEM(healthy.cert)),
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Status: OK")

	// Inside the warning window
	closeToExpiry := mintCert(t, "soon.example.com", nil, false, time.Now().Add(5*24*time.Hour), nil)
	result, err = handler(context.Background(), callRequest("check_cert_expiry", map[string]any{
		"certificate": base64.StdEncoding.EncodeToString(encodePEM(closeToExpiry.cert)),
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "EXPIRING SOON")

	// Custom warn_days narrows the window below 5 days
	result, err = handler(context.Background(), callRequest("check_cert_expiry", map[string]any{
		"certificate": base64.StdEncoding.EncodeToString(encodePEM(closeToExpiry.cert)),
		"warn_days":   2,
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "Status: OK")
}

func TestHandleCheckCertExpiry_Expired(t *testing.T) {
	handler := handleCheckCertExpiry(testConfig(t))

	expired := mintCert(t, "old.example.com", nil, false, time.Now().Add(-30*time.Minute), nil)
	result, err := handler(context.Background(), callRequest("check_cert_expiry", map[string]any{
		"certificate": base64.StdEncoding.EncodeToString(encodePEM(expired.cert)),
	}))

	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "EXPIRED")
}

func TestHandleCheckCertExpiry_Bundle(t *testing.T) {
	handler := handleCheckCertExpiry(testConfig(t))

	notAfter := time.Now().Add(365 * 24 * time.Hour)
	root := mintCert(t, "Test Root CA", nil, true, notAfter, nil)
	leaf := mintCert(t, "www.example.com", nil, false, notAfter, root)

	result, err := handler(context.Background(), callRequest("check_cert_expiry", map[string]any{
		"certificate": base64.StdEncoding.EncodeToString(encodePEM(leaf.cert, root.cert)),
	}))

	require.NoError(t, err)
	output := resultText(t, result)
	assert.Contains(t, output, "1: www.example.com")
	assert.Contains(t, output, "2: Test Root CA")
}

func TestGetVersion(t *testing.T) {
	assert.NotEmpty(t, GetVersion())
}
