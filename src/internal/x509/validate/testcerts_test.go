// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509validate_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"math/big"
	"sync/atomic"
	"testing"
	"time"
)

// testNow is the injected validation time every test measures against, so
// fixtures stay deterministic regardless of when the suite runs.
var testNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

var serialCounter int64

// certSpec describes a certificate fixture to mint.
type certSpec struct {
	cn       string
	dnsNames []string
	isCA     bool
	keyUsage x509.KeyUsage

	// Zero values default to a window comfortably containing testNow.
	notBefore time.Time
	notAfter  time.Time

	// skipBasicConstraints omits the basic constraints extension entirely.
	skipBasicConstraints bool

	extraExtensions []pkix.Extension
}

// testCert pairs a minted certificate with its signing key so fixtures can
// issue children.
type testCert struct {
	cert *x509.Certificate
	key  *ecdsa.PrivateKey
}

// issueCert mints a certificate from spec, signed by parent, or self-signed
// when parent is nil. The DER is parsed back so tests exercise the same
// structures validation sees in production.
func issueCert(t *testing.T, spec certSpec, parent *testCert) *testCert {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}

	notBefore := spec.notBefore
	if notBefore.IsZero() {
		notBefore = testNow.Add(-24 * time.Hour)
	}
	notAfter := spec.notAfter
	if notAfter.IsZero() {
		notAfter = testNow.Add(24 * time.Hour)
	}

	keyUsage := spec.keyUsage
	if keyUsage == 0 {
		if spec.isCA {
			keyUsage = x509.KeyUsageCertSign | x509.KeyUsageCRLSign
		} else {
			keyUsage = x509.KeyUsageDigitalSignature
		}
	}

	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(atomic.AddInt64(&serialCounter, 1)),
		Subject:               pkix.Name{CommonName: spec.cn},
		DNSNames:              spec.dnsNames,
		NotBefore:             notBefore,
		NotAfter:              notAfter,
		IsCA:                  spec.isCA,
		BasicConstraintsValid: !spec.skipBasicConstraints,
		KeyUsage:              keyUsage,
		ExtraExtensions:       spec.extraExtensions,
	}

	parentCert, parentKey := tmpl, key
	if parent != nil {
		parentCert, parentKey = parent.cert, parent.key
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, parentCert, &key.PublicKey, parentKey)
	if err != nil {
		t.Fatalf("creating certificate %q: %v", spec.cn, err)
	}

	cert, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatalf("parsing certificate %q: %v", spec.cn, err)
	}

	return &testCert{cert: cert, key: key}
}

// newRootCA mints a self-signed CA.
func newRootCA(t *testing.T, cn string) *testCert {
	t.Helper()
	return issueCert(t, certSpec{cn: cn, isCA: true}, nil)
}

// newIntermediateCA mints a CA signed by parent.
func newIntermediateCA(t *testing.T, cn string, parent *testCert) *testCert {
	t.Helper()
	return issueCert(t, certSpec{cn: cn, isCA: true}, parent)
}

// newLeaf mints an end-entity certificate signed by parent.
func newLeaf(t *testing.T, cn string, dnsNames []string, parent *testCert) *testCert {
	t.Helper()
	return issueCert(t, certSpec{cn: cn, dnsNames: dnsNames}, parent)
}

// unknownCriticalExtension returns a critical extension under a private OID
// that no validator understands. ASN.1 NULL keeps the payload well-formed.
func unknownCriticalExtension() pkix.Extension {
	return pkix.Extension{
		Id:       asn1.ObjectIdentifier{1, 3, 6, 1, 4, 1, 99999, 1},
		Critical: true,
		Value:    []byte{0x05, 0x00},
	}
}
