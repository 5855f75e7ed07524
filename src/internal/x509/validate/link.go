// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509validate

import (
	"bytes"
	"crypto/x509"
	"errors"
	"fmt"
)

// ErrUnsupportedAlgorithm indicates the signature primitive could not evaluate
// a certificate's signature algorithm at all. This is a contract violation
// distinct from CodeSignatureFailed: the input could not be judged, it did not
// fail judgement.
var ErrUnsupportedAlgorithm = errors.New("x509validate: signature algorithm cannot be evaluated")

// Verifier is the external cryptographic signature primitive: given an issuer
// certificate (supplying the public key), a declared algorithm, the signed
// content, and the signature value, it reports whether they match.
//
// Implementations must be side-effect-free and safe for concurrent use.
type Verifier interface {
	Verify(issuer *x509.Certificate, algo x509.SignatureAlgorithm, signed, signature []byte) error
}

// certVerifier delegates to the standard library's signature check.
type certVerifier struct{}

func (certVerifier) Verify(issuer *x509.Certificate, algo x509.SignatureAlgorithm, signed, signature []byte) error {
	return issuer.CheckSignature(algo, signed, signature)
}

// DefaultVerifier verifies signatures with the issuer certificate's own public
// key via crypto/x509.
var DefaultVerifier Verifier = certVerifier{}

// verifyLink reports whether child was signed by issuer's key.
//
// Cryptographic mismatch (wrong key, tampered bytes) yields false with a nil
// error. An algorithm the verifier cannot or refuses to evaluate yields an
// error wrapping [ErrUnsupportedAlgorithm], so configuration problems never
// masquerade as signature failures.
func verifyLink(v Verifier, child, issuer *x509.Certificate) (bool, error) {
	err := v.Verify(issuer, child.SignatureAlgorithm, child.RawTBSCertificate, child.Signature)
	if err == nil {
		return true, nil
	}

	var insecure x509.InsecureAlgorithmError
	if errors.Is(err, x509.ErrUnsupportedAlgorithm) || errors.As(err, &insecure) {
		return false, fmt.Errorf("%w: %v", ErrUnsupportedAlgorithm, err)
	}

	return false, nil
}

// isSelfSigned reports whether the certificate names itself as issuer and
// actually verifies against its own key. Name equality alone is not enough:
// an attacker can claim any issuer name.
func isSelfSigned(v Verifier, cert *x509.Certificate) (bool, error) {
	if !bytes.Equal(cert.RawSubject, cert.RawIssuer) {
		return false, nil
	}
	return verifyLink(v, cert, cert)
}
