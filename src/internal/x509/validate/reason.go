// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509validate

import "fmt"

// ReasonCode enumerates every rule violation the validator can report.
// The set is closed: callers may switch over it exhaustively and treat the
// result of a validation run as a set of independent violations.
type ReasonCode int

const (
	// CodeUnknownCriticalExtension reports a critical extension this validator
	// does not understand.
	CodeUnknownCriticalExtension ReasonCode = iota

	// CodeExpired reports a certificate whose notAfter bound lies before the
	// validation time.
	CodeExpired

	// CodeInFuture reports a certificate whose notBefore bound lies after the
	// validation time.
	CodeInFuture

	// CodeSelfSigned reports a self-signed terminal certificate that is absent
	// from the trust anchor set.
	CodeSelfSigned

	// CodeUnknownCA reports a terminal certificate whose issuer matches no
	// trust anchor.
	CodeUnknownCA

	// CodeNotAllowedToSign reports a non-leaf certificate lacking CA
	// authorization (CA basic constraint or certificate-signing key usage).
	CodeNotAllowedToSign

	// CodeSignatureFailed reports a certificate that is not validly signed by
	// its successor's public key.
	CodeSignatureFailed

	// CodeNoCommonName reports a certificate that declares no usable name at
	// all (empty CommonName and no SubjectAltName DNS entries).
	CodeNoCommonName

	// CodeNameMismatch reports that none of the leaf's declared names match
	// the requested host name. The offending host name is carried in
	// [Reason.Host].
	CodeNameMismatch

	// CodeInvalidWildcard reports a declared name whose wildcard violates the
	// shape rules (non-leftmost wildcard, partial-label wildcard, or an overly
	// broad pattern such as a bare "*" or "*.com").
	CodeInvalidWildcard

	// CodeEmptyChain reports that the presented chain contained no
	// certificates; nothing else can be checked.
	CodeEmptyChain
)

// String returns the canonical name of the reason code.
func (c ReasonCode) String() string {
	switch c {
	case CodeUnknownCriticalExtension:
		return "UnknownCriticalExtension"
	case CodeExpired:
		return "Expired"
	case CodeInFuture:
		return "InFuture"
	case CodeSelfSigned:
		return "SelfSigned"
	case CodeUnknownCA:
		return "UnknownCA"
	case CodeNotAllowedToSign:
		return "NotAllowedToSign"
	case CodeSignatureFailed:
		return "SignatureFailed"
	case CodeNoCommonName:
		return "NoCommonName"
	case CodeNameMismatch:
		return "NameMismatch"
	case CodeInvalidWildcard:
		return "InvalidWildcard"
	case CodeEmptyChain:
		return "EmptyChain"
	}
	return fmt.Sprintf("ReasonCode(%d)", int(c))
}

// MarshalText encodes the code as its canonical name, so JSON and YAML
// renderings stay readable instead of numeric.
func (c ReasonCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Reason describes a single rule the presented chain violates.
//
// Host is populated only for [CodeNameMismatch], carrying the requested host
// name for diagnostics; it is empty for every other code.
type Reason struct {
	Code ReasonCode `json:"code"`
	Host string     `json:"host,omitempty"`
}

// String renders the reason for human-readable output.
func (r Reason) String() string {
	if r.Code == CodeNameMismatch && r.Host != "" {
		return fmt.Sprintf("%s(%s)", r.Code, r.Host)
	}
	return r.Code.String()
}

// reason builds a Reason carrying no detail.
func reason(code ReasonCode) Reason { return Reason{Code: code} }

// nameMismatch builds the NameMismatch reason for the given host name.
func nameMismatch(host string) Reason {
	return Reason{Code: CodeNameMismatch, Host: host}
}

// Contains reports whether the result set includes the given code.
// Deduplication is not performed by the validator, so callers interested in a
// specific violation should use this instead of comparing slices.
func Contains(reasons []Reason, code ReasonCode) bool {
	for _, r := range reasons {
		if r.Code == code {
			return true
		}
	}
	return false
}
