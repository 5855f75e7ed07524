// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509validate

import (
	"crypto/x509"
	"time"
)

// Extension OIDs this validator understands. A critical extension outside
// this set triggers CodeUnknownCriticalExtension, as RFC 5280 requires an
// implementation that does not understand a critical extension to reject the
// certificate.
var handledExtensions = map[string]bool{
	"2.5.29.15": true, // key usage
	"2.5.29.17": true, // subject alternative name
	"2.5.29.19": true, // basic constraints
	"2.5.29.37": true, // extended key usage
}

// CheckCertificate evaluates one certificate in isolation against the policy.
//
// It is a pure function of its inputs: the validation time is injected, never
// read from the wall clock. The checks run in a fixed order: time-validity
// window, usable-name presence, CA authorization (non-leaf certificates only,
// the root included), unknown critical extensions. In fail-fast mode the first
// finding is returned alone; in exhaustive mode every finding is collected.
//
// Parameters:
//   - now: Validation time
//   - checks: Policy for this run
//   - cert: Certificate to evaluate
//   - isLeaf: Whether cert is the end-entity certificate (exempt from CA constraints)
//
// Returns:
//   - []Reason: Violations found, empty when the certificate passes
func CheckCertificate(now time.Time, checks Checks, cert *x509.Certificate, isLeaf bool) []Reason {
	var out []Reason

	if checks.TimeValidity {
		// The two bounds are mutually exclusive per certificate: a range
		// check, first match wins.
		switch {
		case now.Before(cert.NotBefore):
			out = append(out, reason(CodeInFuture))
		case now.After(cert.NotAfter):
			out = append(out, reason(CodeExpired))
		}
		if len(out) > 0 && !checks.Exhaustive {
			return out
		}
	}

	if cert.Subject.CommonName == "" && len(cert.DNSNames) == 0 {
		out = append(out, reason(CodeNoCommonName))
		if !checks.Exhaustive {
			return out
		}
	}

	if checks.CAConstraints && !isLeaf {
		if !isAuthorizedCA(cert) {
			out = append(out, reason(CodeNotAllowedToSign))
			if !checks.Exhaustive {
				return out
			}
		}
	}

	for _, ext := range cert.Extensions {
		if ext.Critical && !handledExtensions[ext.Id.String()] {
			out = append(out, reason(CodeUnknownCriticalExtension))
			if !checks.Exhaustive {
				return out
			}
		}
	}

	return out
}

// isAuthorizedCA reports whether the certificate is authorized to sign other
// certificates: the CA basic constraint must be asserted and, when a key usage
// is declared at all, it must include certificate signing.
func isAuthorizedCA(cert *x509.Certificate) bool {
	if !cert.BasicConstraintsValid || !cert.IsCA {
		return false
	}
	if cert.KeyUsage != 0 && cert.KeyUsage&x509.KeyUsageCertSign == 0 {
		return false
	}
	return true
}
