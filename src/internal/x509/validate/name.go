// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509validate

import (
	"crypto/x509"
	"strings"
)

// MatchName checks the requested host name against the names the certificate
// declares: the CommonName (when non-empty) plus every SubjectAltName DNS
// entry.
//
// Matching is label-by-label on ASCII-lowercased, dot-separated labels per
// RFC 6125. A candidate whose leftmost label is exactly "*" is a wildcard
// standing for exactly one whole label; the wildcard must leave at least two
// literal labels (a bare "*" or "*.com" is rejected as CodeInvalidWildcard),
// and a "*" appearing anywhere else in a candidate, or as part of a label, is
// likewise a shape violation. A structurally valid wildcard matches when its
// literal labels equal the host's corresponding trailing labels.
//
// In fail-fast mode the first definitive accept returns an empty result and
// the first structural defect returns immediately; in exhaustive mode every
// structural defect across the candidates is reported even when another
// candidate matches, since a malformed pattern in the certificate is itself a
// defect. When no candidate exists at all the result is CodeNoCommonName;
// when candidates exist but none match, CodeNameMismatch carrying the host
// name.
//
// Parameters:
//   - checks: Policy for this run (exhaustive vs. fail-fast)
//   - hostName: Requested host name
//   - cert: Certificate whose declared names are matched
//
// Returns:
//   - []Reason: Violations found, empty when a candidate matches
func MatchName(checks Checks, hostName string, cert *x509.Certificate) []Reason {
	candidates := candidateNames(cert)
	if len(candidates) == 0 {
		return []Reason{reason(CodeNoCommonName)}
	}

	host := splitLabels(hostName)

	var out []Reason
	matched := false
	for _, cand := range candidates {
		labels := splitLabels(cand)

		switch {
		case labels[0] == "*":
			// Wildcard candidate: require at least two literal labels so the
			// suffix still looks like a registrable domain.
			if len(labels) < 3 {
				out = append(out, reason(CodeInvalidWildcard))
				if !checks.Exhaustive {
					return out
				}
				continue
			}
			if matchWildcard(labels, host) {
				matched = true
			}
		case strings.Contains(cand, "*"):
			// Partial-label ("f*.example.com") or non-leftmost ("www.*.com")
			// wildcards never match anything; they are shape violations.
			out = append(out, reason(CodeInvalidWildcard))
			if !checks.Exhaustive {
				return out
			}
			continue
		default:
			if equalLabels(labels, host) {
				matched = true
			}
		}

		if matched && !checks.Exhaustive {
			return nil
		}
	}

	if matched {
		// Exhaustive mode still surfaces structural defects found along the way.
		return out
	}
	return append(out, nameMismatch(hostName))
}

// candidateNames collects the names a certificate is valid for.
func candidateNames(cert *x509.Certificate) []string {
	var names []string
	if cn := cert.Subject.CommonName; cn != "" {
		names = append(names, cn)
	}
	names = append(names, cert.DNSNames...)
	return names
}

// splitLabels lowercases the name and splits it into DNS labels. An empty
// string splits to a single empty label, matching DNS root semantics.
func splitLabels(name string) []string {
	return strings.Split(toLowerASCII(name), ".")
}

// equalLabels reports label-wise equality.
func equalLabels(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// matchWildcard reports whether the wildcard candidate matches the host: the
// wildcard consumes exactly one whole leftmost label, and every literal label
// must equal the host's corresponding trailing label.
func matchWildcard(candidate, host []string) bool {
	if len(candidate) != len(host) {
		return false
	}
	if host[0] == "" {
		// A wildcard stands for a label, never for nothing.
		return false
	}
	for i := 1; i < len(candidate); i++ {
		if candidate[i] != host[i] {
			return false
		}
	}
	return true
}

// toLowerASCII lowercases ASCII letters only. DNS labels are compared
// byte-wise per RFC 6125 6.4.1; applying Unicode case folding here would
// invite sharp corners.
func toLowerASCII(in string) string {
	lower := true
	for i := 0; i < len(in); i++ {
		if 'A' <= in[i] && in[i] <= 'Z' {
			lower = false
			break
		}
	}
	if lower {
		return in
	}

	out := []byte(in)
	for i, c := range out {
		if 'A' <= c && c <= 'Z' {
			out[i] += 'a' - 'A'
		}
	}
	return string(out)
}
