// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509validate

import (
	"crypto/x509"
	"time"
)

// Validate decides whether the presented certificate chain should be trusted
// for the given host name at the given time, using the default signature
// verifier. See [ValidateWith].
func Validate(checks Checks, anchors *AnchorSet, hostName string, now time.Time, chain []*x509.Certificate) ([]Reason, error) {
	return ValidateWith(DefaultVerifier, checks, anchors, hostName, now, chain)
}

// ValidateWith runs the full chain validation with an explicit signature
// primitive.
//
// The algorithm, in evaluation order:
//  1. Order the chain ([Order]). An empty chain returns exactly
//     [CodeEmptyChain]; nothing else can be checked.
//  2. Match hostName against the leaf ([MatchName]) when a host name was
//     supplied; an empty hostName skips name matching entirely.
//  3. Walk the ordered path leaf first: run the per-certificate checker on
//     every element ([CheckCertificate]) and verify that each certificate is
//     signed by its successor's key; a broken link appends
//     CodeSignatureFailed.
//  4. Resolve the terminal certificate: a self-signed terminal present in the
//     anchor set terminates the chain successfully; a self-signed terminal
//     absent from it appends CodeSelfSigned (an untrusted self-signed root is
//     suspect, distinct from merely unknown); otherwise an anchor whose
//     subject matches the terminal's issuer must verify the final link, else
//     CodeUnknownCA.
//
// In fail-fast mode ([Checks.Exhaustive] false) evaluation stops as soon as
// any step produces a finding; in exhaustive mode every check runs and the
// full list is returned. An empty result means the chain is accepted under
// the given policy.
//
// Policy violations are always reported as reasons. The error return is
// reserved for collaborator contract violations — a signature algorithm the
// verifier cannot evaluate — which mean the chain could not be judged at all.
//
// Parameters:
//   - v: Signature verification primitive
//   - checks: Policy for this run
//   - anchors: Trust anchor set, read-only for the duration (nil means empty)
//   - hostName: Host name to match against the leaf, empty to skip
//   - now: Validation time (injected, never read from the wall clock)
//   - chain: Certificates as presented by the peer
//
// Returns:
//   - []Reason: Every violated rule under the policy, empty on acceptance
//   - error: Fatal evaluation failure, never a policy violation
//
// Thread Safety: Safe for concurrent use; the call touches no shared state.
func ValidateWith(v Verifier, checks Checks, anchors *AnchorSet, hostName string, now time.Time, chain []*x509.Certificate) ([]Reason, error) {
	path, failed := Order(checks, chain)
	if len(failed) > 0 {
		return failed, nil
	}

	var out []Reason
	stop := func() bool { return len(out) > 0 && !checks.Exhaustive }

	if hostName != "" {
		out = append(out, MatchName(checks, hostName, path[0])...)
		if stop() {
			return out, nil
		}
	}

	for i, cert := range path {
		out = append(out, CheckCertificate(now, checks, cert, i == 0)...)
		if stop() {
			return out, nil
		}

		if i+1 < len(path) {
			ok, err := verifyLink(v, cert, path[i+1])
			if err != nil {
				return nil, err
			}
			if !ok {
				out = append(out, reason(CodeSignatureFailed))
				if stop() {
					return out, nil
				}
			}
		}
	}

	terminalReasons, err := resolveTerminal(v, anchors, path[len(path)-1])
	if err != nil {
		return nil, err
	}
	return append(out, terminalReasons...), nil
}

// resolveTerminal decides how the path ends: at a trusted anchor, at an
// untrusted self-signed root, or nowhere.
func resolveTerminal(v Verifier, anchors *AnchorSet, terminal *x509.Certificate) ([]Reason, error) {
	self, err := isSelfSigned(v, terminal)
	if err != nil {
		return nil, err
	}

	if self {
		if anchors.Contains(terminal) {
			return nil, nil
		}
		return []Reason{reason(CodeSelfSigned)}, nil
	}

	// The terminal is not self-signed, so its issuer was not presented. An
	// anchor only counts as a match when it actually verifies the final link;
	// a subject-name coincidence alone proves nothing.
	for _, anchor := range anchors.ForIssuerOf(terminal) {
		ok, err := verifyLink(v, terminal, anchor)
		if err != nil {
			return nil, err
		}
		if ok {
			return nil, nil
		}
	}
	return []Reason{reason(CodeUnknownCA)}, nil
}
