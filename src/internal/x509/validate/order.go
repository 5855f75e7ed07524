// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509validate

import (
	"bytes"
	"crypto/x509"
)

// Order reconstructs the leaf-to-root path from the presented chain.
//
// An empty chain fails immediately with CodeEmptyChain regardless of the
// exhaustive setting, since nothing else can be checked. With
// [Checks.StrictOrdering] the presented order is trusted as-is; any broken
// adjacency surfaces later as a signature or trust failure.
//
// Otherwise the input is treated as an unordered bag that may contain
// certificates irrelevant to the path. The leaf is the first certificate that
// issues no other certificate in the bag (falling back to the first element
// when every certificate issues something, e.g. a cross-signing loop). From
// the leaf, the orderer repeatedly appends the certificate whose subject
// matches the current tail's issuer, using a subject-indexed lookup. When
// several unused certificates share that subject (duplicate or cross-signed
// intermediates) the one occurring first in the input wins; this tie-break is
// deliberate and covered by tests. Certificates never selected are silently
// dropped, not reported.
//
// Parameters:
//   - checks: Policy for this run
//   - chain: Certificates as presented by the peer
//
// Returns:
//   - []*x509.Certificate: The ordered path, leaf first
//   - []Reason: Non-empty only when ordering itself fails
func Order(checks Checks, chain []*x509.Certificate) ([]*x509.Certificate, []Reason) {
	if len(chain) == 0 {
		return nil, []Reason{reason(CodeEmptyChain)}
	}

	if checks.StrictOrdering {
		// Copy so the path never aliases the caller's slice.
		return append([]*x509.Certificate(nil), chain...), nil
	}

	bySubject := make(map[string][]int, len(chain))
	for i, cert := range chain {
		subject := string(cert.RawSubject)
		bySubject[subject] = append(bySubject[subject], i)
	}

	leaf := designateLeaf(chain)
	used := make([]bool, len(chain))
	used[leaf] = true
	path := []*x509.Certificate{chain[leaf]}

	for {
		tail := path[len(path)-1]
		if bytes.Equal(tail.RawSubject, tail.RawIssuer) {
			// Self-issued tail: following its issuer would loop forever.
			break
		}

		next := -1
		for _, i := range bySubject[string(tail.RawIssuer)] {
			if !used[i] {
				next = i
				break
			}
		}
		if next < 0 {
			break
		}

		used[next] = true
		path = append(path, chain[next])
	}

	return path, nil
}

// designateLeaf picks the end-entity certificate: the first one, in input
// order, that is not an issuer of any other certificate in the bag. Among
// those, self-issued candidates rank last — a self-signed certificate in a
// multi-certificate bag is a root or injected noise, not the end entity.
// When every certificate issues something (a cross-signing loop), the first
// element wins.
func designateLeaf(chain []*x509.Certificate) int {
	selfIssued := -1
	for i, cand := range chain {
		if issuesAnother(chain, i, cand) {
			continue
		}
		if !bytes.Equal(cand.RawSubject, cand.RawIssuer) {
			return i
		}
		if selfIssued < 0 {
			selfIssued = i
		}
	}
	if selfIssued >= 0 {
		return selfIssued
	}
	return 0
}

// issuesAnother reports whether chain[i] is named as issuer by some other
// certificate in the bag. Self-issued certificates do not count as evidence
// against their own issuer, so a root sharing a subject name with another
// certificate does not disqualify it.
func issuesAnother(chain []*x509.Certificate, i int, cand *x509.Certificate) bool {
	for j, other := range chain {
		if i == j || bytes.Equal(other.RawSubject, other.RawIssuer) {
			continue
		}
		if bytes.Equal(other.RawIssuer, cand.RawSubject) {
			return true
		}
	}
	return false
}
