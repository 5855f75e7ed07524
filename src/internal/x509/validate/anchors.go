// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509validate

import (
	"crypto/sha256"
	"crypto/x509"
)

// AnchorSet is an immutable snapshot of the certificates a caller considers
// axiomatically trusted. Membership is decided by the SHA-256 fingerprint of
// the raw DER bytes, so two parses of the same certificate compare equal.
//
// An AnchorSet is never mutated after construction; callers that rotate trust
// stores should build a fresh set and swap it, so in-flight validations keep
// observing a consistent view. A nil *AnchorSet behaves as an empty set.
type AnchorSet struct {
	byFingerprint map[[sha256.Size]byte]*x509.Certificate
	bySubject     map[string][]*x509.Certificate
}

// NewAnchorSet builds an anchor set from the given certificates.
// Duplicates (byte-identical certificates) are collapsed.
func NewAnchorSet(anchors ...*x509.Certificate) *AnchorSet {
	s := &AnchorSet{
		byFingerprint: make(map[[sha256.Size]byte]*x509.Certificate, len(anchors)),
		bySubject:     make(map[string][]*x509.Certificate, len(anchors)),
	}
	for _, anchor := range anchors {
		if anchor == nil {
			continue
		}
		fp := sha256.Sum256(anchor.Raw)
		if _, dup := s.byFingerprint[fp]; dup {
			continue
		}
		s.byFingerprint[fp] = anchor
		subject := string(anchor.RawSubject)
		s.bySubject[subject] = append(s.bySubject[subject], anchor)
	}
	return s
}

// Len returns the number of distinct anchors in the set.
func (s *AnchorSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.byFingerprint)
}

// Contains reports whether the given certificate is an anchor, compared by
// raw DER fingerprint.
func (s *AnchorSet) Contains(cert *x509.Certificate) bool {
	if s == nil || cert == nil {
		return false
	}
	_, ok := s.byFingerprint[sha256.Sum256(cert.Raw)]
	return ok
}

// ForIssuerOf returns the anchors whose subject distinguished name matches the
// given certificate's issuer. The terminal resolution uses this to find an
// anchor that may have signed a chain whose root was not presented.
func (s *AnchorSet) ForIssuerOf(cert *x509.Certificate) []*x509.Certificate {
	if s == nil || cert == nil {
		return nil
	}
	return s.bySubject[string(cert.RawIssuer)]
}
