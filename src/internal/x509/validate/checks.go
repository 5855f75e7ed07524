// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509validate

// Checks configures a single validation run. The zero value disables every
// check; use [DefaultChecks] for the recommended policy.
//
// Checks is passed by value into every call: there is no global validation
// state, so concurrent runs with different policies never interfere.
type Checks struct {
	// TimeValidity enables the notBefore/notAfter window check.
	TimeValidity bool `json:"timeValidity" yaml:"timeValidity"`

	// StrictOrdering trusts the presented chain as already ordered leaf first.
	// When false (the default), the chain is treated as an unordered bag that
	// may contain extraneous certificates; the orderer reconstructs the path
	// and silently drops noise. Tolerating unordered and padded chains is a
	// real-world interoperability accommodation.
	StrictOrdering bool `json:"strictOrdering" yaml:"strictOrdering"`

	// CAConstraints requires every non-leaf certificate, the root included,
	// to carry the CA basic constraint and a certificate-signing key usage.
	CAConstraints bool `json:"caConstraints" yaml:"caConstraints"`

	// Exhaustive continues past the first failure and collects every reason.
	// When false, validation stops at the first non-empty check result: once a
	// structural check fails, later findings are not safe to trust because
	// earlier checks establish the preconditions they assume.
	Exhaustive bool `json:"exhaustive" yaml:"exhaustive"`
}

// DefaultChecks returns the recommended policy: time validity and CA
// constraints on, strict ordering off, fail-fast evaluation.
func DefaultChecks() Checks {
	return Checks{
		TimeValidity:   true,
		StrictOrdering: false,
		CAConstraints:  true,
		Exhaustive:     false,
	}
}
