// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509validate implements policy-driven [X.509] certificate chain validation.
// It provides capabilities to:
//   - Reorder an unordered or padded chain into a verifiable leaf-to-root path.
//   - Check time validity, CA authorization, and critical-extension handling per certificate.
//   - Verify the cryptographic signature linkage between consecutive certificates.
//   - Match a requested host name against the leaf certificate's declared names,
//     including wildcard rules.
//   - Resolve the terminal certificate against a caller-supplied trust anchor set.
//
// Validation never performs I/O: the current time, the trust anchors, and the
// parsed certificates are all injected by the caller, so a single call is a
// pure computation that is safe to run concurrently with other calls.
//
// All policy violations are reported as [Reason] values; an empty result means
// the chain is accepted under the given [Checks]. Only collaborator contract
// violations (for example a signature algorithm the verifier cannot evaluate)
// surface as errors.
//
// [X.509]: https://grokipedia.com/page/X.509
package x509validate
