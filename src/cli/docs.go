// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for the X.509 certificate
// chain validator. It implements a Cobra-based CLI that judges chains from
// local bundle files or live TLS handshakes against a trust anchor set, with
// policy toggles for ordering, time validity, CA constraints, and exhaustive
// reporting, and renders verdicts as markdown tables, ASCII trees, or JSON.
// Reusable configurations load from JSON or YAML policy files.
package cli
