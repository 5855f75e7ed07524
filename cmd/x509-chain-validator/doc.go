// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

// x509-chain-validator is a command-line tool for validating X.509
// certificate chains against a trust anchor set and reporting every
// violated rule.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/x509-chain-validator/cmd/x509-chain-validator@latest
//
// # Usage
//
//	x509-chain-validator [INPUT_FILE] [FLAGS]
//
// # Flags
//
//	-r, --remote         Fetch the chain from HOST[:PORT] instead of a file
//	-H, --host           Host name to match against the leaf certificate
//	-a, --anchors        Trust anchor bundle file (PEM, DER, or PKCS7)
//	-c, --policy         Validation policy file (JSON or YAML)
//	    --at             Validation time in RFC 3339 format (default: now)
//	-f, --format         Output format: 'table', 'tree', or 'json' (default: table)
//	-o, --output         Destination file (default: stdout)
//	    --timeout        Remote fetch timeout in seconds (default: 10)
//	    --strict-order   Trust the presented order instead of reordering
//	    --exhaustive     Collect every violation instead of stopping at the first
//	    --no-time-check  Skip the validity window check
//	    --no-ca-check    Skip CA basic constraint and key usage checks
//
// # Exit Codes
//
//	0  chain accepted
//	1  chain rejected (reasons are rendered before exit)
//	2  processing error (bad input, unreadable file, malformed flags)
//
// # Examples
//
// Validate a local bundle against a trust anchor file:
//
//	x509-chain-validator chain.pem --anchors roots.pem --host www.example.com
//
// Fetch and judge the chain a server presents:
//
//	x509-chain-validator --remote example.com:443 --anchors roots.pem
//
// Collect every violation as JSON:
//
//	x509-chain-validator chain.pem --anchors roots.pem --exhaustive --format json
//
// Validate as of a specific time:
//
//	x509-chain-validator chain.pem --anchors roots.pem --at 2026-01-01T00:00:00Z
package main
