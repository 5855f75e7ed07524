// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509peer fetches the certificate chain a live TLS server presents
// during its handshake, without verifying it. The CLI and MCP server use it
// to feed real peer chains into the validator.
package x509peer
