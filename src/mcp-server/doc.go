// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver exposes the X.509 chain validator over the [MCP]
// protocol. It serves three tools over stdio: full chain validation against
// a trust anchor set, host name matching against a single certificate, and
// expiry checking with a configurable warning window. Defaults load from a
// JSON or YAML configuration file named by the MCP_X509_CONFIG_FILE
// environment variable.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
package mcpserver
