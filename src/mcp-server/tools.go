// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// ToolHandler is the handler signature for a registered MCP tool. It is a
// type alias so handlers pass directly into the server's AddTool.
type ToolHandler = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// ToolDefinition pairs an MCP tool schema with its handler. Handlers receive
// the server configuration through a closure created at registration time so
// config-dependent defaults (warning window, anchor bundle) resolve per call.
type ToolDefinition struct {
	Tool    mcp.Tool
	Handler func(config *Config) ToolHandler
	Role    string
}

// createTools creates and returns all MCP tool definitions with their handlers.
//
// The function defines the following tools:
//   - validate_cert_chain: Judges a certificate chain against a trust anchor set
//   - match_hostname: Matches a host name against a certificate's declared names
//   - check_cert_expiry: Checks certificate expiry dates with configurable warnings
//
// Each tool includes proper parameter definitions, descriptions, and default
// values as required by the MCP specification.
func createTools() []ToolDefinition {
	return []ToolDefinition{
		{
			Tool: mcp.NewTool("validate_cert_chain",
				mcp.WithDescription("Validate an X509 certificate chain against a trust anchor set and report every violated rule"),
				mcp.WithString("chain",
					mcp.Required(),
					mcp.Description("Chain file path or base64-encoded certificate bundle (PEM, DER, or PKCS7)"),
				),
				mcp.WithString("anchors",
					mcp.Description("Trust anchor file path or base64-encoded bundle (default: anchorsFile from server config)"),
				),
				mcp.WithString("host",
					mcp.Description("Host name to match against the leaf certificate (default: skip name matching)"),
				),
				mcp.WithString("at",
					mcp.Description("Validation time in RFC 3339 format (default: now)"),
				),
				mcp.WithBoolean("strict_order",
					mcp.Description("Trust the presented order instead of reordering (default: false)"),
					mcp.DefaultBool(false),
				),
				mcp.WithBoolean("exhaustive",
					mcp.Description("Collect every violation instead of stopping at the first (default: false)"),
					mcp.DefaultBool(false),
				),
				mcp.WithString("format",
					mcp.Description("Output format: 'table', 'tree', or 'json' (default: table)"),
					mcp.DefaultString("table"),
				),
			),
			Handler: handleValidateCertChain,
			Role:    "chainValidator",
		},
		{
			Tool: mcp.NewTool("match_hostname",
				mcp.WithDescription("Match a host name against a certificate's CommonName and SubjectAltName entries, including wildcard rules"),
				mcp.WithString("certificate",
					mcp.Required(),
					mcp.Description("Certificate file path or base64-encoded certificate data"),
				),
				mcp.WithString("host",
					mcp.Required(),
					mcp.Description("Host name to match"),
				),
				mcp.WithBoolean("exhaustive",
					mcp.Description("Report every defective declared name instead of stopping at the first (default: false)"),
					mcp.DefaultBool(false),
				),
			),
			Handler: handleMatchHostname,
			Role:    "nameMatcher",
		},
		{
			Tool: mcp.NewTool("check_cert_expiry",
				mcp.WithDescription("Check certificate expiry dates and warn about upcoming expirations"),
				mcp.WithString("certificate",
					mcp.Required(),
					mcp.Description("Certificate file path or base64-encoded certificate data"),
				),
				mcp.WithNumber("warn_days",
					mcp.Description("Number of days before expiry to show warning (default: from server config)"),
				),
			),
			Handler: handleCheckCertExpiry,
			Role:    "expiryChecker",
		},
	}
}
