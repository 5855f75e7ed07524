// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	x509certs "github.com/H0llyW00dzZ/x509-chain-validator/src/internal/x509/certs"
	x509validate "github.com/H0llyW00dzZ/x509-chain-validator/src/internal/x509/validate"
)

// readCertInput resolves a tool parameter that may be a file path or
// base64-encoded certificate data.
func readCertInput(input string) ([]byte, error) {
	// Try to read as file first
	if fileData, err := os.ReadFile(input); err == nil {
		return fileData, nil
	}
	// Try to decode as base64
	if decoded, err := base64.StdEncoding.DecodeString(input); err == nil {
		return decoded, nil
	}
	return nil, fmt.Errorf("not a valid file path or base64 data")
}

// decodeChainInput reads and decodes a certificate bundle parameter.
func decodeChainInput(input string) ([]*x509.Certificate, error) {
	data, err := readCertInput(input)
	if err != nil {
		return nil, err
	}
	return x509certs.New().DecodeMultiple(data)
}

// handleValidateCertChain judges a certificate chain against a trust anchor
// set and renders the verdict with every violated rule.
//
// Parameters:
//   - ctx: Context for cancellation and timeout handling
//   - request: MCP tool call request containing the chain and policy options
//
// Returns:
//   - The tool execution result containing the rendered validation report
//   - An error only for transport failures; validation problems are reported
//     as tool results
//
// Anchors fall back to the server configuration's anchorsFile when the call
// does not supply its own. An empty anchor set is valid and means no chain
// can terminate at a trusted root.
func handleValidateCertChain(config *Config) ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		chainInput, err := request.RequireString("chain")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("chain parameter required: %v", err)), nil
		}

		chain, err := decodeChainInput(chainInput)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to decode chain: %v", err)), nil
		}

		checks := config.Checks
		checks.StrictOrdering = request.GetBool("strict_order", checks.StrictOrdering)
		checks.Exhaustive = request.GetBool("exhaustive", checks.Exhaustive)

		anchors, err := resolveAnchors(request.GetString("anchors", ""), config)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to load anchors: %v", err)), nil
		}

		at := time.Now()
		if atParam := request.GetString("at", ""); atParam != "" {
			if at, err = time.Parse(time.RFC3339, atParam); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid 'at' time: %v", err)), nil
			}
		}

		report, err := x509validate.NewReport(checks, anchors, request.GetString("host", ""), at, chain)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("validation failed: %v", err)), nil
		}

		switch request.GetString("format", "table") {
		case "json":
			data, err := report.ToJSON()
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to encode report: %v", err)), nil
			}
			return mcp.NewToolResultText(string(data)), nil
		case "tree":
			return mcp.NewToolResultText(report.RenderASCIITree()), nil
		default: // table
			return mcp.NewToolResultText(report.RenderTable()), nil
		}
	}
}

// resolveAnchors loads the trust anchor set for a call, preferring the call
// parameter over the configured bundle file.
func resolveAnchors(anchorsInput string, config *Config) (*x509validate.AnchorSet, error) {
	source := anchorsInput
	if source == "" {
		source = config.AnchorsFile
	}
	if source == "" {
		return x509validate.NewAnchorSet(), nil
	}

	certs, err := decodeChainInput(source)
	if err != nil {
		return nil, err
	}
	return x509validate.NewAnchorSet(certs...), nil
}

// handleMatchHostname matches a host name against a single certificate's
// declared names, applying the wildcard shape rules.
func handleMatchHostname(config *Config) ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		certInput, err := request.RequireString("certificate")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("certificate parameter required: %v", err)), nil
		}

		host, err := request.RequireString("host")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("host parameter required: %v", err)), nil
		}

		data, err := readCertInput(certInput)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read certificate: %v", err)), nil
		}

		cert, err := x509certs.New().Decode(data)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to decode certificate: %v", err)), nil
		}

		checks := x509validate.Checks{Exhaustive: request.GetBool("exhaustive", false)}
		reasons := x509validate.MatchName(checks, host, cert)

		var result strings.Builder
		fmt.Fprintf(&result, "Certificate: %s\n", cert.Subject.CommonName)
		if len(cert.DNSNames) > 0 {
			fmt.Fprintf(&result, "SubjectAltNames: %s\n", strings.Join(cert.DNSNames, ", "))
		}
		fmt.Fprintf(&result, "Host: %s\n\n", host)

		if len(reasons) == 0 {
			result.WriteString("Match: YES\n")
		} else {
			result.WriteString("Match: NO\n")
			for _, reason := range reasons {
				fmt.Fprintf(&result, "  - %s\n", reason)
			}
		}

		return mcp.NewToolResultText(result.String()), nil
	}
}

// handleCheckCertExpiry checks every certificate in the input against its
// validity window and warns about upcoming expirations.
func handleCheckCertExpiry(config *Config) ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		certInput, err := request.RequireString("certificate")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("certificate parameter required: %v", err)), nil
		}

		warnDays := request.GetInt("warn_days", config.Defaults.WarnDays)

		certs, err := decodeChainInput(certInput)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to decode certificate: %v", err)), nil
		}
		if len(certs) == 0 {
			return mcp.NewToolResultError("no certificates found in input"), nil
		}

		now := time.Now()

		var result strings.Builder
		result.WriteString("Certificate Expiry Check:\n\n")

		for i, cert := range certs {
			fmt.Fprintf(&result, "%d: %s\n", i+1, cert.Subject.CommonName)
			fmt.Fprintf(&result, "   Valid: %s to %s\n",
				cert.NotBefore.Format("2006-01-02"), cert.NotAfter.Format("2006-01-02"))

			switch {
			case now.After(cert.NotAfter):
				fmt.Fprintf(&result, "   Status: EXPIRED (%d days ago)\n", int(now.Sub(cert.NotAfter).Hours()/24))
			case now.Before(cert.NotBefore):
				fmt.Fprintf(&result, "   Status: NOT YET VALID (starts in %d days)\n", int(cert.NotBefore.Sub(now).Hours()/24))
			default:
				daysLeft := int(cert.NotAfter.Sub(now).Hours() / 24)
				if daysLeft <= warnDays {
					fmt.Fprintf(&result, "   Status: EXPIRING SOON (%d days left, warning threshold %d)\n", daysLeft, warnDays)
				} else {
					fmt.Fprintf(&result, "   Status: OK (%d days left)\n", daysLeft)
				}
			}
		}

		return mcp.NewToolResultText(result.String()), nil
	}
}
