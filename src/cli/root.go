// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/x509-chain-validator/src/internal/helper/gc"
	"github.com/H0llyW00dzZ/x509-chain-validator/src/internal/helper/posix"
	x509certs "github.com/H0llyW00dzZ/x509-chain-validator/src/internal/x509/certs"
	x509peer "github.com/H0llyW00dzZ/x509-chain-validator/src/internal/x509/peer"
	x509validate "github.com/H0llyW00dzZ/x509-chain-validator/src/internal/x509/validate"
	"github.com/H0llyW00dzZ/x509-chain-validator/src/logger"
)

var (
	// ErrInputRequired indicates that neither a chain file nor a remote target
	// was supplied.
	ErrInputRequired = errors.New("cli: certificate input required: provide a chain file or --remote HOST[:PORT]")

	// ErrChainRejected indicates the chain was judged and rejected. The verdict
	// and reasons have already been rendered; callers use this to pick the exit
	// code.
	ErrChainRejected = errors.New("cli: certificate chain rejected")
)

// options collects every flag-controllable input of one validation run.
type options struct {
	inputFile   string
	remote      string
	hostName    string
	anchorsFile string
	policyFile  string
	atTime      string
	format      string
	outputFile  string
	timeout     int

	strictOrder bool
	exhaustive  bool
	noTimeCheck bool
	noCACheck   bool
}

// Execute runs the root command against os.Args, rendering the verdict
// through the given logger. It returns ErrChainRejected when the chain fails
// validation so callers can exit non-zero without double-printing.
func Execute(ctx context.Context, version string, log logger.Logger) error {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           posix.GetExecutableName() + " [INPUT_FILE]",
		Short:         "X.509 certificate chain validator",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.inputFile = args[0]
			}
			return execValidate(cmd.Context(), cmd, opts, log)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.remote, "remote", "r", "", "fetch the chain from HOST[:PORT] instead of a file (default port 443)")
	flags.StringVarP(&opts.hostName, "host", "H", "", "host name to match against the leaf certificate")
	flags.StringVarP(&opts.anchorsFile, "anchors", "a", "", "PEM bundle of trust anchors")
	flags.StringVarP(&opts.policyFile, "policy", "c", "", "policy file (JSON or YAML) with checks, anchors, and host")
	flags.StringVar(&opts.atTime, "at", "", "validation time in RFC 3339 format (default: now)")
	flags.StringVarP(&opts.format, "format", "f", "table", "output format: 'table', 'tree', or 'json'")
	flags.StringVarP(&opts.outputFile, "output", "o", "", "output to OUTPUT_FILE (default: stdout)")
	flags.IntVar(&opts.timeout, "timeout", 10, "remote fetch timeout in seconds")
	flags.BoolVar(&opts.strictOrder, "strict-order", false, "trust the presented order instead of reordering")
	flags.BoolVar(&opts.exhaustive, "exhaustive", false, "collect every violation instead of stopping at the first")
	flags.BoolVar(&opts.noTimeCheck, "no-time-check", false, "skip validity window checks")
	flags.BoolVar(&opts.noCACheck, "no-ca-check", false, "skip CA constraint checks on issuing certificates")

	return rootCmd.ExecuteContext(ctx)
}

// execValidate assembles the inputs, runs the validation, and renders the
// report. Flags set explicitly on the command line win over policy file
// values.
func execValidate(ctx context.Context, cmd *cobra.Command, opts *options, log logger.Logger) error {
	checks := x509validate.DefaultChecks()
	policy, err := loadPolicy(opts.policyFile)
	if err != nil {
		return err
	}
	if policy != nil {
		checks = policy.Checks
		if opts.hostName == "" {
			opts.hostName = policy.Host
		}
		if opts.anchorsFile == "" {
			opts.anchorsFile = policy.AnchorsFile
		}
	}

	if cmd.Flags().Changed("strict-order") {
		checks.StrictOrdering = opts.strictOrder
	}
	if cmd.Flags().Changed("exhaustive") {
		checks.Exhaustive = opts.exhaustive
	}
	if opts.noTimeCheck {
		checks.TimeValidity = false
	}
	if opts.noCACheck {
		checks.CAConstraints = false
	}

	chain, err := loadChain(ctx, opts)
	if err != nil {
		return err
	}

	anchors, err := loadAnchors(opts.anchorsFile, policy)
	if err != nil {
		return err
	}

	at := time.Now()
	if opts.atTime != "" {
		if at, err = time.Parse(time.RFC3339, opts.atTime); err != nil {
			return fmt.Errorf("invalid --at time: %w", err)
		}
	}

	report, err := x509validate.NewReport(checks, anchors, opts.hostName, at, chain)
	if err != nil {
		return err
	}

	output, err := renderReport(report, opts.format)
	if err != nil {
		return err
	}

	if opts.outputFile != "" {
		if err := os.WriteFile(opts.outputFile, []byte(output), 0644); err != nil {
			return fmt.Errorf("error writing to output file: %w", err)
		}
	} else {
		log.Println(output)
	}

	if !report.Accepted() {
		return ErrChainRejected
	}
	return nil
}

// loadChain obtains the chain to judge, either from a live TLS handshake or
// from a local bundle file.
func loadChain(ctx context.Context, opts *options) ([]*x509.Certificate, error) {
	if opts.remote != "" {
		host, port, err := splitRemote(opts.remote)
		if err != nil {
			return nil, err
		}
		// Without an explicit --host, the remote name is what the leaf must
		// cover.
		if opts.hostName == "" {
			opts.hostName = host
		}
		return x509peer.FetchChain(ctx, host, port, time.Duration(opts.timeout)*time.Second)
	}

	if opts.inputFile == "" {
		return nil, ErrInputRequired
	}

	data, err := readFile(opts.inputFile)
	if err != nil {
		return nil, fmt.Errorf("error reading input file: %w", err)
	}

	chain, err := x509certs.New().DecodeMultiple(data)
	if err != nil {
		return nil, fmt.Errorf("error decoding chain: %w", err)
	}
	return chain, nil
}

// loadAnchors builds the trust anchor set from a PEM/DER bundle file, plus
// any inline PEM the policy file carries.
func loadAnchors(anchorsFile string, policy *Policy) (*x509validate.AnchorSet, error) {
	var anchors []*x509.Certificate
	codec := x509certs.New()

	if anchorsFile != "" {
		data, err := readFile(anchorsFile)
		if err != nil {
			return nil, fmt.Errorf("error reading anchors file: %w", err)
		}
		certs, err := codec.DecodeMultiple(data)
		if err != nil {
			return nil, fmt.Errorf("error decoding anchors: %w", err)
		}
		anchors = append(anchors, certs...)
	}

	if policy != nil && policy.AnchorsPEM != "" {
		certs, err := codec.DecodeMultiple([]byte(policy.AnchorsPEM))
		if err != nil {
			return nil, fmt.Errorf("error decoding policy anchors: %w", err)
		}
		anchors = append(anchors, certs...)
	}

	return x509validate.NewAnchorSet(anchors...), nil
}

// renderReport formats the report in the requested output format.
func renderReport(report *x509validate.Report, format string) (string, error) {
	switch format {
	case "json":
		data, err := report.ToJSON()
		if err != nil {
			return "", fmt.Errorf("error encoding report: %w", err)
		}
		return string(data), nil
	case "tree":
		return report.RenderASCIITree(), nil
	case "table":
		return report.RenderTable(), nil
	}
	return "", fmt.Errorf("unknown output format %q: expected 'table', 'tree', or 'json'", format)
}

// splitRemote parses HOST[:PORT], defaulting to 443.
func splitRemote(remote string) (string, int, error) {
	host, portStr, err := net.SplitHostPort(remote)
	if err != nil {
		return remote, 443, nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return "", 0, fmt.Errorf("invalid port in remote target %q", remote)
	}
	return host, port, nil
}

// readFile reads a whole file through the shared buffer pool.
func readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	if _, err := buf.ReadFrom(file); err != nil {
		return nil, err
	}

	return append([]byte(nil), buf.Bytes()...), nil
}
