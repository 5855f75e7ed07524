// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509validate

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// Report bundles the outcome of one validation run for rendering: the ordered
// path that was walked, the reasons collected, and the inputs that produced
// them. It exists for the outer surfaces (CLI, MCP tools); the core API is
// [Validate] alone.
type Report struct {
	Path        []*x509.Certificate
	Reasons     []Reason
	HostName    string
	ValidatedAt time.Time
}

// NewReport runs a full validation and bundles the outcome with the ordered
// path for rendering. Validation semantics are exactly those of [Validate].
func NewReport(checks Checks, anchors *AnchorSet, hostName string, now time.Time, chain []*x509.Certificate) (*Report, error) {
	report := &Report{HostName: hostName, ValidatedAt: now}

	path, failed := Order(checks, chain)
	if len(failed) > 0 {
		report.Reasons = failed
		return report, nil
	}
	report.Path = path

	reasons, err := Validate(checks, anchors, hostName, now, chain)
	if err != nil {
		return nil, err
	}
	report.Reasons = reasons
	return report, nil
}

// Accepted reports whether the chain passed under the policy.
func (r *Report) Accepted() bool { return len(r.Reasons) == 0 }

// RenderTable renders the ordered path and verdict as a markdown table.
//
// Returns:
//   - string: Markdown table listing each certificate's role, names, validity
//     window, and key, followed by the verdict line and any reasons
//
// Thread Safety: Safe for concurrent use (reads only).
func (r *Report) RenderTable() string {
	if len(r.Path) == 0 {
		return "No certificates in path"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	table.Header([]string{"#", "Role", "Subject", "Issuer", "Not Before", "Not After", "Key"})

	var rows [][]string
	for i, cert := range r.Path {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			certificateRole(i, len(r.Path)),
			cert.Subject.CommonName,
			cert.Issuer.CommonName,
			cert.NotBefore.Format("2006-01-02"),
			cert.NotAfter.Format("2006-01-02"),
			publicKeyInfo(cert),
		})
	}

	table.Bulk(rows)
	table.Render()

	buf.WriteString("\n")
	buf.WriteString(r.renderVerdict())
	return buf.String()
}

// RenderASCIITree renders the ordered path as an ASCII tree diagram, leaf
// first, with a verdict line per run.
func (r *Report) RenderASCIITree() string {
	if len(r.Path) == 0 {
		return "No certificates in path"
	}

	var result strings.Builder
	for i, cert := range r.Path {
		connector := "|-- "
		if i == len(r.Path)-1 {
			connector = "`-- "
		}

		result.WriteString(connector)
		result.WriteString(fmt.Sprintf("%s (%s)\n", cert.Subject.CommonName, certificateRole(i, len(r.Path))))
	}

	result.WriteString("\n")
	result.WriteString(r.renderVerdict())
	return result.String()
}

// ToJSON converts the report to structured JSON for external tools.
func (r *Report) ToJSON() ([]byte, error) {
	type certData struct {
		Index              int       `json:"index"`
		Role               string    `json:"role"`
		Subject            string    `json:"subject"`
		Issuer             string    `json:"issuer"`
		SerialNumber       string    `json:"serialNumber"`
		SignatureAlgorithm string    `json:"signatureAlgorithm"`
		PublicKey          string    `json:"publicKey"`
		NotBefore          time.Time `json:"notBefore"`
		NotAfter           time.Time `json:"notAfter"`
		IsCA               bool      `json:"isCA"`
		DNSNames           []string  `json:"dnsNames,omitempty"`
	}

	type reportData struct {
		HostName     string     `json:"hostName,omitempty"`
		ValidatedAt  time.Time  `json:"validatedAt"`
		Accepted     bool       `json:"accepted"`
		Reasons      []Reason   `json:"reasons"`
		PathLength   int        `json:"pathLength"`
		Certificates []certData `json:"certificates"`
	}

	data := reportData{
		HostName:     r.HostName,
		ValidatedAt:  r.ValidatedAt,
		Accepted:     r.Accepted(),
		Reasons:      r.Reasons,
		PathLength:   len(r.Path),
		Certificates: make([]certData, len(r.Path)),
	}
	if data.Reasons == nil {
		data.Reasons = []Reason{}
	}

	for i, cert := range r.Path {
		data.Certificates[i] = certData{
			Index:              i,
			Role:               certificateRole(i, len(r.Path)),
			Subject:            cert.Subject.CommonName,
			Issuer:             cert.Issuer.CommonName,
			SerialNumber:       cert.SerialNumber.String(),
			SignatureAlgorithm: cert.SignatureAlgorithm.String(),
			PublicKey:          publicKeyInfo(cert),
			NotBefore:          cert.NotBefore,
			NotAfter:           cert.NotAfter,
			IsCA:               cert.IsCA,
			DNSNames:           cert.DNSNames,
		}
	}

	return json.MarshalIndent(data, "", "  ")
}

// renderVerdict formats the accept/reject line and the collected reasons.
func (r *Report) renderVerdict() string {
	if r.Accepted() {
		return "Verdict: ACCEPTED\n"
	}

	var b strings.Builder
	b.WriteString("Verdict: REJECTED\n")
	for _, reason := range r.Reasons {
		b.WriteString(fmt.Sprintf("  - %s\n", reason))
	}
	return b.String()
}

// certificateRole describes a certificate's position within the ordered path.
func certificateRole(index, total int) string {
	switch {
	case total == 1:
		return "Self-Signed Certificate"
	case index == 0:
		return "End-Entity (Server/Leaf) Certificate"
	case index == total-1:
		return "Root CA Certificate"
	default:
		return "Intermediate CA Certificate"
	}
}

// publicKeyInfo formats the key algorithm and size for display.
func publicKeyInfo(cert *x509.Certificate) string {
	switch key := cert.PublicKey.(type) {
	case *rsa.PublicKey:
		return fmt.Sprintf("%d-bit RSA", key.Size()*8)
	case *ecdsa.PublicKey:
		return fmt.Sprintf("%d-bit ECDSA", key.Curve.Params().BitSize)
	}
	return cert.PublicKeyAlgorithm.String()
}
