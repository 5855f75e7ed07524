// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	x509validate "github.com/H0llyW00dzZ/x509-chain-validator/src/internal/x509/validate"
)

// policyFormat represents supported policy file formats.
type policyFormat int

const (
	// policyFormatJSON represents JSON policy format (.json)
	policyFormatJSON policyFormat = iota
	// policyFormatYAML represents YAML policy format (.yaml, .yml)
	policyFormatYAML
)

// Policy is a reusable validation configuration loaded from a JSON or YAML
// file. It bundles the check toggles with the trust anchors and the host
// name a deployment validates against, so repeated runs don't need the full
// flag set.
//
// Anchors may be referenced by file path (anchorsFile) or embedded directly
// as PEM (anchorsPem); both may be present and are merged.
type Policy struct {
	Checks      x509validate.Checks `json:"checks" yaml:"checks"`
	Host        string              `json:"host,omitempty" yaml:"host,omitempty"`
	AnchorsFile string              `json:"anchorsFile,omitempty" yaml:"anchorsFile,omitempty"`
	AnchorsPEM  string              `json:"anchorsPem,omitempty" yaml:"anchorsPem,omitempty"`
}

// detectPolicyFormat determines the policy file format based on file
// extension, matching case-insensitively for cross-platform compatibility.
func detectPolicyFormat(policyPath string) policyFormat {
	ext := strings.ToLower(filepath.Ext(policyPath))
	switch ext {
	case ".yaml", ".yml":
		return policyFormatYAML
	default:
		return policyFormatJSON
	}
}

// unmarshalPolicy unmarshals policy data based on the specified format.
func unmarshalPolicy(data []byte, policy *Policy, format policyFormat) error {
	switch format {
	case policyFormatYAML:
		if err := yaml.Unmarshal(data, policy); err != nil {
			return fmt.Errorf("failed to parse YAML policy file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, policy); err != nil {
			return fmt.Errorf("failed to parse JSON policy file: %w", err)
		}
	}
	return nil
}

// loadPolicy loads a validation policy from a JSON or YAML file. An empty
// path returns a nil policy, meaning flag defaults apply. The checks default
// to [x509validate.DefaultChecks] before the file is applied, so a policy
// only needs to name the toggles it changes.
func loadPolicy(policyPath string) (*Policy, error) {
	if policyPath == "" {
		return nil, nil
	}

	data, err := readFile(policyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}

	policy := &Policy{Checks: x509validate.DefaultChecks()}
	format := detectPolicyFormat(policyPath)
	if err := unmarshalPolicy(data, policy, format); err != nil {
		return nil, err
	}

	return policy, nil
}
