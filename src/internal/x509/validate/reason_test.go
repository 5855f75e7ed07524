// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	x509validate "github.com/H0llyW00dzZ/x509-chain-validator/src/internal/x509/validate"
)

func TestReasonCode_String(t *testing.T) {
	tests := []struct {
		code x509validate.ReasonCode
		want string
	}{
		{x509validate.CodeUnknownCriticalExtension, "UnknownCriticalExtension"},
		{x509validate.CodeExpired, "Expired"},
		{x509validate.CodeInFuture, "InFuture"},
		{x509validate.CodeSelfSigned, "SelfSigned"},
		{x509validate.CodeUnknownCA, "UnknownCA"},
		{x509validate.CodeNotAllowedToSign, "NotAllowedToSign"},
		{x509validate.CodeSignatureFailed, "SignatureFailed"},
		{x509validate.CodeNoCommonName, "NoCommonName"},
		{x509validate.CodeNameMismatch, "NameMismatch"},
		{x509validate.CodeInvalidWildcard, "InvalidWildcard"},
		{x509validate.CodeEmptyChain, "EmptyChain"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.code.String())
	}

	assert.Equal(t, "ReasonCode(99)", x509validate.ReasonCode(99).String())
}

func TestReason_String(t *testing.T) {
	assert.Equal(t, "Expired", x509validate.Reason{Code: x509validate.CodeExpired}.String())
	assert.Equal(t, "NameMismatch(www.example.com)",
		x509validate.Reason{Code: x509validate.CodeNameMismatch, Host: "www.example.com"}.String())
}

func TestContains(t *testing.T) {
	reasons := []x509validate.Reason{
		{Code: x509validate.CodeExpired},
		{Code: x509validate.CodeNameMismatch, Host: "www.example.com"},
	}

	assert.True(t, x509validate.Contains(reasons, x509validate.CodeExpired))
	assert.True(t, x509validate.Contains(reasons, x509validate.CodeNameMismatch))
	assert.False(t, x509validate.Contains(reasons, x509validate.CodeUnknownCA))
	assert.False(t, x509validate.Contains(nil, x509validate.CodeExpired))
}
