// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509peer

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"time"
)

// ErrNoCertificates indicates the server completed a handshake without
// presenting any certificates.
var ErrNoCertificates = errors.New("x509peer: no certificates received from server")

// FetchChain establishes a TLS connection to the target host and returns the
// certificate chain presented during the handshake, exactly as sent. The
// handshake itself performs no verification; judging the chain is the
// validator's job, and a chain that would fail normal TLS verification is
// precisely the interesting input.
func FetchChain(ctx context.Context, hostname string, port int, timeout time.Duration) ([]*x509.Certificate, error) {
	dialer := &net.Dialer{Timeout: timeout}

	if deadline, ok := ctx.Deadline(); ok {
		dialer.Deadline = deadline
	}

	conn, err := tls.DialWithDialer(dialer, "tcp", fmt.Sprintf("%s:%d", hostname, port),
		// We just want the presented chain, not to verify it here
		&tls.Config{InsecureSkipVerify: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s:%d: %w", hostname, port, err)
	}
	defer conn.Close()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	peerCerts := conn.ConnectionState().PeerCertificates
	if len(peerCerts) == 0 {
		return nil, ErrNoCertificates
	}

	return peerCerts, nil
}
