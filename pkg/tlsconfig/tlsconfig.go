// Package tlsconfig builds mutual-TLS configurations for the crop service
// gRPC server and its clients.
package tlsconfig

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
)

// ErrIncomplete is returned when only some of cert, key and CA are given
var ErrIncomplete = errors.New("tls: cert, key and CA must all be set")

// Files names the PEM files of one side of an mTLS connection
type Files struct {
	Cert string
	Key  string
	CA   string
}

// Enabled reports whether any TLS file was configured
func (f Files) Enabled() bool {
	return f.Cert != "" || f.Key != "" || f.CA != ""
}

func (f Files) load() (tls.Certificate, *x509.CertPool, error) {
	if f.Cert == "" || f.Key == "" || f.CA == "" {
		return tls.Certificate{}, nil, ErrIncomplete
	}

	cert, err := tls.LoadX509KeyPair(f.Cert, f.Key)
	if err != nil {
		return tls.Certificate{}, nil, fmt.Errorf("load key pair: %w", err)
	}

	caCert, err := os.ReadFile(f.CA)
	if err != nil {
		return tls.Certificate{}, nil, fmt.Errorf("read CA cert: %w", err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caCert) {
		return tls.Certificate{}, nil, fmt.Errorf("failed to parse CA certificate %s", f.CA)
	}

	return cert, pool, nil
}

// Server creates a tls.Config for a gRPC server requiring client certs (mTLS).
func (f Files) Server() (*tls.Config, error) {
	cert, pool, err := f.load()
	if err != nil {
		return nil, err
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		ClientCAs:    pool,
		ClientAuth:   tls.RequireAndVerifyClientCert,
		MinVersion:   tls.VersionTLS12,
	}, nil
}

// Client creates a tls.Config for a gRPC client that presents a cert (mTLS).
func (f Files) Client() (*tls.Config, error) {
	cert, pool, err := f.load()
	if err != nil {
		return nil, err
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      pool,
		MinVersion:   tls.VersionTLS12,
	}, nil
}
