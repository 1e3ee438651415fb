package config

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// TLSCredentials represents the TLS (Transport Layer Security) credentials configuration
// for secure communication with organization peers.
type TLSCredentials struct {
	Cert string `yaml:"cert"`
	Key  string `yaml:"key"`
	CA   string `yaml:"ca"`
}

// TLSConfig generates a TLS configuration for peer connections. Client key pair is
// optional and used for mutual TLS, CA is appended to the root pool when set.
func (c *TLSCredentials) TLSConfig() (*tls.Config, error) {
	conf := &tls.Config{
		MinVersion: tls.VersionTLS12,
		RootCAs:    x509.NewCertPool(),
	}
	if c == nil {
		return conf, nil
	}

	rootCAs, err := c.RootCertificates()
	if err != nil {
		return nil, err
	}
	for _, pemServerCA := range rootCAs {
		if !conf.RootCAs.AppendCertsFromPEM(pemServerCA) {
			return nil, fmt.Errorf("failed to add server CA's certificate")
		}
	}

	if c.Cert != "" || c.Key != "" {
		cert, err := tls.LoadX509KeyPair(c.Cert, c.Key)
		if err != nil {
			return nil, fmt.Errorf("load keypair: %w", err)
		}
		conf.Certificates = []tls.Certificate{cert}
	}

	return conf, nil
}

// RootCertificates reads PEM of the CA who signed peer certificates, nil when CA is not set.
func (c *TLSCredentials) RootCertificates() ([][]byte, error) {
	if c == nil || c.CA == "" {
		return nil, nil
	}
	pemServerCA, err := os.ReadFile(c.CA)
	if err != nil {
		return nil, err
	}
	return [][]byte{pemServerCA}, nil
}

// ClientCertificate returns configured client certificate or empty one.
func ClientCertificate(conf *tls.Config) tls.Certificate {
	if conf == nil || len(conf.Certificates) == 0 {
		return tls.Certificate{}
	}
	return conf.Certificates[0]
}
