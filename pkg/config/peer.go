package config

import (
	"crypto/tls"
	"fmt"
	"os"

	"github.com/atomyze-foundation/hlf-query-gateway/pkg/peer"
)

// Peer is an organization peer endpoint.
type Peer struct {
	Host       string   `yaml:"host"`
	Port       int32    `yaml:"port"`
	TLSCACerts []string `yaml:"tlsCACerts"`
}

// Load reads peer TLS CA certificates and returns peer definition for connection pool.
func (p *Peer) Load(name, mspID string, clientCert tls.Certificate) (*peer.Peer, error) {
	caCerts := make([][]byte, 0, len(p.TLSCACerts))
	for _, path := range p.TLSCACerts {
		cert, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read peer %s ca certificate: %w", name, err)
		}
		caCerts = append(caCerts, cert)
	}
	return &peer.Peer{
		Name:              name,
		Host:              p.Host,
		Port:              p.Port,
		MspID:             mspID,
		CACertificates:    caCerts,
		ClientCertificate: clientCert,
	}, nil
}
