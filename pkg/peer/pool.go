package peer

import (
	"context"
	"crypto/tls"
	"fmt"

	pb "github.com/hyperledger/fabric-protos-go/peer"
)

type Peer struct {
	Name              string
	Host              string
	Port              int32
	MspID             string
	CACertificates    [][]byte
	ClientCertificate tls.Certificate
}

func (p *Peer) String() string {
	return fmt.Sprintf("%s:%d", p.Host, p.Port)
}

// Pool describes common interface for pool of peer clients
type Pool interface {
	// GetEndorser returns endorser client by peer definition
	GetEndorser(ctx context.Context, p *Peer) (pb.EndorserClient, error)
	// Close gracefully closes all pool connections
	Close() error
}
