package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/atomyze-foundation/hlf-query-gateway/pkg/peer"
	pb "github.com/hyperledger/fabric-protos-go/peer"
)

// PeerPool serves canned endorser clients by peer name.
type PeerPool struct {
	endorsers map[string]pb.EndorserClient

	mx        sync.Mutex
	requested []string
	closed    bool
}

var _ peer.Pool = &PeerPool{}

// GetEndorser returns endorser registered for the peer name.
func (p *PeerPool) GetEndorser(_ context.Context, pr *peer.Peer) (pb.EndorserClient, error) {
	p.mx.Lock()
	defer p.mx.Unlock()
	p.requested = append(p.requested, pr.Name)
	if cli, ok := p.endorsers[pr.Name]; ok {
		return cli, nil
	}
	return nil, fmt.Errorf("peer %s is unreachable", pr.Name)
}

// Requested returns names of peers requested from pool.
func (p *PeerPool) Requested() []string {
	p.mx.Lock()
	defer p.mx.Unlock()
	return append([]string(nil), p.requested...)
}

// Close marks pool as closed.
func (p *PeerPool) Close() error {
	p.mx.Lock()
	defer p.mx.Unlock()
	p.closed = true
	return nil
}

// NewPeerPool creates pool from peer name to endorser map.
func NewPeerPool(endorsers map[string]pb.EndorserClient) *PeerPool {
	return &PeerPool{endorsers: endorsers}
}
