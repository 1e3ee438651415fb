package query

import (
	"github.com/atomyze-foundation/hlf-query-gateway/pkg/peer"
)

// Addresser finds peers registered in organizations.
type Addresser interface {
	EndpointFor(org, nodeID string) (*peer.Peer, bool)
}

// Resolver maps node and organization names to a query target.
// A nil target leaves peer selection to the network layer.
type Resolver struct {
	addr Addresser
}

func NewResolver(addr Addresser) *Resolver {
	return &Resolver{addr: addr}
}

// Resolve never fails: unknown organizations and nodes give the nil target.
func (r *Resolver) Resolve(nodeID, org string) *peer.Peer {
	if org == "" {
		return nil
	}
	if target, ok := r.addr.EndpointFor(org, nodeID); ok {
		return target
	}
	return nil
}
