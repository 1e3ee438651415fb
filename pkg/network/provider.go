package network

import (
	"context"
	"errors"
	"fmt"

	"github.com/atomyze-foundation/hlf-query-gateway/pkg/identity"
	"github.com/atomyze-foundation/hlf-query-gateway/pkg/peer"
	"github.com/hyperledger/fabric/protoutil"
	"go.uber.org/zap"
)

// ErrUnknownOrg is returned for organizations the provider was not built with.
var ErrUnknownOrg = errors.New("unknown organization")

// ErrNoPeers is returned when organization has no peers to send an untargeted query to.
var ErrNoPeers = errors.New("organization has no peers")

// Organization is the part of the network reachable on behalf of one org.
type Organization struct {
	Name  string
	MspID string
	// Admin signs queries when no acting identity is carried by the context.
	Admin protoutil.Signer
	// Peers are ordered, the first one serves untargeted single peer queries.
	Peers []*peer.Peer
	Pool  peer.Pool
	// LegacyLifecycle lists chaincodes with lscc instead of _lifecycle.
	LegacyLifecycle bool
}

type provider struct {
	logger *zap.Logger
	orgs   map[string]*Organization
}

var _ Provider = &provider{}

// NewProvider creates Fabric backed provider for organizations.
func NewProvider(logger *zap.Logger, orgs ...*Organization) Provider {
	p := &provider{logger: logger, orgs: make(map[string]*Organization, len(orgs))}
	for _, org := range orgs {
		p.orgs[org.Name] = org
	}
	return p
}

func (p *provider) ChannelContext(channelID, org string) (Channel, error) {
	o, ok := p.orgs[org]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOrg, org)
	}
	return &channel{
		name:   channelID,
		org:    o,
		logger: p.logger.With(zap.String("org", org), zap.String("channel", channelID)),
	}, nil
}

func (p *provider) ClientContext(org string) (Client, error) {
	o, ok := p.orgs[org]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOrg, org)
	}
	return &client{org: o, logger: p.logger.With(zap.String("org", org))}, nil
}

func (p *provider) EndpointFor(org, nodeID string) (*peer.Peer, bool) {
	o, ok := p.orgs[org]
	if !ok {
		return nil, false
	}
	for _, pr := range o.Peers {
		if pr.Name == nodeID {
			return pr, true
		}
	}
	return nil, false
}

// signer picks acting identity of the org from context, falling back to org admin.
func (o *Organization) signer(ctx context.Context) (protoutil.Signer, error) {
	if id, ok := identity.FromContext(ctx); ok && id.Org == o.Name {
		return id.Signer, nil
	}
	if o.Admin == nil {
		return nil, fmt.Errorf("no identity to sign queries of %s", o.Name)
	}
	return o.Admin, nil
}

// target returns the peer an untargeted single peer query goes to.
func (o *Organization) target(target *peer.Peer) (*peer.Peer, error) {
	if target != nil {
		return target, nil
	}
	if len(o.Peers) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPeers, o.Name)
	}
	return o.Peers[0], nil
}
