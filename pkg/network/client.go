package network

import (
	"context"
	"fmt"

	"github.com/atomyze-foundation/hlf-query-gateway/pkg/peer"
	"github.com/atomyze-foundation/hlf-query-gateway/pkg/util"
	"github.com/atomyze-foundation/hlf-query-gateway/system/cscc"
	"github.com/atomyze-foundation/hlf-query-gateway/system/lifecycle"
	"github.com/atomyze-foundation/hlf-query-gateway/system/lscc"
	"go.uber.org/zap"
)

type client struct {
	org    *Organization
	logger *zap.Logger
}

var _ Client = &client{}

func (c *client) NewTransactionID(ctx context.Context) (*TxID, error) {
	id, err := c.org.signer(ctx)
	if err != nil {
		return nil, err
	}
	txID, nonce, err := util.NewTxID(id)
	if err != nil {
		return nil, fmt.Errorf("new tx id: %w", err)
	}
	return &TxID{ID: txID, Nonce: nonce}, nil
}

func (c *client) QueryInstalledChaincodes(ctx context.Context, target *peer.Peer) ([]ChaincodeInfo, error) {
	endCli, id, err := c.org.endorser(ctx, target)
	if err != nil {
		return nil, err
	}

	if c.org.LegacyLifecycle {
		resp, err := lscc.NewClient(endCli, id).GetInstalledChaincodes(ctx)
		if err != nil {
			return nil, err
		}
		return fromLscc(resp), nil
	}

	installed, err := lifecycle.NewClient(endCli, id).QueryInstalled(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]ChaincodeInfo, 0, len(installed))
	for _, cc := range installed {
		res = append(res, ChaincodeInfo{Name: cc.Label, Path: cc.PackageID})
	}
	return res, nil
}

func (c *client) QueryChannels(ctx context.Context, target *peer.Peer) ([]string, error) {
	endCli, id, err := c.org.endorser(ctx, target)
	if err != nil {
		return nil, err
	}
	return cscc.NewClient(endCli, id).GetChannels(ctx)
}
