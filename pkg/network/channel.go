package network

import (
	"context"
	"fmt"

	"github.com/atomyze-foundation/hlf-query-gateway/pkg/peer"
	"github.com/atomyze-foundation/hlf-query-gateway/system/chaincode"
	"github.com/atomyze-foundation/hlf-query-gateway/system/lifecycle"
	"github.com/atomyze-foundation/hlf-query-gateway/system/lscc"
	"github.com/atomyze-foundation/hlf-query-gateway/system/qscc"
	"github.com/hashicorp/go-multierror"
	"github.com/hyperledger/fabric-protos-go/common"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"github.com/hyperledger/fabric/protoutil"
	"go.uber.org/zap"
)

type channel struct {
	name   string
	org    *Organization
	logger *zap.Logger
}

var _ Channel = &channel{}

func (c *channel) QueryByChaincode(ctx context.Context, req *chaincode.Request, target *peer.Peer) ([][]byte, error) {
	id, err := c.org.signer(ctx)
	if err != nil {
		return nil, err
	}

	peers := c.org.Peers
	if target != nil {
		peers = []*peer.Peer{target}
	}
	if len(peers) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPeers, c.org.Name)
	}

	var connErr *multierror.Error
	endCli := make([]pb.EndorserClient, 0, len(peers))
	for _, p := range peers {
		cli, err := c.org.Pool.GetEndorser(ctx, p)
		if err != nil {
			connErr = multierror.Append(connErr, fmt.Errorf("get endorser %s: %w", p.Name, err))
			continue
		}
		endCli = append(endCli, cli)
	}
	if len(endCli) == 0 {
		return nil, connErr.ErrorOrNil()
	}

	payloads, err := chaincode.NewClient(id).Query(ctx, c.name, req, endCli...)
	if err != nil {
		connErr = multierror.Append(connErr, err)
	}
	if len(payloads) == 0 {
		return nil, connErr.ErrorOrNil()
	}
	if connErr != nil {
		c.logger.Warn("chaincode query failed on some peers",
			zap.String("chaincode", req.ChaincodeID), zap.Error(connErr))
	}
	return payloads, nil
}

func (c *channel) QueryBlock(ctx context.Context, number uint64, target *peer.Peer) (*common.Block, error) {
	endCli, id, err := c.org.endorser(ctx, target)
	if err != nil {
		return nil, err
	}
	return qscc.NewClient(endCli, id).GetBlockByNumber(ctx, c.name, number)
}

func (c *channel) QueryBlockByHash(ctx context.Context, hash []byte, target *peer.Peer) (*common.Block, error) {
	endCli, id, err := c.org.endorser(ctx, target)
	if err != nil {
		return nil, err
	}
	return qscc.NewClient(endCli, id).GetBlockByHash(ctx, c.name, hash)
}

func (c *channel) QueryTransaction(ctx context.Context, txID string, target *peer.Peer) (*pb.ProcessedTransaction, error) {
	endCli, id, err := c.org.endorser(ctx, target)
	if err != nil {
		return nil, err
	}
	return qscc.NewClient(endCli, id).GetTransactionByID(ctx, c.name, txID)
}

func (c *channel) QueryInfo(ctx context.Context, target *peer.Peer) (*common.BlockchainInfo, error) {
	endCli, id, err := c.org.endorser(ctx, target)
	if err != nil {
		return nil, err
	}
	return qscc.NewClient(endCli, id).GetChainInfo(ctx, c.name)
}

func (c *channel) QueryInstantiatedChaincodes(ctx context.Context, target *peer.Peer) ([]ChaincodeInfo, error) {
	endCli, id, err := c.org.endorser(ctx, target)
	if err != nil {
		return nil, err
	}

	if c.org.LegacyLifecycle {
		resp, err := lscc.NewClient(endCli, id).GetChaincodes(ctx, c.name)
		if err != nil {
			return nil, err
		}
		return fromLscc(resp), nil
	}

	committed, err := lifecycle.NewClient(endCli, id).QueryCommitted(ctx, c.name)
	if err != nil {
		return nil, err
	}
	res := make([]ChaincodeInfo, 0, len(committed))
	for _, cc := range committed {
		res = append(res, ChaincodeInfo{Name: cc.Name, Version: cc.Version})
	}
	return res, nil
}

func (o *Organization) endorser(ctx context.Context, target *peer.Peer) (pb.EndorserClient, protoutil.Signer, error) {
	id, err := o.signer(ctx)
	if err != nil {
		return nil, nil, err
	}
	p, err := o.target(target)
	if err != nil {
		return nil, nil, err
	}
	endCli, err := o.Pool.GetEndorser(ctx, p)
	if err != nil {
		return nil, nil, fmt.Errorf("get endorser %s: %w", p.Name, err)
	}
	return endCli, id, nil
}

func fromLscc(resp *pb.ChaincodeQueryResponse) []ChaincodeInfo {
	if resp == nil {
		return nil
	}
	res := make([]ChaincodeInfo, 0, len(resp.Chaincodes))
	for _, cc := range resp.Chaincodes {
		res = append(res, ChaincodeInfo{Name: cc.Name, Version: cc.Version, Path: cc.Path})
	}
	return res
}
