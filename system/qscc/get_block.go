package qscc

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hyperledger/fabric-protos-go/common"
	"github.com/hyperledger/fabric/core/scc/qscc"
	"github.com/hyperledger/fabric/protoutil"
)

func (c *cli) GetBlockByNumber(ctx context.Context, channelName string, number uint64) (*common.Block, error) {
	payload, err := c.query(ctx, qscc.GetBlockByNumber, []byte(channelName), []byte(strconv.FormatUint(number, 10)))
	if err != nil {
		return nil, fmt.Errorf("query block %d: %w", number, err)
	}
	return unmarshalBlock(payload)
}

func (c *cli) GetBlockByHash(ctx context.Context, channelName string, hash []byte) (*common.Block, error) {
	payload, err := c.query(ctx, qscc.GetBlockByHash, []byte(channelName), hash)
	if err != nil {
		return nil, fmt.Errorf("query block by hash: %w", err)
	}
	return unmarshalBlock(payload)
}

func unmarshalBlock(payload []byte) (*common.Block, error) {
	if len(payload) == 0 {
		return nil, nil
	}
	block, err := protoutil.UnmarshalBlock(payload)
	if err != nil {
		return nil, fmt.Errorf("unmarshal block: %w", err)
	}
	return block, nil
}
