package qscc

import (
	"context"
	"fmt"

	"github.com/golang/protobuf/proto" //nolint:staticcheck
	"github.com/hyperledger/fabric-protos-go/common"
	"github.com/hyperledger/fabric/core/scc/qscc"
)

func (c *cli) GetChainInfo(ctx context.Context, channelName string) (*common.BlockchainInfo, error) {
	payload, err := c.query(ctx, qscc.GetChainInfo, []byte(channelName))
	if err != nil {
		return nil, fmt.Errorf("query chain info: %w", err)
	}
	if len(payload) == 0 {
		return nil, nil
	}

	blockChainInfo := &common.BlockchainInfo{}
	if err = proto.Unmarshal(payload, blockChainInfo); err != nil {
		return nil, fmt.Errorf("proto unmarshal: %w", err)
	}

	return blockChainInfo, nil
}
