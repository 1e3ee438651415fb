package lifecycle

import (
	"context"
	"fmt"

	"github.com/golang/protobuf/proto" //nolint:staticcheck
	lb "github.com/hyperledger/fabric-protos-go/peer/lifecycle"
)

const queryCommittedFunc = "QueryChaincodeDefinitions"

func (c *cli) QueryCommitted(ctx context.Context, channelName string) ([]CommittedChaincode, error) {
	payload, err := c.query(ctx, channelName, queryCommittedFunc, &lb.QueryChaincodeDefinitionsArgs{})
	if err != nil {
		return nil, fmt.Errorf("query committed: %w", err)
	}
	var result lb.QueryChaincodeDefinitionsResult
	if err = proto.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("proto unmarshal: %w", err)
	}

	committed := make([]CommittedChaincode, 0, len(result.ChaincodeDefinitions))
	for _, cc := range result.ChaincodeDefinitions {
		committed = append(committed, CommittedChaincode{Name: cc.Name, Version: cc.Version, Sequence: cc.Sequence})
	}
	return committed, nil
}
