package qscc

import (
	"context"
	"fmt"

	"github.com/golang/protobuf/proto" //nolint:staticcheck
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"github.com/hyperledger/fabric/core/scc/qscc"
)

func (c *cli) GetTransactionByID(ctx context.Context, channelName string, txID string) (*pb.ProcessedTransaction, error) {
	payload, err := c.query(ctx, qscc.GetTransactionByID, []byte(channelName), []byte(txID))
	if err != nil {
		return nil, fmt.Errorf("query transaction %s: %w", txID, err)
	}
	if len(payload) == 0 {
		return nil, nil
	}

	tx := &pb.ProcessedTransaction{}
	if err = proto.Unmarshal(payload, tx); err != nil {
		return nil, fmt.Errorf("proto unmarshal: %w", err)
	}
	return tx, nil
}
