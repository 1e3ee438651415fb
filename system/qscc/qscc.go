package qscc

import (
	"context"

	"github.com/hyperledger/fabric-protos-go/common"
	pb "github.com/hyperledger/fabric-protos-go/peer"
)

const chaincodeName = "qscc"

// Client queries the ledger of a joined channel through the qscc system chaincode.
// A nil result with nil error means the peer answered with an empty payload.
type Client interface {
	GetChainInfo(ctx context.Context, channelName string) (*common.BlockchainInfo, error)
	GetBlockByNumber(ctx context.Context, channelName string, number uint64) (*common.Block, error)
	GetBlockByHash(ctx context.Context, channelName string, hash []byte) (*common.Block, error)
	GetTransactionByID(ctx context.Context, channelName string, txID string) (*pb.ProcessedTransaction, error)
}
