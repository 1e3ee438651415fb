package network

import (
	"context"

	"github.com/atomyze-foundation/hlf-query-gateway/pkg/peer"
	"github.com/atomyze-foundation/hlf-query-gateway/system/chaincode"
	"github.com/hyperledger/fabric-protos-go/common"
	pb "github.com/hyperledger/fabric-protos-go/peer"
)

// Every query method takes an optional target peer. A nil target leaves
// peer selection to the implementation. A nil result with nil error means
// the peer answered successfully without data.

// Provider hands out per organization handles to the network.
type Provider interface {
	// ChannelContext returns handle for channel queries on behalf of org.
	ChannelContext(channelID, org string) (Channel, error)
	// ClientContext returns handle for peer level queries on behalf of org.
	ClientContext(org string) (Client, error)
	// EndpointFor returns peer registered as nodeID in org.
	EndpointFor(org, nodeID string) (*peer.Peer, bool)
}

// Channel queries the ledger of one channel.
type Channel interface {
	QueryByChaincode(ctx context.Context, req *chaincode.Request, target *peer.Peer) ([][]byte, error)
	QueryBlock(ctx context.Context, number uint64, target *peer.Peer) (*common.Block, error)
	QueryBlockByHash(ctx context.Context, hash []byte, target *peer.Peer) (*common.Block, error)
	QueryTransaction(ctx context.Context, txID string, target *peer.Peer) (*pb.ProcessedTransaction, error)
	QueryInfo(ctx context.Context, target *peer.Peer) (*common.BlockchainInfo, error)
	QueryInstantiatedChaincodes(ctx context.Context, target *peer.Peer) ([]ChaincodeInfo, error)
}

// Client queries peers of the organization outside of a channel.
type Client interface {
	// NewTransactionID mints transaction id for the identity signing the next query.
	NewTransactionID(ctx context.Context) (*TxID, error)
	QueryInstalledChaincodes(ctx context.Context, target *peer.Peer) ([]ChaincodeInfo, error)
	QueryChannels(ctx context.Context, target *peer.Peer) ([]string, error)
}

// TxID is a transaction id together with the nonce it was computed from.
type TxID struct {
	ID    string
	Nonce []byte
}

// ChaincodeInfo describes installed or instantiated chaincode.
type ChaincodeInfo struct {
	Name    string
	Version string
	Path    string
}
