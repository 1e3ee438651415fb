package query

import (
	"context"
	"errors"
	"sync"

	"github.com/atomyze-foundation/hlf-query-gateway/pkg/identity"
	"github.com/atomyze-foundation/hlf-query-gateway/pkg/network"
	"github.com/atomyze-foundation/hlf-query-gateway/pkg/peer"
	"github.com/atomyze-foundation/hlf-query-gateway/system/chaincode"
	"github.com/atomyze-foundation/hlf-query-gateway/test/mocks"
	"github.com/hyperledger/fabric-protos-go/common"
	pb "github.com/hyperledger/fabric-protos-go/peer"
)

var errUnavailable = errors.New("peer unavailable")

type fakeIdentities struct {
	err error
}

func (f *fakeIdentities) Resolve(_ context.Context, username, org string) (*identity.Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &identity.Identity{
		Signer:   mocks.NewSigner("Org1MSP"),
		Username: username,
		Org:      org,
		MspID:    "Org1MSP",
	}, nil
}

// fakeNetwork serves as provider, channel and client at once.
type fakeNetwork struct {
	endpoints map[string]*peer.Peer

	err    error
	panics bool

	payloads   [][]byte
	block      *common.Block
	tx         *pb.ProcessedTransaction
	info       *common.BlockchainInfo
	installed  []network.ChaincodeInfo
	chaincodes []network.ChaincodeInfo
	channels   []string

	mx       sync.Mutex
	contexts int
	calls    []string
	target   *peer.Peer
	hash     []byte
	number   uint64
	txID     string
	req      *chaincode.Request
	acting   *identity.Identity
}

var (
	_ network.Provider = &fakeNetwork{}
	_ network.Channel  = &fakeNetwork{}
	_ network.Client   = &fakeNetwork{}
)

func (f *fakeNetwork) ChannelContext(_, _ string) (network.Channel, error) {
	f.mx.Lock()
	defer f.mx.Unlock()
	f.contexts++
	return f, nil
}

func (f *fakeNetwork) ClientContext(_ string) (network.Client, error) {
	f.mx.Lock()
	defer f.mx.Unlock()
	f.contexts++
	return f, nil
}

func (f *fakeNetwork) EndpointFor(org, nodeID string) (*peer.Peer, bool) {
	p, ok := f.endpoints[org+"/"+nodeID]
	return p, ok
}

func (f *fakeNetwork) record(ctx context.Context, call string, target *peer.Peer) error {
	f.mx.Lock()
	defer f.mx.Unlock()
	f.calls = append(f.calls, call)
	f.target = target
	f.acting, _ = identity.FromContext(ctx)
	if f.panics {
		panic("broken peer response")
	}
	return f.err
}

func (f *fakeNetwork) QueryByChaincode(ctx context.Context, req *chaincode.Request, target *peer.Peer) ([][]byte, error) {
	f.req = req
	if err := f.record(ctx, "chaincode", target); err != nil {
		return nil, err
	}
	return f.payloads, nil
}

func (f *fakeNetwork) QueryBlock(ctx context.Context, number uint64, target *peer.Peer) (*common.Block, error) {
	f.number = number
	if err := f.record(ctx, "block", target); err != nil {
		return nil, err
	}
	return f.block, nil
}

func (f *fakeNetwork) QueryBlockByHash(ctx context.Context, hash []byte, target *peer.Peer) (*common.Block, error) {
	f.hash = hash
	if err := f.record(ctx, "block_by_hash", target); err != nil {
		return nil, err
	}
	return f.block, nil
}

func (f *fakeNetwork) QueryTransaction(ctx context.Context, txID string, target *peer.Peer) (*pb.ProcessedTransaction, error) {
	f.txID = txID
	if err := f.record(ctx, "transaction", target); err != nil {
		return nil, err
	}
	return f.tx, nil
}

func (f *fakeNetwork) QueryInfo(ctx context.Context, target *peer.Peer) (*common.BlockchainInfo, error) {
	if err := f.record(ctx, "info", target); err != nil {
		return nil, err
	}
	return f.info, nil
}

func (f *fakeNetwork) QueryInstantiatedChaincodes(ctx context.Context, target *peer.Peer) ([]network.ChaincodeInfo, error) {
	if err := f.record(ctx, "instantiated", target); err != nil {
		return nil, err
	}
	return f.chaincodes, nil
}

func (f *fakeNetwork) NewTransactionID(_ context.Context) (*network.TxID, error) {
	return &network.TxID{ID: "tx1", Nonce: []byte("nonce")}, nil
}

func (f *fakeNetwork) QueryInstalledChaincodes(ctx context.Context, target *peer.Peer) ([]network.ChaincodeInfo, error) {
	if err := f.record(ctx, "installed", target); err != nil {
		return nil, err
	}
	return f.installed, nil
}

func (f *fakeNetwork) QueryChannels(ctx context.Context, target *peer.Peer) ([]string, error) {
	if err := f.record(ctx, "channels", target); err != nil {
		return nil, err
	}
	return f.channels, nil
}

func (f *fakeNetwork) Calls() []string {
	f.mx.Lock()
	defer f.mx.Unlock()
	return append([]string(nil), f.calls...)
}
