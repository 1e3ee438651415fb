package network

import (
	"context"
	"errors"
	"testing"

	"github.com/atomyze-foundation/hlf-query-gateway/pkg/identity"
	"github.com/atomyze-foundation/hlf-query-gateway/pkg/peer"
	"github.com/atomyze-foundation/hlf-query-gateway/system/chaincode"
	"github.com/atomyze-foundation/hlf-query-gateway/test/mocks"
	"github.com/hyperledger/fabric-protos-go/common"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	lb "github.com/hyperledger/fabric-protos-go/peer/lifecycle"
	"github.com/hyperledger/fabric/protoutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const mspID = "Org1MSP"

func newOrg(endorsers map[string]pb.EndorserClient) (*Organization, *mocks.PeerPool) {
	pool := mocks.NewPeerPool(endorsers)
	return &Organization{
		Name:  "org1",
		MspID: mspID,
		Admin: mocks.NewNamedSigner(mspID, "admin"),
		Peers: []*peer.Peer{
			{Name: "peer0", Host: "peer0.org1.example.com", Port: 7051, MspID: mspID},
			{Name: "peer1", Host: "peer1.org1.example.com", Port: 7051, MspID: mspID},
		},
		Pool: pool,
	}, pool
}

func withUser(ctx context.Context) context.Context {
	return identity.NewContext(ctx, &identity.Identity{
		Signer:   mocks.NewNamedSigner(mspID, "user1"),
		Username: "user1",
		Org:      "org1",
		MspID:    mspID,
	})
}

func TestEndpointFor(t *testing.T) {
	org, _ := newOrg(nil)
	p := NewProvider(zap.NewNop(), org)

	target, ok := p.EndpointFor("org1", "peer1")
	require.True(t, ok)
	assert.Equal(t, "peer1.org1.example.com", target.Host)

	_, ok = p.EndpointFor("org1", "peer7")
	assert.False(t, ok)

	_, ok = p.EndpointFor("org2", "peer0")
	assert.False(t, ok)
}

func TestUnknownOrg(t *testing.T) {
	org, _ := newOrg(nil)
	p := NewProvider(zap.NewNop(), org)

	_, err := p.ChannelContext("mychannel", "org2")
	assert.ErrorIs(t, err, ErrUnknownOrg)

	_, err = p.ClientContext("org2")
	assert.ErrorIs(t, err, ErrUnknownOrg)
}

func TestQueryInfoDefaultPeerAndSigner(t *testing.T) {
	endCli := mocks.NewEndorserClientWithMessage(&common.BlockchainInfo{Height: 5})
	org, pool := newOrg(map[string]pb.EndorserClient{"peer0": endCli})
	ch, err := NewProvider(zap.NewNop(), org).ChannelContext("mychannel", "org1")
	require.NoError(t, err)

	info, err := ch.QueryInfo(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), info.Height)
	assert.Equal(t, []string{"peer0"}, pool.Requested())

	creator, err := endCli.LastCreator()
	require.NoError(t, err)
	assert.Equal(t, "admin", string(creator.IdBytes))

	_, err = ch.QueryInfo(withUser(context.Background()), nil)
	require.NoError(t, err)
	creator, err = endCli.LastCreator()
	require.NoError(t, err)
	assert.Equal(t, "user1", string(creator.IdBytes))
}

func TestQueryBlockTargeted(t *testing.T) {
	endCli := mocks.NewEndorserClientWithMessage(&common.Block{Header: &common.BlockHeader{Number: 3}})
	org, pool := newOrg(map[string]pb.EndorserClient{"peer1": endCli})
	p := NewProvider(zap.NewNop(), org)
	ch, err := p.ChannelContext("mychannel", "org1")
	require.NoError(t, err)

	target, ok := p.EndpointFor("org1", "peer1")
	require.True(t, ok)

	block, err := ch.QueryBlock(context.Background(), 3, target)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), block.Header.Number)
	assert.Equal(t, []string{"peer1"}, pool.Requested())

	_, err = ch.QueryBlockByHash(context.Background(), []byte{1, 2}, nil)
	assert.ErrorContains(t, err, "peer0")
}

func TestQueryTransactionEmpty(t *testing.T) {
	org, _ := newOrg(map[string]pb.EndorserClient{"peer0": mocks.NewEndorserClient(nil)})
	ch, err := NewProvider(zap.NewNop(), org).ChannelContext("mychannel", "org1")
	require.NoError(t, err)

	tx, err := ch.QueryTransaction(context.Background(), "txid", nil)
	require.NoError(t, err)
	assert.Nil(t, tx)
}

func TestQueryByChaincode(t *testing.T) {
	ctx := withUser(context.Background())

	tests := []struct {
		name      string
		endorsers map[string]pb.EndorserClient
		target    string
		payloads  []string
		err       bool
	}{
		{
			name: "all peers",
			endorsers: map[string]pb.EndorserClient{
				"peer0": mocks.NewEndorserClient([]byte("value")),
				"peer1": mocks.NewEndorserClient([]byte("value")),
			},
			payloads: []string{"value", "value"},
		},
		{
			name:      "one peer unreachable",
			endorsers: map[string]pb.EndorserClient{"peer1": mocks.NewEndorserClient([]byte("value"))},
			payloads:  []string{"value"},
		},
		{
			name: "one peer failed",
			endorsers: map[string]pb.EndorserClient{
				"peer0": mocks.NewFailedEndorserClient(errors.New("unavailable")),
				"peer1": mocks.NewEndorserClient([]byte("value")),
			},
			payloads: []string{"value"},
		},
		{
			name: "every peer failed",
			endorsers: map[string]pb.EndorserClient{
				"peer0": mocks.NewFailedEndorserClient(errors.New("unavailable")),
			},
			err: true,
		},
		{
			name: "targeted",
			endorsers: map[string]pb.EndorserClient{
				"peer0": mocks.NewEndorserClient([]byte("zero")),
				"peer1": mocks.NewEndorserClient([]byte("one")),
			},
			target:   "peer1",
			payloads: []string{"one"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			org, _ := newOrg(tt.endorsers)
			p := NewProvider(zap.NewNop(), org)
			ch, err := p.ChannelContext("mychannel", "org1")
			require.NoError(t, err)
			cli, err := p.ClientContext("org1")
			require.NoError(t, err)

			var target *peer.Peer
			if tt.target != "" {
				target, _ = p.EndpointFor("org1", tt.target)
			}

			txID, err := cli.NewTransactionID(ctx)
			require.NoError(t, err)

			payloads, err := ch.QueryByChaincode(ctx, &chaincode.Request{
				ChaincodeID: "basic",
				TxID:        txID.ID,
				Nonce:       txID.Nonce,
				Fcn:         "get",
				Args:        []string{"key"},
			}, target)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			res := make([]string, 0, len(payloads))
			for _, payload := range payloads {
				res = append(res, string(payload))
			}
			assert.Equal(t, tt.payloads, res)
		})
	}
}

func TestNewTransactionID(t *testing.T) {
	org, _ := newOrg(nil)
	cli, err := NewProvider(zap.NewNop(), org).ClientContext("org1")
	require.NoError(t, err)

	txID, err := cli.NewTransactionID(context.Background())
	require.NoError(t, err)

	creator, err := org.Admin.Serialize()
	require.NoError(t, err)
	assert.NoError(t, protoutil.CheckTxID(txID.ID, txID.Nonce, creator))
}

func TestQueryInstantiatedChaincodes(t *testing.T) {
	t.Run("lifecycle", func(t *testing.T) {
		endCli := mocks.NewEndorserClientWithMessage(&lb.QueryChaincodeDefinitionsResult{
			ChaincodeDefinitions: []*lb.QueryChaincodeDefinitionsResult_ChaincodeDefinition{
				{Name: "basic", Version: "1.0", Sequence: 1},
			},
		})
		org, _ := newOrg(map[string]pb.EndorserClient{"peer0": endCli})
		ch, err := NewProvider(zap.NewNop(), org).ChannelContext("mychannel", "org1")
		require.NoError(t, err)

		ccs, err := ch.QueryInstantiatedChaincodes(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, []ChaincodeInfo{{Name: "basic", Version: "1.0"}}, ccs)
	})

	t.Run("legacy", func(t *testing.T) {
		endCli := mocks.NewEndorserClientWithMessage(&pb.ChaincodeQueryResponse{Chaincodes: []*pb.ChaincodeInfo{
			{Name: "mycc", Version: "1.0", Path: "github.com/example_cc"},
		}})
		org, _ := newOrg(map[string]pb.EndorserClient{"peer0": endCli})
		org.LegacyLifecycle = true
		ch, err := NewProvider(zap.NewNop(), org).ChannelContext("mychannel", "org1")
		require.NoError(t, err)

		ccs, err := ch.QueryInstantiatedChaincodes(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, []ChaincodeInfo{{Name: "mycc", Version: "1.0", Path: "github.com/example_cc"}}, ccs)

		_, cis, err := endCli.LastInvocation()
		require.NoError(t, err)
		assert.Equal(t, "lscc", cis.ChaincodeSpec.ChaincodeId.Name)
	})
}

func TestQueryInstalledChaincodes(t *testing.T) {
	endCli := mocks.NewEndorserClientWithMessage(&lb.QueryInstalledChaincodesResult{
		InstalledChaincodes: []*lb.QueryInstalledChaincodesResult_InstalledChaincode{
			{PackageId: "basic_1.0:abc", Label: "basic_1.0"},
		},
	})
	org, _ := newOrg(map[string]pb.EndorserClient{"peer0": endCli})
	cli, err := NewProvider(zap.NewNop(), org).ClientContext("org1")
	require.NoError(t, err)

	ccs, err := cli.QueryInstalledChaincodes(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []ChaincodeInfo{{Name: "basic_1.0", Path: "basic_1.0:abc"}}, ccs)
}

func TestQueryChannels(t *testing.T) {
	endCli := mocks.NewEndorserClientWithMessage(&pb.ChannelQueryResponse{Channels: []*pb.ChannelInfo{
		{ChannelId: "b"}, {ChannelId: "a"},
	}})
	org, _ := newOrg(map[string]pb.EndorserClient{"peer0": endCli})
	cli, err := NewProvider(zap.NewNop(), org).ClientContext("org1")
	require.NoError(t, err)

	channels, err := cli.QueryChannels(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, channels)
}

func TestNoPeers(t *testing.T) {
	org, _ := newOrg(nil)
	org.Peers = nil
	cli, err := NewProvider(zap.NewNop(), org).ClientContext("org1")
	require.NoError(t, err)

	_, err = cli.QueryChannels(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoPeers)
}

func TestEmptyListings(t *testing.T) {
	t.Run("installed", func(t *testing.T) {
		org, _ := newOrg(map[string]pb.EndorserClient{
			"peer0": mocks.NewEndorserClientWithMessage(&lb.QueryInstalledChaincodesResult{}),
		})
		cli, err := NewProvider(zap.NewNop(), org).ClientContext("org1")
		require.NoError(t, err)

		ccs, err := cli.QueryInstalledChaincodes(context.Background(), nil)
		require.NoError(t, err)
		assert.NotNil(t, ccs)
		assert.Empty(t, ccs)
	})

	t.Run("committed", func(t *testing.T) {
		org, _ := newOrg(map[string]pb.EndorserClient{
			"peer0": mocks.NewEndorserClientWithMessage(&lb.QueryChaincodeDefinitionsResult{}),
		})
		ch, err := NewProvider(zap.NewNop(), org).ChannelContext("mychannel", "org1")
		require.NoError(t, err)

		ccs, err := ch.QueryInstantiatedChaincodes(context.Background(), nil)
		require.NoError(t, err)
		assert.NotNil(t, ccs)
		assert.Empty(t, ccs)
	})

	t.Run("legacy instantiated", func(t *testing.T) {
		org, _ := newOrg(map[string]pb.EndorserClient{
			"peer0": mocks.NewEndorserClientWithMessage(&pb.ChaincodeQueryResponse{}),
		})
		org.LegacyLifecycle = true
		ch, err := NewProvider(zap.NewNop(), org).ChannelContext("mychannel", "org1")
		require.NoError(t, err)

		ccs, err := ch.QueryInstantiatedChaincodes(context.Background(), nil)
		require.NoError(t, err)
		assert.NotNil(t, ccs)
		assert.Empty(t, ccs)
	})

	t.Run("channels", func(t *testing.T) {
		org, _ := newOrg(map[string]pb.EndorserClient{
			"peer0": mocks.NewEndorserClientWithMessage(&pb.ChannelQueryResponse{}),
		})
		cli, err := NewProvider(zap.NewNop(), org).ClientContext("org1")
		require.NoError(t, err)

		channels, err := cli.QueryChannels(context.Background(), nil)
		require.NoError(t, err)
		assert.NotNil(t, channels)
		assert.Empty(t, channels)
	})
}
