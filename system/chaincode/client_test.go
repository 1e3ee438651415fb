package chaincode

import (
	"context"
	"errors"
	"testing"

	"github.com/atomyze-foundation/hlf-query-gateway/pkg/util"
	"github.com/atomyze-foundation/hlf-query-gateway/test/mocks"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"github.com/hyperledger/fabric/protoutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(t *testing.T, id protoutil.Signer) *Request {
	txID, nonce, err := util.NewTxID(id)
	require.NoError(t, err)
	return &Request{ChaincodeID: "mycc", TxID: txID, Nonce: nonce, Fcn: "query", Args: []string{"a"}}
}

func TestQueryAllEndorsers(t *testing.T) {
	id := mocks.NewSigner("Org1MSP")
	first := mocks.NewEndorserClient([]byte("100"))
	second := mocks.NewEndorserClient([]byte("200"))

	req := newRequest(t, id)
	payloads, err := NewClient(id).Query(context.Background(), "mychannel", req, first, second)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("100"), []byte("200")}, payloads)

	chHdr, cis, err := first.LastInvocation()
	require.NoError(t, err)
	assert.Equal(t, "mychannel", chHdr.ChannelId)
	assert.Equal(t, req.TxID, chHdr.TxId)
	assert.Equal(t, "mycc", cis.ChaincodeSpec.ChaincodeId.Name)
	assert.Equal(t, [][]byte{[]byte("query"), []byte("a")}, cis.ChaincodeSpec.Input.Args)
	assert.Equal(t, 1, second.Calls())
}

func TestQueryPartialFailure(t *testing.T) {
	id := mocks.NewSigner("Org1MSP")
	payloads, err := NewClient(id).Query(context.Background(), "mychannel", newRequest(t, id),
		mocks.NewFailedEndorserClient(errors.New("unavailable")),
		mocks.NewEndorserClient([]byte("200")),
	)
	assert.Error(t, err)
	assert.Equal(t, [][]byte{[]byte("200")}, payloads)
}

func TestQueryAllFailed(t *testing.T) {
	id := mocks.NewSigner("Org1MSP")
	payloads, err := NewClient(id).Query(context.Background(), "mychannel", newRequest(t, id),
		mocks.NewFailedEndorserClient(errors.New("unavailable")),
		mocks.NewEndorserClientWithStatus(500, "chaincode error", nil),
	)
	assert.ErrorContains(t, err, "chaincode error")
	assert.Empty(t, payloads)
}

func TestQueryBadTxID(t *testing.T) {
	id := mocks.NewSigner("Org1MSP")
	req := newRequest(t, id)
	req.TxID = "forged"

	endCli := mocks.NewEndorserClient(nil)
	_, err := NewClient(id).Query(context.Background(), "mychannel", req, endCli)
	assert.Error(t, err)
	assert.Equal(t, 0, endCli.Calls())
}

func TestQueryNoEndorsers(t *testing.T) {
	id := mocks.NewSigner("Org1MSP")
	_, err := NewClient(id).Query(context.Background(), "mychannel", newRequest(t, id), []pb.EndorserClient{}...)
	assert.Error(t, err)
}
