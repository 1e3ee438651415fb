package lifecycle

import (
	"context"
	"errors"
	"testing"

	"github.com/atomyze-foundation/hlf-query-gateway/test/mocks"
	lb "github.com/hyperledger/fabric-protos-go/peer/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryInstalled(t *testing.T) {
	endCli := mocks.NewEndorserClientWithMessage(&lb.QueryInstalledChaincodesResult{
		InstalledChaincodes: []*lb.QueryInstalledChaincodesResult_InstalledChaincode{
			{PackageId: "basic_1.0:abc", Label: "basic_1.0"},
		},
	})

	ccs, err := NewClient(endCli, mocks.NewSigner("Org1MSP")).QueryInstalled(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []InstalledChaincode{{PackageID: "basic_1.0:abc", Label: "basic_1.0"}}, ccs)

	_, cis, err := endCli.LastInvocation()
	require.NoError(t, err)
	assert.Equal(t, CcName, cis.ChaincodeSpec.ChaincodeId.Name)
	assert.Equal(t, queryInstalledFunc, string(cis.ChaincodeSpec.Input.Args[0]))
}

func TestQueryCommitted(t *testing.T) {
	endCli := mocks.NewEndorserClientWithMessage(&lb.QueryChaincodeDefinitionsResult{
		ChaincodeDefinitions: []*lb.QueryChaincodeDefinitionsResult_ChaincodeDefinition{
			{Name: "basic", Version: "1.0", Sequence: 2},
		},
	})

	ccs, err := NewClient(endCli, mocks.NewSigner("Org1MSP")).QueryCommitted(context.Background(), "mychannel")
	require.NoError(t, err)
	assert.Equal(t, []CommittedChaincode{{Name: "basic", Version: "1.0", Sequence: 2}}, ccs)

	chHdr, _, err := endCli.LastInvocation()
	require.NoError(t, err)
	assert.Equal(t, "mychannel", chHdr.ChannelId)
}

func TestQueryEmptyAndFailed(t *testing.T) {
	ccs, err := NewClient(mocks.NewEndorserClientWithMessage(&lb.QueryInstalledChaincodesResult{}), mocks.NewSigner("Org1MSP")).QueryInstalled(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, ccs)
	assert.Empty(t, ccs)

	committed, err := NewClient(mocks.NewEndorserClient(nil), mocks.NewSigner("Org1MSP")).QueryCommitted(context.Background(), "mychannel")
	require.NoError(t, err)
	assert.Equal(t, []CommittedChaincode{}, committed)

	_, err = NewClient(mocks.NewFailedEndorserClient(errors.New("unavailable")), mocks.NewSigner("Org1MSP")).QueryCommitted(context.Background(), "mychannel")
	assert.Error(t, err)
}
