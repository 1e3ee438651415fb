package chaincode

import (
	"context"
	"errors"
	"fmt"

	"github.com/atomyze-foundation/hlf-query-gateway/pkg/util"
	"github.com/hashicorp/go-multierror"
	cb "github.com/hyperledger/fabric-protos-go/common"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"github.com/hyperledger/fabric/protoutil"
)

type cli struct {
	id protoutil.Signer
}

var _ Client = &cli{}

// NewClient creates chaincode client signing proposals with id.
func NewClient(id protoutil.Signer) Client {
	return &cli{id: id}
}

func (c *cli) Query(ctx context.Context, channelName string, req *Request, endCli ...pb.EndorserClient) ([][]byte, error) {
	if len(endCli) == 0 {
		return nil, errors.New("no endorsers")
	}

	prop, err := c.createProposal(channelName, req)
	if err != nil {
		return nil, fmt.Errorf("create proposal: %w", err)
	}

	signedProp, err := util.SignProposal(prop, c.id)
	if err != nil {
		return nil, fmt.Errorf("sign proposal: %w", err)
	}

	responses, endorseErr := util.EndorsePeers(ctx, signedProp, endCli...)

	var result *multierror.Error
	if endorseErr != nil {
		result = multierror.Append(result, endorseErr)
	}
	payloads := make([][]byte, 0, len(responses))
	for i, resp := range responses {
		if resp == nil {
			continue
		}
		payload, err := util.ResponsePayload(resp)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("endorser %d: %w", i, err))
			continue
		}
		payloads = append(payloads, payload)
	}

	return payloads, result.ErrorOrNil()
}

func (c *cli) createProposal(channelName string, req *Request) (*pb.Proposal, error) {
	args := make([][]byte, 0, len(req.Args)+1)
	args = append(args, []byte(req.Fcn))
	for _, arg := range req.Args {
		args = append(args, []byte(arg))
	}

	cis := &pb.ChaincodeInvocationSpec{
		ChaincodeSpec: &pb.ChaincodeSpec{
			Type:        pb.ChaincodeSpec_GOLANG,
			ChaincodeId: &pb.ChaincodeID{Name: req.ChaincodeID},
			Input:       &pb.ChaincodeInput{Args: args},
		},
	}

	creator, err := c.id.Serialize()
	if err != nil {
		return nil, fmt.Errorf("serialize creator: %w", err)
	}

	if err = protoutil.CheckTxID(req.TxID, req.Nonce, creator); err != nil {
		return nil, fmt.Errorf("check tx id: %w", err)
	}

	prop, _, err := protoutil.CreateChaincodeProposalWithTxIDNonceAndTransient(req.TxID, cb.HeaderType_ENDORSER_TRANSACTION, channelName, cis, req.Nonce, creator, nil)
	if err != nil {
		return nil, fmt.Errorf("create chaincode proposal: %w", err)
	}
	return prop, nil
}
