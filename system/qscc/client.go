package qscc

import (
	"context"
	"fmt"

	"github.com/atomyze-foundation/hlf-query-gateway/pkg/util"
	"github.com/hyperledger/fabric-protos-go/common"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"github.com/hyperledger/fabric/protoutil"
)

type cli struct {
	cli pb.EndorserClient
	id  protoutil.Signer
}

var _ Client = &cli{}

// NewClient creates qscc client sending proposals signed by id to the endorser.
func NewClient(enCli pb.EndorserClient, id protoutil.Signer) Client {
	return &cli{cli: enCli, id: id}
}

// query invokes qscc function with args and returns raw response payload
func (c *cli) query(ctx context.Context, fcn string, args ...[]byte) ([]byte, error) {
	// create chaincode endorsement proposal
	prop, err := c.createProposal(fcn, args...)
	if err != nil {
		return nil, fmt.Errorf("get proposal: %w", err)
	}

	// create signed proposal using identity
	signedProp, err := util.SignProposal(prop, c.id)
	if err != nil {
		return nil, fmt.Errorf("create singed proposal: %w", err)
	}

	// process signed proposal on peer
	resp, err := c.cli.ProcessProposal(ctx, signedProp)
	if err != nil {
		return nil, fmt.Errorf("process proposal: %w", err)
	}

	return util.ResponsePayload(resp)
}

func (c *cli) createProposal(fcn string, args ...[]byte) (*pb.Proposal, error) {
	invocation := &pb.ChaincodeInvocationSpec{
		ChaincodeSpec: &pb.ChaincodeSpec{
			Type:        pb.ChaincodeSpec_Type(pb.ChaincodeSpec_Type_value["GOLANG"]),
			ChaincodeId: &pb.ChaincodeID{Name: chaincodeName},
			Input:       &pb.ChaincodeInput{Args: append([][]byte{[]byte(fcn)}, args...)},
		},
	}

	cr, err := c.id.Serialize()
	if err != nil {
		return nil, fmt.Errorf("signer serialize: %w", err)
	}

	prop, _, err := protoutil.CreateProposalFromCIS(common.HeaderType_ENDORSER_TRANSACTION, "", invocation, cr)
	if err != nil {
		return nil, fmt.Errorf("create proposal: %w", err)
	}
	return prop, nil
}
