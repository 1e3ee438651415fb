package lifecycle

import (
	"context"
	"fmt"

	"github.com/atomyze-foundation/hlf-query-gateway/pkg/util"
	"github.com/golang/protobuf/proto" //nolint:staticcheck
	cb "github.com/hyperledger/fabric-protos-go/common"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"github.com/hyperledger/fabric/protoutil"
	"github.com/pkg/errors"
)

type cli struct {
	id  protoutil.Signer
	cli pb.EndorserClient
}

var _ Client = &cli{}

func NewClient(enCli pb.EndorserClient, id protoutil.Signer) Client {
	return &cli{cli: enCli, id: id}
}

// query calls _lifecycle function with marshaled args and returns response payload
func (c *cli) query(ctx context.Context, channelName, fcn string, args proto.Message) ([]byte, error) {
	prop, err := c.createProposal(channelName, fcn, args)
	if err != nil {
		return nil, fmt.Errorf("create proposal: %w", err)
	}

	signedProp, err := util.SignProposal(prop, c.id)
	if err != nil {
		return nil, fmt.Errorf("sign proposal: %w", err)
	}

	resp, err := c.cli.ProcessProposal(ctx, signedProp)
	if err != nil {
		return nil, fmt.Errorf("failed to endorse proposal: %w", err)
	}

	return util.ResponsePayload(resp)
}

func (c *cli) createProposal(channelName, fcn string, args proto.Message) (*pb.Proposal, error) {
	argsBytes, err := proto.Marshal(args)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal args")
	}

	cis := &pb.ChaincodeInvocationSpec{
		ChaincodeSpec: &pb.ChaincodeSpec{
			ChaincodeId: &pb.ChaincodeID{Name: CcName},
			Input:       &pb.ChaincodeInput{Args: [][]byte{[]byte(fcn), argsBytes}},
		},
	}

	signerSerialized, err := c.id.Serialize()
	if err != nil {
		return nil, errors.WithMessage(err, "failed to serialize identity")
	}

	proposal, _, err := protoutil.CreateProposalFromCIS(cb.HeaderType_ENDORSER_TRANSACTION, channelName, cis, signerSerialized)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create ChaincodeInvocationSpec proposal")
	}

	return proposal, nil
}
