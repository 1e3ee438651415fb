package lscc

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
	cli pb.EndorserClient
	id  protoutil.Signer
}

var _ Client = &cli{}

// NewClient creates lscc client sending proposals signed by id to the endorser.
func NewClient(enCli pb.EndorserClient, id protoutil.Signer) Client {
	return &cli{cli: enCli, id: id}
}

func (c *cli) GetInstalledChaincodes(ctx context.Context) (*pb.ChaincodeQueryResponse, error) {
	return c.query(ctx, "", installedChaincodesFcn)
}

func (c *cli) GetChaincodes(ctx context.Context, channelName string) (*pb.ChaincodeQueryResponse, error) {
	return c.query(ctx, channelName, chaincodesFcn)
}

func (c *cli) query(ctx context.Context, channelName, fcn string) (*pb.ChaincodeQueryResponse, error) {
	prop, err := c.createProposal(channelName, fcn)
	if err != nil {
		return nil, fmt.Errorf("create proposal: %w", err)
	}

	signedProp, err := util.SignProposal(prop, c.id)
	if err != nil {
		return nil, fmt.Errorf("sign proposal: %w", err)
	}

	resp, err := c.cli.ProcessProposal(ctx, signedProp)
	if err != nil {
		return nil, fmt.Errorf("process proposal: %w", err)
	}

	payload, err := util.ResponsePayload(resp)
	if err != nil {
		return nil, fmt.Errorf("lscc %s: %w", fcn, err)
	}
	var res pb.ChaincodeQueryResponse
	if err = proto.Unmarshal(payload, &res); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}
	return &res, nil
}

func (c *cli) createProposal(channelName, fcn string) (*pb.Proposal, error) {
	cis := &pb.ChaincodeInvocationSpec{
		ChaincodeSpec: &pb.ChaincodeSpec{
			Type:        pb.ChaincodeSpec_GOLANG,
			ChaincodeId: &pb.ChaincodeID{Name: chaincodeName},
			Input:       &pb.ChaincodeInput{Args: [][]byte{[]byte(fcn)}},
		},
	}

	creator, err := c.id.Serialize()
	if err != nil {
		return nil, errors.WithMessage(err, "failed to serialize identity")
	}

	prop, _, err := protoutil.CreateProposalFromCIS(cb.HeaderType_ENDORSER_TRANSACTION, channelName, cis, creator)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create ChaincodeInvocationSpec proposal")
	}
	return prop, nil
}
