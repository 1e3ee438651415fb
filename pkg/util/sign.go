package util

import (
	"github.com/golang/protobuf/proto" //nolint:staticcheck
	cb "github.com/hyperledger/fabric-protos-go/common"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"github.com/hyperledger/fabric/protoutil"
	"github.com/pkg/errors"
)

// SignProposal marshals proposal and signs it with the signer.
func SignProposal(proposal *pb.Proposal, signer protoutil.Signer) (*pb.SignedProposal, error) {
	// check for nil argument
	if proposal == nil {
		return nil, errors.New("proposal cannot be nil")
	}

	proposalBytes, err := proto.Marshal(proposal)
	if err != nil {
		return nil, errors.Wrap(err, "error marshaling proposal")
	}

	signature, err := signer.Sign(proposalBytes)
	if err != nil {
		return nil, errors.Wrap(err, "error signing proposal")
	}

	return &pb.SignedProposal{
		ProposalBytes: proposalBytes,
		Signature:     signature,
	}, nil
}

// ResponsePayload checks the endorser response status and returns its payload.
func ResponsePayload(resp *pb.ProposalResponse) ([]byte, error) {
	if resp == nil {
		return nil, errors.New("received nil proposal response")
	}

	if resp.Response == nil {
		return nil, errors.New("received proposal response with nil response")
	}

	if resp.Response.Status != int32(cb.Status_SUCCESS) {
		return nil, errors.Errorf("query failed with status: %d - %s", resp.Response.Status, resp.Response.Message)
	}

	return resp.Response.Payload, nil
}
