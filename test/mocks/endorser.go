package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/golang/protobuf/proto" //nolint:staticcheck
	"github.com/hyperledger/fabric-protos-go/common"
	"github.com/hyperledger/fabric-protos-go/msp"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"github.com/hyperledger/fabric/protoutil"
	"google.golang.org/grpc"
)

// EndorserClient is a canned peer endorser. It answers every proposal with
// the configured response or error and remembers received proposals.
type EndorserClient struct {
	resp *pb.ProposalResponse
	err  error

	mx        sync.Mutex
	proposals []*pb.SignedProposal
}

// ProcessProposal records the proposal and returns the canned answer.
func (e *EndorserClient) ProcessProposal(_ context.Context, in *pb.SignedProposal, _ ...grpc.CallOption) (*pb.ProposalResponse, error) {
	e.mx.Lock()
	e.proposals = append(e.proposals, in)
	e.mx.Unlock()
	if e.err != nil {
		return nil, e.err
	}
	return e.resp, nil
}

// Calls returns number of processed proposals.
func (e *EndorserClient) Calls() int {
	e.mx.Lock()
	defer e.mx.Unlock()
	return len(e.proposals)
}

// LastInvocation decodes the last received proposal into its channel header and chaincode invocation.
func (e *EndorserClient) LastInvocation() (*common.ChannelHeader, *pb.ChaincodeInvocationSpec, error) {
	e.mx.Lock()
	defer e.mx.Unlock()
	if len(e.proposals) == 0 {
		return nil, nil, errors.New("no proposals received")
	}
	prop, err := protoutil.UnmarshalProposal(e.proposals[len(e.proposals)-1].ProposalBytes)
	if err != nil {
		return nil, nil, err
	}
	hdr, err := protoutil.UnmarshalHeader(prop.Header)
	if err != nil {
		return nil, nil, err
	}
	chHdr, err := protoutil.UnmarshalChannelHeader(hdr.ChannelHeader)
	if err != nil {
		return nil, nil, err
	}
	cpp, err := protoutil.UnmarshalChaincodeProposalPayload(prop.Payload)
	if err != nil {
		return nil, nil, err
	}
	cis, err := protoutil.UnmarshalChaincodeInvocationSpec(cpp.Input)
	if err != nil {
		return nil, nil, err
	}
	return chHdr, cis, nil
}

// LastCreator decodes identity which signed the last received proposal.
func (e *EndorserClient) LastCreator() (*msp.SerializedIdentity, error) {
	e.mx.Lock()
	defer e.mx.Unlock()
	if len(e.proposals) == 0 {
		return nil, errors.New("no proposals received")
	}
	prop, err := protoutil.UnmarshalProposal(e.proposals[len(e.proposals)-1].ProposalBytes)
	if err != nil {
		return nil, err
	}
	hdr, err := protoutil.UnmarshalHeader(prop.Header)
	if err != nil {
		return nil, err
	}
	sigHdr, err := protoutil.UnmarshalSignatureHeader(hdr.SignatureHeader)
	if err != nil {
		return nil, err
	}
	id := &msp.SerializedIdentity{}
	if err = proto.Unmarshal(sigHdr.Creator, id); err != nil {
		return nil, err
	}
	return id, nil
}

// NewEndorserClient returns endorser answering with success status and payload.
func NewEndorserClient(payload []byte) *EndorserClient {
	return NewEndorserClientWithStatus(int32(common.Status_SUCCESS), "", payload)
}

// NewEndorserClientWithMessage returns endorser answering with success status and marshaled message as payload.
func NewEndorserClientWithMessage(msg proto.Message) *EndorserClient {
	payload, err := proto.Marshal(msg)
	if err != nil {
		panic(err)
	}
	return NewEndorserClient(payload)
}

// NewEndorserClientWithStatus returns endorser answering with provided response status.
func NewEndorserClientWithStatus(status int32, message string, payload []byte) *EndorserClient {
	return &EndorserClient{resp: &pb.ProposalResponse{
		Response: &pb.Response{Status: status, Message: message, Payload: payload},
	}}
}

// NewFailedEndorserClient returns endorser failing every call with err.
func NewFailedEndorserClient(err error) *EndorserClient {
	return &EndorserClient{err: err}
}
