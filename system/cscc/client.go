package cscc

import (
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"github.com/hyperledger/fabric/protoutil"
)

type cli struct {
	cli pb.EndorserClient
	id  protoutil.Signer
}

var _ Client = &cli{}

// NewClient creates and returns a new cscc client sending proposals signed by id to the endorser.
func NewClient(enCli pb.EndorserClient, id protoutil.Signer) Client {
	return &cli{cli: enCli, id: id}
}
