package lscc

import (
	"context"

	pb "github.com/hyperledger/fabric-protos-go/peer"
)

const (
	chaincodeName          = "lscc"
	installedChaincodesFcn = "getinstalledchaincodes"
	chaincodesFcn          = "getchaincodes"
)

// Client lists chaincodes known to the legacy lifecycle system chaincode.
// An empty payload decodes into a response without chaincodes.
type Client interface {
	// GetInstalledChaincodes lists chaincodes installed on the peer.
	GetInstalledChaincodes(ctx context.Context) (*pb.ChaincodeQueryResponse, error)
	// GetChaincodes lists chaincodes instantiated on the channel.
	GetChaincodes(ctx context.Context, channelName string) (*pb.ChaincodeQueryResponse, error)
}
