package lifecycle

import (
	"context"
)

// InstalledChaincode is a chaincode package installed on a peer.
type InstalledChaincode struct {
	PackageID string
	Label     string
}

// CommittedChaincode is a chaincode definition committed on a channel.
type CommittedChaincode struct {
	Name     string
	Version  string
	Sequence int64
}

const CcName = "_lifecycle"

// Client queries the _lifecycle system chaincode. An empty payload gives an
// empty, non-nil slice.
type Client interface {
	QueryInstalled(ctx context.Context) ([]InstalledChaincode, error)
	QueryCommitted(ctx context.Context, channelName string) ([]CommittedChaincode, error)
}
