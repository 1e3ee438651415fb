package cscc

import (
	"context"
)

const chaincodeName = "cscc"

// Client queries peer channel membership through the cscc system chaincode.
type Client interface {
	// GetChannels returns sorted identifiers of channels the peer has joined.
	// A peer without channels gives an empty, non-nil slice.
	GetChannels(ctx context.Context) ([]string, error)
}
