package chaincode

import (
	"context"

	pb "github.com/hyperledger/fabric-protos-go/peer"
)

// Request is a read-only invocation of a user chaincode. TxID must be
// computed from Nonce and the creator of the signing identity.
type Request struct {
	ChaincodeID string
	TxID        string
	Nonce       []byte
	Fcn         string
	Args        []string
}

// Client evaluates user chaincode functions without submitting transactions.
type Client interface {
	// Query sends one proposal to every endorser and returns payloads of
	// successful responses in endorser order. Failed endorsers are reported
	// through the returned error, which may be set together with payloads.
	Query(ctx context.Context, channelName string, req *Request, endCli ...pb.EndorserClient) ([][]byte, error)
}
