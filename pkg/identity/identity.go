package identity

import (
	"context"
	"errors"

	"github.com/hyperledger/fabric/protoutil"
)

var (
	// ErrUnknownOrg is returned when organization is not configured.
	ErrUnknownOrg = errors.New("unknown organization")
	// ErrUnknownUser is returned when user is not registered in organization.
	ErrUnknownUser = errors.New("user is not registered")
)

// Identity is an authenticated acting user. It lives for a single query.
type Identity struct {
	protoutil.Signer

	Username string
	Org      string
	MspID    string
}

// Provider resolves a named organization user to a signing identity.
type Provider interface {
	Resolve(ctx context.Context, username, org string) (*Identity, error)
}

// NewContext adds acting identity to the Context.
func NewContext(parent context.Context, id *Identity) context.Context {
	return context.WithValue(parent, ctxIdentity, id)
}

// FromContext gets acting identity from the Context.
func FromContext(ctx context.Context) (*Identity, bool) {
	if val, ok := ctx.Value(ctxIdentity).(*Identity); ok && val != nil {
		return val, true
	}

	return nil, false
}

type ctxKey int

const (
	ctxIdentity ctxKey = iota
)
