package identity

import (
	"context"
	"fmt"

	"github.com/hyperledger/fabric/protoutil"
	"go.uber.org/zap"
)

type user struct {
	mspID  string
	signer protoutil.Signer
}

// Registry is a static Provider holding signers loaded at startup.
// It is read-only after construction and safe for concurrent use.
type Registry struct {
	users map[string]map[string]user
	l     *zap.Logger
}

var _ Provider = &Registry{}

// NewRegistry creates an empty registry.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{users: make(map[string]map[string]user), l: logger.Named("identity")}
}

// Register adds user signer of organization, it must not be called after registry is in use.
func (r *Registry) Register(org, mspID, username string, signer protoutil.Signer) {
	orgUsers, ok := r.users[org]
	if !ok {
		orgUsers = make(map[string]user)
		r.users[org] = orgUsers
	}
	orgUsers[username] = user{mspID: mspID, signer: signer}
	r.l.Debug("user registered", zap.String("org", org), zap.String("user", username))
}

func (r *Registry) Resolve(_ context.Context, username, org string) (*Identity, error) {
	orgUsers, ok := r.users[org]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOrg, org)
	}
	u, ok := orgUsers[username]
	if !ok {
		return nil, fmt.Errorf("%w: %s@%s", ErrUnknownUser, username, org)
	}
	return &Identity{Signer: u.signer, Username: username, Org: org, MspID: u.mspID}, nil
}
