package mocks

import (
	"errors"

	"github.com/golang/protobuf/proto" //nolint:staticcheck
	"github.com/hyperledger/fabric-protos-go/msp"
	"github.com/hyperledger/fabric/protoutil"
)

type signer struct {
	mspID string
	cert  []byte
	fail  bool
}

func (s *signer) Sign(msg []byte) ([]byte, error) {
	if s.fail {
		return nil, errors.New("sign err")
	}
	return append([]byte("signed:"), msg[:min(len(msg), 8)]...), nil
}

func (s *signer) Serialize() ([]byte, error) {
	return proto.Marshal(&msp.SerializedIdentity{Mspid: s.mspID, IdBytes: s.cert})
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// NewSigner creates a signer producing deterministic fake signatures.
func NewSigner(mspID string) protoutil.Signer {
	return &signer{mspID: mspID, cert: []byte("-----BEGIN CERTIFICATE-----" + mspID)}
}

// NewFailedSigner creates a signer failing on every sign call.
func NewFailedSigner(mspID string) protoutil.Signer {
	return &signer{mspID: mspID, fail: true}
}

// NewNamedSigner creates a signer whose serialized identity carries name as certificate bytes.
func NewNamedSigner(mspID, name string) protoutil.Signer {
	return &signer{mspID: mspID, cert: []byte(name)}
}
