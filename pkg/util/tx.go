package util

import (
	"crypto/rand"
	"fmt"

	"github.com/hyperledger/fabric/protoutil"
)

const nonceLen = 24

// GetRandomNonce generates new random nonce
func GetRandomNonce() ([]byte, error) {
	key := make([]byte, nonceLen)

	_, err := rand.Read(key)
	if err != nil {
		return nil, fmt.Errorf("error getting random bytes: %w", err)
	}
	return key, nil
}

// NewTxID mints a fresh transaction id for the creator together with the nonce it was computed from.
func NewTxID(id protoutil.Signer) (string, []byte, error) {
	creator, err := id.Serialize()
	if err != nil {
		return "", nil, fmt.Errorf("serialize creator: %w", err)
	}

	nonce, err := GetRandomNonce()
	if err != nil {
		return "", nil, fmt.Errorf("get nonce: %w", err)
	}

	return protoutil.ComputeTxID(nonce, creator), nonce, nil
}
