//go:build !pkcs11
// +build !pkcs11

package pkcs11

import (
	"errors"

	"github.com/hyperledger/fabric/bccsp/factory"
	"github.com/hyperledger/fabric/protoutil"
	"go.uber.org/zap"
)

// ErrNotSupported is returned when the binary is built without the pkcs11 tag.
var ErrNotSupported = errors.New("pkcs11 support is not compiled in, rebuild with -tags pkcs11")

// NewPKCS11Signer fails, the gateway is built without pkcs11 support.
func NewPKCS11Signer(_ *zap.Logger, _ string, _ string, _ *factory.FactoryOpts) (protoutil.Signer, error) {
	return nil, ErrNotSupported
}
