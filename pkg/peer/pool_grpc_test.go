package peer

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"testing"
	"time"

	"github.com/atomyze-foundation/hlf-query-gateway/pkg/matcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGrpcPoolReusesConnection(t *testing.T) {
	pool := NewGrpcPool(zap.NewNop(), &tls.Config{}, matcher.NewMatcher(map[string]string{"peer0.org1": "127.0.0.1"}))
	p := &Peer{Name: "peer0", Host: "peer0.org1", Port: 7051, MspID: "Org1MSP"}

	// grpc dial is non-blocking, so no listener is required
	first, err := pool.GetEndorser(context.Background(), p)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := pool.GetEndorser(context.Background(), p)
	require.NoError(t, err)
	require.NotNil(t, second)

	gp := pool.(*grpcPool)
	assert.Len(t, gp.connMap, 1)

	require.NoError(t, pool.Close())
	assert.Len(t, gp.connMap, 0)
}

func TestGrpcPoolBadCertificate(t *testing.T) {
	pool := NewGrpcPool(zap.NewNop(), nil, nil)
	p := &Peer{Host: "localhost", Port: 7051, MspID: "Org1MSP", CACertificates: [][]byte{[]byte("not a pem")}}

	_, err := pool.GetEndorser(context.Background(), p)
	assert.Error(t, err)
}

func TestPeerString(t *testing.T) {
	assert.Equal(t, "localhost:7051", (&Peer{Host: "localhost", Port: 7051}).String())
}

func newCAPEM(t *testing.T, cn string) []byte {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: cn},
		NotBefore:             time.Now(),
		NotAfter:              time.Now().Add(time.Hour),
		IsCA:                  true,
		BasicConstraintsValid: true,
		KeyUsage:              x509.KeyUsageCertSign,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
}

func TestGrpcPoolKeepsRootCAsPerPeer(t *testing.T) {
	orgCA := newCAPEM(t, "org ca")
	shared := x509.NewCertPool()
	require.True(t, shared.AppendCertsFromPEM(orgCA))
	conf := &tls.Config{RootCAs: shared}

	pool := NewGrpcPool(zap.NewNop(), conf, nil, orgCA)
	peer0 := &Peer{Name: "peer0", Host: "localhost", Port: 7051, MspID: "Org1MSP", CACertificates: [][]byte{newCAPEM(t, "peer0 ca")}}
	peer1 := &Peer{Name: "peer1", Host: "localhost", Port: 8051, MspID: "Org1MSP", CACertificates: [][]byte{newCAPEM(t, "peer1 ca")}}

	for _, p := range []*Peer{peer0, peer1} {
		_, err := pool.GetEndorser(context.Background(), p)
		require.NoError(t, err)
	}
	defer func() { require.NoError(t, pool.Close()) }()

	assert.Same(t, shared, conf.RootCAs)
	assert.Len(t, shared.Subjects(), 1) //nolint:staticcheck

	gp := pool.(*grpcPool)
	roots0, err := gp.peerRootCAs(peer0)
	require.NoError(t, err)
	roots1, err := gp.peerRootCAs(peer1)
	require.NoError(t, err)
	assert.Len(t, roots0.Subjects(), 2) //nolint:staticcheck
	assert.Len(t, roots1.Subjects(), 2) //nolint:staticcheck
	assert.NotEqual(t, roots0.Subjects(), roots1.Subjects()) //nolint:staticcheck
}

func TestGrpcPoolDefaultRootCAs(t *testing.T) {
	gp := NewGrpcPool(zap.NewNop(), nil, nil).(*grpcPool)
	roots, err := gp.peerRootCAs(&Peer{Host: "localhost", Port: 7051})
	require.NoError(t, err)
	assert.Nil(t, roots)
}
