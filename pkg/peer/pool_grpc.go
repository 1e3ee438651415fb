package peer

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"sync"

	"github.com/atomyze-foundation/hlf-query-gateway/pkg/matcher"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
)

type grpcPool struct {
	connMap map[string]*grpc.ClientConn
	connMx  sync.RWMutex

	tlsConf *tls.Config
	rootCAs [][]byte
	match   *matcher.Matcher
	l       *zap.Logger
}

func (p *grpcPool) GetEndorser(ctx context.Context, peer *Peer) (pb.EndorserClient, error) {
	key := p.getPeerMapKey(peer)
	p.connMx.RLock()
	conn, ok := p.connMap[key]
	if ok {
		p.connMx.RUnlock()
		p.l.Debug("found conn", zap.String("peer", peer.Host))
		return pb.NewEndorserClient(conn), nil
	}
	p.connMx.RUnlock()
	p.connMx.Lock()
	defer p.connMx.Unlock()
	// check connection again, can be set in another lock
	conn, ok = p.connMap[key]
	if ok {
		return pb.NewEndorserClient(conn), nil
	}
	var err error
	if conn, err = p.initGrpcConnection(ctx, peer); err != nil {
		return nil, fmt.Errorf("init grpc connection: %w", err)
	}
	p.connMap[key] = conn
	return pb.NewEndorserClient(conn), nil
}

func (p *grpcPool) Close() error {
	p.connMx.Lock()
	defer p.connMx.Unlock()
	var result error
	for key, conn := range p.connMap {
		p.l.Debug("closing connection", zap.String("peer", conn.Target()))
		if err := conn.Close(); err != nil {
			result = multierr.Append(result, err)
		}
		delete(p.connMap, key)
	}
	return result
}

func (p *grpcPool) initGrpcConnection(ctx context.Context, peer *Peer) (*grpc.ClientConn, error) {
	host := p.match.Resolve(peer.Host)
	p.l.Debug("new peer conn", zap.String("peer", peer.Host), zap.String("host", host), zap.Int32("port", peer.Port))
	tlsConf := p.tlsConf.Clone()
	if len(peer.ClientCertificate.Certificate) != 0 {
		tlsConf.Certificates = []tls.Certificate{peer.ClientCertificate}
	}
	// keep tls verification bound to the announced host name
	if host != peer.Host && tlsConf.ServerName == "" {
		tlsConf.ServerName = peer.Host
	}
	rootCAs, err := p.peerRootCAs(peer)
	if err != nil {
		return nil, err
	}
	if rootCAs != nil {
		tlsConf.RootCAs = rootCAs
	}
	conn, err := grpc.DialContext(ctx, fmt.Sprintf("%s:%d", host, peer.Port), grpc.WithTransportCredentials(credentials.NewTLS(tlsConf)))
	if err != nil {
		return nil, fmt.Errorf("grpc dial: %w", err)
	}
	p.l.Debug("connection initialized", zap.String("peer", peer.Host), zap.Int32("port", peer.Port))
	return conn, err
}

// peerRootCAs builds a dedicated root pool of pool wide and peer CA certificates,
// nil when there are none and tls config roots apply as is.
func (p *grpcPool) peerRootCAs(peer *Peer) (*x509.CertPool, error) {
	if len(p.rootCAs) == 0 && len(peer.CACertificates) == 0 {
		return nil, nil
	}
	pool := x509.NewCertPool()
	for _, certs := range [][][]byte{p.rootCAs, peer.CACertificates} {
		for _, cert := range certs {
			if !pool.AppendCertsFromPEM(cert) {
				return nil, fmt.Errorf("failed to add cert: %s", string(cert))
			}
		}
	}
	return pool, nil
}

func (p *grpcPool) getPeerMapKey(peer *Peer) string {
	return fmt.Sprintf("%s_%s%d", peer.MspID, peer.Host, peer.Port)
}

// NewGrpcPool creates a pool of lazily dialed peer connections. Every connection
// trusts rootCAs together with CA certificates of its own peer, RootCAs of
// tlsConf are used only when neither is set.
func NewGrpcPool(logger *zap.Logger, tlsConf *tls.Config, match *matcher.Matcher, rootCAs ...[]byte) Pool {
	if tlsConf == nil {
		tlsConf = new(tls.Config)
	}
	return &grpcPool{
		connMap: make(map[string]*grpc.ClientConn),
		tlsConf: tlsConf,
		rootCAs: rootCAs,
		match:   match,
		l:       logger.Named("peer_pool"),
	}
}
