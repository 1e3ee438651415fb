package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/atomyze-foundation/hlf-query-gateway/pkg/ratelimit"
	"github.com/atomyze-foundation/hlf-query-gateway/service/gateway/middleware"
	"github.com/atomyze-foundation/hlf-query-gateway/service/query"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
	"google.golang.org/protobuf/encoding/protojson"
)

const (
	// HeaderUser names the acting user of the request.
	HeaderUser = "X-User"
	// HeaderOrg names organization of the acting user.
	HeaderOrg = "X-Org"
)

var errRateLimited = errors.New("rate limit exceeded")

// Querier is the query api exposed over http.
type Querier interface {
	QueryChaincode(ctx context.Context, sess query.Session, nodeID, channelID, chaincodeID, fcn string, args []string) (query.Result, error)
	BlockByNumber(ctx context.Context, sess query.Session, nodeID, channelID, number string) (query.Result, error)
	TransactionByID(ctx context.Context, sess query.Session, nodeID, channelID, txID string) (query.Result, error)
	BlockByHash(ctx context.Context, sess query.Session, nodeID, channelID, hash string) (query.Result, error)
	ChannelInfo(ctx context.Context, sess query.Session, nodeID, channelID string) (query.Result, error)
	Chaincodes(ctx context.Context, sess query.Session, nodeID, channelID, listType string) (query.Result, error)
	Channels(ctx context.Context, sess query.Session, nodeID string) (query.Result, error)
}

var _ Querier = &query.Service{}

// Gateway serves Querier on grpc-gateway mux.
type Gateway struct {
	q         Querier
	logger    *zap.Logger
	limiter   *ratelimit.Limiter
	timeout   time.Duration
	marshaler runtime.Marshaler
}

type Option func(*Gateway)

// WithLimiter limits requests per acting user.
func WithLimiter(l *ratelimit.Limiter) Option {
	return func(g *Gateway) {
		g.limiter = l
	}
}

// WithTimeout bounds every query with timeout, zero means no bound.
func WithTimeout(timeout time.Duration) Option {
	return func(g *Gateway) {
		g.timeout = timeout
	}
}

func New(logger *zap.Logger, q Querier, opts ...Option) *Gateway {
	g := &Gateway{
		q:      q,
		logger: logger,
		marshaler: &runtime.JSONPb{
			MarshalOptions: protojson.MarshalOptions{UseProtoNames: true},
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Register adds query routes to mux.
func (g *Gateway) Register(mux *runtime.ServeMux) error {
	routes := []struct {
		pattern string
		handler queryHandler
	}{
		{"/v1/channels", g.channels},
		{"/v1/channels/{channel}", g.channelInfo},
		{"/v1/channels/{channel}/blocks", g.blockByHash},
		{"/v1/channels/{channel}/blocks/{number}", g.blockByNumber},
		{"/v1/channels/{channel}/transactions/{tx_id}", g.transactionByID},
		{"/v1/channels/{channel}/chaincodes/{chaincode}", g.queryChaincode},
		{"/v1/chaincodes", g.chaincodes},
	}
	for _, route := range routes {
		if err := mux.HandlePath(http.MethodGet, route.pattern, g.handle(route.handler)); err != nil {
			return fmt.Errorf("register %s: %w", route.pattern, err)
		}
	}
	return nil
}

// SessionFromRequest reads acting user of the request.
func SessionFromRequest(r *http.Request) query.Session {
	return query.Session{
		Username: r.Header.Get(HeaderUser),
		Org:      r.Header.Get(HeaderOrg),
	}
}

type queryHandler func(ctx context.Context, sess query.Session, r *http.Request, params map[string]string) (query.Result, error)

func (g *Gateway) handle(h queryHandler) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, params map[string]string) {
		sess := SessionFromRequest(r)

		var key string
		if sess.Username != "" {
			key = sess.Org + "/" + sess.Username
		}
		if !g.limiter.Allow(key, time.Now()) {
			middleware.WriteError(g.logger, w, http.StatusTooManyRequests, errRateLimited)
			return
		}

		ctx := r.Context()
		if g.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, g.timeout)
			defer cancel()
		}

		res, err := h(ctx, sess, r, params)
		if err != nil {
			g.writeQueryError(w, err)
			return
		}
		g.writeResult(w, res)
	}
}

func (g *Gateway) writeQueryError(w http.ResponseWriter, err error) {
	var kind string
	var qErr *query.Error
	if errors.As(err, &qErr) {
		kind = qErr.Kind.String()
	}
	middleware.WriteErrorKind(g.logger, w, HTTPStatusFromError(err), kind, err)
}

func (g *Gateway) writeResult(w http.ResponseWriter, res query.Result) {
	var v interface{} = res
	switch r := res.(type) {
	case query.NoData:
		v = nil
	case query.Block:
		v = r.Block
	case query.Transaction:
		v = r.ProcessedTransaction
	}

	body, err := g.marshaler.Marshal(v)
	if err != nil {
		middleware.WriteError(g.logger, w, http.StatusInternalServerError, fmt.Errorf("marshal response: %w", err))
		return
	}

	w.Header().Set("Content-Type", g.marshaler.ContentType(v))
	w.WriteHeader(http.StatusOK)
	if _, err = w.Write(body); err != nil {
		g.logger.Error("response write error", zap.Error(err))
	}
}

// HTTPStatusFromError maps query failures to http status codes.
func HTTPStatusFromError(err error) int {
	switch {
	case errors.Is(err, query.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, query.ErrIdentityResolutionFailed):
		return http.StatusUnauthorized
	case errors.Is(err, query.ErrQueryFailed):
		return http.StatusBadGateway
	case errors.Is(err, query.ErrEmptyResponse):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
