package gateway

import (
	"context"
	"net/http"

	"github.com/atomyze-foundation/hlf-query-gateway/service/query"
)

const (
	paramPeer    = "peer"
	paramFcn     = "fcn"
	paramArgs    = "args"
	paramHash    = "hash"
	paramType    = "type"
	paramChannel = "channel"
)

func (g *Gateway) queryChaincode(ctx context.Context, sess query.Session, r *http.Request, params map[string]string) (query.Result, error) {
	q := r.URL.Query()
	return g.q.QueryChaincode(ctx, sess, q.Get(paramPeer), params["channel"], params["chaincode"], q.Get(paramFcn), q[paramArgs])
}

func (g *Gateway) blockByNumber(ctx context.Context, sess query.Session, r *http.Request, params map[string]string) (query.Result, error) {
	return g.q.BlockByNumber(ctx, sess, r.URL.Query().Get(paramPeer), params["channel"], params["number"])
}

func (g *Gateway) blockByHash(ctx context.Context, sess query.Session, r *http.Request, params map[string]string) (query.Result, error) {
	q := r.URL.Query()
	return g.q.BlockByHash(ctx, sess, q.Get(paramPeer), params["channel"], q.Get(paramHash))
}

func (g *Gateway) transactionByID(ctx context.Context, sess query.Session, r *http.Request, params map[string]string) (query.Result, error) {
	return g.q.TransactionByID(ctx, sess, r.URL.Query().Get(paramPeer), params["channel"], params["tx_id"])
}

func (g *Gateway) channelInfo(ctx context.Context, sess query.Session, r *http.Request, params map[string]string) (query.Result, error) {
	return g.q.ChannelInfo(ctx, sess, r.URL.Query().Get(paramPeer), params["channel"])
}

func (g *Gateway) chaincodes(ctx context.Context, sess query.Session, r *http.Request, _ map[string]string) (query.Result, error) {
	q := r.URL.Query()
	return g.q.Chaincodes(ctx, sess, q.Get(paramPeer), q.Get(paramChannel), q.Get(paramType))
}

func (g *Gateway) channels(ctx context.Context, sess query.Session, r *http.Request, _ map[string]string) (query.Result, error) {
	return g.q.Channels(ctx, sess, r.URL.Query().Get(paramPeer))
}
