package query

import (
	"context"

	"github.com/atomyze-foundation/hlf-query-gateway/system/chaincode"
	"go.uber.org/zap"
)

// QueryChaincode evaluates fcn of the chaincode and returns payload of the first answering peer as Text.
// Without a resolvable node the query goes to every peer of the organization.
func (s *Service) QueryChaincode(ctx context.Context, sess Session, nodeID, channelID, chaincodeID, fcn string, args []string) (Result, error) {
	target := s.resolver.Resolve(nodeID, sess.Org)

	return s.run(ctx, "query_chaincode", sess, func(ctx context.Context, logger *zap.Logger) (Result, error) {
		ch, err := s.network.ChannelContext(channelID, sess.Org)
		if err != nil {
			return nil, queryFailed(logger, "get channel context", err)
		}
		cli, err := s.network.ClientContext(sess.Org)
		if err != nil {
			return nil, queryFailed(logger, "get client context", err)
		}

		txID, err := cli.NewTransactionID(ctx)
		if err != nil {
			return nil, queryFailed(logger, "create transaction id", err)
		}

		payloads, err := ch.QueryByChaincode(ctx, &chaincode.Request{
			ChaincodeID: chaincodeID,
			TxID:        txID.ID,
			Nonce:       txID.Nonce,
			Fcn:         fcn,
			Args:        args,
		}, target)
		if err != nil {
			return nil, queryFailed(logger, "query chaincode", err)
		}
		if len(payloads) == 0 {
			return noData(logger), nil
		}

		return Text(payloads[0]), nil
	})
}
