package query

import (
	"context"

	"go.uber.org/zap"
)

// TransactionByID returns processed transaction txID of the channel.
func (s *Service) TransactionByID(ctx context.Context, sess Session, nodeID, channelID, txID string) (Result, error) {
	target := s.resolver.Resolve(nodeID, sess.Org)

	return s.run(ctx, "transaction_by_id", sess, func(ctx context.Context, logger *zap.Logger) (Result, error) {
		ch, err := s.network.ChannelContext(channelID, sess.Org)
		if err != nil {
			return nil, queryFailed(logger, "get channel context", err)
		}

		tx, err := ch.QueryTransaction(ctx, txID, target)
		if err != nil {
			return nil, queryFailed(logger, "query transaction", err)
		}
		if tx == nil {
			return noData(logger), nil
		}

		return Transaction{ProcessedTransaction: tx}, nil
	})
}
