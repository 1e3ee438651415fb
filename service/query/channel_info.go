package query

import (
	"context"
	"encoding/base64"

	"go.uber.org/zap"
)

// ChannelInfo returns hashes of the current and previous blocks of the channel ledger.
func (s *Service) ChannelInfo(ctx context.Context, sess Session, nodeID, channelID string) (Result, error) {
	target := s.resolver.Resolve(nodeID, sess.Org)

	return s.run(ctx, "channel_info", sess, func(ctx context.Context, logger *zap.Logger) (Result, error) {
		ch, err := s.network.ChannelContext(channelID, sess.Org)
		if err != nil {
			return nil, queryFailed(logger, "get channel context", err)
		}

		info, err := ch.QueryInfo(ctx, target)
		if err != nil {
			return nil, queryFailed(logger, "query ledger info", err)
		}
		if info == nil {
			return noData(logger), nil
		}

		return LedgerInfo{
			CurrentBlockHash:  base64.StdEncoding.EncodeToString(info.CurrentBlockHash),
			PreviousBlockHash: base64.StdEncoding.EncodeToString(info.PreviousBlockHash),
		}, nil
	})
}
