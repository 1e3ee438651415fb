package query

import (
	"context"

	"go.uber.org/zap"
)

// Channels lists channels joined by the peer.
func (s *Service) Channels(ctx context.Context, sess Session, nodeID string) (Result, error) {
	target := s.resolver.Resolve(nodeID, sess.Org)

	return s.run(ctx, "channels", sess, func(ctx context.Context, logger *zap.Logger) (Result, error) {
		cli, err := s.network.ClientContext(sess.Org)
		if err != nil {
			return nil, queryFailed(logger, "get client context", err)
		}

		channels, err := cli.QueryChannels(ctx, target)
		if err != nil {
			return nil, queryFailed(logger, "query channels", err)
		}
		if channels == nil {
			return noData(logger), nil
		}

		res := make(Channels, 0, len(channels))
		for _, id := range channels {
			logger.Sugar().Debugf("channel id: %s", id)
			res = append(res, Channel{ChannelID: id})
		}
		return res, nil
	})
}
