package query

import (
	"context"
	"encoding/base64"
	"strconv"

	"go.uber.org/zap"
)

// BlockByNumber returns block at the decimal height number.
func (s *Service) BlockByNumber(ctx context.Context, sess Session, nodeID, channelID, number string) (Result, error) {
	target := s.resolver.Resolve(nodeID, sess.Org)

	return s.run(ctx, "block_by_number", sess, func(ctx context.Context, logger *zap.Logger) (Result, error) {
		num, err := strconv.ParseUint(number, 10, 64)
		if err != nil {
			return nil, invalidArgument(logger, "parse block number", err)
		}

		ch, err := s.network.ChannelContext(channelID, sess.Org)
		if err != nil {
			return nil, queryFailed(logger, "get channel context", err)
		}

		block, err := ch.QueryBlock(ctx, num, target)
		if err != nil {
			return nil, queryFailed(logger, "query block", err)
		}
		if block == nil {
			return noData(logger), nil
		}

		return Block{Block: block}, nil
	})
}

// BlockByHash returns block with the standard base64 encoded header hash.
func (s *Service) BlockByHash(ctx context.Context, sess Session, nodeID, channelID, hash string) (Result, error) {
	target := s.resolver.Resolve(nodeID, sess.Org)

	return s.run(ctx, "block_by_hash", sess, func(ctx context.Context, logger *zap.Logger) (Result, error) {
		raw, err := base64.StdEncoding.DecodeString(hash)
		if err != nil {
			return nil, invalidArgument(logger, "decode block hash", err)
		}

		ch, err := s.network.ChannelContext(channelID, sess.Org)
		if err != nil {
			return nil, queryFailed(logger, "get channel context", err)
		}

		block, err := ch.QueryBlockByHash(ctx, raw, target)
		if err != nil {
			return nil, queryFailed(logger, "query block by hash", err)
		}
		if block == nil {
			return noData(logger), nil
		}

		return Block{Block: block}, nil
	})
}
