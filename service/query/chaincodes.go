package query

import (
	"context"

	"github.com/atomyze-foundation/hlf-query-gateway/pkg/network"
	"go.uber.org/zap"
)

// ListInstalled selects chaincodes installed on the peer, any other list type means instantiated on the channel.
const ListInstalled = "installed"

// Chaincodes lists installed or instantiated chaincodes. Unlike other queries
// an empty answer is an EmptyResponse error.
func (s *Service) Chaincodes(ctx context.Context, sess Session, nodeID, channelID, listType string) (Result, error) {
	target := s.resolver.Resolve(nodeID, sess.Org)

	return s.run(ctx, "chaincodes", sess, func(ctx context.Context, logger *zap.Logger) (Result, error) {
		var (
			ccs []network.ChaincodeInfo
			err error
		)
		if listType == ListInstalled {
			cli, cErr := s.network.ClientContext(sess.Org)
			if cErr != nil {
				return nil, queryFailed(logger, "get client context", cErr)
			}
			ccs, err = cli.QueryInstalledChaincodes(ctx, target)
		} else {
			ch, cErr := s.network.ChannelContext(channelID, sess.Org)
			if cErr != nil {
				return nil, queryFailed(logger, "get channel context", cErr)
			}
			ccs, err = ch.QueryInstantiatedChaincodes(ctx, target)
		}
		if err != nil {
			return nil, queryFailed(logger, "query chaincodes", err)
		}
		if ccs == nil {
			logger.Error("empty response")
			return nil, newError(KindEmptyResponse, "no chaincodes in response", nil)
		}

		res := make(Chaincodes, 0, len(ccs))
		for _, cc := range ccs {
			logger.Sugar().Debugf("name: %s, version: %s, path: %s", cc.Name, cc.Version, cc.Path)
			res = append(res, Chaincode{Name: cc.Name, Version: cc.Version, Path: cc.Path})
		}
		return res, nil
	})
}
