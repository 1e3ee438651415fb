package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atomyze-foundation/hlf-query-gateway/pkg/identity"
	"github.com/atomyze-foundation/hlf-query-gateway/pkg/metrics"
	"github.com/atomyze-foundation/hlf-query-gateway/pkg/network"
	"go.uber.org/zap"
)

// Session is the user a query is made on behalf of.
type Session struct {
	Username string
	Org      string
}

// Service answers read queries against the network on behalf of organization users.
// It keeps no state between calls.
type Service struct {
	ids      identity.Provider
	network  network.Provider
	resolver *Resolver
	logger   *zap.Logger
	metrics  metrics.Recorder
}

type Option func(*Service)

// WithRecorder sets recorder observing every query.
func WithRecorder(rec metrics.Recorder) Option {
	return func(s *Service) {
		s.metrics = rec
	}
}

func NewService(logger *zap.Logger, ids identity.Provider, nw network.Provider, opts ...Option) *Service {
	s := &Service{
		ids:      ids,
		network:  nw,
		resolver: NewResolver(nw),
		logger:   logger,
		metrics:  metrics.Disabled(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// stage is the network call of an operation together with result normalization.
type stage func(ctx context.Context, logger *zap.Logger) (Result, error)

// run resolves acting identity and then executes the network stage.
// Every failure leaves run as *Error.
func (s *Service) run(ctx context.Context, operation string, sess Session, call stage) (res Result, err error) {
	start := time.Now()
	logger := s.logger.With(
		zap.String("operation", operation),
		zap.String("user", sess.Username),
		zap.String("org", sess.Org),
	)

	defer func() {
		s.metrics.Observe(operation, outcome(res, err), time.Since(start))
	}()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("unexpected query failure", zap.Any("panic", r), zap.Stack("stack"))
			res, err = nil, newError(KindUnexpected, "unexpected failure", fmt.Errorf("panic: %v", r))
		}
	}()

	id, err := s.ids.Resolve(ctx, sess.Username, sess.Org)
	if err != nil {
		logger.Info("identity resolution failed", zap.Error(err))
		return nil, newError(KindIdentityResolutionFailed, "resolve identity", err)
	}

	res, err = call(identity.NewContext(ctx, id), logger)
	if err != nil {
		var qErr *Error
		if errors.As(err, &qErr) {
			return nil, qErr
		}
		logger.Error("unexpected query failure", zap.Error(err))
		return nil, newError(KindUnexpected, "unexpected failure", err)
	}
	if res == nil {
		return NoData{}, nil
	}
	return res, nil
}

func queryFailed(logger *zap.Logger, msg string, err error) error {
	logger.Error(msg, zap.Error(err))
	return newError(KindQueryFailed, msg, err)
}

func invalidArgument(logger *zap.Logger, msg string, err error) error {
	return queryFailed(logger, msg, fmt.Errorf("%w: %v", ErrInvalidArgument, err))
}

func noData(logger *zap.Logger) Result {
	logger.Error("empty response")
	return NoData{}
}

func outcome(res Result, err error) string {
	if err != nil {
		var qErr *Error
		if errors.As(err, &qErr) {
			switch qErr.Kind {
			case KindIdentityResolutionFailed:
				return "identity_resolution_failed"
			case KindQueryFailed:
				return "query_failed"
			case KindEmptyResponse:
				return "empty_response"
			}
		}
		return "unexpected"
	}
	if _, ok := res.(NoData); ok {
		return "no_data"
	}
	return "success"
}
