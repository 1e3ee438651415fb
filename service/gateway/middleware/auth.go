package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	authHeader   = "authorization"
	healthMethod = "/grpc.health.v1.Health/Check"
	healthPath   = "/v1/healthz"
)

// AuthenticationInterceptor checks access token of grpc calls, health checks are always allowed.
// An empty token disables the check.
func AuthenticationInterceptor(token string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		if token == "" || info.FullMethod == healthMethod {
			return handler(ctx, req)
		}
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Errorf(codes.Unauthenticated, "metadata is not provided")
		}
		if len(md.Get(authHeader)) != 1 {
			return nil, status.Errorf(codes.Unauthenticated, "auth header is not provided")
		}
		if md.Get(authHeader)[0] != token {
			return nil, status.Errorf(codes.Unauthenticated, "auth header is invalid")
		}
		return handler(ctx, req)
	}
}

// Authentication checks access token of http api requests, the health endpoint is always allowed.
// An empty token disables the check.
func Authentication(logger *zap.Logger, token string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token == "" || !strings.HasPrefix(r.URL.Path, "/v1") || r.URL.Path == healthPath {
			next.ServeHTTP(w, r)
			return
		}
		switch r.Header.Get(authHeader) {
		case "":
			WriteError(logger, w, http.StatusUnauthorized, errors.New("auth header is not provided"))
		case token:
			next.ServeHTTP(w, r)
		default:
			WriteError(logger, w, http.StatusUnauthorized, errors.New("auth header is invalid"))
		}
	})
}
