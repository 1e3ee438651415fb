package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
	"google.golang.org/grpc/status"
)

// ErrorResponse is the body of every failed http api request.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// ErrorHandler renders routing and gateway errors as ErrorResponse.
func ErrorHandler(logger *zap.Logger) runtime.ServeMuxOption {
	return runtime.WithErrorHandler(func(ctx context.Context, mux *runtime.ServeMux, marshaler runtime.Marshaler, writer http.ResponseWriter, request *http.Request, err error) {
		code := http.StatusInternalServerError
		if s, ok := status.FromError(err); ok {
			code = runtime.HTTPStatusFromCode(s.Code())
			err = s.Err()
		}
		WriteError(logger, writer, code, err)
	})
}

// WriteError writes ErrorResponse with status code.
func WriteError(logger *zap.Logger, writer http.ResponseWriter, code int, err error) {
	WriteErrorKind(logger, writer, code, "", err)
}

// WriteErrorKind writes ErrorResponse carrying error kind with status code.
func WriteErrorKind(logger *zap.Logger, writer http.ResponseWriter, code int, kind string, err error) {
	resp := &ErrorResponse{Error: err.Error(), Kind: kind}

	writer.Header().Del("Trailer")
	writer.Header().Del("Transfer-Encoding")
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(code)

	we, err := json.Marshal(resp)
	if err != nil {
		logger.Error("response json marshal error", zap.Error(err))
	}
	if _, err = writer.Write(we); err != nil {
		logger.Error("response write error", zap.Error(err))
	}
	logger.Error("request error", zap.Int("code", code), zap.String("error", resp.Error))
}
