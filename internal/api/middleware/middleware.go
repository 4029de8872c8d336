package middleware

import (
	"net/http"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"
)

// ErrorResponse is the JSON body for every non-2xx API response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
}

// HandleError writes a JSON error body with the given status code.
func HandleError(resp *restful.Response, err error, status int) {
	resp.WriteHeaderAndEntity(status, ErrorResponse{
		Error:   err.Error(),
		Success: false,
	})
}

// Logger returns a filter that logs one line per request with method,
// path, status and latency.
func Logger(logger *zerolog.Logger) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		start := time.Now()
		chain.ProcessFilter(req, resp)

		logger.Info().
			Str("method", req.Request.Method).
			Str("path", req.Request.URL.Path).
			Int("status", resp.StatusCode()).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	}
}

// RecoverPanic converts handler panics into a 500 response instead of
// tearing down the connection.
func RecoverPanic(logger *zerolog.Logger) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().
					Interface("panic", r).
					Str("path", req.Request.URL.Path).
					Msg("recovered from panic in handler")
				resp.WriteHeaderAndEntity(http.StatusInternalServerError, ErrorResponse{
					Error:   "internal server error",
					Success: false,
				})
			}
		}()
		chain.ProcessFilter(req, resp)
	}
}
