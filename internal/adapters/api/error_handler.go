package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"forecast.app/internal/core/result"
	"forecast.app/internal/ports"
	errorspkg "forecast.app/pkg/errors"
)

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// statusFor maps an error kind onto an HTTP status and reports whether the
// message is safe to show to clients
func statusFor(kind errorspkg.ErrorType) (int, bool) {
	switch kind {
	case errorspkg.ValidationError, errorspkg.InvalidLocationError:
		return http.StatusBadRequest, true
	case errorspkg.NotFoundError, errorspkg.UnknownPlaceError:
		return http.StatusNotFound, true
	case errorspkg.NetworkError:
		return http.StatusServiceUnavailable, true
	case errorspkg.RemoteRejectedError, errorspkg.ParseError:
		return http.StatusBadGateway, true
	default:
		return http.StatusInternalServerError, false
	}
}

// handleError handles different types of application errors
func (s *HTTPServerAdapter) handleError(c *gin.Context, err error) {
	kind := errorspkg.KindOf(err)
	status, public := statusFor(kind)

	message := "Internal server error"
	if appErr, ok := errorspkg.As(err); ok && public {
		message = appErr.Message
	}
	if !public {
		s.logger.Error("Request failed",
			ports.F("request_id", c.GetString("request_id")),
			ports.F("path", c.FullPath()),
			ports.F("error", err))
	}

	c.JSON(status, ErrorResponse{Error: message, Kind: kind.String()})
}

// respondEnvelope writes env as the body. Failures use the status of their kind.
func respondEnvelope[T any](c *gin.Context, okStatus int, env result.Envelope[T]) {
	status := result.Match(env,
		func() int { return http.StatusAccepted },
		func(T) int { return okStatus },
		func(err *errorspkg.AppError) int {
			code, _ := statusFor(err.Type)
			return code
		})
	c.JSON(status, env)
}

// getMetrics handles GET /api/metrics requests
func (s *HTTPServerAdapter) getMetrics(c *gin.Context) {
	metrics, err := s.metricsCollector.GetMetrics(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}
