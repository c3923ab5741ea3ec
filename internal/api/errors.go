package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/satriahrh/voxverify/domain"
)

// statusFor maps an error kind to its HTTP status
func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindInvalidRequest, domain.KindMissingAudioData, domain.KindInvalidAudioData, domain.KindInvalidFileType:
		return http.StatusBadRequest
	case domain.KindMalformedUpstreamResult:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeAnalysisError renders a pipeline failure as JSON
func writeAnalysisError(c echo.Context, err error) error {
	var ae *domain.AnalysisError
	if !errors.As(err, &ae) {
		ae = domain.NewError(domain.KindUpstreamAnalysis, "Internal Analysis Error", err)
	}

	body := ErrorResponse{
		Error:   ae.Message,
		Kind:    string(ae.Kind),
		Details: ae.Details(),
	}
	if ae.Kind == domain.KindMissingAudioData {
		body.AcceptedFields = domain.AcceptedAudioFields
	}

	return c.JSON(statusFor(ae.Kind), body)
}

// ErrorHandler renders framework errors (404, 405, 413, panics) as JSON
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := http.StatusText(code)
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
		}

		if code >= http.StatusInternalServerError {
			logger.Error("Request failed",
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.String("path", c.Request().URL.Path),
				zap.Error(err))
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, ErrorResponse{Error: message})
		}
		if err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
	}
}
