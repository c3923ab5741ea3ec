package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/satriahrh/voxverify/domain"
	"github.com/satriahrh/voxverify/usecase"
)

const serviceName = "voxverify-bridge"

// InitRoutes initializes all API routes
func InitRoutes(e *echo.Echo, service *usecase.DetectionService, logger *zap.Logger) {
	health := func(c echo.Context) error {
		return c.JSON(http.StatusOK, domain.HealthMessage{
			Status:    "ok",
			Service:   serviceName,
			Timestamp: time.Now().UnixMilli(),
		})
	}

	// Health check. GET / is shadowed by the UI when it is served.
	e.GET("/health", health)
	e.GET("/", health)

	analyze := func(c echo.Context) error {
		return analyzeVoice(c, service, logger)
	}
	e.POST("/analyze", analyze)
	// Legacy callers post straight to the root
	e.POST("/", analyze)
}

func analyzeVoice(c echo.Context, service *usecase.DetectionService, logger *zap.Logger) error {
	requestID := c.Response().Header().Get(echo.HeaderXRequestID)

	var req domain.AnalyzeRequest
	if err := c.Bind(&req); err != nil && !isUnsupportedMediaType(err) {
		logger.Warn("Failed to bind analyze request",
			zap.String("request_id", requestID),
			zap.Error(err))
		return writeAnalysisError(c, domain.NewError(domain.KindInvalidRequest, "Invalid request format", err))
	}

	result, err := service.Analyze(c.Request().Context(), &req)
	if err != nil {
		logger.Warn("Analysis request failed",
			zap.String("request_id", requestID),
			zap.String("kind", string(domain.KindOf(err))))
		return writeAnalysisError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// A body in a format the binder cannot read carries no audio field
func isUnsupportedMediaType(err error) bool {
	var he *echo.HTTPError
	return errors.As(err, &he) && he.Code == http.StatusUnsupportedMediaType
}
