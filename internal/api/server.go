package api

import (
	"io/fs"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/satriahrh/voxverify/usecase"
)

// Options configures the HTTP surface
type Options struct {
	// BodyLimit caps request bodies, e.g. "50M"
	BodyLimit string
	// Assets is the UI tree; nil disables static serving
	Assets fs.FS
}

// NewServer builds the echo instance with middleware and routes
func NewServer(service *usecase.DetectionService, opts Options, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(logger)

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(logger))
	e.Use(CORS())
	if opts.BodyLimit != "" {
		e.Use(middleware.BodyLimit(opts.BodyLimit))
	}
	if opts.Assets != nil {
		e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
			Skipper:    skipUnlessRead,
			Index:      "index.html",
			HTML5:      true,
			Filesystem: http.FS(opts.Assets),
		}))
	}

	InitRoutes(e, service, logger)

	return e
}

// skipUnlessRead keeps POST and friends away from the static tree
func skipUnlessRead(c echo.Context) bool {
	m := c.Request().Method
	return m != http.MethodGet && m != http.MethodHead
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("request_id", v.RequestID),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			logger.Info("HTTP request", fields...)
			return nil
		},
	})
}
