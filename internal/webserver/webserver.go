package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/autimapro/autimapro/config"
	"github.com/autimapro/autimapro/pkg/metrics"
)

// WebServer wraps the echo instance with the storefront's middleware stack:
// CORS, panic recovery, zap request logging and request metrics.
type WebServer struct {
	cfg  *config.AppConfig
	root *echo.Echo
}

func NewWebServer(cfg *config.AppConfig) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonSerializer{}

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Web.CorsOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(requestLogger())

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Welcome to Autima Pro")
	})

	return &WebServer{cfg: cfg, root: e}
}

// Echo exposes the underlying router for route registration and tests.
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

// Start runs the listener until ctx is canceled, then shuts down gracefully.
func (s *WebServer) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Web.Host, s.cfg.Web.Port)

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("manufacturer server running", zap.String("addr", addr))
		errCh <- s.root.Start(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.root.Shutdown(shutdownCtx)
	}
}

func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			metrics.IncrCounter("http_requests", 1)
			zap.L().Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)))
			return nil
		}
	}
}

var jsonFast = jsoniter.ConfigCompatibleWithStandardLibrary

// jsonSerializer routes echo's JSON codec through json-iterator.
type jsonSerializer struct{}

func (jsonSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := jsonFast.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (jsonSerializer) Deserialize(c echo.Context, i interface{}) error {
	if err := jsonFast.NewDecoder(c.Request().Body).Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}
