// Package server runs the gin engine that hosts the generator endpoints.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/tigerroll/wpgen/pkg/generator/core/config"
	"github.com/tigerroll/wpgen/pkg/generator/interfaces/http/handler"
	"github.com/tigerroll/wpgen/pkg/generator/support/util/logger"
)

// NewEngine builds the gin engine with tracing, request logging and panic recovery.
func NewEngine(cfg config.ServerConfig, telemetry config.TelemetryConfig, tp trace.TracerProvider, h *handler.Handler) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	r := gin.New()
	r.Use(otelgin.Middleware(serviceName(telemetry), otelgin.WithTracerProvider(tp)))
	r.Use(RequestLogger(logger.Sugar().Desugar()))
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Errorf("Panic while serving %s: %v", c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, handler.Response{
			Success: false,
			Data:    "Something went wrong while performing this action.",
		})
	}))
	h.Register(r)
	return r
}

func serviceName(cfg config.TelemetryConfig) string {
	if cfg.ServiceName == "" {
		return "wpgen"
	}
	return cfg.ServiceName
}

// RequestLogger logs every request with its status and latency.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}
		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}

// NewServer creates the http.Server and binds it to the fx lifecycle.
func NewServer(lc fx.Lifecycle, cfg config.ServerConfig, engine *gin.Engine) *http.Server {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Infof("Listening on %s.", ln.Addr())
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Errorf("HTTP server stopped: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Infof("Shutting down the HTTP server.")
			return srv.Shutdown(ctx)
		},
	})
	return srv
}
