package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/johnquangdev/legalmind/errors"
	"github.com/johnquangdev/legalmind/pkg/config"
)

const healthCheckTimeout = 3 * time.Second

// Pinger reports whether a backing service is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// BucketInspector describes the archive bucket
type BucketInspector interface {
	GetBucketInfo(ctx context.Context) (map[string]interface{}, error)
}

// RouterDeps holds the handlers and optional backends behind the routes
type RouterDeps struct {
	Legal  *Legal
	Zoom   *Zoom
	Cache  Pinger
	Bucket BucketInspector
	Logger *zap.Logger
}

// Router holds all handlers
type Router struct {
	cfg    *config.Config
	legal  *Legal
	zoom   *Zoom
	cache  Pinger
	bucket BucketInspector
	logger *zap.Logger
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, deps RouterDeps) *Router {
	return &Router{
		cfg:    cfg,
		legal:  deps.Legal,
		zoom:   deps.Zoom,
		cache:  deps.Cache,
		bucket: deps.Bucket,
		logger: deps.Logger,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1")

	rt.setupMeetingRoutes(v1)
	rt.setupDashboardRoutes(v1)
	rt.setupZoomRoutes(v1)
}

// setupMeetingRoutes configures bot, transcript and meeting routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	g.GET("/domains", rt.legal.ListDomains)

	bots := g.Group("/bots")
	bots.POST("", rt.legal.JoinMeeting)
	bots.GET("/:id/status", rt.legal.BotStatus)
	bots.GET("/:id/transcript", rt.legal.BotTranscript)
	bots.POST("/:id/process", rt.legal.ProcessNow)
	bots.POST("/:id/leave", rt.legal.LeaveMeeting)

	g.POST("/transcripts/analyze", rt.legal.AnalyzeTranscript)
	g.POST("/recordings/transcribe", rt.legal.TranscribeRecording)

	meetings := g.Group("/meetings")
	meetings.GET("", rt.legal.ListMeetings)
	meetings.GET("/:id", rt.legal.GetMeeting)
	meetings.GET("/:id/archive", rt.legal.GetMeetingArchive)
}

// setupDashboardRoutes configures action, insight and dashboard routes
func (rt *Router) setupDashboardRoutes(g *echo.Group) {
	actions := g.Group("/actions")
	actions.GET("", rt.legal.ListActions)
	actions.GET("/:id", rt.legal.GetAction)
	actions.PATCH("/:id/status", rt.legal.UpdateActionStatus)

	insights := g.Group("/insights")
	insights.GET("", rt.legal.ListInsights)
	insights.GET("/:id", rt.legal.GetInsight)

	g.GET("/dashboard/stats", rt.legal.Stats)
	g.POST("/demo", rt.legal.LoadDemo)
	g.DELETE("/data", rt.legal.ClearData)
}

// setupZoomRoutes configures Zoom OAuth routes
func (rt *Router) setupZoomRoutes(g *echo.Group) {
	if rt.zoom == nil {
		g.GET("/auth/zoom/login", rt.notImplemented)
		g.GET("/auth/zoom/callback", rt.notImplemented)
		g.GET("/zoom/meetings", rt.notImplemented)
		return
	}
	g.GET("/auth/zoom/login", rt.zoom.Login)
	g.GET("/auth/zoom/callback", rt.zoom.Callback)
	g.GET("/zoom/meetings", rt.zoom.ListMeetings)
}

// notImplemented answers routes whose backend is not configured
func (rt *Router) notImplemented(c echo.Context) error {
	return HandleError(rt.logger, c, errors.ErrAIServiceUnavailable(c.Path()))
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	body := map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
		"domains":     len(config.LegalDomains()),
	}

	if rt.cache != nil {
		if err := rt.cache.Ping(ctx); err != nil {
			return HandleError(rt.logger, c, errors.ErrCacheFailed("ping", err))
		}
		body["redis"] = "ok"
	}

	if rt.bucket != nil {
		info, err := rt.bucket.GetBucketInfo(ctx)
		if err != nil {
			return HandleError(rt.logger, c, errors.ErrStorageFailed("bucket_info", err))
		}
		body["storage"] = info
	}

	return c.JSON(http.StatusOK, body)
}
