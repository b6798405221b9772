// Package server renders the portfolio page and its HTMX fragments, accepts
// contact messages and hosts the admin area.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/tanimomor/portfolio/internal/config"
	"github.com/tanimomor/portfolio/internal/contact"
	"github.com/tanimomor/portfolio/internal/content"
	"github.com/tanimomor/portfolio/internal/schedule"
	"github.com/tanimomor/portfolio/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	serviceName = "portfolio"

	// visitRetention is how long hashed visitor rows are kept.
	visitRetention = 365 * 24 * time.Hour
	retentionSweep = 24 * time.Hour
)

// Deps are the collaborators a Server is built from.
type Deps struct {
	Config  config.Config
	Catalog *content.Catalog
	Store   *store.Store
	Contact *contact.Service
	Logger  *zap.Logger

	// TracerProvider enables request tracing when set.
	TracerProvider trace.TracerProvider
	// Scheduler runs the visitor retention sweep. Defaults to the wall clock.
	Scheduler schedule.Scheduler
	Now       func() time.Time
}

type Server struct {
	cfg     config.Config
	catalog *content.Catalog
	store   *store.Store
	contact *contact.Service
	logger  *zap.Logger
	now     func() time.Time
	jobs    *schedule.Group
	admin   *adminAuth

	router *gin.Engine
	bg     sync.WaitGroup
}

func New(d Deps) (*Server, error) {
	if d.Catalog == nil || d.Store == nil || d.Contact == nil {
		return nil, errors.New("server: catalog, store and contact service are required")
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Scheduler == nil {
		d.Scheduler = schedule.Clock{}
	}
	admin, err := newAdminAuth(d.Config, d.Logger)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:     d.Config,
		catalog: d.Catalog,
		store:   d.Store,
		contact: d.Contact,
		logger:  d.Logger,
		now:     d.Now,
		jobs:    schedule.NewGroup(d.Scheduler),
		admin:   admin,
	}

	tmpl, err := template.New("").Funcs(s.funcs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(requestLogger(s.logger), gin.Recovery())
	if d.TracerProvider != nil {
		r.Use(otelgin.Middleware(serviceName, otelgin.WithTracerProvider(d.TracerProvider)))
	}
	r.Use(s.visitorTracking())
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(static))

	s.routes(r)
	s.adminRoutes(r)
	s.router = r
	return s, nil
}

func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	s.startRetention(ctx)
	defer s.Close()

	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Portfolio listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Close stops background jobs and waits for pending visitor writes.
func (s *Server) Close() {
	s.jobs.CancelAll()
	s.bg.Wait()
}

func (s *Server) startRetention(ctx context.Context) {
	s.purgeOldVisits(ctx)
	s.jobs.Every(retentionSweep, func() { s.purgeOldVisits(ctx) })
}

// purgeOldVisits removes visitor rows older than the retention window.
func (s *Server) purgeOldVisits(ctx context.Context) int64 {
	n, err := s.store.PurgeVisitsBefore(ctx, s.now().Add(-visitRetention))
	if err != nil {
		s.logger.Error("Error cleaning up old visitor data", zap.Error(err))
		return 0
	}
	if n > 0 {
		s.logger.Info("Privacy cleanup removed old visitor records", zap.Int64("rows", n))
	}
	return n
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			logger.Error("request", append(fields, zap.String("errors", c.Errors.String()))...)
			return
		}
		logger.Debug("request", fields...)
	}
}

// visitorTracking records page views with a hashed client IP. Static assets,
// the admin area and the privacy page are not counted, and DNT is honoured.
func (s *Server) visitorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !trackable(c.Request) || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		visit := store.Visit{
			HashedIP:  s.admin.hashIP(c.ClientIP()),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      c.Request.URL.Path,
			Timestamp: s.now(),
		}
		s.bg.Add(1)
		go func() {
			defer s.bg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.store.RecordVisit(ctx, visit); err != nil {
				s.logger.Warn("Error recording visitor", zap.Error(err))
			}
		}()
		c.Next()
	}
}

// trackable reports whether a request counts as a page view. Fragments
// requested by htmx from an already counted page are skipped.
func trackable(r *http.Request) bool {
	if r.Method != http.MethodGet || r.Header.Get("HX-Request") == "true" {
		return false
	}
	for _, prefix := range []string{"/static/", "/admin", "/favicon", "/privacy", "/api/", "/health"} {
		if strings.HasPrefix(r.URL.Path, prefix) {
			return false
		}
	}
	return true
}
