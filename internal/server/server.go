// Package server exposes the quiz catalog, answer submission and result
// resolution over HTTP. It holds no per-respondent state: a finished quiz is
// carried entirely by its result link.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/abhisek/psyquest/internal/quiz"
	"github.com/abhisek/psyquest/internal/scoring"
)

// Catalog is the read access the server needs.
type Catalog interface {
	Test(id string) (*quiz.Test, error)
	Tests() []*quiz.Test
	Others(id string) []*quiz.Test
}

// Options configures a Server.
type Options struct {
	// BaseURL prefixes share links, e.g. https://quiz.example.
	BaseURL string
	// CacheSize bounds the result cache. Zero disables caching.
	CacheSize   int
	CORSOrigins []string
	Logger      *zap.Logger
	// Registry receives the server metrics. Nil creates a private registry.
	Registry *prometheus.Registry
}

type cacheKey struct {
	testID string
	data   string
	gender quiz.Gender
}

// Server serves the HTTP API.
type Server struct {
	cat      Catalog
	baseURL  string
	logger   *zap.Logger
	metrics  *Metrics
	registry *prometheus.Registry
	cache    *lru.Cache[cacheKey, *scoring.Resolution]
	engine   *gin.Engine
}

// New builds a Server and its routes.
func New(cat Catalog, opts Options) (*Server, error) {
	if cat == nil {
		return nil, errors.New("server: nil catalog")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	s := &Server{
		cat:      cat,
		baseURL:  opts.BaseURL,
		logger:   logger,
		metrics:  NewMetrics(reg),
		registry: reg,
	}
	if opts.CacheSize > 0 {
		cache, err := lru.New[cacheKey, *scoring.Resolution](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("create result cache: %w", err)
		}
		s.cache = cache
	}

	s.engine = s.routes(opts.CORSOrigins)
	return s, nil
}

func (s *Server) routes(origins []string) *gin.Engine {
	r := gin.New()
	r.Use(requestID(), accessLog(s.logger, s.metrics), recovery(s.logger))

	if len(origins) > 0 {
		cfg := cors.Config{
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Content-Type", "Accept", "Origin", headerRequestID},
			ExposeHeaders: []string{"Content-Length", headerRequestID},
			MaxAge:        12 * time.Hour,
		}
		if len(origins) == 1 && origins[0] == "*" {
			cfg.AllowAllOrigins = true
		} else {
			cfg.AllowOrigins = origins
		}
		r.Use(cors.New(cfg))
	}

	r.GET("/healthz", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	api := r.Group("/api/tests")
	{
		api.GET("", s.listTests)
		api.GET("/:id", s.getTest)
		api.GET("/:id/questions", s.getQuestions)
		api.POST("/:id/answers", s.submitAnswers)
		api.GET("/:id/result", s.getResult)
	}
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// resolve consults the cache before resolving. Only successful resolutions
// are cached.
func (s *Server) resolve(testID, data string, gender quiz.Gender) (*scoring.Resolution, error) {
	key := cacheKey{testID: testID, data: data, gender: gender}
	if s.cache != nil {
		if res, ok := s.cache.Get(key); ok {
			s.metrics.cacheLookups.WithLabelValues("hit").Inc()
			return res, nil
		}
		s.metrics.cacheLookups.WithLabelValues("miss").Inc()
	}

	res, err := scoring.Resolve(s.cat, testID, data, gender)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Add(key, res)
	}
	return res, nil
}
