// Package devserver is a development stand-in for the remote scoring
// service. It serves the real wire contract with canned data so the
// pipeline can be exercised offline; it is not a scoring engine.
package devserver

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"go-nutriscan/internal/config"
	"go-nutriscan/internal/logger"
	"go-nutriscan/internal/scoring"
)

// Server wraps the gin engine and its configuration.
type Server struct {
	cfg    config.DevServerConfig
	engine *gin.Engine
}

type analyzeRequest struct {
	Ingredients string `json:"ingredients" binding:"required"`
	ProductName string `json:"product_name"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// New builds a configured dev server.
func New(cfg config.DevServerConfig) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		requestSizeLimiter(cfg.MaxRequestBodySize),
		rateLimiter(rate.Limit(cfg.RatePerSecond), cfg.RatePerSecond*2),
	)

	engine.GET("/", health)
	engine.POST("/analyze", analyze)

	return &Server{cfg: cfg, engine: engine}
}

// Handler exposes the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.cfg.ServerAddress(),
		Handler:      s.engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("address", s.cfg.ServerAddress()).Info("Starting dev scoring server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down dev scoring server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"mode":    "development canned data",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": "1.0.0",
	})
}

func analyze(c *gin.Context) {
	start := time.Now()

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WithError(err).WithField("ip", c.ClientIP()).Error("Invalid analyze request")
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{
			Error:   http.StatusText(http.StatusBadRequest),
			Message: "ingredients field is required",
		})
		return
	}
	if req.ProductName == "" {
		req.ProductName = scoring.DefaultProductName
	}

	names := splitIngredients(req.Ingredients)
	if len(names) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{
			Error:   http.StatusText(http.StatusBadRequest),
			Message: "no ingredients could be parsed",
		})
		return
	}

	result := analyzeIngredients(names, req.ProductName)

	logger.WithFields(logrus.Fields{
		"ingredients":        len(names),
		"final_score":        result.FinalScore,
		"processing_time_ms": time.Since(start).Milliseconds(),
		"ip":                 c.ClientIP(),
	}).Info("Canned analysis served")

	c.JSON(http.StatusOK, result)
}

func splitIngredients(raw string) []string {
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}

func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// maxTrackedClients caps the rate limiter's per-IP state.
const maxTrackedClients = 1024

// clientLimiters keeps one token bucket per client IP. The map is
// bounded: once full, the longest-tracked client is evicted and starts
// over with a fresh bucket on its next request.
type clientLimiters struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	max     int
	order   []string
	buckets map[string]*rate.Limiter
}

func newClientLimiters(limit rate.Limit, burst, max int) *clientLimiters {
	return &clientLimiters{
		limit:   limit,
		burst:   burst,
		max:     max,
		buckets: make(map[string]*rate.Limiter),
	}
}

func (cl *clientLimiters) get(ip string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if limiter, ok := cl.buckets[ip]; ok {
		return limiter
	}
	if len(cl.order) >= cl.max {
		oldest := cl.order[0]
		cl.order = cl.order[1:]
		delete(cl.buckets, oldest)
	}

	limiter := rate.NewLimiter(cl.limit, cl.burst)
	cl.buckets[ip] = limiter
	cl.order = append(cl.order, ip)
	return limiter
}

func rateLimiter(limit rate.Limit, burst int) gin.HandlerFunc {
	limiters := newClientLimiters(limit, burst, maxTrackedClients)

	return func(c *gin.Context) {
		if !limiters.get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{
				Error: http.StatusText(http.StatusTooManyRequests),
			})
			return
		}
		c.Next()
	}
}
