// Package rest exposes the authentication API over HTTP using gin.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Shivamkillarikar/CityGuardian/internal/api"
	"github.com/Shivamkillarikar/CityGuardian/internal/logging"
	"github.com/Shivamkillarikar/CityGuardian/internal/server/auth"
	"github.com/Shivamkillarikar/CityGuardian/internal/server/models"
	"github.com/Shivamkillarikar/CityGuardian/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

// UserService is the business layer the handlers call into.
type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	GetProfile(ctx context.Context, subjectID string) (*models.PublicUser, error)
}

// TokenVerifier checks session tokens presented by clients.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type Options struct {
	Address        string
	AllowedOrigins []string
}

type HTTPServer struct {
	address  string
	origins  []string
	users    UserService
	tokens   TokenVerifier
	logger   logging.Logger
	registry *prometheus.Registry
	metrics  *Metrics
	now      func() time.Time
}

// NewHTTPServer wires handlers to the given services. A nil registry gets a
// fresh one with the Go and process collectors.
func NewHTTPServer(opts Options, l logging.Logger, us UserService, tv TokenVerifier, reg *prometheus.Registry) *HTTPServer {
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	return &HTTPServer{
		address:  opts.Address,
		origins:  opts.AllowedOrigins,
		users:    us,
		tokens:   tv,
		logger:   l.With("module", "http_server"),
		registry: reg,
		metrics:  NewMetrics(reg),
		now:      time.Now,
	}
}

// Router builds the gin engine with all routes and middleware.
func (s *HTTPServer) Router() *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		s.requestLogger(),
		s.metrics.middleware(),
		securityHeaders(),
		corsMiddleware(s.origins),
	)

	r.POST(api.RegisterPath, s.register)
	r.POST(api.LoginPath, s.login)
	r.GET(api.ProfilePath, s.authenticated(s.profile))
	r.GET(api.HealthPath, s.health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "Route not found", Code: api.CodeNotFound})
	})

	return r
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", logging.ErrorAttrs(err)...)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
