package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/coinverse/CoinverseBot_Go/internal/admin"
	"github.com/coinverse/CoinverseBot_Go/internal/crafting"
	"github.com/coinverse/CoinverseBot_Go/internal/database"
	"github.com/coinverse/CoinverseBot_Go/internal/economy"
	"github.com/coinverse/CoinverseBot_Go/internal/gamble"
	"github.com/coinverse/CoinverseBot_Go/internal/handler"
	"github.com/coinverse/CoinverseBot_Go/internal/logger"
	"github.com/coinverse/CoinverseBot_Go/internal/lootbox"
	"github.com/coinverse/CoinverseBot_Go/internal/metrics"
	"github.com/coinverse/CoinverseBot_Go/internal/quest"
	"github.com/coinverse/CoinverseBot_Go/internal/season"
	"github.com/coinverse/CoinverseBot_Go/internal/user"
)

// Services bundles the service dependencies the router wires up.
type Services struct {
	User     user.Service
	Economy  economy.Service
	Lootbox  lootbox.Service
	Gamble   gamble.Service
	Crafting crafting.Service
	Season   season.Service
	Quest    quest.Service
	Admin    admin.Service
}

// Server is the HTTP front of the economy engine.
type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, svcs Services) *Server {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			r.Post("/register", handler.HandleRegisterUser(svcs.User))
			r.Get("/profile", handler.HandleGetProfile(svcs.User))
			r.Get("/inventory", handler.HandleGetInventory(svcs.User))
			r.Get("/referral", handler.HandleGetReferral(svcs.User))
		})

		r.Route("/container", func(r chi.Router) {
			r.Get("/", handler.HandleListContainers(svcs.Lootbox))
			r.Post("/open", handler.HandleOpenContainer(svcs.Lootbox))
		})

		r.Post("/bet", handler.HandlePlaceBet(svcs.Gamble))
		r.Post("/bonus/claim", handler.HandleClaimBonus(svcs.Economy))
		r.Post("/craft", handler.HandleCraft(svcs.Crafting))
		r.Get("/recipes", handler.HandleListRecipes(svcs.Crafting))
		r.Post("/exchange", handler.HandleExchange(svcs.Economy))
		r.Get("/quests", handler.HandleGetQuests(svcs.Quest))
		r.Get("/leaderboard", handler.HandleGetLeaderboard(svcs.User))
		r.Post("/feedback", handler.HandleFeedback(svcs.Admin))
		r.Post("/season/xp", handler.HandleGrantSeasonXP(svcs.Season))

		r.Route("/admin", func(r chi.Router) {
			r.Post("/credit", handler.HandleAdminCredit(svcs.Economy))
			r.Post("/item", handler.HandleAdminGrantItem(svcs.Admin))
			r.Post("/broadcast", handler.HandleAdminBroadcast(svcs.Admin))
			r.Post("/giveaway", handler.HandleAdminGiveaway(svcs.Economy))
			r.Get("/stats", handler.HandleAdminStats(svcs.Admin))
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool: dbPool,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Health and metrics probes are noise at info level
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, "Authorization") {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug("Request headers", "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
