package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/mindquest/internal/config"
	"github.com/gokatarajesh/mindquest/internal/game"
	"github.com/gokatarajesh/mindquest/internal/logging"
	httperrors "github.com/gokatarajesh/mindquest/pkg/http/errors"
)

// NewUpgrader builds a WebSocket upgrader that accepts the given origins.
// Requests without an Origin header (non-browser clients) are always accepted;
// "*" accepts everything.
func NewUpgrader(allowedOrigins []string) *websocket.Upgrader {
	allowAll := false
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = struct{}{}
	}

	return &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || allowAll {
				return true
			}
			_, ok := allowed[origin]
			return ok
		},
		Error:           upgradeError,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
}

// upgradeError writes failed handshakes as JSON error bodies.
func upgradeError(w http.ResponseWriter, r *http.Request, status int, reason error) {
	w.Header().Set("Sec-Websocket-Version", "13")
	if status == http.StatusForbidden {
		httperrors.RespondForbidden(w, httperrors.ErrCodeOriginNotAllowed, "Origin not allowed")
		return
	}
	httperrors.RespondError(w, status, httperrors.ErrCodeInvalidRequest, reason.Error())
}

// NewHTTPServer wires health, metrics and quiz routes.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, gatherer prometheus.Gatherer, quizHandler *game.Handler) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	mux.HandleFunc("/v1/quiz", quizHandler.HandleInfo)
	mux.HandleFunc("/ws/quiz", quizHandler.HandleWebSocket)

	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           withRequestLogger(logger, mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// withRequestLogger attaches a request-scoped logger to every request context.
func withRequestLogger(logger zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqLogger := logger.With().
			Str("request_id", uuid.NewString()).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Logger()
		next.ServeHTTP(w, r.WithContext(logging.IntoContext(r.Context(), reqLogger)))
	})
}
