package game

import (
	"encoding/json"
	"net/http"

	"github.com/gokatarajesh/mindquest/internal/logging"
	"github.com/gokatarajesh/mindquest/internal/quiz"
	httperrors "github.com/gokatarajesh/mindquest/pkg/http/errors"
)

// InfoResponse describes the quiz served by this instance.
type InfoResponse struct {
	QuestionCount    int   `json:"question_count"`
	TimerSeconds     int   `json:"timer_seconds"`
	StartingLives    int   `json:"starting_lives"`
	PointsPerCorrect int   `json:"points_per_correct"`
	FeedbackDelayMs  int64 `json:"feedback_delay_ms"`
}

// HandleWebSocket upgrades the HTTP connection and runs a quiz session on it.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logger.Warn().Err(err).Str("origin", r.Header.Get("Origin")).Msg("WebSocket upgrade failed")
		return
	}

	h.HandleConnection(r.Context(), conn)
}

// HandleInfo responds with the quiz settings and question count.
// Route: GET /v1/quiz
func (h *Handler) HandleInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	set, err := h.load()
	if err != nil {
		logger := logging.FromContext(r.Context())
		logger.Error().Err(err).Msg("question set unavailable")
		httperrors.RespondServiceUnavailable(w, httperrors.ErrCodeQuizUnavailable, quiz.LoadFailureMessage)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(InfoResponse{
		QuestionCount:    set.Len(),
		TimerSeconds:     h.rules.TimerSeconds,
		StartingLives:    h.rules.StartingLives,
		PointsPerCorrect: h.rules.PointsPerCorrect,
		FeedbackDelayMs:  h.rules.FeedbackDelay.Milliseconds(),
	})
}
