package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/mindquest/internal/quiz"
	"github.com/gokatarajesh/mindquest/internal/session"
	httperrors "github.com/gokatarajesh/mindquest/pkg/http/errors"
	ws "github.com/gokatarajesh/mindquest/pkg/http/ws"
)

// Tracker observes session lifecycles and game events.
type Tracker interface {
	session.Observer
	SessionOpened()
	SessionClosed()
}

// Handler serves one quiz session per WebSocket connection.
type Handler struct {
	rules    quiz.Config
	load     session.LoadFunc
	hub      *ws.Hub
	upgrader *websocket.Upgrader
	tracker  Tracker
	base     zerolog.Logger
	logger   zerolog.Logger
}

// NewHandler creates a quiz WebSocket handler.
func NewHandler(rules quiz.Config, load session.LoadFunc, hub *ws.Hub, upgrader *websocket.Upgrader, tracker Tracker, logger zerolog.Logger) *Handler {
	return &Handler{
		rules:    rules,
		load:     load,
		hub:      hub,
		upgrader: upgrader,
		tracker:  tracker,
		base:     logger,
		logger:   logger.With().Str("component", "game_handler").Logger(),
	}
}

// HandleConnection runs a session for conn until the client disconnects or ctx ends.
func (h *Handler) HandleConnection(ctx context.Context, conn *websocket.Conn) {
	sessionID := uuid.New()
	logger := h.logger.With().Str("session_id", sessionID.String()).Logger()

	wsConn := ws.NewConnection(conn, logger)
	h.hub.RegisterConnection(sessionID, wsConn)
	go wsConn.WritePump()

	h.tracker.SessionOpened()
	defer h.tracker.SessionClosed()

	sess := session.New(sessionID, h.rules, session.Options{
		Load: h.load,
		OnUpdate: func(snap quiz.Snapshot) {
			h.pushState(sessionID, snap)
		},
		Observer: h.tracker,
	}, h.base)

	ctx, cancel := context.WithCancel(ctx)
	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		if err := sess.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn().Err(err).Msg("session stopped")
		}
	}()

	logger.Info().Msg("session opened")
	wsConn.ReadPump(func(msg ws.Message) error {
		return h.handleMessage(ctx, sess, msg)
	})

	// Cleanup on disconnect
	cancel()
	<-runDone
	h.hub.UnregisterConnection(sessionID)
	logger.Info().Msg("session closed")
}

// handleMessage routes incoming WebSocket messages.
func (h *Handler) handleMessage(ctx context.Context, sess *session.Session, msg ws.Message) error {
	switch msg.Type {
	case ws.TypeStart:
		if err := sess.Start(ctx); err != nil {
			return h.sendError(sess.ID(), msg.RequestID, errorCode(err), err.Error())
		}
		return nil
	case ws.TypeSubmitAnswer:
		var req ws.SubmitAnswerPayload
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return h.sendError(sess.ID(), msg.RequestID, httperrors.ErrCodeInvalidPayload, "Invalid submit_answer payload")
		}
		var err error
		if req.Round != 0 {
			err = sess.SubmitInRound(ctx, req.Round, req.Answer)
		} else {
			err = sess.Submit(ctx, req.Answer)
		}
		if err != nil {
			return h.sendError(sess.ID(), msg.RequestID, errorCode(err), err.Error())
		}
		return nil
	case ws.TypePing:
		return h.hub.SendToSession(sess.ID(), ws.Message{Type: ws.TypePong, RequestID: msg.RequestID})
	default:
		return h.sendError(sess.ID(), msg.RequestID, httperrors.ErrCodeUnknownMessageType, fmt.Sprintf("Unknown message type: %s", msg.Type))
	}
}

func (h *Handler) pushState(sessionID uuid.UUID, snap quiz.Snapshot) {
	msg, err := ws.NewMessage(ws.TypeState, toStatePayload(sessionID, snap))
	if err != nil {
		h.logger.Error().Err(err).Msg("marshal state")
		return
	}
	if err := h.hub.SendToSession(sessionID, msg); err != nil {
		h.logger.Warn().Err(err).Str("session_id", sessionID.String()).Msg("state push failed")
	}
}

func (h *Handler) sendError(sessionID uuid.UUID, requestID, code, message string) error {
	msg, err := ws.NewMessage(ws.TypeError, ws.ErrorPayload{Code: code, Message: message})
	if err != nil {
		return err
	}
	msg.RequestID = requestID
	return h.hub.SendToSession(sessionID, msg)
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, quiz.ErrQuizUnavailable):
		return httperrors.ErrCodeQuizUnavailable
	case errors.Is(err, quiz.ErrNotPlaying):
		return httperrors.ErrCodeNotPlaying
	case errors.Is(err, quiz.ErrFeedbackPending):
		return httperrors.ErrCodeAnswerPending
	case errors.Is(err, quiz.ErrUnknownOption):
		return httperrors.ErrCodeUnknownOption
	case errors.Is(err, quiz.ErrStaleRound):
		return httperrors.ErrCodeStaleRound
	case errors.Is(err, session.ErrClosed), errors.Is(err, context.Canceled):
		return httperrors.ErrCodeSessionClosed
	default:
		return httperrors.ErrCodeInternalError
	}
}

func toStatePayload(sessionID uuid.UUID, snap quiz.Snapshot) ws.StatePayload {
	out := ws.StatePayload{
		SessionID:       sessionID.String(),
		Phase:           string(snap.Phase),
		Round:           snap.Round,
		QuestionCount:   snap.Total,
		Score:           snap.Score,
		Lives:           snap.Lives,
		SecondsLeft:     snap.SecondsLeft,
		Selected:        snap.Selected,
		FeedbackVisible: snap.FeedbackVisible,
		ErrorMessage:    snap.ErrorMessage,
	}
	if snap.Question != nil {
		out.QuestionNumber = snap.CurrentIndex + 1
		out.Question = &ws.QuestionPayload{
			ID:      snap.Question.ID,
			Prompt:  snap.Question.Prompt,
			Options: snap.Question.Options,
		}
	}
	if snap.Feedback != nil {
		out.Feedback = &ws.FeedbackPayload{
			Correct:       snap.Feedback.Correct,
			TimedOut:      snap.Feedback.TimedOut,
			CorrectOption: snap.Feedback.CorrectOption,
		}
	}
	if snap.Result != nil {
		out.Result = &ws.ResultPayload{
			FinalScore: snap.Result.Score,
			Correct:    snap.Result.Correct,
			Answered:   snap.Result.Answered,
			Total:      snap.Result.Total,
			Accuracy:   snap.Result.Accuracy,
			LivesLeft:  snap.Result.LivesLeft,
		}
	}
	return out
}
