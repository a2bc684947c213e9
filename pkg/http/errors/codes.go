package errors

// Error codes for standardized error responses
const (
	// Validation errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Gameplay errors
	ErrCodeQuizUnavailable = "quiz_unavailable"
	ErrCodeNotPlaying      = "not_playing"
	ErrCodeAnswerPending   = "answer_pending"
	ErrCodeUnknownOption   = "unknown_option"
	ErrCodeStaleRound      = "stale_round"
	ErrCodeSessionClosed   = "session_closed"

	// WebSocket errors
	ErrCodeInvalidPayload     = "invalid_payload"
	ErrCodeUnknownMessageType = "unknown_message_type"
	ErrCodeOriginNotAllowed   = "origin_not_allowed"

	// Server errors
	ErrCodeInternalError = "internal_error"
)
