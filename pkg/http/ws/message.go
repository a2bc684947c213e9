package ws

import "encoding/json"

// MessageType constants for WebSocket protocol.
const (
	// Client -> Server
	TypeStart        = "start"
	TypeSubmitAnswer = "submit_answer"
	TypePing         = "ping"

	// Server -> Client
	TypeState = "state"
	TypeError = "error"
	TypePong  = "pong"
)

// Message wraps all WebSocket payloads with type and optional request ID.
type Message struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
}

// NewMessage marshals payload into a typed message.
func NewMessage(msgType string, payload any) (Message, error) {
	msg := Message{Type: msgType}
	if payload == nil {
		return msg, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	msg.Payload = raw
	return msg, nil
}

// Client Messages (incoming)

// SubmitAnswerPayload answers the current question. When Round is set, the
// answer is rejected unless that round is still on screen.
type SubmitAnswerPayload struct {
	Answer string `json:"answer"`
	Round  uint64 `json:"round,omitempty"`
}

// Server Messages (outgoing)

// StatePayload is the full render state pushed after every transition.
type StatePayload struct {
	SessionID       string           `json:"session_id"`
	Phase           string           `json:"phase"`
	Round           uint64           `json:"round"`
	QuestionNumber  int              `json:"question_number,omitempty"` // 1-based, while playing
	QuestionCount   int              `json:"question_count"`
	Question        *QuestionPayload `json:"question,omitempty"`
	Score           int              `json:"score"`
	Lives           int              `json:"lives"`
	SecondsLeft     int              `json:"seconds_left"`
	Selected        string           `json:"selected,omitempty"`
	FeedbackVisible bool             `json:"feedback_visible"`
	Feedback        *FeedbackPayload `json:"feedback,omitempty"`
	ErrorMessage    string           `json:"error_message,omitempty"`
	Result          *ResultPayload   `json:"result,omitempty"`
}

type QuestionPayload struct {
	ID      int      `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

type FeedbackPayload struct {
	Correct       bool   `json:"correct"`
	TimedOut      bool   `json:"timed_out"`
	CorrectOption string `json:"correct_option"`
}

type ResultPayload struct {
	FinalScore int     `json:"final_score"`
	Correct    int     `json:"correct"`
	Answered   int     `json:"answered"`
	Total      int     `json:"total"`
	Accuracy   float64 `json:"accuracy"`
	LivesLeft  int     `json:"lives_left"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
