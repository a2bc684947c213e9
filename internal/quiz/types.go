package quiz

import "github.com/gokatarajesh/mindquest/internal/question"

// Phase is the coarse state of a session.
type Phase string

const (
	PhaseStart    Phase = "start"
	PhasePlaying  Phase = "playing"
	PhaseFinished Phase = "finished"
)

// Feedback describes the outcome shown during the feedback window.
type Feedback struct {
	Correct       bool
	TimedOut      bool
	CorrectOption string
}

// Result summarizes a finished game.
type Result struct {
	Score     int
	Correct   int
	Answered  int
	Total     int
	Accuracy  float64
	LivesLeft int
}

// Snapshot is a read-only copy of the game state taken after a transition.
type Snapshot struct {
	Phase           Phase
	Round           uint64
	CurrentIndex    int
	Total           int
	Question        *question.Question // set while playing
	Score           int
	Lives           int
	SecondsLeft     int
	Selected        string // empty when nothing is selected
	FeedbackVisible bool
	Feedback        *Feedback // set while FeedbackVisible
	ErrorMessage    string
	Result          *Result // set once finished
}
