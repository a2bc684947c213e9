package quiz

import "errors"

// LoadFailureMessage is shown when the question set could not be loaded.
const LoadFailureMessage = "Failed to load quiz data. Please try again."

var (
	ErrQuizUnavailable = errors.New("quiz data not loaded")
	ErrNotPlaying      = errors.New("quiz is not in progress")
	ErrFeedbackPending = errors.New("answer already submitted for this question")
	ErrUnknownOption   = errors.New("choice is not one of the current options")
	ErrStaleRound      = errors.New("choice was made for a question no longer shown")
)
