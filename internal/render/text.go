// Package render draws quiz snapshots as plain text for terminal clients.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/gokatarajesh/mindquest/internal/quiz"
)

const (
	Title   = "MindQuest"
	Tagline = "Engage, learn, and conquer the quiz world!"
)

const heart = "♥"

// Text writes the screen for snap's phase to w.
func Text(w io.Writer, snap quiz.Snapshot) error {
	var b strings.Builder
	switch snap.Phase {
	case quiz.PhasePlaying:
		playing(&b, snap)
	case quiz.PhaseFinished:
		finished(&b, snap)
	default:
		start(&b, snap)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func start(b *strings.Builder, snap quiz.Snapshot) {
	fmt.Fprintf(b, "%s\n%s\n\n", Title, Tagline)
	if snap.ErrorMessage != "" {
		fmt.Fprintf(b, "! %s\n\n", snap.ErrorMessage)
	}
	b.WriteString("[s] Start Quiz   [q] Quit\n")
}

func playing(b *strings.Builder, snap quiz.Snapshot) {
	fmt.Fprintf(b, "Score: %d   Lives: %s   Time: %ds\n\n",
		snap.Score, strings.Repeat(heart, snap.Lives), snap.SecondsLeft)

	if snap.Question == nil {
		return
	}
	fmt.Fprintf(b, "Q%d/%d  %s\n\n", snap.CurrentIndex+1, snap.Total, snap.Question.Prompt)
	for i, option := range snap.Question.Options {
		marker := " "
		if snap.FeedbackVisible && option == snap.Selected {
			marker = ">"
		}
		fmt.Fprintf(b, "%s [%d] %s\n", marker, i+1, option)
	}
	b.WriteString("\n")

	if snap.FeedbackVisible && snap.Feedback != nil {
		switch {
		case snap.Feedback.Correct:
			b.WriteString("Correct!\n")
		case snap.Feedback.TimedOut:
			fmt.Fprintf(b, "Time's up! The answer was %s.\n", snap.Feedback.CorrectOption)
		default:
			fmt.Fprintf(b, "Wrong! The answer was %s.\n", snap.Feedback.CorrectOption)
		}
		return
	}
	fmt.Fprintf(b, "[1-%d] Answer   [s] Restart   [q] Quit\n", len(snap.Question.Options))
}

func finished(b *strings.Builder, snap quiz.Snapshot) {
	b.WriteString("Quiz Complete!\n\n")
	fmt.Fprintf(b, "Final Score: %d\n", snap.Score)
	if res := snap.Result; res != nil {
		fmt.Fprintf(b, "Correct: %d/%d   Accuracy: %.0f%%   Lives left: %d\n",
			res.Correct, res.Total, res.Accuracy*100, res.LivesLeft)
	}
	b.WriteString("\n[s] Play Again   [q] Quit\n")
}
