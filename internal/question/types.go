package question

import (
	"errors"
	"fmt"
	"strings"
)

// OptionCount is the number of choices every question carries.
const OptionCount = 4

// ErrInvalidQuestion marks a question that breaks the data set rules.
var ErrInvalidQuestion = errors.New("invalid question")

// Question is a single multiple-choice prompt. Immutable once loaded.
type Question struct {
	ID      int      `yaml:"id" json:"id"`
	Prompt  string   `yaml:"question" json:"prompt"`
	Options []string `yaml:"options" json:"options"`
	Answer  string   `yaml:"correct_answer" json:"-"` // server-side only
}

// IsCorrect reports whether choice matches the correct option exactly.
func (q Question) IsCorrect(choice string) bool {
	return choice == q.Answer
}

// HasOption reports whether choice is one of the question's options.
func (q Question) HasOption(choice string) bool {
	for _, opt := range q.Options {
		if opt == choice {
			return true
		}
	}
	return false
}

// Set is the ordered question list for a session. Order is presentation order.
type Set struct {
	questions []Question
}

// NewSet validates questions and wraps them in a Set.
func NewSet(questions []Question) (Set, error) {
	if len(questions) == 0 {
		return Set{}, errors.New("question set is empty")
	}
	seen := make(map[int]struct{}, len(questions))
	for i, q := range questions {
		if err := validate(q); err != nil {
			return Set{}, fmt.Errorf("question %d: %w", i+1, err)
		}
		if _, dup := seen[q.ID]; dup {
			return Set{}, fmt.Errorf("question %d: %w: duplicate id %d", i+1, ErrInvalidQuestion, q.ID)
		}
		seen[q.ID] = struct{}{}
	}
	cp := make([]Question, len(questions))
	copy(cp, questions)
	return Set{questions: cp}, nil
}

// Len returns the number of questions.
func (s Set) Len() int { return len(s.questions) }

// At returns the question at index i.
func (s Set) At(i int) Question { return s.questions[i] }

func validate(q Question) error {
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("%w: empty prompt", ErrInvalidQuestion)
	}
	if len(q.Options) != OptionCount {
		return fmt.Errorf("%w: want %d options, got %d", ErrInvalidQuestion, OptionCount, len(q.Options))
	}
	unique := make(map[string]struct{}, len(q.Options))
	for _, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("%w: empty option", ErrInvalidQuestion)
		}
		if _, dup := unique[opt]; dup {
			return fmt.Errorf("%w: duplicate option %q", ErrInvalidQuestion, opt)
		}
		unique[opt] = struct{}{}
	}
	if !q.HasOption(q.Answer) {
		return fmt.Errorf("%w: correct answer %q not among options", ErrInvalidQuestion, q.Answer)
	}
	return nil
}
