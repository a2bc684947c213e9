package scoring

// Config holds configurable scoring constants.
type Config struct {
	PointsPerCorrect int // default: 100
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{PointsPerCorrect: 100}
}

// Engine computes scores with configurable constants.
type Engine struct {
	config Config
}

// NewEngine creates a scoring engine with the provided config.
func NewEngine(config Config) *Engine {
	return &Engine{config: config}
}

// AnswerRecord is the outcome of one resolved question.
type AnswerRecord struct {
	QuestionOrder int    `json:"question_order"`
	QuestionID    int    `json:"question_id"`
	Answer        string `json:"answer,omitempty"`
	IsCorrect     bool   `json:"is_correct"`
	TimedOut      bool   `json:"timed_out"`
	ScoreEarned   int    `json:"score_earned"`
}

// Summary aggregates a finished game.
type Summary struct {
	Score    int
	Correct  int
	Answered int
	Accuracy float64
}

// CalculateScore returns the points for a single answer.
// A flat amount per correct answer: no partial credit, no time bonus.
func (e *Engine) CalculateScore(isCorrect bool) int {
	if !isCorrect {
		return 0
	}
	return e.config.PointsPerCorrect
}

// Summarize aggregates all answers into total score and accuracy.
func (e *Engine) Summarize(answers []AnswerRecord) Summary {
	if len(answers) == 0 {
		return Summary{}
	}

	var s Summary
	for _, ans := range answers {
		s.Score += ans.ScoreEarned
		if ans.IsCorrect {
			s.Correct++
		}
	}
	s.Answered = len(answers)
	s.Accuracy = float64(s.Correct) / float64(s.Answered)
	return s
}
