package quiz

import (
	"github.com/gokatarajesh/mindquest/internal/question"
	"github.com/gokatarajesh/mindquest/internal/quiz/scoring"
)

// Engine is the quiz state machine: start -> playing -> finished.
//
// It owns no timers. Ticks and the end of the feedback window are fed in
// from outside (see the session package), which also serializes calls:
// an Engine is not safe for concurrent use.
type Engine struct {
	cfg    Config
	scorer *scoring.Engine

	set    question.Set
	loaded bool

	phase        Phase
	round        uint64
	index        int
	score        int
	lives        int
	secondsLeft  int
	selected     string
	feedback     *Feedback
	errorMessage string
	answers      []scoring.AnswerRecord
	result       *Result
}

// NewEngine creates an engine in the start phase with no question set loaded.
func NewEngine(cfg Config) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		cfg:         cfg,
		scorer:      scoring.NewEngine(scoring.Config{PointsPerCorrect: cfg.PointsPerCorrect}),
		phase:       PhaseStart,
		lives:       cfg.StartingLives,
		secondsLeft: cfg.TimerSeconds,
	}
}

// Config returns the effective game rules.
func (e *Engine) Config() Config { return e.cfg }

// Loaded reports whether a question set is available.
func (e *Engine) Loaded() bool { return e.loaded }

// Load installs the result of loading the question set. A load error leaves
// the engine unusable for playing and surfaces LoadFailureMessage.
func (e *Engine) Load(set question.Set, err error) {
	if err != nil || set.Len() == 0 {
		e.loaded = false
		e.errorMessage = LoadFailureMessage
		return
	}
	e.set = set
	e.loaded = true
	e.errorMessage = ""
}

// Start resets the game and enters the playing phase. Valid from any phase.
func (e *Engine) Start() error {
	if !e.loaded {
		e.errorMessage = LoadFailureMessage
		return ErrQuizUnavailable
	}
	e.phase = PhasePlaying
	e.index = 0
	e.score = 0
	e.lives = e.cfg.StartingLives
	e.secondsLeft = e.cfg.TimerSeconds
	e.selected = ""
	e.feedback = nil
	e.errorMessage = ""
	e.answers = e.answers[:0]
	e.result = nil
	e.round++
	return nil
}

// Tick advances the countdown by one step. It reports whether the tick was
// applied; ticks outside an unanswered question are ignored. Reaching zero
// resolves the question as a wrong answer.
func (e *Engine) Tick() bool {
	if !e.CountdownActive() {
		return false
	}
	e.secondsLeft--
	if e.secondsLeft == 0 {
		e.resolve("", true)
	}
	return true
}

// SubmitAnswer resolves the current question with choice.
func (e *Engine) SubmitAnswer(choice string) error {
	if e.phase != PhasePlaying {
		return ErrNotPlaying
	}
	if e.feedback != nil {
		return ErrFeedbackPending
	}
	if !e.current().HasOption(choice) {
		return ErrUnknownOption
	}
	e.resolve(choice, false)
	return nil
}

// SubmitAnswerInRound is SubmitAnswer for a choice made while round was on
// screen. A choice from an earlier round is rejected with ErrStaleRound.
func (e *Engine) SubmitAnswerInRound(round uint64, choice string) error {
	if e.phase != PhasePlaying {
		return ErrNotPlaying
	}
	if round != e.round {
		return ErrStaleRound
	}
	return e.SubmitAnswer(choice)
}

// Advance closes the feedback window opened in round. Stale rounds are
// ignored. It reports whether the state changed.
func (e *Engine) Advance(round uint64) bool {
	if e.phase != PhasePlaying || e.feedback == nil || round != e.round {
		return false
	}
	if e.index+1 < e.set.Len() && e.lives > 0 {
		e.index++
		e.secondsLeft = e.cfg.TimerSeconds
		e.selected = ""
		e.feedback = nil
		e.round++
		return true
	}
	e.finish()
	return true
}

// CountdownActive reports whether the per-question countdown should run.
func (e *Engine) CountdownActive() bool {
	return e.phase == PhasePlaying && e.feedback == nil && e.secondsLeft > 0
}

// PendingAdvance returns the round whose feedback window is open.
func (e *Engine) PendingAdvance() (uint64, bool) {
	if e.phase == PhasePlaying && e.feedback != nil {
		return e.round, true
	}
	return 0, false
}

// Round identifies the question presentation currently on screen.
func (e *Engine) Round() uint64 { return e.round }

// Answers returns a copy of the answer history of the current game.
func (e *Engine) Answers() []scoring.AnswerRecord {
	out := make([]scoring.AnswerRecord, len(e.answers))
	copy(out, e.answers)
	return out
}

// Snapshot returns a copy of the current state for rendering.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:           e.phase,
		Round:           e.round,
		CurrentIndex:    e.index,
		Total:           e.set.Len(),
		Score:           e.score,
		Lives:           e.lives,
		SecondsLeft:     e.secondsLeft,
		Selected:        e.selected,
		FeedbackVisible: e.feedback != nil,
		ErrorMessage:    e.errorMessage,
	}
	if e.phase == PhasePlaying {
		q := e.current()
		q.Options = append([]string(nil), q.Options...)
		snap.Question = &q
	}
	if e.feedback != nil {
		fb := *e.feedback
		snap.Feedback = &fb
	}
	if e.result != nil {
		res := *e.result
		snap.Result = &res
	}
	return snap
}

func (e *Engine) current() question.Question {
	return e.set.At(e.index)
}

// resolve applies the outcome of the current question. An empty choice with
// timedOut set is a timeout.
func (e *Engine) resolve(choice string, timedOut bool) {
	q := e.current()
	correct := !timedOut && q.IsCorrect(choice)
	earned := e.scorer.CalculateScore(correct)

	e.selected = choice
	e.feedback = &Feedback{Correct: correct, TimedOut: timedOut, CorrectOption: q.Answer}
	e.score += earned
	e.answers = append(e.answers, scoring.AnswerRecord{
		QuestionOrder: e.index,
		QuestionID:    q.ID,
		Answer:        choice,
		IsCorrect:     correct,
		TimedOut:      timedOut,
		ScoreEarned:   earned,
	})

	if !correct {
		e.loseLife()
	}
}

// loseLife is shared by wrong answers and timeouts. The game ends as soon as
// the count after the decrement is zero.
func (e *Engine) loseLife() {
	if e.lives > 0 {
		e.lives--
	}
	if e.lives == 0 {
		e.finish()
	}
}

func (e *Engine) finish() {
	e.phase = PhaseFinished
	e.feedback = nil
	sum := e.scorer.Summarize(e.answers)
	e.result = &Result{
		Score:     sum.Score,
		Correct:   sum.Correct,
		Answered:  sum.Answered,
		Total:     e.set.Len(),
		Accuracy:  sum.Accuracy,
		LivesLeft: e.lives,
	}
}
