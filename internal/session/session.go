package session

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/mindquest/internal/question"
	"github.com/gokatarajesh/mindquest/internal/quiz"
	"github.com/gokatarajesh/mindquest/internal/quiz/scoring"
)

// ErrClosed is returned by commands sent after Run has returned.
var ErrClosed = errors.New("session closed")

// LoadFunc produces the question set for the session.
type LoadFunc func() (question.Set, error)

// Observer receives game events, e.g. for metrics. Calls happen on the Run goroutine.
type Observer interface {
	GameStarted()
	AnswerResolved(rec scoring.AnswerRecord)
	GameFinished(res quiz.Result)
}

// Options configures a Session.
type Options struct {
	Load LoadFunc
	// OnUpdate is called on the Run goroutine after every transition. It must
	// not block and must not call back into the session.
	OnUpdate func(quiz.Snapshot)
	Observer Observer
}

type commandKind int

const (
	cmdStart commandKind = iota
	cmdSubmit
)

type command struct {
	kind   commandKind
	choice string
	round  uint64 // zero: any round
	reply  chan error
}

// Session owns one quiz engine plus its countdown and feedback timers, and
// processes every event for it on a single goroutine.
type Session struct {
	id       uuid.UUID
	engine   *quiz.Engine
	load     LoadFunc
	onUpdate func(quiz.Snapshot)
	observer Observer
	logger   zerolog.Logger

	cmds   chan command
	done   chan struct{}
	latest atomic.Pointer[quiz.Snapshot]
	timers *timers
}

// New creates a session. Nothing happens until Run is called.
func New(id uuid.UUID, cfg quiz.Config, opts Options, logger zerolog.Logger) *Session {
	engine := quiz.NewEngine(cfg)
	effective := engine.Config()

	load := opts.Load
	if load == nil {
		load = question.Load
	}
	onUpdate := opts.OnUpdate
	if onUpdate == nil {
		onUpdate = func(quiz.Snapshot) {}
	}
	observer := opts.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	s := &Session{
		id:       id,
		engine:   engine,
		load:     load,
		onUpdate: onUpdate,
		observer: observer,
		logger:   logger.With().Str("component", "session").Str("session_id", id.String()).Logger(),
		cmds:     make(chan command),
		done:     make(chan struct{}),
		timers:   newTimers(effective.TickInterval, effective.FeedbackDelay),
	}
	snap := engine.Snapshot()
	s.latest.Store(&snap)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Latest returns the most recently published snapshot. Safe from any goroutine.
func (s *Session) Latest() quiz.Snapshot { return *s.latest.Load() }

// Run loads the question set and processes events until ctx is cancelled.
// All timers are stopped before it returns.
func (s *Session) Run(ctx context.Context) error {
	defer close(s.done)
	defer s.timers.stop()

	s.loadQuestions()
	s.publish(s.engine.Snapshot())

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug().Msg("session stopping")
			return ctx.Err()
		case cmd := <-s.cmds:
			cmd.reply <- s.handle(cmd)
		case <-s.timers.tickC():
			s.step(func() (bool, error) {
				return s.engine.Tick(), nil
			})
		case <-s.timers.feedbackC():
			round := s.timers.feedbackFired()
			s.step(func() (bool, error) {
				return s.engine.Advance(round), nil
			})
		}
	}
}

// Start begins or restarts the quiz.
func (s *Session) Start(ctx context.Context) error {
	return s.send(ctx, command{kind: cmdStart})
}

// Submit answers the current question.
func (s *Session) Submit(ctx context.Context, choice string) error {
	return s.send(ctx, command{kind: cmdSubmit, choice: choice})
}

// SubmitInRound answers the current question only if round is still the one
// on screen; otherwise it returns quiz.ErrStaleRound.
func (s *Session) SubmitInRound(ctx context.Context, round uint64, choice string) error {
	if round == 0 {
		return quiz.ErrStaleRound
	}
	return s.send(ctx, command{kind: cmdSubmit, choice: choice, round: round})
}

func (s *Session) send(ctx context.Context, cmd command) error {
	cmd.reply = make(chan error, 1)
	select {
	case s.cmds <- cmd:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrClosed
	}
	select {
	case err := <-cmd.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) handle(cmd command) error {
	switch cmd.kind {
	case cmdStart:
		return s.step(func() (bool, error) {
			if !s.engine.Loaded() {
				s.loadQuestions()
			}
			if err := s.engine.Start(); err != nil {
				return true, err
			}
			s.observer.GameStarted()
			s.logger.Info().Int("questions", s.engine.Snapshot().Total).Msg("quiz started")
			return true, nil
		})
	case cmdSubmit:
		return s.step(func() (bool, error) {
			var err error
			if cmd.round != 0 {
				err = s.engine.SubmitAnswerInRound(cmd.round, cmd.choice)
			} else {
				err = s.engine.SubmitAnswer(cmd.choice)
			}
			return err == nil, err
		})
	default:
		return errors.New("unknown command")
	}
}

// step applies one event, reports game events, re-arms timers and publishes.
func (s *Session) step(apply func() (bool, error)) error {
	before := s.engine.Snapshot()
	answered := len(s.engine.Answers())

	changed, err := apply()

	after := s.engine.Snapshot()
	if answers := s.engine.Answers(); len(answers) > answered {
		rec := answers[len(answers)-1]
		s.observer.AnswerResolved(rec)
		s.logger.Debug().
			Int("question_id", rec.QuestionID).
			Bool("correct", rec.IsCorrect).
			Bool("timed_out", rec.TimedOut).
			Int("lives", after.Lives).
			Msg("answer resolved")
	}
	if before.Phase != quiz.PhaseFinished && after.Phase == quiz.PhaseFinished && after.Result != nil {
		s.observer.GameFinished(*after.Result)
		s.logger.Info().
			Int("score", after.Result.Score).
			Int("correct", after.Result.Correct).
			Int("lives_left", after.Result.LivesLeft).
			Msg("quiz finished")
	}

	s.timers.sync(s.engine)
	if changed {
		s.publish(after)
	}
	return err
}

func (s *Session) loadQuestions() {
	set, err := s.load()
	if err != nil {
		s.logger.Error().Err(err).Msg("question set failed to load")
	}
	s.engine.Load(set, err)
}

func (s *Session) publish(snap quiz.Snapshot) {
	s.latest.Store(&snap)
	s.onUpdate(snap)
}

type nopObserver struct{}

func (nopObserver) GameStarted()                       {}
func (nopObserver) AnswerResolved(scoring.AnswerRecord) {}
func (nopObserver) GameFinished(quiz.Result)            {}
