package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/gokatarajesh/mindquest/internal/quiz"
)

// App holds core runtime configuration.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"mindquest"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	LogLevel                string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Quiz Quiz
	CORS CORS
}

// Quiz groups gameplay constants.
type Quiz struct {
	TimerSeconds     int           `env:"QUIZ_TIMER_SECONDS" envDefault:"30"`
	StartingLives    int           `env:"QUIZ_STARTING_LIVES" envDefault:"3"`
	PointsPerCorrect int           `env:"QUIZ_POINTS_PER_CORRECT" envDefault:"100"`
	FeedbackDelay    time.Duration `env:"QUIZ_FEEDBACK_DELAY" envDefault:"1500ms"`
	TickInterval     time.Duration `env:"QUIZ_TICK_INTERVAL" envDefault:"1s"`
}

// Engine converts the section into engine rules.
func (q Quiz) Engine() quiz.Config {
	return quiz.Config{
		TimerSeconds:     q.TimerSeconds,
		StartingLives:    q.StartingLives,
		PointsPerCorrect: q.PointsPerCorrect,
		FeedbackDelay:    q.FeedbackDelay,
		TickInterval:     q.TickInterval,
	}
}

func (q Quiz) validate() error {
	switch {
	case q.TimerSeconds <= 0:
		return fmt.Errorf("QUIZ_TIMER_SECONDS must be positive, got %d", q.TimerSeconds)
	case q.StartingLives <= 0:
		return fmt.Errorf("QUIZ_STARTING_LIVES must be positive, got %d", q.StartingLives)
	case q.PointsPerCorrect <= 0:
		return fmt.Errorf("QUIZ_POINTS_PER_CORRECT must be positive, got %d", q.PointsPerCorrect)
	case q.FeedbackDelay <= 0:
		return fmt.Errorf("QUIZ_FEEDBACK_DELAY must be positive, got %s", q.FeedbackDelay)
	case q.TickInterval <= 0:
		return fmt.Errorf("QUIZ_TICK_INTERVAL must be positive, got %s", q.TickInterval)
	}
	return nil
}

// CORS holds the origins allowed to open a quiz WebSocket.
type CORS struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://127.0.0.1:3000"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Quiz.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}
