package quiz

import "time"

// Config groups the gameplay constants. Zero or negative fields fall back to defaults.
type Config struct {
	TimerSeconds     int           // per question countdown, default 30
	StartingLives    int           // default 3
	PointsPerCorrect int           // default 100
	FeedbackDelay    time.Duration // default 1500ms
	TickInterval     time.Duration // countdown granularity, default 1s
}

// DefaultConfig returns the standard game rules.
func DefaultConfig() Config {
	return Config{
		TimerSeconds:     30,
		StartingLives:    3,
		PointsPerCorrect: 100,
		FeedbackDelay:    1500 * time.Millisecond,
		TickInterval:     time.Second,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.TimerSeconds <= 0 {
		c.TimerSeconds = def.TimerSeconds
	}
	if c.StartingLives <= 0 {
		c.StartingLives = def.StartingLives
	}
	if c.PointsPerCorrect <= 0 {
		c.PointsPerCorrect = def.PointsPerCorrect
	}
	if c.FeedbackDelay <= 0 {
		c.FeedbackDelay = def.FeedbackDelay
	}
	if c.TickInterval <= 0 {
		c.TickInterval = def.TickInterval
	}
	return c
}
