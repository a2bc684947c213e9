package session

import (
	"time"

	"github.com/gokatarajesh/mindquest/internal/quiz"
)

// timers holds the countdown ticker and the feedback timer. Only the Run
// goroutine touches it. A nil timer has a nil channel, which blocks forever
// in select, so a stopped timer can never deliver a stale event.
type timers struct {
	interval time.Duration
	delay    time.Duration

	ticker      *time.Ticker
	tickerRound uint64

	feedback      *time.Timer
	feedbackRound uint64
}

func newTimers(interval, delay time.Duration) *timers {
	return &timers{interval: interval, delay: delay}
}

func (t *timers) tickC() <-chan time.Time {
	if t.ticker == nil {
		return nil
	}
	return t.ticker.C
}

func (t *timers) feedbackC() <-chan time.Time {
	if t.feedback == nil {
		return nil
	}
	return t.feedback.C
}

// feedbackFired clears the fired timer and returns the round it was armed for.
func (t *timers) feedbackFired() uint64 {
	t.feedback = nil
	return t.feedbackRound
}

// sync arms or cancels both timers to match the engine state. The ticker is
// recreated on every new round so each question gets a full first interval.
func (t *timers) sync(e *quiz.Engine) {
	if e.CountdownActive() {
		if t.ticker == nil || t.tickerRound != e.Round() {
			t.stopTicker()
			t.ticker = time.NewTicker(t.interval)
			t.tickerRound = e.Round()
		}
	} else {
		t.stopTicker()
	}

	if round, ok := e.PendingAdvance(); ok {
		if t.feedback == nil || t.feedbackRound != round {
			t.stopFeedback()
			t.feedback = time.NewTimer(t.delay)
			t.feedbackRound = round
		}
	} else {
		t.stopFeedback()
	}
}

func (t *timers) stop() {
	t.stopTicker()
	t.stopFeedback()
}

func (t *timers) stopTicker() {
	if t.ticker != nil {
		t.ticker.Stop()
		t.ticker = nil
	}
}

func (t *timers) stopFeedback() {
	if t.feedback != nil {
		t.feedback.Stop()
		t.feedback = nil
	}
}
