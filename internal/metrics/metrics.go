package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gokatarajesh/mindquest/internal/quiz"
	"github.com/gokatarajesh/mindquest/internal/quiz/scoring"
)

const namespace = "mindquest"

// Outcome labels.
const (
	ResultCorrect = "correct"
	ResultWrong   = "wrong"
	ResultTimeout = "timeout"

	OutcomeCompleted  = "completed"
	OutcomeOutOfLives = "out_of_lives"
)

// Metrics exposes gameplay counters. It satisfies session.Observer.
type Metrics struct {
	sessionsActive prometheus.Gauge
	gamesStarted   prometheus.Counter
	gamesFinished  *prometheus.CounterVec
	answers        *prometheus.CounterVec
	finalScore     prometheus.Histogram
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		sessionsActive: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Quiz sessions currently connected.",
		}),
		gamesStarted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_started_total",
			Help:      "Games started or restarted.",
		}),
		gamesFinished: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Games that reached the finished phase, by outcome.",
		}, []string{"outcome"}),
		answers: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answers_total",
			Help:      "Resolved questions, by result.",
		}, []string{"result"}),
		finalScore: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "final_score",
			Help:      "Score at the end of a game.",
			Buckets:   prometheus.LinearBuckets(0, 100, 11),
		}),
	}
}

func (m *Metrics) SessionOpened() { m.sessionsActive.Inc() }
func (m *Metrics) SessionClosed() { m.sessionsActive.Dec() }

func (m *Metrics) GameStarted() { m.gamesStarted.Inc() }

func (m *Metrics) AnswerResolved(rec scoring.AnswerRecord) {
	switch {
	case rec.TimedOut:
		m.answers.WithLabelValues(ResultTimeout).Inc()
	case rec.IsCorrect:
		m.answers.WithLabelValues(ResultCorrect).Inc()
	default:
		m.answers.WithLabelValues(ResultWrong).Inc()
	}
}

func (m *Metrics) GameFinished(res quiz.Result) {
	outcome := OutcomeCompleted
	if res.LivesLeft == 0 {
		outcome = OutcomeOutOfLives
	}
	m.gamesFinished.WithLabelValues(outcome).Inc()
	m.finalScore.Observe(float64(res.Score))
}
