package quiz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/mindquest/internal/question"
)

func testSet(t *testing.T, n int) question.Set {
	t.Helper()
	all := []question.Question{
		{ID: 1, Prompt: "What is the capital of France?", Options: []string{"London", "Berlin", "Paris", "Madrid"}, Answer: "Paris"},
		{ID: 2, Prompt: "Which planet is known as the Red Planet?", Options: []string{"Venus", "Mars", "Jupiter", "Saturn"}, Answer: "Mars"},
		{ID: 3, Prompt: "What is the largest ocean on Earth?", Options: []string{"Atlantic", "Indian", "Arctic", "Pacific"}, Answer: "Pacific"},
		{ID: 4, Prompt: "How many continents are there?", Options: []string{"5", "6", "7", "8"}, Answer: "7"},
	}
	set, err := question.NewSet(all[:n])
	require.NoError(t, err)
	return set
}

func newStarted(t *testing.T, n int) *Engine {
	t.Helper()
	e := NewEngine(DefaultConfig())
	e.Load(testSet(t, n), nil)
	require.NoError(t, e.Start())
	return e
}

func wrongChoice(s Snapshot) string {
	for _, opt := range s.Question.Options {
		if opt != s.Question.Answer {
			return opt
		}
	}
	return ""
}

// advance closes the current feedback window.
func advance(t *testing.T, e *Engine) {
	t.Helper()
	round, ok := e.PendingAdvance()
	require.True(t, ok, "expected an open feedback window")
	require.True(t, e.Advance(round))
}

func TestNewEngineStartsInStartPhase(t *testing.T) {
	e := NewEngine(Config{})
	snap := e.Snapshot()

	assert.Equal(t, PhaseStart, snap.Phase)
	assert.Equal(t, 3, snap.Lives)
	assert.Equal(t, 30, snap.SecondsLeft)
	assert.Nil(t, snap.Question)
	assert.False(t, e.Loaded())
	assert.Equal(t, DefaultConfig(), e.Config())
}

func TestCorrectAnswerAddsPointsKeepsLives(t *testing.T) {
	e := newStarted(t, 2)

	require.NoError(t, e.SubmitAnswer("Paris"))
	snap := e.Snapshot()

	assert.Equal(t, 100, snap.Score)
	assert.Equal(t, 3, snap.Lives)
	assert.Equal(t, "Paris", snap.Selected)
	assert.True(t, snap.FeedbackVisible)
	require.NotNil(t, snap.Feedback)
	assert.True(t, snap.Feedback.Correct)
	assert.Equal(t, "Paris", snap.Feedback.CorrectOption)
	assert.Equal(t, PhasePlaying, snap.Phase)
}

func TestWrongAnswerCostsLifeKeepsScore(t *testing.T) {
	e := newStarted(t, 2)

	require.NoError(t, e.SubmitAnswer("Berlin"))
	snap := e.Snapshot()

	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, 2, snap.Lives)
	require.NotNil(t, snap.Feedback)
	assert.False(t, snap.Feedback.Correct)
	assert.False(t, snap.Feedback.TimedOut)
}

func TestNoSecondAnswerDuringFeedback(t *testing.T) {
	e := newStarted(t, 2)
	require.NoError(t, e.SubmitAnswer("Berlin"))

	err := e.SubmitAnswer("Paris")
	assert.ErrorIs(t, err, ErrFeedbackPending)

	snap := e.Snapshot()
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, "Berlin", snap.Selected)
	assert.False(t, e.Tick(), "countdown is paused while feedback is visible")
}

func TestUnknownOptionIsRejected(t *testing.T) {
	e := newStarted(t, 2)
	before := e.Snapshot()

	err := e.SubmitAnswer("Rome")
	assert.ErrorIs(t, err, ErrUnknownOption)
	assert.Equal(t, before, e.Snapshot())
}

func TestSubmitOutsidePlaying(t *testing.T) {
	e := NewEngine(DefaultConfig())
	e.Load(testSet(t, 2), nil)

	assert.ErrorIs(t, e.SubmitAnswer("Paris"), ErrNotPlaying)
	assert.False(t, e.Tick())
}

func TestTickCountsDownAndTimesOut(t *testing.T) {
	e := newStarted(t, 2)

	for i := 0; i < 29; i++ {
		require.True(t, e.Tick())
	}
	snap := e.Snapshot()
	assert.Equal(t, 1, snap.SecondsLeft)
	assert.False(t, snap.FeedbackVisible)

	require.True(t, e.Tick())
	snap = e.Snapshot()
	assert.Equal(t, 0, snap.SecondsLeft)
	assert.Equal(t, 2, snap.Lives)
	assert.Equal(t, 0, snap.Score)
	assert.True(t, snap.FeedbackVisible)
	assert.Empty(t, snap.Selected)
	require.NotNil(t, snap.Feedback)
	assert.True(t, snap.Feedback.TimedOut)

	assert.False(t, e.Tick(), "seconds never drop below zero")
	assert.Equal(t, 0, e.Snapshot().SecondsLeft)
}

func TestTimeoutMatchesWrongAnswer(t *testing.T) {
	timedOut := newStarted(t, 2)
	for timedOut.Tick() {
	}
	wrong := newStarted(t, 2)
	require.NoError(t, wrong.SubmitAnswer("Madrid"))

	a, b := timedOut.Snapshot(), wrong.Snapshot()
	assert.Equal(t, a.Phase, b.Phase)
	assert.Equal(t, a.Lives, b.Lives)
	assert.Equal(t, a.Score, b.Score)
	assert.Equal(t, a.FeedbackVisible, b.FeedbackVisible)

	advance(t, timedOut)
	advance(t, wrong)
	assert.Equal(t, timedOut.Snapshot().CurrentIndex, wrong.Snapshot().CurrentIndex)
}

// Scenario A: two correct answers finish the quiz after the last delay.
func TestScenarioAllCorrect(t *testing.T) {
	e := newStarted(t, 2)

	require.NoError(t, e.SubmitAnswer("Paris"))
	advance(t, e)
	require.NoError(t, e.SubmitAnswer("Mars"))

	snap := e.Snapshot()
	assert.Equal(t, PhasePlaying, snap.Phase, "finish waits for the feedback delay")
	assert.Equal(t, 200, snap.Score)

	advance(t, e)
	snap = e.Snapshot()
	assert.Equal(t, PhaseFinished, snap.Phase)
	assert.Equal(t, 200, snap.Score)
	require.NotNil(t, snap.Result)
	assert.Equal(t, 2, snap.Result.Correct)
	assert.Equal(t, 2, snap.Result.Answered)
	assert.InDelta(t, 1.0, snap.Result.Accuracy, 1e-9)
	assert.False(t, snap.FeedbackVisible)
}

func TestSubmitAnswerInRoundRejectsEarlierRound(t *testing.T) {
	e := NewEngine(DefaultConfig())
	e.Load(testSet(t, 2), nil)
	assert.ErrorIs(t, e.SubmitAnswerInRound(0, "Paris"), ErrNotPlaying)

	require.NoError(t, e.Start())
	first := e.Round()
	require.NoError(t, e.SubmitAnswerInRound(first, "Paris"))
	advance(t, e)

	// "Venus" is valid for question 2, but this choice was made on question 1.
	before := e.Snapshot()
	assert.ErrorIs(t, e.SubmitAnswerInRound(first, "Venus"), ErrStaleRound)
	assert.Equal(t, before, e.Snapshot())

	require.NoError(t, e.SubmitAnswerInRound(e.Round(), "Mars"))
	assert.Equal(t, 200, e.Snapshot().Score)
}

func TestResultScoreMatchesAnswerHistory(t *testing.T) {
	e := newStarted(t, 3)

	require.NoError(t, e.SubmitAnswer("Paris"))
	advance(t, e)
	require.NoError(t, e.SubmitAnswer("Venus"))
	advance(t, e)
	require.NoError(t, e.SubmitAnswer("Pacific"))
	advance(t, e)

	snap := e.Snapshot()
	require.Equal(t, PhaseFinished, snap.Phase)
	require.NotNil(t, snap.Result)

	earned := 0
	for _, rec := range e.Answers() {
		earned += rec.ScoreEarned
	}
	assert.Equal(t, 200, snap.Result.Score)
	assert.Equal(t, earned, snap.Result.Score)
	assert.Equal(t, snap.Score, snap.Result.Score)
	assert.Equal(t, 3, snap.Result.Total)
	assert.Equal(t, 2, snap.Result.LivesLeft)
}

// Scenario B: three wrong answers end the game immediately on the last life.
func TestScenarioOutOfLives(t *testing.T) {
	e := newStarted(t, 4)

	for i := 0; i < 2; i++ {
		require.NoError(t, e.SubmitAnswer(wrongChoice(e.Snapshot())))
		advance(t, e)
	}
	require.NoError(t, e.SubmitAnswer(wrongChoice(e.Snapshot())))

	snap := e.Snapshot()
	assert.Equal(t, 0, snap.Lives)
	assert.Equal(t, PhaseFinished, snap.Phase)
	assert.ErrorIs(t, e.SubmitAnswer("7"), ErrNotPlaying)
	_, pending := e.PendingAdvance()
	assert.False(t, pending)
	require.NotNil(t, snap.Result)
	assert.Equal(t, 0, snap.Result.LivesLeft)
}

func TestScenarioTimerExpiresThreeTimes(t *testing.T) {
	e := newStarted(t, 4)

	for i := 0; i < 3; i++ {
		for e.Tick() {
		}
		if i < 2 {
			advance(t, e)
		}
	}

	snap := e.Snapshot()
	assert.Equal(t, 0, snap.Lives)
	assert.Equal(t, PhaseFinished, snap.Phase)
}

// Scenario C: a wrong first answer still advances to question two.
func TestScenarioWrongThenAdvance(t *testing.T) {
	e := newStarted(t, 2)
	e.Tick()
	e.Tick()

	require.NoError(t, e.SubmitAnswer("London"))
	assert.Equal(t, 2, e.Snapshot().Lives)

	advance(t, e)
	snap := e.Snapshot()
	assert.Equal(t, PhasePlaying, snap.Phase)
	assert.Equal(t, 1, snap.CurrentIndex)
	assert.Equal(t, 30, snap.SecondsLeft)
	assert.Empty(t, snap.Selected)
	assert.False(t, snap.FeedbackVisible)
	require.NotNil(t, snap.Question)
	assert.Equal(t, 2, snap.Question.ID)
}

// Scenario D: restart mid-game resets every counter.
func TestScenarioRestartMidGame(t *testing.T) {
	e := newStarted(t, 4)
	require.NoError(t, e.SubmitAnswer("Paris"))
	advance(t, e)
	require.NoError(t, e.SubmitAnswer("Venus"))
	e.Tick()

	require.NoError(t, e.Start())
	snap := e.Snapshot()
	assert.Equal(t, PhasePlaying, snap.Phase)
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, 3, snap.Lives)
	assert.Equal(t, 30, snap.SecondsLeft)
	assert.Equal(t, 0, snap.CurrentIndex)
	assert.False(t, snap.FeedbackVisible)
	assert.Empty(t, snap.Selected)
	assert.Empty(t, e.Answers())
}

func TestRestartFromFinished(t *testing.T) {
	e := newStarted(t, 1)
	require.NoError(t, e.SubmitAnswer("Paris"))
	advance(t, e)
	require.Equal(t, PhaseFinished, e.Snapshot().Phase)

	require.NoError(t, e.Start())
	snap := e.Snapshot()
	assert.Equal(t, PhasePlaying, snap.Phase)
	assert.Nil(t, snap.Result)
	assert.Equal(t, 0, snap.Score)
}

func TestStaleAdvanceIsIgnored(t *testing.T) {
	e := newStarted(t, 2)
	require.NoError(t, e.SubmitAnswer("Paris"))
	staleRound, ok := e.PendingAdvance()
	require.True(t, ok)

	require.NoError(t, e.Start())
	assert.False(t, e.Advance(staleRound), "callback from before the restart must not act")
	snap := e.Snapshot()
	assert.Equal(t, 0, snap.CurrentIndex)
	assert.Equal(t, 30, snap.SecondsLeft)

	assert.False(t, e.Advance(e.Round()), "no feedback window is open")
}

func TestLastQuestionWrongWithLivesLeftFinishesAfterDelay(t *testing.T) {
	e := newStarted(t, 1)
	require.NoError(t, e.SubmitAnswer("Berlin"))
	assert.Equal(t, PhasePlaying, e.Snapshot().Phase)

	advance(t, e)
	snap := e.Snapshot()
	assert.Equal(t, PhaseFinished, snap.Phase)
	assert.Equal(t, 2, snap.Lives)
}

func TestLoadFailure(t *testing.T) {
	e := NewEngine(DefaultConfig())
	e.Load(question.Set{}, errors.New("boom"))

	snap := e.Snapshot()
	assert.Equal(t, LoadFailureMessage, snap.ErrorMessage)
	assert.False(t, e.Loaded())

	assert.ErrorIs(t, e.Start(), ErrQuizUnavailable)
	snap = e.Snapshot()
	assert.Equal(t, PhaseStart, snap.Phase)
	assert.Equal(t, LoadFailureMessage, snap.ErrorMessage)

	e.Load(testSet(t, 2), nil)
	assert.Empty(t, e.Snapshot().ErrorMessage)
	require.NoError(t, e.Start())
	assert.Equal(t, PhasePlaying, e.Snapshot().Phase)
}

func TestCustomConfig(t *testing.T) {
	e := NewEngine(Config{TimerSeconds: 5, StartingLives: 1, PointsPerCorrect: 10})
	e.Load(testSet(t, 2), nil)
	require.NoError(t, e.Start())

	require.NoError(t, e.SubmitAnswer("Paris"))
	assert.Equal(t, 10, e.Snapshot().Score)
	advance(t, e)
	assert.Equal(t, 5, e.Snapshot().SecondsLeft)

	require.NoError(t, e.SubmitAnswer("Venus"))
	snap := e.Snapshot()
	assert.Equal(t, PhaseFinished, snap.Phase)
	assert.Equal(t, 0, snap.Lives)
}

func TestSnapshotIsACopy(t *testing.T) {
	e := newStarted(t, 2)
	snap := e.Snapshot()
	snap.Question.Options[0] = "Rome"

	assert.Equal(t, "London", e.Snapshot().Question.Options[0])
}

func TestAnswerHistory(t *testing.T) {
	e := newStarted(t, 2)
	require.NoError(t, e.SubmitAnswer("Paris"))
	advance(t, e)
	for e.Tick() {
	}

	answers := e.Answers()
	require.Len(t, answers, 2)
	assert.Equal(t, 1, answers[0].QuestionID)
	assert.True(t, answers[0].IsCorrect)
	assert.Equal(t, 100, answers[0].ScoreEarned)
	assert.Equal(t, 2, answers[1].QuestionID)
	assert.True(t, answers[1].TimedOut)
	assert.Empty(t, answers[1].Answer)
}
