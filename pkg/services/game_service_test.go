package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backsoul/trivia-board/pkg/models"
	"github.com/backsoul/trivia-board/pkg/store"
)

type recordingSound struct {
	played []string
}

func (r *recordingSound) Play(sound string) {
	r.played = append(r.played, sound)
}

type gameFixture struct {
	game     *GameService
	teams    *TeamService
	progress *ProgressService
	sound    *recordingSound
	store    *store.MemoryStore
}

func newGameFixture(t *testing.T) *gameFixture {
	t.Helper()

	st := store.NewMemoryStore()
	teams := NewTeamService(st)
	progress := NewProgressService(st)
	sound := &recordingSound{}
	game := NewGameService(newTestBank(t), teams, progress, sound)

	return &gameFixture{
		game:     game,
		teams:    teams,
		progress: progress,
		sound:    sound,
		store:    st,
	}
}

func TestInitialState(t *testing.T) {
	f := newGameFixture(t)

	assert.Equal(t, models.ModeGame, f.game.Mode())
	assert.False(t, f.game.Authenticated())
	assert.True(t, f.game.NeedsAuthentication())
	assert.Nil(t, f.game.CurrentQuestion())
}

func TestLogin(t *testing.T) {
	f := newGameFixture(t)

	err := f.game.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.False(t, f.game.Authenticated())

	err = f.game.Login("nobody", "trivpass2024")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.False(t, f.game.Authenticated())

	require.NoError(t, f.game.Login("admin", "trivpass2024"))
	assert.True(t, f.game.Authenticated())
	assert.False(t, f.game.NeedsAuthentication())
}

func TestModeGating(t *testing.T) {
	f := newGameFixture(t)

	require.NoError(t, f.game.SelectMode(models.ModeBuzzer))
	assert.False(t, f.game.NeedsAuthentication(), "buzzer mode needs no login")

	require.NoError(t, f.game.SelectMode(models.ModeAdmin))
	assert.True(t, f.game.NeedsAuthentication())

	require.NoError(t, f.game.Login("admin", "trivpass2024"))
	assert.False(t, f.game.NeedsAuthentication())

	assert.ErrorIs(t, f.game.SelectMode("lobby"), ErrInvalidMode)
	assert.Equal(t, models.ModeAdmin, f.game.Mode())
}

func TestOpenQuestionRoundOne(t *testing.T) {
	f := newGameFixture(t)

	current, err := f.game.OpenQuestion(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "Capitals", current.Category)
	assert.Equal(t, 10, current.BasePoints)
	assert.Equal(t, 10, current.ActualPoints)
	assert.True(t, f.progress.IsAnswered(1))
}

func TestOpenQuestionFinalRoundDoubles(t *testing.T) {
	f := newGameFixture(t)
	require.NoError(t, f.game.SetRound(2))

	current, err := f.game.OpenQuestion(0, 1) // 20-point question
	require.NoError(t, err)
	assert.Equal(t, 20, current.BasePoints)
	assert.Equal(t, 40, current.ActualPoints)
}

func TestOpenQuestionOutOfRange(t *testing.T) {
	f := newGameFixture(t)

	_, err := f.game.OpenQuestion(5, 0)
	assert.ErrorIs(t, err, ErrQuestionNotFound)
	_, err = f.game.OpenQuestion(0, 9)
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestOpenQuestionRejectsAnswered(t *testing.T) {
	f := newGameFixture(t)

	_, err := f.game.OpenQuestion(0, 0)
	require.NoError(t, err)
	f.game.CloseQuestion()

	_, err = f.game.OpenQuestion(0, 0)
	assert.ErrorIs(t, err, ErrQuestionAnswered)
	assert.Equal(t, []int{1}, f.progress.AnsweredIDs(), "answered set unchanged")
}

func TestAnswerHiddenUntilRevealed(t *testing.T) {
	f := newGameFixture(t)

	current, err := f.game.OpenQuestion(0, 0)
	require.NoError(t, err)
	assert.Empty(t, current.Answer)
	assert.False(t, current.Revealed)

	f.game.RevealAnswer()
	current = f.game.CurrentQuestion()
	require.NotNil(t, current)
	assert.True(t, current.Revealed)
	assert.Equal(t, "Paris", current.Answer)
}

func TestRevealWithoutQuestionIsNoop(t *testing.T) {
	f := newGameFixture(t)

	f.game.RevealAnswer()
	assert.Nil(t, f.game.CurrentQuestion())
}

func TestCloseQuestionClearsRevealFlag(t *testing.T) {
	f := newGameFixture(t)

	_, err := f.game.OpenQuestion(0, 0)
	require.NoError(t, err)
	f.game.RevealAnswer()
	f.game.CloseQuestion()
	assert.Nil(t, f.game.CurrentQuestion())

	// the next question starts unrevealed
	current, err := f.game.OpenQuestion(1, 0)
	require.NoError(t, err)
	assert.False(t, current.Revealed)
}

func TestAwardPoints(t *testing.T) {
	f := newGameFixture(t)
	require.NoError(t, f.game.SetRound(2))

	_, err := f.game.AwardPoints(1)
	assert.ErrorIs(t, err, ErrNoActiveQuestion)

	_, err = f.game.OpenQuestion(0, 1) // 20 × 2 = 40
	require.NoError(t, err)

	team, err := f.game.AwardPoints(1)
	require.NoError(t, err)
	assert.Equal(t, 40, team.Score)

	_, err = f.game.AwardPoints(99)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestSetRoundValidation(t *testing.T) {
	f := newGameFixture(t)

	for _, r := range []int{0, 3, -1} {
		assert.ErrorIs(t, f.game.SetRound(r), ErrInvalidRound)
	}
	assert.Equal(t, 1, f.progress.Round())

	require.NoError(t, f.game.SetRound(2))
	assert.Equal(t, 2, f.progress.Round())
}

func TestBuzzerWindowRestartsOnEachTrigger(t *testing.T) {
	f := newGameFixture(t)

	now := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	f.game.now = func() time.Time { return now }

	assert.False(t, f.game.BuzzerActive())

	f.game.TriggerBuzzer()
	assert.True(t, f.game.BuzzerActive())

	now = now.Add(1900 * time.Millisecond)
	assert.True(t, f.game.BuzzerActive())

	// a second buzz inside the window restarts it
	f.game.TriggerBuzzer()
	now = now.Add(1900 * time.Millisecond)
	assert.True(t, f.game.BuzzerActive())

	now = now.Add(200 * time.Millisecond)
	assert.False(t, f.game.BuzzerActive())

	assert.Equal(t, []string{models.BuzzerSound, models.BuzzerSound}, f.sound.played)
}

func TestResetGameRequiresConfirmation(t *testing.T) {
	f := newGameFixture(t)
	_, err := f.game.OpenQuestion(0, 0)
	require.NoError(t, err)

	assert.False(t, f.game.ResetGame(false))
	assert.Equal(t, []int{1}, f.progress.AnsweredIDs())
	assert.NotNil(t, f.game.CurrentQuestion())

	assert.True(t, f.game.ResetGame(true))
	assert.Empty(t, f.progress.AnsweredIDs())
	assert.Nil(t, f.game.CurrentQuestion())
}

func TestResetGameKeepsTeamsAndRound(t *testing.T) {
	f := newGameFixture(t)
	require.NoError(t, f.game.SetRound(2))
	_, err := f.teams.AdjustScore(1, 40)
	require.NoError(t, err)
	f.progress.MarkAnswered(1)

	require.True(t, f.game.ResetGame(true))

	assert.Equal(t, 2, f.progress.Round())
	teams := f.teams.Teams()
	assert.Equal(t, 40, teams[0].Score)
}

func TestResetAllScoresRequiresConfirmation(t *testing.T) {
	f := newGameFixture(t)
	_, err := f.teams.AdjustScore(1, 30)
	require.NoError(t, err)

	assert.False(t, f.game.ResetAllScores(false))
	assert.Equal(t, 30, f.teams.Teams()[0].Score)

	assert.True(t, f.game.ResetAllScores(true))
	for _, tm := range f.teams.Teams() {
		assert.Equal(t, 0, tm.Score)
	}
}

func TestClearAllDataRestoresDocumentedDefaults(t *testing.T) {
	f := newGameFixture(t)
	require.NoError(t, f.game.SetRound(2))
	_, err := f.teams.AddTeam("Team Gamma")
	require.NoError(t, err)
	_, err = f.game.OpenQuestion(0, 0)
	require.NoError(t, err)
	_, err = f.game.AwardPoints(3)
	require.NoError(t, err)

	assert.False(t, f.game.ClearAllData(false))
	assert.Len(t, f.teams.Teams(), 3)

	require.True(t, f.game.ClearAllData(true))
	assert.Equal(t, models.DefaultTeams(), f.teams.Teams())
	assert.Empty(t, f.progress.AnsweredIDs())
	assert.Equal(t, 1, f.progress.Round())
	assert.Nil(t, f.game.CurrentQuestion())

	// defaults hold across rehydration too
	assert.Equal(t, models.DefaultTeams(), NewTeamService(f.store).Teams())
	reloaded := NewProgressService(f.store)
	assert.Empty(t, reloaded.AnsweredIDs())
	assert.Equal(t, 1, reloaded.Round())
}

func TestSnapshot(t *testing.T) {
	f := newGameFixture(t)

	snapshot := f.game.Snapshot()
	assert.Equal(t, models.ModeGame, snapshot.Mode)
	assert.True(t, snapshot.NeedsAuth)
	assert.Equal(t, 1, snapshot.Round)
	assert.Equal(t, models.RoundOneLabel, snapshot.RoundLabel)
	assert.Len(t, snapshot.Teams, 2)
	assert.Empty(t, snapshot.AnsweredIDs)
	assert.Nil(t, snapshot.CurrentQuestion)
	assert.False(t, snapshot.BuzzerActive)

	require.NoError(t, f.game.SetRound(2))
	_, err := f.game.OpenQuestion(0, 0)
	require.NoError(t, err)

	snapshot = f.game.Snapshot()
	assert.Equal(t, models.FinalRoundLabel, snapshot.RoundLabel)
	assert.Equal(t, []int{1}, snapshot.AnsweredIDs)
	require.NotNil(t, snapshot.CurrentQuestion)
	assert.Empty(t, snapshot.CurrentQuestion.Answer, "answer withheld until revealed")
}

func TestBoardReflectsRoundAndProgress(t *testing.T) {
	f := newGameFixture(t)
	_, err := f.game.OpenQuestion(0, 0)
	require.NoError(t, err)
	require.NoError(t, f.game.SetRound(2))

	board := f.game.Board()
	require.Len(t, board, 2)
	assert.True(t, board[0].Cells[0].Answered)
	assert.Equal(t, 20, board[0].Cells[0].Points)
	assert.False(t, board[1].Cells[0].Answered)
}
