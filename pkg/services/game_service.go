package services

import (
	"log"
	"sync"
	"time"

	"github.com/backsoul/trivia-board/pkg/models"
)

// Hardcoded admin credentials. A UI gate, not a security boundary.
const (
	adminUsername = "admin"
	adminPassword = "trivpass2024"
)

// buzzerWindow is how long the buzzer stays visually active after a buzz.
// Each trigger restarts the window; the latest buzz wins.
const buzzerWindow = 2 * time.Second

// SoundPlayer is the audio collaborator: a fire-and-forget "play this sound
// now" call whose result is never consulted.
type SoundPlayer interface {
	Play(sound string)
}

// GameService orchestrates the board: it owns the transient view state
// (mode, login flag, open question, buzzer window) and drives the team and
// progress services. Transient state lives only in this process and resets
// on restart; only teams, answered questions and round are persisted.
type GameService struct {
	questions *QuestionService
	teams     *TeamService
	progress  *ProgressService
	sound     SoundPlayer
	now       func() time.Time

	mu            sync.RWMutex
	mode          string
	authenticated bool
	current       *models.CurrentQuestion
	buzzerUntil   time.Time
}

func NewGameService(questions *QuestionService, teams *TeamService, progress *ProgressService, sound SoundPlayer) *GameService {
	return &GameService{
		questions: questions,
		teams:     teams,
		progress:  progress,
		sound:     sound,
		now:       time.Now,
		mode:      models.ModeGame,
	}
}

// SelectMode switches the view mode. Buzzer mode needs no login; the
// presentation layer checks NeedsAuthentication before rendering game or
// admin content.
func (g *GameService) SelectMode(mode string) error {
	switch mode {
	case models.ModeGame, models.ModeBuzzer, models.ModeAdmin:
	default:
		return ErrInvalidMode
	}

	g.mu.Lock()
	g.mode = mode
	g.mu.Unlock()
	return nil
}

// Mode returns the current view mode.
func (g *GameService) Mode() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.mode
}

// NeedsAuthentication reports whether the current mode's content is gated
// behind a login that has not happened yet.
func (g *GameService) NeedsAuthentication() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.needsAuthLocked()
}

func (g *GameService) needsAuthLocked() bool {
	return (g.mode == models.ModeGame || g.mode == models.ModeAdmin) && !g.authenticated
}

// Login checks the credential pair. Once granted, authentication is never
// revoked for the life of the process.
func (g *GameService) Login(username, password string) error {
	if username != adminUsername || password != adminPassword {
		return ErrInvalidCredentials
	}

	g.mu.Lock()
	g.authenticated = true
	g.mu.Unlock()

	log.Println("🔓 Operator logged in")
	return nil
}

// Authenticated reports whether the operator has logged in.
func (g *GameService) Authenticated() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.authenticated
}

// OpenQuestion selects a question by board position, computes its
// round-adjusted value and marks it answered. Selecting a question that was
// already opened is rejected rather than silently re-marked, so the guard
// does not depend on the view disabling the cell.
func (g *GameService) OpenQuestion(categoryIndex, questionIndex int) (*models.CurrentQuestion, error) {
	category, question, err := g.questions.Question(categoryIndex, questionIndex)
	if err != nil {
		return nil, err
	}

	// check-and-mark is atomic: of two concurrent opens of the same cell,
	// only one passes
	if !g.progress.MarkAnsweredIfNew(question.ID) {
		return nil, ErrQuestionAnswered
	}

	multiplier := 1
	if g.progress.Round() == 2 {
		multiplier = 2
	}

	current := &models.CurrentQuestion{
		QuestionID:   question.ID,
		Category:     category.Name,
		Text:         question.Text,
		Answer:       question.Answer,
		BasePoints:   question.Points,
		ActualPoints: question.Points * multiplier,
	}

	g.mu.Lock()
	g.current = current
	g.mu.Unlock()

	view := g.CurrentQuestion()
	return view, nil
}

// RevealAnswer flips the reveal flag on the open question. Without an open
// question it does nothing.
func (g *GameService) RevealAnswer() {
	g.mu.Lock()
	if g.current != nil {
		g.current.Revealed = true
	}
	g.mu.Unlock()
}

// CloseQuestion returns to the board view, clearing the open question and
// its reveal flag.
func (g *GameService) CloseQuestion() {
	g.mu.Lock()
	g.current = nil
	g.mu.Unlock()
}

// CurrentQuestion returns the open question as the view may see it: the
// answer text is withheld until revealed. Nil when no question is open.
func (g *GameService) CurrentQuestion() *models.CurrentQuestion {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.current == nil {
		return nil
	}

	view := *g.current
	if !view.Revealed {
		view.Answer = ""
	}
	return &view
}

// AwardPoints gives the open question's round-adjusted value to a team.
func (g *GameService) AwardPoints(teamID int) (*models.Team, error) {
	g.mu.RLock()
	current := g.current
	g.mu.RUnlock()

	if current == nil {
		return nil, ErrNoActiveQuestion
	}

	return g.teams.AdjustScore(teamID, current.ActualPoints)
}

// SetRound validates and switches the round.
func (g *GameService) SetRound(round int) error {
	if round != 1 && round != 2 {
		return ErrInvalidRound
	}
	g.progress.SetRound(round)
	return nil
}

// TriggerBuzzer fires the sound collaborator and restarts the buzzer-active
// window. Overlapping triggers are not queued: the flag simply stays active
// until two seconds after the latest buzz.
func (g *GameService) TriggerBuzzer() {
	if g.sound != nil {
		g.sound.Play(models.BuzzerSound)
	}

	g.mu.Lock()
	g.buzzerUntil = g.now().Add(buzzerWindow)
	g.mu.Unlock()
}

// BuzzerActive reports whether the latest buzz is still inside its window.
func (g *GameService) BuzzerActive() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.now().Before(g.buzzerUntil)
}

// ResetGame clears game progress (answered questions only), keeping teams,
// scores and round. Declined confirmations skip the action entirely.
func (g *GameService) ResetGame(confirmed bool) bool {
	if !confirmed {
		return false
	}

	g.progress.ResetProgress()
	g.CloseQuestion()
	log.Println("🔄 Game progress reset")
	return true
}

// ResetAllScores zeroes every team's score, confirmation-gated like the
// other destructive actions.
func (g *GameService) ResetAllScores(confirmed bool) bool {
	if !confirmed {
		return false
	}

	g.teams.ResetAllScores()
	log.Println("🔄 All scores reset")
	return true
}

// ClearAllData restores the default roster and empties all game progress,
// round included.
func (g *GameService) ClearAllData(confirmed bool) bool {
	if !confirmed {
		return false
	}

	g.teams.ResetToDefaults()
	g.progress.ClearAll()
	g.CloseQuestion()
	log.Println("🧹 All game data cleared")
	return true
}

// Snapshot assembles the full view state for the state endpoint and the
// WebSocket feed.
func (g *GameService) Snapshot() models.GameSnapshot {
	round := g.progress.Round()
	label := models.RoundOneLabel
	if round == 2 {
		label = models.FinalRoundLabel
	}

	g.mu.RLock()
	mode := g.mode
	needsAuth := g.needsAuthLocked()
	g.mu.RUnlock()

	return models.GameSnapshot{
		Mode:            mode,
		NeedsAuth:       needsAuth,
		Round:           round,
		RoundLabel:      label,
		Teams:           g.teams.TeamViews(),
		AnsweredIDs:     g.progress.AnsweredIDs(),
		CurrentQuestion: g.CurrentQuestion(),
		BuzzerActive:    g.BuzzerActive(),
	}
}

// Board renders the board cells for the current round.
func (g *GameService) Board() []models.BoardCategory {
	return g.questions.Board(g.progress.Round(), g.progress.IsAnswered)
}
