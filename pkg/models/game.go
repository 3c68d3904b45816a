package models

// View modes the presentation can be in. Buzzer mode is open to everyone;
// game and admin are gated behind the login.
const (
	ModeGame   = "game"
	ModeBuzzer = "buzzer"
	ModeAdmin  = "admin"
)

// Round labels shown on the board tabs.
const (
	RoundOneLabel   = "Round 1 (10 pts)"
	FinalRoundLabel = "Final Round (20 pts)"
)

// BuzzerSound is the sound file the board page plays on a buzz event.
const BuzzerSound = "/sounds/buzzer.mp3"

// CurrentQuestion is the transient open-question view: the selected question
// combined with its category name and the round-adjusted point value. It is
// never persisted. The answer text is withheld until revealed.
type CurrentQuestion struct {
	QuestionID   int    `json:"questionId"`
	Category     string `json:"category"`
	Text         string `json:"text"`
	Answer       string `json:"answer,omitempty"`
	BasePoints   int    `json:"basePoints"`
	ActualPoints int    `json:"actualPoints"`
	Revealed     bool   `json:"revealed"`
}

// GameSnapshot is the full view state pushed to WebSocket clients and served
// by GET /api/game/state.
type GameSnapshot struct {
	Mode            string           `json:"mode"`
	NeedsAuth       bool             `json:"needsAuthentication"`
	Round           int              `json:"round"`
	RoundLabel      string           `json:"roundLabel"`
	Teams           []TeamView       `json:"teams"`
	AnsweredIDs     []int            `json:"answeredQuestions"`
	CurrentQuestion *CurrentQuestion `json:"currentQuestion,omitempty"`
	BuzzerActive    bool             `json:"buzzerActive"`
}

// Request bodies.

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ModeRequest struct {
	Mode string `json:"mode"`
}

type OpenQuestionRequest struct {
	CategoryIndex int `json:"categoryIndex"`
	QuestionIndex int `json:"questionIndex"`
}

type AwardRequest struct {
	TeamID int `json:"teamId"`
}

type RoundRequest struct {
	Round int `json:"round"`
}

type AddTeamRequest struct {
	Name string `json:"name"`
}

type ScoreAdjustRequest struct {
	Delta int `json:"delta"`
}

// ConfirmRequest carries the operator's yes/no for destructive actions.
// Confirmed=false skips the action entirely.
type ConfirmRequest struct {
	Confirmed bool `json:"confirmed"`
}
