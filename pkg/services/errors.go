package services

import "errors"

// Failure signals consumed by the handlers to pick status codes and
// user-facing messages. None of them crash the controller; state is left
// untouched when they are returned.
var (
	ErrEmptyTeamName      = errors.New("team name is empty")
	ErrTeamNotFound       = errors.New("team not found")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrQuestionAnswered   = errors.New("question already answered")
	ErrNoActiveQuestion   = errors.New("no active question")
	ErrInvalidRound       = errors.New("round must be 1 or 2")
	ErrInvalidMode        = errors.New("unknown view mode")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
