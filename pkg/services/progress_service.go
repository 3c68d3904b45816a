package services

import (
	"log"
	"sync"

	"github.com/backsoul/trivia-board/pkg/store"
)

const (
	answeredKey = "answered_questions"
	roundKey    = "game_round"
)

// ProgressService owns the answered-question set and the current round. It
// is the only writer of both storage keys. The answered set grows
// monotonically during play and is only emptied wholesale by the reset
// actions.
type ProgressService struct {
	mu       sync.RWMutex
	store    store.Store
	answered []int // insertion order, persisted as-is
	index    map[int]bool
	round    int
}

// NewProgressService hydrates from the store: empty set and round 1 when
// nothing usable is persisted.
func NewProgressService(st store.Store) *ProgressService {
	answered := []int{}
	st.Load(answeredKey, &answered)

	round := 1
	if st.Load(roundKey, &round) && round != 1 && round != 2 {
		log.Printf("⚠️ Stored round %d out of range, using round 1", round)
		round = 1
	}

	index := make(map[int]bool, len(answered))
	for _, id := range answered {
		index[id] = true
	}

	return &ProgressService{
		store:    st,
		answered: answered,
		index:    index,
		round:    round,
	}
}

// MarkAnswered adds a question id to the answered set. Re-marking an id is
// a no-op and does not persist again.
func (s *ProgressService) MarkAnswered(questionID int) {
	s.MarkAnsweredIfNew(questionID)
}

// MarkAnsweredIfNew marks a question answered and reports whether it was
// new. Check and mark happen under one lock, so only one of two concurrent
// opens of the same cell wins.
func (s *ProgressService) MarkAnsweredIfNew(questionID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index[questionID] {
		return false
	}
	s.index[questionID] = true
	s.answered = append(s.answered, questionID)
	s.persistAnswered()
	return true
}

// IsAnswered reports whether a question has been opened this game.
func (s *ProgressService) IsAnswered(questionID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index[questionID]
}

// AnsweredIDs returns the answered ids in the order they were opened.
func (s *ProgressService) AnsweredIDs() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int, len(s.answered))
	copy(ids, s.answered)
	return ids
}

// ResetProgress empties the answered set only; round and teams are
// untouched.
func (s *ProgressService) ResetProgress() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.answered = []int{}
	s.index = make(map[int]bool)
	if err := s.store.Clear(answeredKey); err != nil {
		log.Printf("⚠️ Error clearing answered questions: %v", err)
	}
}

// SetRound switches the round and persists it immediately. Validation of the
// value lives in the game service.
func (s *ProgressService) SetRound(round int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.round = round
	if err := s.store.Save(roundKey, round); err != nil {
		log.Printf("⚠️ Error persisting round: %v", err)
	}
}

// Round returns the current round (1 or 2).
func (s *ProgressService) Round() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.round
}

// ClearAll empties the answered set and resets the round to 1, clearing both
// storage keys.
func (s *ProgressService) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.answered = []int{}
	s.index = make(map[int]bool)
	s.round = 1
	if err := s.store.Clear(answeredKey); err != nil {
		log.Printf("⚠️ Error clearing answered questions: %v", err)
	}
	if err := s.store.Clear(roundKey); err != nil {
		log.Printf("⚠️ Error clearing round: %v", err)
	}
}

// persistAnswered writes the answered list. Callers hold the lock.
func (s *ProgressService) persistAnswered() {
	if err := s.store.Save(answeredKey, s.answered); err != nil {
		log.Printf("⚠️ Error persisting answered questions: %v", err)
	}
}
