package services

import (
	"log"
	"strings"
	"sync"

	"github.com/backsoul/trivia-board/pkg/models"
	"github.com/backsoul/trivia-board/pkg/store"
)

const teamsKey = "teams"

// TeamService owns the team roster: insertion-ordered, ids unique and
// monotonically assigned, palette index fixed at creation. It is the only
// writer of the teams storage key, and every mutation persists the whole
// list before returning.
type TeamService struct {
	mu    sync.RWMutex
	store store.Store
	teams []models.Team
}

// NewTeamService hydrates the roster from the store, falling back to the
// default two-team roster when nothing usable is persisted.
func NewTeamService(st store.Store) *TeamService {
	teams := models.DefaultTeams()
	if st.Load(teamsKey, &teams) {
		log.Printf("✅ %d teams restored from storage", len(teams))
	}

	return &TeamService{
		store: st,
		teams: teams,
	}
}

// AddTeam appends a new team. The name is trimmed; an empty result is
// rejected without touching state. The id is max existing id + 1 (1 when the
// roster is empty) and the color index cycles through the palette by the
// roster size at creation time.
func (s *TeamService) AddTeam(name string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyTeamName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	nextID := 1
	for _, t := range s.teams {
		if t.ID >= nextID {
			nextID = t.ID + 1
		}
	}

	team := models.Team{
		ID:         nextID,
		Name:       name,
		Score:      0,
		ColorIndex: len(s.teams) % len(models.TeamColorSchemes),
	}
	s.teams = append(s.teams, team)
	s.persist()

	return &team, nil
}

// RemoveTeam drops the team with the given id. A missing id is not an error.
func (s *TeamService) RemoveTeam(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.teams {
		if t.ID == id {
			s.teams = append(s.teams[:i], s.teams[i+1:]...)
			s.persist()
			return
		}
	}
}

// AdjustScore adds delta to a team's score. Scores have no lower bound.
func (s *TeamService) AdjustScore(id, delta int) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.teams {
		if s.teams[i].ID == id {
			s.teams[i].Score += delta
			s.persist()
			team := s.teams[i]
			return &team, nil
		}
	}

	return nil, ErrTeamNotFound
}

// ResetAllScores zeroes every score, keeping ids, names, colors and order.
func (s *TeamService) ResetAllScores() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.teams {
		s.teams[i].Score = 0
	}
	s.persist()
}

// ReplaceAll swaps the whole roster and persists it.
func (s *TeamService) ReplaceAll(teams []models.Team) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.teams = make([]models.Team, len(teams))
	copy(s.teams, teams)
	s.persist()
}

// ResetToDefaults clears the stored roster and restores the two default
// teams. Used by the full-data-clear action.
func (s *TeamService) ResetToDefaults() {
	if err := s.store.Clear(teamsKey); err != nil {
		log.Printf("⚠️ Error clearing teams key: %v", err)
	}
	s.ReplaceAll(models.DefaultTeams())
}

// Teams returns a copy of the roster in insertion order.
func (s *TeamService) Teams() []models.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()

	teams := make([]models.Team, len(s.teams))
	copy(teams, s.teams)
	return teams
}

// TeamViews returns the roster with palette entries resolved for the view.
func (s *TeamService) TeamViews() []models.TeamView {
	teams := s.Teams()
	views := make([]models.TeamView, len(teams))
	for i, t := range teams {
		views[i] = models.TeamView{Team: t, ColorScheme: t.Colors()}
	}
	return views
}

// persist writes the full roster. Callers hold the lock.
func (s *TeamService) persist() {
	if err := s.store.Save(teamsKey, s.teams); err != nil {
		log.Printf("⚠️ Error persisting teams: %v", err)
	}
}
