package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/backsoul/trivia-board/pkg/models"
)

// QuestionService holds the static question bank. The bank is loaded whole
// at startup and never mutated afterward.
type QuestionService struct {
	bank models.QuestionBank
}

// NewQuestionService parses a question bank from JSON data. Question ids
// must be unique across the whole bank; the answered set is keyed by them.
func NewQuestionService(data []byte) (*QuestionService, error) {
	bank, err := parseBank(data)
	if err != nil {
		return nil, err
	}
	return &QuestionService{bank: bank}, nil
}

// NewQuestionServiceFromFile loads the bank from a JSON file.
func NewQuestionServiceFromFile(path string) (*QuestionService, error) {
	log.Printf("📂 Loading questions from: %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading question file: %v", err)
	}

	svc, err := NewQuestionService(data)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ %d questions loaded in %d categories", svc.QuestionCount(), len(svc.bank.Categories))
	return svc, nil
}

// Question looks a question up by board position.
func (s *QuestionService) Question(categoryIndex, questionIndex int) (models.Category, models.Question, error) {
	if categoryIndex < 0 || categoryIndex >= len(s.bank.Categories) {
		return models.Category{}, models.Question{}, ErrQuestionNotFound
	}
	category := s.bank.Categories[categoryIndex]
	if questionIndex < 0 || questionIndex >= len(category.Questions) {
		return models.Category{}, models.Question{}, ErrQuestionNotFound
	}
	return category, category.Questions[questionIndex], nil
}

// Categories returns the bank's categories in board order.
func (s *QuestionService) Categories() []models.Category {
	return s.bank.Categories
}

// QuestionCount returns the total number of questions in the bank.
func (s *QuestionService) QuestionCount() int {
	count := 0
	for _, c := range s.bank.Categories {
		count += len(c.Questions)
	}
	return count
}

// Board renders the bank into the cells the board view needs: point values
// adjusted for the round, answered cells flagged, answer text stripped.
func (s *QuestionService) Board(round int, answered func(id int) bool) []models.BoardCategory {
	multiplier := 1
	if round == 2 {
		multiplier = 2
	}

	board := make([]models.BoardCategory, len(s.bank.Categories))
	for i, category := range s.bank.Categories {
		cells := make([]models.BoardCell, len(category.Questions))
		for j, q := range category.Questions {
			cells[j] = models.BoardCell{
				QuestionID: q.ID,
				Points:     q.Points * multiplier,
				Answered:   answered(q.ID),
			}
		}
		board[i] = models.BoardCategory{Name: category.Name, Cells: cells}
	}
	return board
}

func parseBank(data []byte) (models.QuestionBank, error) {
	var bank models.QuestionBank
	if err := json.Unmarshal(data, &bank); err != nil {
		return models.QuestionBank{}, fmt.Errorf("error parsing question bank: %v", err)
	}

	seen := make(map[int]bool)
	for _, category := range bank.Categories {
		for _, q := range category.Questions {
			if q.Points <= 0 {
				return models.QuestionBank{}, fmt.Errorf("question %d has non-positive points", q.ID)
			}
			if seen[q.ID] {
				return models.QuestionBank{}, fmt.Errorf("duplicate question id %d", q.ID)
			}
			seen[q.ID] = true
		}
	}

	return bank, nil
}
