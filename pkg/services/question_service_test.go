package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBankJSON = `{
	"categories": [
		{"name": "Capitals", "questions": [
			{"id": 1, "text": "Capital of France?", "answer": "Paris", "points": 10},
			{"id": 2, "text": "Capital of Mongolia?", "answer": "Ulaanbaatar", "points": 20}
		]},
		{"name": "Science", "questions": [
			{"id": 3, "text": "Red planet?", "answer": "Mars", "points": 10}
		]}
	]
}`

func newTestBank(t *testing.T) *QuestionService {
	t.Helper()

	svc, err := NewQuestionService([]byte(testBankJSON))
	require.NoError(t, err)
	return svc
}

func TestQuestionLookup(t *testing.T) {
	svc := newTestBank(t)

	category, question, err := svc.Question(0, 1)
	require.NoError(t, err)
	assert.Equal(t, "Capitals", category.Name)
	assert.Equal(t, 2, question.ID)
	assert.Equal(t, 20, question.Points)
}

func TestQuestionLookupOutOfRange(t *testing.T) {
	svc := newTestBank(t)

	for _, pos := range [][2]int{{-1, 0}, {2, 0}, {0, -1}, {0, 2}, {1, 1}} {
		_, _, err := svc.Question(pos[0], pos[1])
		assert.ErrorIs(t, err, ErrQuestionNotFound, "position %v", pos)
	}
}

func TestQuestionCount(t *testing.T) {
	assert.Equal(t, 3, newTestBank(t).QuestionCount())
}

func TestBankRejectsDuplicateIDs(t *testing.T) {
	_, err := NewQuestionService([]byte(`{"categories": [
		{"name": "A", "questions": [{"id": 1, "text": "q", "answer": "a", "points": 10}]},
		{"name": "B", "questions": [{"id": 1, "text": "q", "answer": "a", "points": 10}]}
	]}`))
	assert.Error(t, err)
}

func TestBankRejectsNonPositivePoints(t *testing.T) {
	_, err := NewQuestionService([]byte(`{"categories": [
		{"name": "A", "questions": [{"id": 1, "text": "q", "answer": "a", "points": 0}]}
	]}`))
	assert.Error(t, err)
}

func TestBankRejectsMalformedJSON(t *testing.T) {
	_, err := NewQuestionService([]byte("{{{"))
	assert.Error(t, err)
}

func TestBoardAdjustsPointsAndFlagsAnswered(t *testing.T) {
	svc := newTestBank(t)
	answered := func(id int) bool { return id == 1 }

	board := svc.Board(2, answered)
	require.Len(t, board, 2)

	cells := board[0].Cells
	require.Len(t, cells, 2)
	assert.Equal(t, 20, cells[0].Points) // 10 × 2
	assert.True(t, cells[0].Answered)
	assert.Equal(t, 40, cells[1].Points) // 20 × 2
	assert.False(t, cells[1].Answered)

	// round 1 leaves base values untouched
	board = svc.Board(1, answered)
	assert.Equal(t, 10, board[0].Cells[0].Points)
}
