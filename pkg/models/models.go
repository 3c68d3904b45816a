package models

// Question is a single board question with its base point value.
type Question struct {
	ID     int    `json:"id"`
	Text   string `json:"text"`
	Answer string `json:"answer"`
	Points int    `json:"points"`
}

// Category groups an ordered run of questions under one board column.
type Category struct {
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}

// QuestionBank is the static bank loaded at startup. It is never mutated.
type QuestionBank struct {
	Categories []Category `json:"categories"`
}

// APIResponse is the standard envelope for every API reply.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// BoardCell is one selectable question as the board renders it: the point
// value already round-adjusted, the answer text stripped.
type BoardCell struct {
	QuestionID int  `json:"questionId"`
	Points     int  `json:"points"`
	Answered   bool `json:"answered"`
}

// BoardCategory is one column of the rendered board.
type BoardCategory struct {
	Name  string      `json:"name"`
	Cells []BoardCell `json:"cells"`
}
