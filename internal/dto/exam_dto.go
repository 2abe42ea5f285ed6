package dto

import "time"

type ExamSummary struct {
	ID         uint      `json:"id"`
	TemplateID uint      `json:"template_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type ExamResponse struct {
	ID         uint               `json:"id"`
	TemplateID uint               `json:"template_id"`
	Questions  []QuestionResponse `json:"questions"`
	CreatedAt  time.Time          `json:"created_at"`
}

// QuestionResponse is the only externally visible question shape. It carries
// no answer and no solution, for any question type.
type QuestionResponse struct {
	ID      uint     `json:"id"`
	ExamID  uint     `json:"exam_id"`
	Type    string   `json:"type"`
	Topic   string   `json:"topic"`
	Points  int      `json:"points"`
	Options []string `json:"options,omitempty"`
}

type AnswerSubmitRequest struct {
	Answer *string `json:"answer"`
}

type AnswerResultResponse struct {
	IsCorrect     bool         `json:"is_correct"`
	CorrectAnswer string       `json:"correct_answer"`
	Stat          StatResponse `json:"stat"`
}

type ClarificationResponse struct {
	Clarification string       `json:"clarification"`
	Stat          StatResponse `json:"stat"`
}
