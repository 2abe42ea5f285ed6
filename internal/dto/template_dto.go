package dto

import "time"

type TemplateCreateRequest struct {
	Subject string `json:"subject"`
	Topics  string `json:"topics" binding:"required"`
}

// TemplateUpdateRequest overwrites topics (and subject) when present; absent
// fields are left untouched.
type TemplateUpdateRequest struct {
	Subject *string `json:"subject"`
	Topics  *string `json:"topics"`
}

type TemplateResponse struct {
	ID        uint      `json:"id"`
	Subject   string    `json:"subject,omitempty"`
	Topics    string    `json:"topics"`
	CreatedAt time.Time `json:"created_at"`
}

type TemplateDetailResponse struct {
	ID        uint           `json:"id"`
	Subject   string         `json:"subject,omitempty"`
	Topics    string         `json:"topics"`
	Stats     []StatResponse `json:"stats"`
	Exams     []ExamSummary  `json:"exams"`
	CreatedAt time.Time      `json:"created_at"`
}

type StatResponse struct {
	ID         uint    `json:"id"`
	Topic      string  `json:"topic"`
	Difficulty float64 `json:"difficulty"`
	Trend      string  `json:"trend"`
}
