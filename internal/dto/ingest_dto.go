package dto

type IngestTextRequest struct {
	Text string `json:"text" binding:"required"`
}

type IngestResponse struct {
	Templates []TemplateResponse `json:"templates"`
}
