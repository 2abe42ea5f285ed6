package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hwojcik/exagen/internal/dto"
	"github.com/hwojcik/exagen/internal/middleware"
	"github.com/hwojcik/exagen/internal/service"
	"github.com/rs/zerolog/log"
)

type ExamController struct {
	examService       service.ExamService
	submissionService service.SubmissionService
}

func NewExamController(examService service.ExamService, submissionService service.SubmissionService) *ExamController {
	return &ExamController{examService: examService, submissionService: submissionService}
}

// CreateFromTemplate godoc
// @Summary Activate a template into a new exam
// @Description Generates questions for the template's topics via the LLM adapter.
// @Tags Exams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Template ID"
// @Success 201 {object} dto.ExamResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse "LLM failure"
// @Router /templates/{id}/exams [post]
func (c *ExamController) CreateFromTemplate(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.examService.CreateFromTemplate(ctx.Request.Context(), middleware.UserID(ctx), id)
	if err != nil {
		log.Error().Err(err).Uint("templateID", id).Msg("Exam creation failed")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListForTemplate godoc
// @Summary List exams generated from a template
// @Tags Exams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Template ID"
// @Success 200 {array} dto.ExamSummary
// @Failure 404 {object} dto.ErrorResponse
// @Router /templates/{id}/exams [get]
func (c *ExamController) ListForTemplate(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.examService.ListForTemplate(middleware.UserID(ctx), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListAll godoc
// @Summary List all of the authenticated user's exams
// @Tags Exams
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ExamSummary
// @Router /exams [get]
func (c *ExamController) ListAll(ctx *gin.Context) {
	resp, err := c.examService.ListAll(middleware.UserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get one exam with its questions
// @Description Question listings never include canonical answers or solutions.
// @Tags Exams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.ExamResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /exams/{id} [get]
func (c *ExamController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.examService.Get(middleware.UserID(ctx), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SubmitAnswer godoc
// @Summary Submit an answer to an exam question
// @Description Grades case-insensitively against the canonical answer and updates the topic's difficulty stat.
// @Tags Exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Param qid path int true "Question ID"
// @Param answer body dto.AnswerSubmitRequest true "The answer text"
// @Success 200 {object} dto.AnswerResultResponse
// @Failure 400 {object} dto.ErrorResponse "Answer missing"
// @Failure 404 {object} dto.ErrorResponse
// @Router /exams/{id}/questions/{qid}/answer [post]
func (c *ExamController) SubmitAnswer(ctx *gin.Context) {
	examID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	questionID, ok := pathID(ctx, "qid")
	if !ok {
		return
	}

	var req dto.AnswerSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.submissionService.SubmitAnswer(middleware.UserID(ctx), examID, questionID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Clarify godoc
// @Summary Request a clarification for an exam question
// @Description Returns the canonical explanation and counts as an incorrect outcome for the topic.
// @Tags Exams
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Param qid path int true "Question ID"
// @Success 200 {object} dto.ClarificationResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /exams/{id}/questions/{qid}/clarify [post]
func (c *ExamController) Clarify(ctx *gin.Context) {
	examID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	questionID, ok := pathID(ctx, "qid")
	if !ok {
		return
	}

	resp, err := c.submissionService.Clarify(middleware.UserID(ctx), examID, questionID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
