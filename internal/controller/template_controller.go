package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hwojcik/exagen/internal/dto"
	"github.com/hwojcik/exagen/internal/middleware"
	"github.com/hwojcik/exagen/internal/service"
	"github.com/rs/zerolog/log"
)

type TemplateController struct {
	templateService service.TemplateService
}

func NewTemplateController(templateService service.TemplateService) *TemplateController {
	return &TemplateController{templateService: templateService}
}

// Create godoc
// @Summary Create a template
// @Tags Templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param template body dto.TemplateCreateRequest true "Subject (optional) and comma-separated topics"
// @Success 201 {object} dto.TemplateResponse
// @Failure 400 {object} dto.ErrorResponse "Topics missing"
// @Router /templates [post]
func (c *TemplateController) Create(ctx *gin.Context) {
	var req dto.TemplateCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Topics are required", Details: []string{err.Error()}})
		return
	}

	resp, err := c.templateService.Create(middleware.UserID(ctx), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary List the authenticated user's templates
// @Tags Templates
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.TemplateResponse
// @Router /templates [get]
func (c *TemplateController) List(ctx *gin.Context) {
	resp, err := c.templateService.List(middleware.UserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get one template with its stats and exams
// @Tags Templates
// @Produce json
// @Security BearerAuth
// @Param id path int true "Template ID"
// @Success 200 {object} dto.TemplateDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /templates/{id} [get]
func (c *TemplateController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.templateService.Get(middleware.UserID(ctx), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary Update a template's topics or subject
// @Tags Templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Template ID"
// @Param template body dto.TemplateUpdateRequest true "Fields to overwrite"
// @Success 200 {object} dto.TemplateResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /templates/{id} [put]
func (c *TemplateController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.TemplateUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.templateService.Update(middleware.UserID(ctx), id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary Delete a template and everything under it
// @Tags Templates
// @Produce json
// @Security BearerAuth
// @Param id path int true "Template ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /templates/{id} [delete]
func (c *TemplateController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.templateService.Delete(middleware.UserID(ctx), id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Template deleted successfully"})
}

// Stats godoc
// @Summary List per-topic difficulty stats for a template
// @Tags Templates
// @Produce json
// @Security BearerAuth
// @Param id path int true "Template ID"
// @Success 200 {array} dto.StatResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /templates/{id}/stats [get]
func (c *TemplateController) Stats(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.templateService.Stats(middleware.UserID(ctx), id)
	if err != nil {
		log.Warn().Err(err).Uint("templateID", id).Msg("Stats lookup failed")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
