package controller

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hwojcik/exagen/internal/dto"
	"github.com/hwojcik/exagen/internal/middleware"
	"github.com/hwojcik/exagen/internal/service"
	"github.com/rs/zerolog/log"
)

// maxUploadBytes bounds file and image uploads fed to the LLM.
const maxUploadBytes = 10 << 20

type IngestController struct {
	ingestService   service.IngestService
	templateService service.TemplateService
}

func NewIngestController(ingestService service.IngestService, templateService service.TemplateService) *IngestController {
	return &IngestController{ingestService: ingestService, templateService: templateService}
}

// Text godoc
// @Summary Extract topics from raw text and create templates
// @Tags Ingestion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param text body dto.IngestTextRequest true "Raw text to analyze"
// @Success 201 {object} dto.IngestResponse
// @Failure 400 {object} dto.ErrorResponse "No text provided"
// @Failure 502 {object} dto.ErrorResponse "LLM failure or malformed output"
// @Router /ingest/text [post]
func (c *IngestController) Text(ctx *gin.Context) {
	var req dto.IngestTextRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "No text provided", Details: []string{err.Error()}})
		return
	}

	c.ingest(ctx, service.Source{Kind: service.SourceText, Text: req.Text})
}

// File godoc
// @Summary Extract topics from an uploaded file and create templates
// @Tags Ingestion
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to analyze"
// @Success 201 {object} dto.IngestResponse
// @Failure 400 {object} dto.ErrorResponse "No file part"
// @Failure 502 {object} dto.ErrorResponse "LLM failure or malformed output"
// @Router /ingest/file [post]
func (c *IngestController) File(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "No file part"})
		return
	}

	data, ok := readUpload(ctx, header)
	if !ok {
		return
	}

	c.ingest(ctx, service.Source{Kind: service.SourceFile, Filename: header.Filename, Data: data})
}

// Image godoc
// @Summary Extract topics from an uploaded image and create templates
// @Tags Ingestion
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image to analyze"
// @Success 201 {object} dto.IngestResponse
// @Failure 400 {object} dto.ErrorResponse "No image part or unsupported type"
// @Failure 502 {object} dto.ErrorResponse "LLM failure or malformed output"
// @Router /ingest/image [post]
func (c *IngestController) Image(ctx *gin.Context) {
	header, err := ctx.FormFile("image")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "No image part"})
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(mimeType, "image/") {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Unsupported image type: " + mimeType})
		return
	}

	data, ok := readUpload(ctx, header)
	if !ok {
		return
	}

	c.ingest(ctx, service.Source{Kind: service.SourceImage, MIME: mimeType, Data: data})
}

func (c *IngestController) ingest(ctx *gin.Context, src service.Source) {
	extractions, err := c.ingestService.Ingest(ctx.Request.Context(), src)
	if err != nil {
		log.Error().Err(err).Str("kind", src.Kind).Msg("Ingestion failed")
		respondError(ctx, err)
		return
	}

	templates, err := c.templateService.CreateFromExtractions(middleware.UserID(ctx), extractions)
	if err != nil {
		respondError(ctx, err)
		return
	}

	log.Info().Str("kind", src.Kind).Int("templates", len(templates)).Msg("Ingestion completed")
	ctx.JSON(http.StatusCreated, dto.IngestResponse{Templates: templates})
}

func readUpload(ctx *gin.Context, header *multipart.FileHeader) ([]byte, bool) {
	if header.Size > maxUploadBytes {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Upload too large"})
		return nil, false
	}

	file, err := header.Open()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to read upload"})
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to read upload"})
		return nil, false
	}
	return data, true
}
