package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jinzhu/copier"

	"github.com/hwojcik/exagen/internal/apperr"
	"github.com/hwojcik/exagen/internal/dto"
	"github.com/hwojcik/exagen/internal/model"
	"github.com/hwojcik/exagen/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type TemplateService interface {
	Create(userID uint, req dto.TemplateCreateRequest) (*dto.TemplateResponse, error)
	List(userID uint) ([]dto.TemplateResponse, error)
	Get(userID, templateID uint) (*dto.TemplateDetailResponse, error)
	Update(userID, templateID uint, req dto.TemplateUpdateRequest) (*dto.TemplateResponse, error)
	Delete(userID, templateID uint) error
	Stats(userID, templateID uint) ([]dto.StatResponse, error)
	CreateFromExtractions(userID uint, extractions []TopicExtraction) ([]dto.TemplateResponse, error)
}

type templateService struct {
	templateRepo repository.TemplateRepository
	statRepo     repository.StatRepository
}

func NewTemplateService(templateRepo repository.TemplateRepository, statRepo repository.StatRepository) TemplateService {
	return &templateService{templateRepo: templateRepo, statRepo: statRepo}
}

func (s *templateService) Create(userID uint, req dto.TemplateCreateRequest) (*dto.TemplateResponse, error) {
	template := model.Template{
		Subject: req.Subject,
		Topics:  req.Topics,
		UserID:  userID,
	}
	if err := s.templateRepo.Create(&template); err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to create template")
		return nil, fmt.Errorf("creating template: %w", err)
	}

	var resp dto.TemplateResponse
	if err := copier.Copy(&resp, &template); err != nil {
		return nil, fmt.Errorf("preparing template response: %w", err)
	}
	return &resp, nil
}

func (s *templateService) List(userID uint) ([]dto.TemplateResponse, error) {
	templates, err := s.templateRepo.FindAllForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("fetching templates: %w", err)
	}

	resp := make([]dto.TemplateResponse, 0, len(templates))
	for _, template := range templates {
		var item dto.TemplateResponse
		if err := copier.Copy(&item, &template); err != nil {
			return nil, fmt.Errorf("preparing template response: %w", err)
		}
		resp = append(resp, item)
	}
	return resp, nil
}

func (s *templateService) Get(userID, templateID uint) (*dto.TemplateDetailResponse, error) {
	template, err := s.templateRepo.FindByIDForUserWithDetails(templateID, userID)
	if err != nil {
		return nil, wrapTemplateLookup(templateID, err)
	}

	resp := dto.TemplateDetailResponse{
		ID:        template.ID,
		Subject:   template.Subject,
		Topics:    template.Topics,
		Stats:     make([]dto.StatResponse, 0, len(template.Stats)),
		Exams:     make([]dto.ExamSummary, 0, len(template.Exams)),
		CreatedAt: template.CreatedAt,
	}
	for _, stat := range template.Stats {
		var item dto.StatResponse
		if err := copier.Copy(&item, &stat); err != nil {
			return nil, fmt.Errorf("preparing stat response: %w", err)
		}
		resp.Stats = append(resp.Stats, item)
	}
	for _, exam := range template.Exams {
		var item dto.ExamSummary
		if err := copier.Copy(&item, &exam); err != nil {
			return nil, fmt.Errorf("preparing exam summary: %w", err)
		}
		resp.Exams = append(resp.Exams, item)
	}
	return &resp, nil
}

func (s *templateService) Update(userID, templateID uint, req dto.TemplateUpdateRequest) (*dto.TemplateResponse, error) {
	template, err := s.templateRepo.FindByIDForUser(templateID, userID)
	if err != nil {
		return nil, wrapTemplateLookup(templateID, err)
	}

	if req.Topics != nil {
		template.Topics = *req.Topics
	}
	if req.Subject != nil {
		template.Subject = *req.Subject
	}

	if err := s.templateRepo.Update(template); err != nil {
		log.Error().Err(err).Uint("templateID", templateID).Msg("Failed to update template")
		return nil, fmt.Errorf("updating template: %w", err)
	}

	var resp dto.TemplateResponse
	if err := copier.Copy(&resp, template); err != nil {
		return nil, fmt.Errorf("preparing template response: %w", err)
	}
	return &resp, nil
}

func (s *templateService) Delete(userID, templateID uint) error {
	template, err := s.templateRepo.FindByIDForUser(templateID, userID)
	if err != nil {
		return wrapTemplateLookup(templateID, err)
	}
	if err := s.templateRepo.Delete(template); err != nil {
		log.Error().Err(err).Uint("templateID", templateID).Msg("Failed to delete template")
		return fmt.Errorf("deleting template: %w", err)
	}
	log.Info().Uint("templateID", templateID).Uint("userID", userID).Msg("Template deleted")
	return nil
}

func (s *templateService) Stats(userID, templateID uint) ([]dto.StatResponse, error) {
	if _, err := s.templateRepo.FindByIDForUser(templateID, userID); err != nil {
		return nil, wrapTemplateLookup(templateID, err)
	}

	stats, err := s.statRepo.FindAllForTemplate(templateID)
	if err != nil {
		return nil, fmt.Errorf("fetching stats: %w", err)
	}

	resp := make([]dto.StatResponse, 0, len(stats))
	for _, stat := range stats {
		var item dto.StatResponse
		if err := copier.Copy(&item, &stat); err != nil {
			return nil, fmt.Errorf("preparing stat response: %w", err)
		}
		resp = append(resp, item)
	}
	return resp, nil
}

// CreateFromExtractions fans the ingestion adapter's output into one template
// per extracted subject.
func (s *templateService) CreateFromExtractions(userID uint, extractions []TopicExtraction) ([]dto.TemplateResponse, error) {
	resp := make([]dto.TemplateResponse, 0, len(extractions))
	for _, ext := range extractions {
		created, err := s.Create(userID, dto.TemplateCreateRequest{
			Subject: ext.Subject,
			Topics:  joinTopics(ext.Topics),
		})
		if err != nil {
			return nil, err
		}
		resp = append(resp, *created)
	}
	return resp, nil
}

func wrapTemplateLookup(templateID uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: template %d", apperr.ErrNotFound, templateID)
	}
	return fmt.Errorf("looking up template %d: %w", templateID, err)
}

// splitTopics parses the free-form comma-separated topics column. Empty
// segments are dropped, surrounding whitespace is trimmed.
func splitTopics(topics string) []string {
	parts := strings.Split(topics, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func joinTopics(topics []string) string {
	return strings.Join(topics, ",")
}
