package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jinzhu/copier"

	"github.com/hwojcik/exagen/internal/apperr"
	"github.com/hwojcik/exagen/internal/dto"
	"github.com/hwojcik/exagen/internal/model"
	"github.com/hwojcik/exagen/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ExamService interface {
	CreateFromTemplate(ctx context.Context, userID, templateID uint) (*dto.ExamResponse, error)
	Get(userID, examID uint) (*dto.ExamResponse, error)
	ListForTemplate(userID, templateID uint) ([]dto.ExamSummary, error)
	ListAll(userID uint) ([]dto.ExamSummary, error)
}

type examService struct {
	templateRepo repository.TemplateRepository
	examRepo     repository.ExamRepository
	ingestSvc    IngestService
}

func NewExamService(templateRepo repository.TemplateRepository, examRepo repository.ExamRepository, ingestSvc IngestService) ExamService {
	return &examService{templateRepo: templateRepo, examRepo: examRepo, ingestSvc: ingestSvc}
}

// CreateFromTemplate activates a template into a concrete exam. Questions are
// generated from the template's topics by the LLM adapter. When the adapter
// is not configured the exam is still created, just without questions; an
// adapter that is configured but fails is surfaced to the caller.
func (s *examService) CreateFromTemplate(ctx context.Context, userID, templateID uint) (*dto.ExamResponse, error) {
	template, err := s.templateRepo.FindByIDForUser(templateID, userID)
	if err != nil {
		return nil, wrapTemplateLookup(templateID, err)
	}

	exam := model.Exam{TemplateID: template.ID}

	if s.ingestSvc.Enabled() {
		generated, err := s.ingestSvc.GenerateQuestions(ctx, template.Subject, splitTopics(template.Topics))
		if err != nil {
			log.Error().Err(err).Uint("templateID", templateID).Msg("Question generation failed")
			return nil, fmt.Errorf("generating questions: %w", err)
		}
		exam.Questions = make([]model.Question, 0, len(generated))
		for _, q := range generated {
			question := model.Question{
				Type:     q.Type,
				Topic:    q.Topic,
				Points:   q.Points,
				Answer:   q.Answer,
				Solution: q.Solution,
			}
			if len(q.Options) > 0 {
				encoded, err := json.Marshal(q.Options)
				if err != nil {
					return nil, fmt.Errorf("encoding options: %w", err)
				}
				question.Options = string(encoded)
			}
			exam.Questions = append(exam.Questions, question)
		}
	} else {
		log.Warn().Uint("templateID", templateID).Msg("LLM adapter not configured, creating exam without questions")
	}

	if err := s.examRepo.Create(&exam); err != nil {
		log.Error().Err(err).Uint("templateID", templateID).Msg("Failed to create exam")
		return nil, fmt.Errorf("creating exam: %w", err)
	}

	log.Info().Uint("examID", exam.ID).Uint("templateID", templateID).Int("questions", len(exam.Questions)).Msg("Exam created")
	return examToResponse(&exam)
}

func (s *examService) Get(userID, examID uint) (*dto.ExamResponse, error) {
	exam, err := s.examRepo.FindByIDForUser(examID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: exam %d", apperr.ErrNotFound, examID)
		}
		return nil, fmt.Errorf("looking up exam %d: %w", examID, err)
	}
	return examToResponse(exam)
}

func (s *examService) ListForTemplate(userID, templateID uint) ([]dto.ExamSummary, error) {
	if _, err := s.templateRepo.FindByIDForUser(templateID, userID); err != nil {
		return nil, wrapTemplateLookup(templateID, err)
	}

	exams, err := s.examRepo.FindAllForTemplate(templateID)
	if err != nil {
		return nil, fmt.Errorf("fetching exams: %w", err)
	}
	return examSummaries(exams)
}

func (s *examService) ListAll(userID uint) ([]dto.ExamSummary, error) {
	exams, err := s.examRepo.FindAllForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("fetching exams: %w", err)
	}
	return examSummaries(exams)
}

func examSummaries(exams []model.Exam) ([]dto.ExamSummary, error) {
	resp := make([]dto.ExamSummary, 0, len(exams))
	for _, exam := range exams {
		var item dto.ExamSummary
		if err := copier.Copy(&item, &exam); err != nil {
			return nil, fmt.Errorf("preparing exam summary: %w", err)
		}
		resp = append(resp, item)
	}
	return resp, nil
}

func examToResponse(exam *model.Exam) (*dto.ExamResponse, error) {
	resp := dto.ExamResponse{
		ID:         exam.ID,
		TemplateID: exam.TemplateID,
		Questions:  make([]dto.QuestionResponse, 0, len(exam.Questions)),
		CreatedAt:  exam.CreatedAt,
	}
	for _, question := range exam.Questions {
		resp.Questions = append(resp.Questions, questionToResponse(&question))
	}
	return &resp, nil
}

// questionToResponse maps a question to its public shape. The canonical
// answer and the solution are deliberately not copied.
func questionToResponse(question *model.Question) dto.QuestionResponse {
	resp := dto.QuestionResponse{
		ID:     question.ID,
		ExamID: question.ExamID,
		Type:   question.Type,
		Topic:  question.Topic,
		Points: question.Points,
	}
	if question.Options != "" {
		var options []string
		if err := json.Unmarshal([]byte(question.Options), &options); err != nil {
			log.Warn().Err(err).Uint("questionID", question.ID).Msg("Stored options are not valid JSON, omitting")
		} else {
			resp.Options = options
		}
	}
	return resp
}
