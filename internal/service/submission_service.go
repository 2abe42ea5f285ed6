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

// SubmissionService handles answers and clarification requests against exam
// questions. Neither operation is terminal: every call is a fresh observation
// fed into the difficulty tracker.
type SubmissionService interface {
	SubmitAnswer(userID, examID, questionID uint, req dto.AnswerSubmitRequest) (*dto.AnswerResultResponse, error)
	Clarify(userID, examID, questionID uint) (*dto.ClarificationResponse, error)
}

type submissionService struct {
	examRepo      repository.ExamRepository
	questionRepo  repository.QuestionRepository
	difficultySvc DifficultyService
}

func NewSubmissionService(examRepo repository.ExamRepository, questionRepo repository.QuestionRepository, difficultySvc DifficultyService) SubmissionService {
	return &submissionService{examRepo: examRepo, questionRepo: questionRepo, difficultySvc: difficultySvc}
}

func (s *submissionService) SubmitAnswer(userID, examID, questionID uint, req dto.AnswerSubmitRequest) (*dto.AnswerResultResponse, error) {
	// Only a missing/null answer is a validation error. An empty string is a
	// submission like any other and is graded (incorrect) accordingly.
	if req.Answer == nil {
		return nil, fmt.Errorf("%w: answer is required", apperr.ErrValidation)
	}

	exam, question, err := s.resolve(userID, examID, questionID)
	if err != nil {
		return nil, err
	}

	isCorrect := gradeAnswer(*req.Answer, question.Answer)
	stat, err := s.difficultySvc.RecordOutcome(exam.TemplateID, question.Topic, isCorrect)
	if err != nil {
		return nil, err
	}

	resp := dto.AnswerResultResponse{
		IsCorrect:     isCorrect,
		CorrectAnswer: question.Answer,
	}
	if err := copier.Copy(&resp.Stat, stat); err != nil {
		return nil, fmt.Errorf("preparing stat response: %w", err)
	}
	return &resp, nil
}

// Clarify counts as a miss: asking for help is treated as evidence the topic
// is hard, so the tracker is updated with an incorrect outcome.
func (s *submissionService) Clarify(userID, examID, questionID uint) (*dto.ClarificationResponse, error) {
	exam, question, err := s.resolve(userID, examID, questionID)
	if err != nil {
		return nil, err
	}

	stat, err := s.difficultySvc.RecordOutcome(exam.TemplateID, question.Topic, false)
	if err != nil {
		return nil, err
	}

	resp := dto.ClarificationResponse{
		Clarification: clarificationFor(question),
	}
	if err := copier.Copy(&resp.Stat, stat); err != nil {
		return nil, fmt.Errorf("preparing stat response: %w", err)
	}
	return &resp, nil
}

// resolve walks the ownership chain: the exam must belong to a template owned
// by the user, the question must belong to the exam. Foreign and missing
// resources both come back as not-found.
func (s *submissionService) resolve(userID, examID, questionID uint) (*model.Exam, *model.Question, error) {
	exam, err := s.examRepo.FindByIDForUser(examID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: exam %d", apperr.ErrNotFound, examID)
		}
		return nil, nil, fmt.Errorf("looking up exam %d: %w", examID, err)
	}

	question, err := s.questionRepo.FindByIDInExam(questionID, examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: question %d in exam %d", apperr.ErrNotFound, questionID, examID)
		}
		return nil, nil, fmt.Errorf("looking up question %d: %w", questionID, err)
	}

	log.Debug().Uint("userID", userID).Uint("examID", examID).Uint("questionID", questionID).Msg("Resolved submission target")
	return exam, question, nil
}

// gradeAnswer compares the submitted answer with the canonical one using
// case-insensitive, whitespace-trimmed equality.
func gradeAnswer(submitted, canonical string) bool {
	return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(canonical))
}

// clarificationFor returns the canonical explanatory text for a question: the
// stored solution when present, otherwise a generic per-topic sentence. The
// text is fixed, not adaptive.
func clarificationFor(question *model.Question) string {
	if strings.TrimSpace(question.Solution) != "" {
		return question.Solution
	}
	return fmt.Sprintf("Review the topic %q and try again. The expected answer format matches a %s question.", question.Topic, question.Type)
}
