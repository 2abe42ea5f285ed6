package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/hwojcik/exagen/internal/apperr"
	"github.com/hwojcik/exagen/internal/dto"
	"github.com/hwojcik/exagen/internal/model"
	"gorm.io/gorm"
)

type fakeExamRepo struct {
	exam  *model.Exam
	owner uint
}

func (r *fakeExamRepo) Create(exam *model.Exam) error { return nil }

func (r *fakeExamRepo) FindByIDForUser(id, userID uint) (*model.Exam, error) {
	if r.exam == nil || r.exam.ID != id || r.owner != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return r.exam, nil
}

func (r *fakeExamRepo) FindAllForUser(userID uint) ([]model.Exam, error)       { return nil, nil }
func (r *fakeExamRepo) FindAllForTemplate(templateID uint) ([]model.Exam, error) { return nil, nil }

type fakeQuestionRepo struct {
	question *model.Question
}

func (r *fakeQuestionRepo) FindByIDInExam(id, examID uint) (*model.Question, error) {
	if r.question == nil || r.question.ID != id || r.question.ExamID != examID {
		return nil, gorm.ErrRecordNotFound
	}
	return r.question, nil
}

func (r *fakeQuestionRepo) FindAllForExam(examID uint) ([]model.Question, error) { return nil, nil }

// recordingTracker captures the outcomes fed into the difficulty tracker and
// replays the step function from the default score.
type recordingTracker struct {
	outcomes []bool
}

func (tr *recordingTracker) RecordOutcome(templateID uint, topic string, isCorrect bool) (*model.Stat, error) {
	tr.outcomes = append(tr.outcomes, isCorrect)
	difficulty, trend := NextDifficulty(model.BaseDifficulty, isCorrect)
	return &model.Stat{TemplateID: templateID, Topic: topic, Difficulty: difficulty, Trend: trend}, nil
}

func newSubmissionFixture() (*recordingTracker, SubmissionService) {
	tracker := &recordingTracker{}
	examRepo := &fakeExamRepo{
		exam:  &model.Exam{ID: 10, TemplateID: 3},
		owner: 1,
	}
	questionRepo := &fakeQuestionRepo{
		question: &model.Question{
			ID:       20,
			ExamID:   10,
			Type:     model.QuestionTypeClosed,
			Topic:    "algebra",
			Answer:   "42",
			Solution: "Six times seven.",
		},
	}
	return tracker, NewSubmissionService(examRepo, questionRepo, tracker)
}

func strPtr(s string) *string { return &s }

// Exams reachable only through somebody else's template must behave exactly
// like missing ones, and no outcome may be recorded for them.
func TestSubmitAnswerOwnership(t *testing.T) {
	tests := []struct {
		name       string
		userID     uint
		examID     uint
		questionID uint
	}{
		{"foreign exam", 2, 10, 20},
		{"missing exam", 1, 99, 20},
		{"question outside exam", 1, 10, 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker, svc := newSubmissionFixture()
			_, err := svc.SubmitAnswer(tt.userID, tt.examID, tt.questionID, dto.AnswerSubmitRequest{Answer: strPtr("42")})
			if !errors.Is(err, apperr.ErrNotFound) {
				t.Errorf("expected not-found, got %v", err)
			}
			if len(tracker.outcomes) != 0 {
				t.Errorf("no outcome may be recorded for an unresolved question, got %v", tracker.outcomes)
			}
		})
	}
}

func TestSubmitAnswerGrading(t *testing.T) {
	t.Run("missing answer is rejected", func(t *testing.T) {
		tracker, svc := newSubmissionFixture()
		_, err := svc.SubmitAnswer(1, 10, 20, dto.AnswerSubmitRequest{})
		if !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
		if len(tracker.outcomes) != 0 {
			t.Errorf("rejected submission must not reach the tracker, got %v", tracker.outcomes)
		}
	})

	t.Run("empty answer is graded incorrect", func(t *testing.T) {
		tracker, svc := newSubmissionFixture()
		resp, err := svc.SubmitAnswer(1, 10, 20, dto.AnswerSubmitRequest{Answer: strPtr("")})
		if err != nil {
			t.Fatalf("SubmitAnswer() error = %v", err)
		}
		if resp.IsCorrect {
			t.Error("empty answer should grade as incorrect")
		}
		if !outcomesEqual(tracker, false) {
			t.Errorf("expected one incorrect outcome, got %v", tracker.outcomes)
		}
		if resp.Stat.Difficulty != 6.0 || resp.Stat.Trend != model.TrendIncreasing {
			t.Errorf("unexpected stat after miss: %+v", resp.Stat)
		}
	})

	t.Run("correct answer", func(t *testing.T) {
		tracker, svc := newSubmissionFixture()
		resp, err := svc.SubmitAnswer(1, 10, 20, dto.AnswerSubmitRequest{Answer: strPtr(" 42 ")})
		if err != nil {
			t.Fatalf("SubmitAnswer() error = %v", err)
		}
		if !resp.IsCorrect || resp.CorrectAnswer != "42" {
			t.Errorf("unexpected result: %+v", resp)
		}
		if !outcomesEqual(tracker, true) {
			t.Errorf("expected one correct outcome, got %v", tracker.outcomes)
		}
	})
}

func TestClarifyCountsAsMiss(t *testing.T) {
	tracker, svc := newSubmissionFixture()
	resp, err := svc.Clarify(1, 10, 20)
	if err != nil {
		t.Fatalf("Clarify() error = %v", err)
	}
	if resp.Clarification != "Six times seven." {
		t.Errorf("unexpected clarification: %q", resp.Clarification)
	}
	if !outcomesEqual(tracker, false) {
		t.Errorf("clarification must record an incorrect outcome, got %v", tracker.outcomes)
	}

	if _, err := svc.Clarify(2, 10, 20); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("foreign exam clarification should be not-found, got %v", err)
	}
}

func outcomesEqual(tracker *recordingTracker, want ...bool) bool {
	if len(tracker.outcomes) != len(want) {
		return false
	}
	for i := range want {
		if tracker.outcomes[i] != want[i] {
			return false
		}
	}
	return true
}

func TestGradeAnswer(t *testing.T) {
	tests := []struct {
		name      string
		submitted string
		canonical string
		want      bool
	}{
		{"exact match", "42", "42", true},
		{"case insensitive", "Paris", "paris", true},
		{"surrounding whitespace", "  42 ", "42", true},
		{"wrong answer", "41", "42", false},
		{"substring is not a match", "4", "42", false},
		{"empty submitted", "", "42", false},
		{"mixed case phrase", "The Mitochondria", "the mitochondria", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gradeAnswer(tt.submitted, tt.canonical); got != tt.want {
				t.Errorf("gradeAnswer(%q, %q) = %v, want %v", tt.submitted, tt.canonical, got, tt.want)
			}
		})
	}
}

func TestClarificationFor(t *testing.T) {
	t.Run("uses stored solution", func(t *testing.T) {
		q := &model.Question{Topic: "fractions", Type: model.QuestionTypeOpen, Solution: "Multiply both sides by the denominator."}
		if got := clarificationFor(q); got != q.Solution {
			t.Errorf("clarificationFor() = %q, want stored solution", got)
		}
	})

	t.Run("falls back to canonical text", func(t *testing.T) {
		q := &model.Question{Topic: "fractions", Type: model.QuestionTypeClosed, Solution: "  "}
		got := clarificationFor(q)
		if !strings.Contains(got, "fractions") {
			t.Errorf("fallback clarification %q should mention the topic", got)
		}
		if !strings.Contains(got, model.QuestionTypeClosed) {
			t.Errorf("fallback clarification %q should mention the question type", got)
		}
	})
}
