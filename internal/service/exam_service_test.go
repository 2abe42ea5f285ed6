package service

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/hwojcik/exagen/internal/model"
)

func TestQuestionToResponseRedactsAnswer(t *testing.T) {
	question := model.Question{
		ExamID:   7,
		Type:     model.QuestionTypeClosed,
		Topic:    "multiplication",
		Points:   3,
		Options:  `["8","12","14"]`,
		Answer:   "12",
		Solution: "3 times 4 is 12.",
	}

	resp := questionToResponse(&question)

	encoded, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshaling response: %v", err)
	}
	body := strings.ToLower(string(encoded))
	if strings.Contains(body, "answer") {
		t.Errorf("serialized question leaks the answer: %s", body)
	}
	if strings.Contains(body, "solution") {
		t.Errorf("serialized question leaks the solution: %s", body)
	}
	if resp.Topic != "multiplication" || resp.Points != 3 {
		t.Errorf("public fields not copied: %+v", resp)
	}
}

func TestQuestionToResponseOptions(t *testing.T) {
	t.Run("decodes stored options", func(t *testing.T) {
		question := model.Question{Type: model.QuestionTypeClosed, Options: `["a","b","c"]`}
		resp := questionToResponse(&question)
		if len(resp.Options) != 3 || resp.Options[1] != "b" {
			t.Errorf("unexpected options: %v", resp.Options)
		}
	})

	t.Run("open question has no options", func(t *testing.T) {
		question := model.Question{Type: model.QuestionTypeOpen}
		if resp := questionToResponse(&question); resp.Options != nil {
			t.Errorf("expected nil options, got %v", resp.Options)
		}
	})

	t.Run("corrupt options are omitted", func(t *testing.T) {
		question := model.Question{Type: model.QuestionTypeClosed, Options: "not json"}
		if resp := questionToResponse(&question); resp.Options != nil {
			t.Errorf("expected corrupt options to be dropped, got %v", resp.Options)
		}
	})
}
