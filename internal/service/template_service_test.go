package service

import (
	"errors"
	"reflect"
	"testing"

	"github.com/hwojcik/exagen/internal/apperr"
	"github.com/hwojcik/exagen/internal/dto"
	"github.com/hwojcik/exagen/internal/model"
	"gorm.io/gorm"
)

type fakeTemplateRepo struct {
	templates map[uint]*model.Template
}

func (r *fakeTemplateRepo) Create(template *model.Template) error {
	template.ID = uint(len(r.templates) + 1)
	r.templates[template.ID] = template
	return nil
}

func (r *fakeTemplateRepo) FindByIDForUser(id, userID uint) (*model.Template, error) {
	template, ok := r.templates[id]
	if !ok || template.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return template, nil
}

func (r *fakeTemplateRepo) FindByIDForUserWithDetails(id, userID uint) (*model.Template, error) {
	return r.FindByIDForUser(id, userID)
}

func (r *fakeTemplateRepo) FindAllForUser(userID uint) ([]model.Template, error) {
	var out []model.Template
	for _, template := range r.templates {
		if template.UserID == userID {
			out = append(out, *template)
		}
	}
	return out, nil
}

func (r *fakeTemplateRepo) Update(template *model.Template) error { return nil }
func (r *fakeTemplateRepo) Delete(template *model.Template) error { return nil }

type fakeStatRepo struct{}

func (fakeStatRepo) SeedIfAbsent(tx *gorm.DB, templateID uint, topic string) error { return nil }
func (fakeStatRepo) FindForUpdate(tx *gorm.DB, templateID uint, topic string) (*model.Stat, error) {
	return nil, gorm.ErrRecordNotFound
}
func (fakeStatRepo) Save(tx *gorm.DB, stat *model.Stat) error { return nil }
func (fakeStatRepo) FindAllForTemplate(templateID uint) ([]model.Stat, error) {
	return []model.Stat{}, nil
}

func TestWrapTemplateLookup(t *testing.T) {
	if err := wrapTemplateLookup(7, gorm.ErrRecordNotFound); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("record-not-found should map to apperr.ErrNotFound, got %v", err)
	}

	dbErr := errors.New("connection reset")
	err := wrapTemplateLookup(7, dbErr)
	if errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("infrastructure error must not map to apperr.ErrNotFound: %v", err)
	}
	if !errors.Is(err, dbErr) {
		t.Errorf("infrastructure error should stay wrapped, got %v", err)
	}
}

// Foreign templates must be indistinguishable from missing ones: every
// operation on somebody else's template comes back not-found.
func TestTemplateServiceForeignTemplate(t *testing.T) {
	repo := &fakeTemplateRepo{templates: map[uint]*model.Template{
		1: {ID: 1, Subject: "math", Topics: "algebra,geometry", UserID: 1},
	}}
	svc := NewTemplateService(repo, fakeStatRepo{})

	newTopics := "calculus"
	ops := []struct {
		name string
		run  func(userID uint) error
	}{
		{"get", func(u uint) error { _, err := svc.Get(u, 1); return err }},
		{"update", func(u uint) error {
			_, err := svc.Update(u, 1, dto.TemplateUpdateRequest{Topics: &newTopics})
			return err
		}},
		{"delete", func(u uint) error { return svc.Delete(u, 1) }},
		{"stats", func(u uint) error { _, err := svc.Stats(u, 1); return err }},
	}

	for _, op := range ops {
		t.Run(op.name+" as owner", func(t *testing.T) {
			if err := op.run(1); err != nil {
				t.Errorf("owner access failed: %v", err)
			}
		})
		t.Run(op.name+" as other user", func(t *testing.T) {
			err := op.run(2)
			if !errors.Is(err, apperr.ErrNotFound) {
				t.Errorf("foreign template should be not-found, got %v", err)
			}
		})
	}

	t.Run("missing id", func(t *testing.T) {
		if _, err := svc.Get(1, 99); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("missing template should be not-found, got %v", err)
		}
	})
}

func TestSplitTopics(t *testing.T) {
	tests := []struct {
		name   string
		topics string
		want   []string
	}{
		{"simple list", "math,science", []string{"math", "science"}},
		{"whitespace trimmed", " math , science ", []string{"math", "science"}},
		{"empty segments dropped", "math,,science,", []string{"math", "science"}},
		{"single topic", "algebra", []string{"algebra"}},
		{"empty string", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitTopics(tt.topics)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitTopics(%q) = %v, want %v", tt.topics, got, tt.want)
			}
		})
	}
}

func TestJoinTopics(t *testing.T) {
	if got := joinTopics([]string{"math", "science"}); got != "math,science" {
		t.Errorf("joinTopics() = %q, want %q", got, "math,science")
	}
}
