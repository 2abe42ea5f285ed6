package repository

import (
	"github.com/hwojcik/exagen/internal/model"
	"gorm.io/gorm"
)

// TemplateRepository scopes every lookup to the owning user so that foreign
// templates are indistinguishable from missing ones.
type TemplateRepository interface {
	Create(template *model.Template) error
	FindByIDForUser(id, userID uint) (*model.Template, error)
	FindByIDForUserWithDetails(id, userID uint) (*model.Template, error)
	FindAllForUser(userID uint) ([]model.Template, error)
	Update(template *model.Template) error
	Delete(template *model.Template) error
}

type templateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) Create(template *model.Template) error {
	return r.db.Create(template).Error
}

func (r *templateRepository) FindByIDForUser(id, userID uint) (*model.Template, error) {
	var template model.Template
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *templateRepository) FindByIDForUserWithDetails(id, userID uint) (*model.Template, error) {
	var template model.Template
	err := r.db.
		Preload("Stats", func(db *gorm.DB) *gorm.DB {
			return db.Order("stats.topic ASC")
		}).
		Preload("Exams").
		Where("id = ? AND user_id = ?", id, userID).
		First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *templateRepository) FindAllForUser(userID uint) ([]model.Template, error) {
	var templates []model.Template
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *templateRepository) Update(template *model.Template) error {
	return r.db.Save(template).Error
}

func (r *templateRepository) Delete(template *model.Template) error {
	// Soft delete. Dependent exams, questions and stats stay behind the
	// owner-scoped queries; hard deletes cascade via the schema constraints.
	return r.db.Delete(template).Error
}
