package repository

import (
	"github.com/hwojcik/exagen/internal/model"
	"gorm.io/gorm"
)

type ExamRepository interface {
	Create(exam *model.Exam) error
	FindByIDForUser(id, userID uint) (*model.Exam, error)
	FindAllForUser(userID uint) ([]model.Exam, error)
	FindAllForTemplate(templateID uint) ([]model.Exam, error)
}

type examRepository struct {
	db *gorm.DB
}

func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) Create(exam *model.Exam) error {
	// GORM creates the associated questions when exam.Questions is populated.
	return r.db.Create(exam).Error
}

// ownedExams joins through templates so the ownership chain is enforced in
// one query and exams of soft-deleted templates stay invisible.
func (r *examRepository) ownedExams(userID uint) *gorm.DB {
	return r.db.
		Joins("JOIN templates ON templates.id = exams.template_id").
		Where("templates.user_id = ? AND templates.deleted_at IS NULL", userID)
}

func (r *examRepository) FindByIDForUser(id, userID uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.ownedExams(userID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.id ASC")
		}).
		Where("exams.id = ?", id).
		First(&exam).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) FindAllForUser(userID uint) ([]model.Exam, error) {
	var exams []model.Exam
	if err := r.ownedExams(userID).Order("exams.created_at DESC").Find(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *examRepository) FindAllForTemplate(templateID uint) ([]model.Exam, error) {
	var exams []model.Exam
	if err := r.db.Where("template_id = ?", templateID).Order("created_at DESC").Find(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}
