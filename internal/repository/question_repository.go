package repository

import (
	"github.com/hwojcik/exagen/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	FindByIDInExam(id, examID uint) (*model.Question, error)
	FindAllForExam(examID uint) ([]model.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) FindByIDInExam(id, examID uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.Where("id = ? AND exam_id = ?", id, examID).First(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindAllForExam(examID uint) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Where("exam_id = ?", examID).Order("id ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}
