package repository

import (
	"github.com/hwojcik/exagen/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatRepository backs the difficulty tracker. SeedIfAbsent and FindForUpdate
// are meant to run inside one transaction: the idempotent insert guarantees a
// row exists for the (template, topic) pair, the FOR UPDATE lock serializes
// concurrent read-modify-write cycles on it.
type StatRepository interface {
	SeedIfAbsent(tx *gorm.DB, templateID uint, topic string) error
	FindForUpdate(tx *gorm.DB, templateID uint, topic string) (*model.Stat, error)
	Save(tx *gorm.DB, stat *model.Stat) error
	FindAllForTemplate(templateID uint) ([]model.Stat, error)
}

type statRepository struct {
	db *gorm.DB
}

func NewStatRepository(db *gorm.DB) StatRepository {
	return &statRepository{db: db}
}

func (r *statRepository) SeedIfAbsent(tx *gorm.DB, templateID uint, topic string) error {
	seed := model.Stat{
		TemplateID: templateID,
		Topic:      topic,
		Difficulty: model.BaseDifficulty,
		Trend:      model.TrendStable,
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "template_id"}, {Name: "topic"}},
		DoNothing: true,
	}).Create(&seed).Error
}

func (r *statRepository) FindForUpdate(tx *gorm.DB, templateID uint, topic string) (*model.Stat, error) {
	var stat model.Stat
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("template_id = ? AND topic = ?", templateID, topic).
		First(&stat).Error
	if err != nil {
		return nil, err
	}
	return &stat, nil
}

func (r *statRepository) Save(tx *gorm.DB, stat *model.Stat) error {
	return tx.Save(stat).Error
}

func (r *statRepository) FindAllForTemplate(templateID uint) ([]model.Stat, error) {
	var stats []model.Stat
	if err := r.db.Where("template_id = ?", templateID).Order("topic ASC").Find(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
