package repository

import (
	"github.com/hwojcik/exagen/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TokenRepository interface {
	Revoke(jti string) error
	IsRevoked(jti string) (bool, error)
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Revoke(jti string) error {
	// Revoking twice is a no-op, the blocklist is append-only.
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "jti"}},
		DoNothing: true,
	}).Create(&model.RevokedToken{JTI: jti}).Error
}

func (r *tokenRepository) IsRevoked(jti string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.RevokedToken{}).Where("jti = ?", jti).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
