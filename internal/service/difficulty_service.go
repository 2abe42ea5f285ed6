package service

import (
	"fmt"

	"github.com/hwojcik/exagen/internal/model"
	"github.com/hwojcik/exagen/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	correctStep   = 0.5
	incorrectStep = 1.0
)

// NextDifficulty applies one observed outcome to a difficulty score and
// derives the trend label. A correct answer lowers the score by 0.5, an
// incorrect one raises it by 1.0: repeated failure flags a topic as hard
// faster than a single success marks it easy. The result is clamped to
// [1, 10]. Trend is recomputed on every call, never stored stale, and the
// comparisons against the midpoint are strict, so a score landing exactly on
// 5.0 is always "stable".
func NextDifficulty(current float64, isCorrect bool) (float64, string) {
	if isCorrect {
		next := current - correctStep
		if next < model.MinDifficulty {
			next = model.MinDifficulty
		}
		if next < model.BaseDifficulty {
			return next, model.TrendDecreasing
		}
		return next, model.TrendStable
	}

	next := current + incorrectStep
	if next > model.MaxDifficulty {
		next = model.MaxDifficulty
	}
	if next > model.BaseDifficulty {
		return next, model.TrendIncreasing
	}
	return next, model.TrendStable
}

// DifficultyService maintains the per-topic adaptive difficulty stats.
type DifficultyService interface {
	RecordOutcome(templateID uint, topic string, isCorrect bool) (*model.Stat, error)
}

type difficultyService struct {
	statRepo repository.StatRepository
	db       *gorm.DB
}

func NewDifficultyService(statRepo repository.StatRepository, db *gorm.DB) DifficultyService {
	return &difficultyService{statRepo: statRepo, db: db}
}

// RecordOutcome updates the stat for (templateID, topic) under a row-level
// lock. The seed insert is idempotent (ON CONFLICT DO NOTHING against the
// unique index on template_id+topic), so concurrent first observations for
// the same topic converge on a single row and no update is ever lost.
func (s *difficultyService) RecordOutcome(templateID uint, topic string, isCorrect bool) (*model.Stat, error) {
	var stat *model.Stat
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.statRepo.SeedIfAbsent(tx, templateID, topic); err != nil {
			return fmt.Errorf("seeding stat for topic %q: %w", topic, err)
		}

		locked, err := s.statRepo.FindForUpdate(tx, templateID, topic)
		if err != nil {
			return fmt.Errorf("locking stat for topic %q: %w", topic, err)
		}

		locked.Difficulty, locked.Trend = NextDifficulty(locked.Difficulty, isCorrect)

		if err := s.statRepo.Save(tx, locked); err != nil {
			return fmt.Errorf("saving stat for topic %q: %w", topic, err)
		}
		stat = locked
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("templateID", templateID).Str("topic", topic).Msg("Failed to record outcome")
		return nil, err
	}

	log.Info().
		Uint("templateID", templateID).
		Str("topic", topic).
		Bool("correct", isCorrect).
		Float64("difficulty", stat.Difficulty).
		Str("trend", stat.Trend).
		Msg("Recorded outcome")
	return stat, nil
}
