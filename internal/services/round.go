package services

import (
	"errors"

	"github.com/yzhyun/askmate/internal/models"

	"gorm.io/gorm"
)

// ErrNoActiveRound is returned by every operation that writes into the
// active round when no round is active. Callers surface it as a 400-class
// condition; the admin recovers by creating or switching to a round.
var ErrNoActiveRound = errors.New("no active round")

type RoundService struct {
	db *gorm.DB
}

func NewRoundService(db *gorm.DB) *RoundService {
	return &RoundService{db: db}
}

// NextRoundNumber returns max(round_number)+1, or 1 when no rounds exist.
func (s *RoundService) NextRoundNumber() (int, error) {
	var next int
	err := s.db.Model(&models.Round{}).
		Select("COALESCE(MAX(round_number), 0) + 1").
		Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

// CreateRound deactivates every existing round and inserts the new one as
// active, all in one transaction so a failure cannot leave zero or two
// active rounds behind.
func (s *RoundService) CreateRound(title, description string) (*models.Round, error) {
	var round models.Round
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var next int
		if err := tx.Model(&models.Round{}).
			Select("COALESCE(MAX(round_number), 0) + 1").
			Scan(&next).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Round{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}

		round = models.Round{
			RoundNumber: next,
			Title:       title,
			Description: description,
			IsActive:    true,
		}
		return tx.Create(&round).Error
	})
	if err != nil {
		return nil, err
	}
	return &round, nil
}

// GetCurrentActiveRound returns the authoritative active round, or nil when
// none is active. Should two rounds ever end up active, the most recently
// created one wins for reads.
func (s *RoundService) GetCurrentActiveRound() (*models.Round, error) {
	var round models.Round
	err := s.db.Where("is_active = ?", true).
		Order("created_at DESC").
		First(&round).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &round, nil
}

// SwitchToRound activates the given round and deactivates everything else.
// Every target is reset to inactive in the same transaction, forcing the
// admin to re-register answerers for the new round.
func (s *RoundService) SwitchToRound(roundID uint) (*models.Round, error) {
	var round models.Round
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Round{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Round{}).
			Where("id = ?", roundID).
			Update("is_active", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("round not found")
		}

		if err := tx.Model(&models.Target{}).
			Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}

		return tx.First(&round, roundID).Error
	})
	if err != nil {
		return nil, err
	}
	return &round, nil
}

func (s *RoundService) DeactivateRound(roundID uint) (*models.Round, error) {
	res := s.db.Model(&models.Round{}).
		Where("id = ?", roundID).
		Update("is_active", false)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errors.New("round not found")
	}

	var round models.Round
	if err := s.db.First(&round, roundID).Error; err != nil {
		return nil, err
	}
	return &round, nil
}

// EndCurrentRound deactivates whatever round is active, leaving the system
// in the valid "no active round" state.
func (s *RoundService) EndCurrentRound() error {
	return s.db.Model(&models.Round{}).
		Where("is_active = ?", true).
		Update("is_active", false).Error
}

// DeleteRound removes the round and everything scoped to it. The dependent
// rows are deleted explicitly inside the transaction rather than leaning on
// the FK cascade, so the behavior is identical on every backend.
func (s *RoundService) DeleteRound(roundID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("round_id = ?", roundID).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("round_id = ?", roundID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("round_id = ?", roundID).Delete(&models.Target{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Round{}, roundID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("round not found")
		}
		return nil
	})
}

func (s *RoundService) ListRounds() ([]models.Round, error) {
	var rounds []models.Round
	err := s.db.Order("round_number DESC").Find(&rounds).Error
	return rounds, err
}

func (s *RoundService) ListActiveRounds() ([]models.Round, error) {
	var rounds []models.Round
	err := s.db.Where("is_active = ?", true).
		Order("round_number DESC").
		Find(&rounds).Error
	return rounds, err
}

func (s *RoundService) IsRoundActive() (bool, error) {
	var count int64
	err := s.db.Model(&models.Round{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count > 0, err
}

// FixRoundNumbers renumbers all rounds 1..n by creation order. Numbers are
// parked in a high range first so the unique index never sees a collision
// mid-update.
func (s *RoundService) FixRoundNumbers() ([]models.Round, error) {
	var rounds []models.Round
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("created_at ASC, id ASC").Find(&rounds).Error; err != nil {
			return err
		}

		for i := range rounds {
			if err := tx.Model(&models.Round{}).
				Where("id = ?", rounds[i].ID).
				Update("round_number", 1000000+i).Error; err != nil {
				return err
			}
		}
		for i := range rounds {
			if err := tx.Model(&models.Round{}).
				Where("id = ?", rounds[i].ID).
				Update("round_number", i+1).Error; err != nil {
				return err
			}
			rounds[i].RoundNumber = i + 1
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rounds, nil
}
