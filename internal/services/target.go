package services

import (
	"errors"
	"fmt"

	"github.com/yzhyun/askmate/internal/models"

	"gorm.io/gorm"
)

type TargetService struct {
	db     *gorm.DB
	rounds *RoundService
}

func NewTargetService(db *gorm.DB, rounds *RoundService) *TargetService {
	return &TargetService{db: db, rounds: rounds}
}

// AddTarget registers an answerer in the current active round.
func (s *TargetService) AddTarget(name string) (*models.Target, error) {
	round, err := s.rounds.GetCurrentActiveRound()
	if err != nil {
		return nil, err
	}
	if round == nil {
		return nil, ErrNoActiveRound
	}

	var existing models.Target
	if err := s.db.Where("name = ? AND round_id = ?", name, round.ID).
		First(&existing).Error; err == nil {
		return nil, errors.New("target already exists in this round")
	}

	target := models.Target{Name: name, RoundID: &round.ID, IsActive: true}
	if err := s.db.Create(&target).Error; err != nil {
		return nil, err
	}
	return &target, nil
}

func (s *TargetService) DeactivateTarget(id uint) (*models.Target, error) {
	var target models.Target
	if err := s.db.First(&target, id).Error; err != nil {
		return nil, errors.New("target not found")
	}

	if err := s.db.Model(&target).Update("is_active", false).Error; err != nil {
		return nil, err
	}
	target.IsActive = false
	return &target, nil
}

func (s *TargetService) ListTargets() ([]models.Target, error) {
	var targets []models.Target
	err := s.db.Order("name ASC").Find(&targets).Error
	return targets, err
}

func (s *TargetService) ListTargetsByRound(roundID uint) ([]models.Target, error) {
	var targets []models.Target
	err := s.db.Where("round_id = ?", roundID).
		Order("name ASC").
		Find(&targets).Error
	return targets, err
}

// ListCurrentActiveTargets returns the active answerers of the active
// round. No active round means no answerers, not an error.
func (s *TargetService) ListCurrentActiveTargets() ([]models.Target, error) {
	round, err := s.rounds.GetCurrentActiveRound()
	if err != nil {
		return nil, err
	}
	if round == nil {
		return []models.Target{}, nil
	}

	var targets []models.Target
	err = s.db.Where("round_id = ? AND is_active = ?", round.ID, true).
		Order("name ASC").
		Find(&targets).Error
	return targets, err
}

// MoveOrphanTargetsToActiveRound adopts target rows that predate round
// scoping (round_id IS NULL) into the current active round.
func (s *TargetService) MoveOrphanTargetsToActiveRound() (int64, error) {
	round, err := s.rounds.GetCurrentActiveRound()
	if err != nil {
		return 0, err
	}
	if round == nil {
		return 0, ErrNoActiveRound
	}

	res := s.db.Model(&models.Target{}).
		Where("round_id IS NULL").
		Update("round_id", round.ID)
	if res.Error != nil {
		return 0, fmt.Errorf("adopt orphan targets: %w", res.Error)
	}
	return res.RowsAffected, nil
}
