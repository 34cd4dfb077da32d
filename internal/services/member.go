package services

import (
	"errors"

	"github.com/yzhyun/askmate/internal/models"

	"gorm.io/gorm"
)

type MemberService struct {
	db *gorm.DB
}

func NewMemberService(db *gorm.DB) *MemberService {
	return &MemberService{db: db}
}

func (s *MemberService) ListActiveMembers() ([]models.Member, error) {
	var members []models.Member
	err := s.db.Where("is_active = ?", true).
		Order("name ASC").
		Find(&members).Error
	return members, err
}

func (s *MemberService) AddMember(name string) (*models.Member, error) {
	var existing models.Member
	if err := s.db.Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, errors.New("member already exists")
	}

	member := models.Member{Name: name, IsActive: true}
	if err := s.db.Create(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// DeactivateMember soft-deletes; member rows are never removed.
func (s *MemberService) DeactivateMember(id uint) error {
	res := s.db.Model(&models.Member{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("member not found")
	}
	return nil
}

// HasMemberAskedQuestion reports whether the member has authored any
// question, across all rounds.
func (s *MemberService) HasMemberAskedQuestion(name string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Question{}).
		Where("author = ?", name).
		Count(&count).Error
	return count > 0, err
}
