package services

import (
	"errors"

	"github.com/yzhyun/askmate/internal/models"

	"gorm.io/gorm"
)

type QuestionService struct {
	db     *gorm.DB
	rounds *RoundService
}

func NewQuestionService(db *gorm.DB, rounds *RoundService) *QuestionService {
	return &QuestionService{db: db, rounds: rounds}
}

// SaveQuestion stores a question in the active round. Both names are
// resolved to rows at write time: the author must be an active member and
// the target an active answerer of the round. The names are still stored
// alongside the IDs because the clients read them back verbatim.
func (s *QuestionService) SaveQuestion(author, target, text string) (*models.Question, error) {
	round, err := s.rounds.GetCurrentActiveRound()
	if err != nil {
		return nil, err
	}
	if round == nil {
		return nil, ErrNoActiveRound
	}

	var member models.Member
	if err := s.db.Where("name = ? AND is_active = ?", author, true).
		First(&member).Error; err != nil {
		return nil, errors.New("author is not a registered member")
	}

	var targetRow models.Target
	if err := s.db.Where("name = ? AND round_id = ? AND is_active = ?", target, round.ID, true).
		First(&targetRow).Error; err != nil {
		return nil, errors.New("target is not an answerer in the current round")
	}

	question := models.Question{
		Author:       author,
		AuthorID:     &member.ID,
		Target:       target,
		TargetID:     &targetRow.ID,
		QuestionText: text,
		RoundID:      round.ID,
	}
	if err := s.db.Create(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// ListCurrentRoundQuestions returns the active round's questions, newest
// first. No active round yields an empty list.
func (s *QuestionService) ListCurrentRoundQuestions() ([]models.Question, error) {
	round, err := s.rounds.GetCurrentActiveRound()
	if err != nil {
		return nil, err
	}
	if round == nil {
		return []models.Question{}, nil
	}
	return s.ListQuestionsByRound(round.ID)
}

func (s *QuestionService) ListQuestionsByRound(roundID uint) ([]models.Question, error) {
	var questions []models.Question
	err := s.db.Where("round_id = ?", roundID).
		Order("created_at DESC").
		Find(&questions).Error
	return questions, err
}

// GetQuestionsForAnswerer returns questions addressed to the named
// answerer. roundID scopes the list; pass 0 for all rounds.
func (s *QuestionService) GetQuestionsForAnswerer(name string, roundID uint) ([]models.Question, error) {
	q := s.db.Where("target = ?", name)
	if roundID != 0 {
		q = q.Where("round_id = ?", roundID)
	}

	var questions []models.Question
	err := q.Order("created_at DESC").Find(&questions).Error
	return questions, err
}

// GetUnaskedMembers computes {active members} minus {distinct authors who
// asked the named answerer in the active round}. Without an active round
// every member counts as unasked-but-unaskable, so the list is empty.
func (s *QuestionService) GetUnaskedMembers(answererName string) ([]string, error) {
	round, err := s.rounds.GetCurrentActiveRound()
	if err != nil {
		return nil, err
	}
	if round == nil {
		return []string{}, nil
	}

	var memberNames []string
	if err := s.db.Model(&models.Member{}).
		Where("is_active = ?", true).
		Order("name ASC").
		Pluck("name", &memberNames).Error; err != nil {
		return nil, err
	}

	var askedNames []string
	if err := s.db.Model(&models.Question{}).
		Distinct("author").
		Where("target = ? AND round_id = ?", answererName, round.ID).
		Pluck("author", &askedNames).Error; err != nil {
		return nil, err
	}

	asked := make(map[string]struct{}, len(askedNames))
	for _, name := range askedNames {
		asked[name] = struct{}{}
	}

	unasked := make([]string, 0, len(memberNames))
	for _, name := range memberNames {
		if _, ok := asked[name]; !ok {
			unasked = append(unasked, name)
		}
	}
	return unasked, nil
}

// ClearAllQuestions deletes every question across all rounds. Admin reset
// flow only.
func (s *QuestionService) ClearAllQuestions() error {
	return s.db.Where("1 = 1").Delete(&models.Question{}).Error
}

// DeleteQuestion removes a single question and its answers.
func (s *QuestionService) DeleteQuestion(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&models.Answer{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Question{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
