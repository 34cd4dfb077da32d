package services

import (
	"errors"
	"time"

	"github.com/yzhyun/askmate/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnswerService struct {
	db     *gorm.DB
	rounds *RoundService
}

func NewAnswerService(db *gorm.DB, rounds *RoundService) *AnswerService {
	return &AnswerService{db: db, rounds: rounds}
}

// SaveAnswer upserts the answer for (question, answerer) in the active
// round. Resubmitting replaces the text and refreshes the timestamp; there
// is never more than one row per pair.
func (s *AnswerService) SaveAnswer(questionID uint, answerer, text string) (*models.Answer, error) {
	round, err := s.rounds.GetCurrentActiveRound()
	if err != nil {
		return nil, err
	}
	if round == nil {
		return nil, ErrNoActiveRound
	}

	var question models.Question
	if err := s.db.First(&question, questionID).Error; err != nil {
		return nil, errors.New("question not found")
	}

	answer := models.Answer{
		QuestionID: questionID,
		Answerer:   answerer,
		AnswerText: text,
		RoundID:    round.ID,
	}
	err = s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "question_id"}, {Name: "answerer"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"answer":     text,
			"round_id":   round.ID,
			"created_at": time.Now(),
		}),
	}).Create(&answer).Error
	if err != nil {
		return nil, err
	}

	// Re-read so the caller sees the row as stored, whichever branch the
	// upsert took.
	var saved models.Answer
	if err := s.db.Where("question_id = ? AND answerer = ?", questionID, answerer).
		First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// ListAnswersWithQuestions joins every answer with its question for the
// admin overview, newest answer first.
func (s *AnswerService) ListAnswersWithQuestions() ([]models.AnswerDetail, error) {
	var rows []models.AnswerDetail
	err := s.db.Table("answers AS a").
		Select("a.id, a.question_id, a.answerer, a.answer, a.created_at, q.author, q.target, q.question").
		Joins("JOIN questions q ON a.question_id = q.id").
		Order("a.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (s *AnswerService) ListAnswersByRound(roundID uint) ([]models.Answer, error) {
	var answers []models.Answer
	err := s.db.Where("round_id = ?", roundID).
		Order("created_at DESC").
		Find(&answers).Error
	return answers, err
}

func (s *AnswerService) ListCurrentRoundAnswers() ([]models.Answer, error) {
	round, err := s.rounds.GetCurrentActiveRound()
	if err != nil {
		return nil, err
	}
	if round == nil {
		return []models.Answer{}, nil
	}
	return s.ListAnswersByRound(round.ID)
}

// ListAnswersForAnswerer returns the named answerer's own answers within a
// round, for the answerer console.
func (s *AnswerService) ListAnswersForAnswerer(name string, roundID uint) ([]models.Answer, error) {
	var answers []models.Answer
	err := s.db.Table("answers AS a").
		Select("a.*").
		Joins("JOIN questions q ON a.question_id = q.id").
		Where("a.answerer = ? AND q.round_id = ?", name, roundID).
		Order("a.created_at DESC").
		Scan(&answers).Error
	return answers, err
}

// GetAnswererQA is the public anonymous feed: questions for the answerer in
// a round, paired with answers where they exist. Authors are withheld.
func (s *AnswerService) GetAnswererQA(roundID uint, answererName string) ([]models.QAEntry, error) {
	var entries []models.QAEntry
	err := s.db.Table("questions AS q").
		Select("q.id AS question_id, q.question, a.answer, a.created_at AS answer_created_at").
		Joins("LEFT JOIN answers a ON q.id = a.question_id AND a.round_id = ?", roundID).
		Where("q.round_id = ? AND q.target = ?", roundID, answererName).
		Order("q.created_at ASC").
		Scan(&entries).Error
	return entries, err
}

// ClearAllAnswers deletes every answer across all rounds.
func (s *AnswerService) ClearAllAnswers() error {
	return s.db.Where("1 = 1").Delete(&models.Answer{}).Error
}

// ClearAllData wipes rounds, targets, questions, answers and answerer
// passwords in one transaction. Members and the admin secret survive.
func (s *AnswerService) ClearAllData() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.Answer{},
			&models.Question{},
			&models.Target{},
			&models.AnswererPassword{},
			&models.Round{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
