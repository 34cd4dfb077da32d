package models

import "time"

// Answer holds one answerer's response to a question. The composite unique
// index makes (question_id, answerer) the upsert key: resubmitting replaces
// the text and refreshes the timestamp instead of adding a row.
type Answer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionID uint      `gorm:"not null;uniqueIndex:idx_answer_question_answerer" json:"question_id"`
	Question   Question  `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
	Answerer   string    `gorm:"size:100;not null;uniqueIndex:idx_answer_question_answerer" json:"answerer"`
	AnswerText string    `gorm:"column:answer;type:text;not null" json:"answer"`
	RoundID    uint      `gorm:"not null;index" json:"round_id"`
	Round      Round     `gorm:"foreignKey:RoundID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// AnswerDetail is an answer joined with its question for the admin view.
type AnswerDetail struct {
	ID           uint      `json:"id"`
	QuestionID   uint      `json:"question_id"`
	Answerer     string    `json:"answerer"`
	AnswerText   string    `gorm:"column:answer" json:"answer"`
	CreatedAt    time.Time `json:"created_at"`
	Author       string    `json:"author"`
	Target       string    `json:"target"`
	QuestionText string    `gorm:"column:question" json:"question"`
}

// QAEntry is one row of the public per-answerer feed. The author is
// withheld so questions stay anonymous.
type QAEntry struct {
	QuestionID      uint       `json:"question_id"`
	QuestionText    string     `gorm:"column:question" json:"question"`
	AnswerText      *string    `gorm:"column:answer" json:"answer"`
	AnswerCreatedAt *time.Time `json:"answer_created_at"`
}
