package models

import "time"

// Question is an anonymous question from a member to a target. Author and
// Target keep the denormalized name columns the clients read, but both are
// resolved to row IDs at write time so the references stay validated.
type Question struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Author       string    `gorm:"size:100;not null;index" json:"author"`
	AuthorID     *uint     `gorm:"index" json:"author_id,omitempty"`
	Member       *Member   `gorm:"foreignKey:AuthorID" json:"-"`
	Target       string    `gorm:"size:100;not null;index" json:"target"`
	TargetID     *uint     `gorm:"index" json:"target_id,omitempty"`
	TargetRow    *Target   `gorm:"foreignKey:TargetID" json:"-"`
	QuestionText string    `gorm:"column:question;type:text;not null" json:"question"`
	RoundID      uint      `gorm:"not null;index" json:"round_id"`
	Round        Round     `gorm:"foreignKey:RoundID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
