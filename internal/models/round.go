package models

import "time"

// Round is a time-boxed Q&A session. At most one round is active at a time;
// the active round is the default scope for every new question and answer.
type Round struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RoundNumber int       `gorm:"not null;uniqueIndex" json:"round_number"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	IsActive    bool      `gorm:"not null;default:false;index" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
