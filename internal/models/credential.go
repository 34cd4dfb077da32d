package models

import "time"

// AnswererPassword is the one active secret per answerer name. The secret
// is independent of rounds, so rotating rounds means re-issuing it.
type AnswererPassword struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AnswererName string    `gorm:"size:100;not null;uniqueIndex" json:"answerer_name"`
	Password     string    `gorm:"size:100;not null" json:"password"`
	CreatedAt    time.Time `json:"created_at"`
}

// AdminAuth stores the single global admin secret as a one-row table (id=1).
type AdminAuth struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
