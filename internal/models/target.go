package models

import "time"

// Target is a member acting as answerer within a specific round. The same
// name may recur across rounds as separate rows. RoundID is nullable so
// rows created before round scoping existed can be adopted later.
type Target struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:idx_target_name_round" json:"name"`
	RoundID   *uint     `gorm:"uniqueIndex:idx_target_name_round;index" json:"round_id"`
	Round     *Round    `gorm:"foreignKey:RoundID;constraint:OnDelete:CASCADE" json:"-"`
	IsActive  bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
