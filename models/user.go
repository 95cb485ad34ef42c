package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered member. Passwords are stored as bcrypt hashes only.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Age          int       `gorm:"not null" json:"age"`
	Email        string    `gorm:"size:150;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Country      string    `gorm:"size:100" json:"country,omitempty"`
	Timezone     string    `gorm:"size:100" json:"timezone,omitempty"`
	Gender       string    `gorm:"size:16" json:"gender,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Prayers []UserPrayer    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Streaks []DailyStreak   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Rewards []MonthlyReward `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}
