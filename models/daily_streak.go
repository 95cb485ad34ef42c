package models

// DailyStreak flags one (user, date) pair as qualified when every prayer of
// the day was logged on time. The row is derived from the prayer log and is
// rewritten whenever the fifth prayer of the day lands.
type DailyStreak struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"not null;uniqueIndex:idx_user_streak_date" json:"userId"`
	StreakDate  string `gorm:"size:10;not null;uniqueIndex:idx_user_streak_date" json:"streakDate"`
	IsQualified bool   `gorm:"default:false" json:"isQualified"`
}
