package models

// MonthlyReward stores one free-text reward suggestion per user and month
// ("YYYY-MM"). Submitting again replaces the earlier suggestion. IsWinner is
// set out of band when a monthly winner is picked.
type MonthlyReward struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	UserID          uint   `gorm:"not null;uniqueIndex:idx_user_reward_month" json:"userId"`
	RewardMonth     string `gorm:"size:7;not null;uniqueIndex:idx_user_reward_month" json:"rewardMonth"`
	SuggestedReward string `gorm:"type:text" json:"suggestedReward"`
	IsWinner        bool   `gorm:"default:false" json:"isWinner"`
}
