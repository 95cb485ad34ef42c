package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hmdno/salahtrack/models"
)

// RewardService stores monthly reward suggestions, one per user and month.
type RewardService struct {
	db *gorm.DB
}

// NewRewardService creates a RewardService backed by db.
func NewRewardService(db *gorm.DB) *RewardService {
	return &RewardService{db: db}
}

// Suggest upserts the user's suggestion for the given "YYYY-MM" month.
func (s *RewardService) Suggest(userID uint, month, suggestion string) error {
	if !ValidMonth(month) {
		return ErrInvalidMonth
	}
	reward := models.MonthlyReward{
		UserID:          userID,
		RewardMonth:     month,
		SuggestedReward: suggestion,
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "reward_month"}},
		DoUpdates: clause.AssignmentColumns([]string{"suggested_reward"}),
	}).Create(&reward).Error
}

// ForMonth returns the user's suggestion for a month, if any.
func (s *RewardService) ForMonth(userID uint, month string) (*models.MonthlyReward, error) {
	if !ValidMonth(month) {
		return nil, ErrInvalidMonth
	}
	var reward models.MonthlyReward
	err := s.db.Where("user_id = ? AND reward_month = ?", userID, month).First(&reward).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reward, nil
}
