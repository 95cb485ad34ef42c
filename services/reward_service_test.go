package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmdno/salahtrack/models"
)

func TestSuggestUpsertsPerMonth(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "Ahmad", 30, "ahmad@example.com")
	svc := NewRewardService(db)

	require.NoError(t, svc.Suggest(user.ID, "2025-03", "a family iftar"))
	require.NoError(t, svc.Suggest(user.ID, "2025-03", "new prayer rug"))
	require.NoError(t, svc.Suggest(user.ID, "2025-04", "books"))

	var rewards []models.MonthlyReward
	require.NoError(t, db.Where("user_id = ?", user.ID).Order("reward_month").Find(&rewards).Error)
	require.Len(t, rewards, 2)
	assert.Equal(t, "new prayer rug", rewards[0].SuggestedReward)
	assert.Equal(t, "books", rewards[1].SuggestedReward)

	current, err := svc.ForMonth(user.ID, "2025-03")
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "new prayer rug", current.SuggestedReward)

	missing, err := svc.ForMonth(user.ID, "2025-05")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSuggestRejectsBadMonth(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "Ahmad", 30, "ahmad@example.com")
	svc := NewRewardService(db)

	assert.ErrorIs(t, svc.Suggest(user.ID, "March 2025", "x"), ErrInvalidMonth)
	assert.ErrorIs(t, svc.Suggest(user.ID, "2025-3", "x"), ErrInvalidMonth)
}
