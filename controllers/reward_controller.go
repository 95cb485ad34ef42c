package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hmdno/salahtrack/services"
	"github.com/hmdno/salahtrack/utils"
)

// RewardController handles monthly reward suggestions.
type RewardController struct {
	rewards *services.RewardService
}

// NewRewardController creates a RewardController.
func NewRewardController(rewards *services.RewardService) *RewardController {
	return &RewardController{rewards: rewards}
}

// Suggest upserts the user's free-text suggestion for a month. The text is
// stripped of HTML before it is stored.
func (r *RewardController) Suggest(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Month      string `json:"month" binding:"required"`
		Suggestion string `json:"suggestion" binding:"required,max=1000"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(ctx, 40040, err)
		return
	}

	suggestion := utils.Sanitize(strings.TrimSpace(req.Suggestion))
	if suggestion == "" {
		utils.Error(ctx, http.StatusBadRequest, 40041, "suggestion is required")
		return
	}

	if err := r.rewards.Suggest(userID, req.Month, suggestion); err != nil {
		if errors.Is(err, services.ErrInvalidMonth) {
			utils.Error(ctx, http.StatusBadRequest, 40042, "month must be YYYY-MM")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to submit reward suggestion")
		return
	}

	utils.Success(ctx, gin.H{"message": "reward suggestion submitted"})
}

// Current returns the user's suggestion for a month, if one exists.
func (r *RewardController) Current(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	month := strings.TrimSpace(ctx.Query("month"))
	reward, err := r.rewards.ForMonth(userID, month)
	if err != nil {
		if errors.Is(err, services.ErrInvalidMonth) {
			utils.Error(ctx, http.StatusBadRequest, 40042, "month must be YYYY-MM")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to fetch reward suggestion")
		return
	}

	utils.Success(ctx, reward)
}
