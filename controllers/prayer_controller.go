package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hmdno/salahtrack/services"
	"github.com/hmdno/salahtrack/utils"
)

const prayerCatalogCacheKey = "cache:prayers:catalog"

// PrayerController handles the prayer catalog and the per-user prayer log.
type PrayerController struct {
	prayers *services.PrayerService
}

// NewPrayerController creates a PrayerController.
func NewPrayerController(prayers *services.PrayerService) *PrayerController {
	return &PrayerController{prayers: prayers}
}

// List returns the five catalog prayers. The catalog never changes after
// seeding, so the serialized envelope is cached aggressively.
func (p *PrayerController) List(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(prayerCatalogCacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	prayers, err := p.prayers.List()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to fetch prayers")
		return
	}

	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: prayers}
	utils.CacheSetJSON(prayerCatalogCacheKey, wrapper, 24*time.Hour)
	utils.Success(ctx, prayers)
}

// Log upserts one prayer-log row for the authenticated user and re-evaluates
// the day's streak flag. Leaderboard caches are invalidated since the write
// shifts monthly totals.
func (p *PrayerController) Log(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		PrayerID      uint       `json:"prayerId" binding:"required"`
		PrayerDate    string     `json:"prayerDate" binding:"required"`
		PrayedAt      *time.Time `json:"prayedAt"`
		IsOnTime      bool       `json:"isOnTime"`
		PointsAwarded int        `json:"pointsAwarded"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(ctx, 40011, err)
		return
	}

	entry, err := p.prayers.Log(services.LogInput{
		UserID:        userID,
		PrayerID:      req.PrayerID,
		PrayerDate:    req.PrayerDate,
		PrayedAt:      req.PrayedAt,
		IsOnTime:      req.IsOnTime,
		PointsAwarded: req.PointsAwarded,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidDate):
			utils.Error(ctx, http.StatusBadRequest, 40012, "prayerDate must be YYYY-MM-DD")
		case errors.Is(err, services.ErrInvalidPoints):
			utils.Error(ctx, http.StatusBadRequest, 40013, "pointsAwarded must be 0, 1 or 5")
		case errors.Is(err, services.ErrPrayerNotFound):
			utils.Error(ctx, http.StatusNotFound, 40411, "prayer not found")
		default:
			utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to log prayer")
		}
		return
	}

	utils.InvalidateByPrefix("cache:leaderboard:")
	utils.Success(ctx, entry)
}

// ForDate returns the authenticated user's log rows for one date.
func (p *PrayerController) ForDate(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	rows, err := p.prayers.ForDate(userID, ctx.Param("date"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidDate) {
			utils.Error(ctx, http.StatusBadRequest, 40012, "date must be YYYY-MM-DD")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to fetch prayers for date")
		return
	}

	utils.Success(ctx, rows)
}
