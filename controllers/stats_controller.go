package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hmdno/salahtrack/services"
	"github.com/hmdno/salahtrack/utils"
)

// StatsController serves per-user stats and the monthly leaderboard.
type StatsController struct {
	stats *services.StatsService
}

// NewStatsController creates a StatsController.
func NewStatsController(stats *services.StatsService) *StatsController {
	return &StatsController{stats: stats}
}

// UserStats returns the authenticated user's current-month summary.
func (s *StatsController) UserStats(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	stats, err := s.stats.UserStats(userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to fetch user stats")
		return
	}

	utils.Success(ctx, stats)
}

// Leaderboard returns one page of the monthly board. Pages are cached
// briefly per query shape; log writes invalidate the whole prefix.
func (s *StatsController) Leaderboard(ctx *gin.Context) {
	now := time.Now()
	year := queryInt(ctx, "year", now.Year())
	month := queryInt(ctx, "month", int(now.Month()))
	limit := queryInt(ctx, "limit", 20)
	offset := queryInt(ctx, "offset", 0)
	search := strings.TrimSpace(ctx.Query("search"))

	if month < 1 || month > 12 {
		utils.Error(ctx, http.StatusBadRequest, 40021, "month must be between 1 and 12")
		return
	}

	cacheKey := fmt.Sprintf("cache:leaderboard:%d:%d:%d:%d:%s", year, month, limit, offset, strings.ToLower(search))
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	page, err := s.stats.Leaderboard(year, month, limit, offset, search)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to fetch leaderboard")
		return
	}

	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: page}
	utils.CacheSetJSON(cacheKey, wrapper, time.Minute)
	utils.Success(ctx, page)
}

// queryInt parses an int query parameter, falling back on absence or junk.
func queryInt(ctx *gin.Context, key string, def int) int {
	v := strings.TrimSpace(ctx.Query(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
