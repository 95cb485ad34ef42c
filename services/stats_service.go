package services

import (
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/hmdno/salahtrack/models"
)

// StatsService aggregates prayer log and streak rows into per-user stats and
// the monthly leaderboard. Every read recomputes from raw logs; callers that
// need cheaper reads put a cache in front of it.
type StatsService struct {
	db      *gorm.DB
	prayers *PrayerService
}

// NewStatsService creates a StatsService backed by db.
func NewStatsService(db *gorm.DB, prayers *PrayerService) *StatsService {
	return &StatsService{db: db, prayers: prayers}
}

// UserStats is the per-user summary shown on the dashboard.
type UserStats struct {
	MonthlyPoints int   `json:"monthlyPoints"`
	CurrentStreak int64 `json:"currentStreak"`
	MonthlyRank   int   `json:"monthlyRank"`
	TotalUsers    int   `json:"totalUsers"`
}

// LeaderboardEntry is one ranked row of the monthly leaderboard.
type LeaderboardEntry struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	Age              int    `json:"age"`
	TotalPoints      int    `json:"totalPoints"`
	PrayersCompleted int    `json:"prayersCompleted"`
	PrayersMissed    int    `json:"prayersMissed"`
	DailyStreaks     int    `json:"dailyStreaks"`
	Rank             int    `json:"rank"`
}

// LeaderboardPage is one slice of the board plus the (possibly filtered)
// total participant count.
type LeaderboardPage struct {
	Users []LeaderboardEntry `json:"users"`
	Total int                `json:"total"`
}

// UserStats computes the current calendar month's summary for one user.
// The rank comes from locating the user on the full month leaderboard; a
// user missing from the board (no logs yet) is ranked last rather than nil.
func (s *StatsService) UserStats(userID uint) (*UserStats, error) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	rows, err := s.prayers.ForMonth(userID, year, month)
	if err != nil {
		return nil, err
	}
	monthlyPoints := 0
	for _, r := range rows {
		monthlyPoints += r.PointsAwarded
	}

	currentStreak, err := s.prayers.QualifiedDays(userID)
	if err != nil {
		return nil, err
	}

	board, err := s.Leaderboard(year, month, 0, 0, "")
	if err != nil {
		return nil, err
	}
	rank := board.Total // last place fallback when absent from the board
	for _, entry := range board.Users {
		if entry.ID == userID {
			rank = entry.Rank
			break
		}
	}

	return &UserStats{
		MonthlyPoints: monthlyPoints,
		CurrentStreak: currentStreak,
		MonthlyRank:   rank,
		TotalUsers:    board.Total,
	}, nil
}

// Leaderboard builds the monthly board: every (optionally name-filtered)
// user's month rows are aggregated in memory, sorted by points, and sliced.
// limit <= 0 returns the whole board. Ranks are offset+index+1, so pages are
// globally consistent regardless of page size.
func (s *StatsService) Leaderboard(year, month, limit, offset int, search string) (*LeaderboardPage, error) {
	query := s.db.Model(&models.User{}).Order("id")
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for _, u := range users {
		rows, err := s.prayers.ForMonth(u.ID, year, month)
		if err != nil {
			return nil, err
		}

		entry := LeaderboardEntry{ID: u.ID, Name: u.Name, Age: u.Age}
		completedByDate := map[string]int{}
		for _, r := range rows {
			entry.TotalPoints += r.PointsAwarded
			if r.PointsAwarded > 0 {
				entry.PrayersCompleted++
				completedByDate[r.PrayerDate]++
			} else {
				entry.PrayersMissed++
			}
		}
		for _, n := range completedByDate {
			if n == models.PrayersPerDay {
				entry.DailyStreaks++
			}
		}
		entries = append(entries, entry)
	}

	// Stable sort keeps the id order established above as the tie-break, so
	// pagination slices never reshuffle between requests.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalPoints > entries[j].TotalPoints
	})

	total := len(entries)

	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}

	page := make([]LeaderboardEntry, 0, end-offset)
	for i := offset; i < end; i++ {
		entry := entries[i]
		entry.Rank = i + 1
		page = append(page, entry)
	}

	return &LeaderboardPage{Users: page, Total: total}, nil
}
