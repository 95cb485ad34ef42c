package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hmdno/salahtrack/models"
)

// PrayerService owns the prayer catalog, the prayer log, and the derived
// daily streak flags.
type PrayerService struct {
	db *gorm.DB
}

// NewPrayerService creates a PrayerService backed by db.
func NewPrayerService(db *gorm.DB) *PrayerService {
	return &PrayerService{db: db}
}

// Seed inserts the five catalog prayers when the table is empty.
func (s *PrayerService) Seed() error {
	var count int64
	if err := s.db.Model(&models.Prayer{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	prayers := models.DefaultPrayers()
	return s.db.Create(&prayers).Error
}

// List returns the catalog ordered by scheduled occurrence.
func (s *PrayerService) List() ([]models.Prayer, error) {
	var prayers []models.Prayer
	if err := s.db.Order("id").Find(&prayers).Error; err != nil {
		return nil, err
	}
	return prayers, nil
}

// LogInput is a validated prayer-log write.
type LogInput struct {
	UserID        uint
	PrayerID      uint
	PrayerDate    string
	PrayedAt      *time.Time
	IsOnTime      bool
	PointsAwarded int
}

// Log inserts or overwrites the unique (user, prayer, date) row, then
// re-evaluates the day's qualification once all five slots are present.
// A day qualifies only when every slot was logged on time.
//
// The log upsert and the streak upsert are deliberately separate statements;
// a crash between them leaves the flag stale until the next qualifying write,
// which is acceptable at this write rate.
func (s *PrayerService) Log(in LogInput) (*models.UserPrayer, error) {
	if !ValidDate(in.PrayerDate) {
		return nil, ErrInvalidDate
	}
	if !models.ValidPoints(in.PointsAwarded) {
		return nil, ErrInvalidPoints
	}

	var prayer models.Prayer
	if err := s.db.First(&prayer, in.PrayerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPrayerNotFound
		}
		return nil, err
	}

	entry := models.UserPrayer{
		UserID:        in.UserID,
		PrayerID:      in.PrayerID,
		PrayerDate:    in.PrayerDate,
		PrayedAt:      in.PrayedAt,
		IsOnTime:      in.IsOnTime,
		PointsAwarded: in.PointsAwarded,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "prayer_id"}, {Name: "prayer_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"prayed_at", "is_on_time", "points_awarded"}),
	}).Create(&entry).Error
	if err != nil {
		return nil, err
	}

	logged, err := s.ForDate(in.UserID, in.PrayerDate)
	if err != nil {
		return nil, err
	}
	if len(logged) == models.PrayersPerDay {
		allOnTime := true
		for _, p := range logged {
			if !p.IsOnTime {
				allOnTime = false
				break
			}
		}
		if err := s.UpdateDailyStreak(in.UserID, in.PrayerDate, allOnTime); err != nil {
			return nil, err
		}
	}

	// The conflict path does not report the surviving row id; re-read so the
	// response reflects what is stored.
	var stored models.UserPrayer
	if err := s.db.Where("user_id = ? AND prayer_id = ? AND prayer_date = ?",
		in.UserID, in.PrayerID, in.PrayerDate).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// ForDate returns the user's log rows for one calendar date.
func (s *PrayerService) ForDate(userID uint, date string) ([]models.UserPrayer, error) {
	if !ValidDate(date) {
		return nil, ErrInvalidDate
	}
	var rows []models.UserPrayer
	err := s.db.Where("user_id = ? AND prayer_date = ?", userID, date).
		Order("prayer_id").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ForMonth returns the user's log rows within the month's string bounds.
func (s *PrayerService) ForMonth(userID uint, year, month int) ([]models.UserPrayer, error) {
	start, end := MonthRange(year, month)
	var rows []models.UserPrayer
	err := s.db.Where("user_id = ? AND prayer_date >= ? AND prayer_date <= ?", userID, start, end).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateDailyStreak upserts the qualification flag for one (user, date).
func (s *PrayerService) UpdateDailyStreak(userID uint, date string, isQualified bool) error {
	if !ValidDate(date) {
		return ErrInvalidDate
	}
	flag := models.DailyStreak{
		UserID:      userID,
		StreakDate:  date,
		IsQualified: isQualified,
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "streak_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_qualified"}),
	}).Create(&flag).Error
}

// QualifiedDays counts the user's qualified streak rows. This is a total, not
// a consecutive run; the product currently presents it as the streak value.
func (s *PrayerService) QualifiedDays(userID uint) (int64, error) {
	var n int64
	err := s.db.Model(&models.DailyStreak{}).
		Where("user_id = ? AND is_qualified = ?", userID, true).
		Count(&n).Error
	return n, err
}
