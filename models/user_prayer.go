package models

import "time"

// UserPrayer records whether and when a user performed one prayer on one
// calendar date. The (user, prayer, date) triple is unique; logging the same
// slot again overwrites the earlier row.
//
// PrayerDate is kept as a plain "YYYY-MM-DD" string so that month-range
// filters compare lexically, which is equivalent to calendar order for this
// format.
type UserPrayer struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"not null;uniqueIndex:idx_user_prayer_date" json:"userId"`
	PrayerID      uint       `gorm:"not null;uniqueIndex:idx_user_prayer_date" json:"prayerId"`
	PrayerDate    string     `gorm:"size:10;not null;uniqueIndex:idx_user_prayer_date" json:"prayerDate"`
	PrayedAt      *time.Time `json:"prayedAt"`
	IsOnTime      bool       `json:"isOnTime"`
	PointsAwarded int        `gorm:"default:0" json:"pointsAwarded"`
}

// Prayer log point values: on-time, late, and explicitly not prayed.
const (
	PointsOnTime    = 5
	PointsLate      = 1
	PointsNotPrayed = 0
)

// ValidPoints reports whether p is one of the three accepted point values.
func ValidPoints(p int) bool {
	return p == PointsOnTime || p == PointsLate || p == PointsNotPrayed
}

// PrayersPerDay is the size of the daily catalog; a day can never hold more
// log rows than this for one user.
const PrayersPerDay = 5
