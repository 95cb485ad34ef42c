package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmdno/salahtrack/models"
)

func TestSeedIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewPrayerService(db)

	require.NoError(t, svc.Seed())
	require.NoError(t, svc.Seed())

	prayers, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, prayers, 5)
	assert.Equal(t, "Fajr", prayers[0].NameEn)
	assert.Equal(t, "Isha", prayers[4].NameEn)
}

func TestLogUpsertKeepsOneRow(t *testing.T) {
	db := newTestDB(t)
	ids := seedCatalog(t, db)
	user := createUser(t, db, "Ahmad", 30, "ahmad@example.com")
	svc := NewPrayerService(db)

	first, err := svc.Log(LogInput{
		UserID: user.ID, PrayerID: ids[0], PrayerDate: "2025-03-10",
		IsOnTime: false, PointsAwarded: models.PointsLate,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PointsLate, first.PointsAwarded)

	second, err := svc.Log(LogInput{
		UserID: user.ID, PrayerID: ids[0], PrayerDate: "2025-03-10",
		IsOnTime: true, PointsAwarded: models.PointsOnTime,
	})
	require.NoError(t, err)

	// second write wins, and only one row survives
	assert.Equal(t, models.PointsOnTime, second.PointsAwarded)
	assert.True(t, second.IsOnTime)

	var count int64
	require.NoError(t, db.Model(&models.UserPrayer{}).
		Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLogRejectsBadInput(t *testing.T) {
	db := newTestDB(t)
	ids := seedCatalog(t, db)
	user := createUser(t, db, "Ahmad", 30, "ahmad@example.com")
	svc := NewPrayerService(db)

	_, err := svc.Log(LogInput{UserID: user.ID, PrayerID: ids[0], PrayerDate: "10/03/2025", PointsAwarded: 5})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = svc.Log(LogInput{UserID: user.ID, PrayerID: ids[0], PrayerDate: "2025-03-10", PointsAwarded: 3})
	assert.ErrorIs(t, err, ErrInvalidPoints)

	_, err = svc.Log(LogInput{UserID: user.ID, PrayerID: 999, PrayerDate: "2025-03-10", PointsAwarded: 5})
	assert.ErrorIs(t, err, ErrPrayerNotFound)
}

func TestStreakFlagRequiresAllFiveOnTime(t *testing.T) {
	db := newTestDB(t)
	ids := seedCatalog(t, db)
	user := createUser(t, db, "Ahmad", 30, "ahmad@example.com")
	svc := NewPrayerService(db)

	date := "2025-03-11"
	for _, id := range ids {
		_, err := svc.Log(LogInput{
			UserID: user.ID, PrayerID: id, PrayerDate: date,
			IsOnTime: true, PointsAwarded: models.PointsOnTime,
		})
		require.NoError(t, err)
	}

	var flag models.DailyStreak
	require.NoError(t, db.Where("user_id = ? AND streak_date = ?", user.ID, date).First(&flag).Error)
	assert.True(t, flag.IsQualified)

	n, err := svc.QualifiedDays(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestStreakFlagNotSetBelowFiveRows(t *testing.T) {
	db := newTestDB(t)
	ids := seedCatalog(t, db)
	user := createUser(t, db, "Ahmad", 30, "ahmad@example.com")
	svc := NewPrayerService(db)

	date := "2025-03-12"
	for _, id := range ids[:4] {
		_, err := svc.Log(LogInput{
			UserID: user.ID, PrayerID: id, PrayerDate: date,
			IsOnTime: true, PointsAwarded: models.PointsOnTime,
		})
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&models.DailyStreak{}).
		Where("user_id = ? AND streak_date = ?", user.ID, date).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

// One on-time, one late, three skipped: the day totals 6 points and the flag
// is written but not qualified.
func TestMixedDayScoresSixAndDoesNotQualify(t *testing.T) {
	db := newTestDB(t)
	ids := seedCatalog(t, db)
	user := createUser(t, db, "Ahmad", 30, "ahmad@example.com")
	svc := NewPrayerService(db)

	date := "2025-03-13"
	points := []struct {
		onTime bool
		pts    int
	}{
		{true, models.PointsOnTime},   // Fajr
		{false, models.PointsLate},    // Dhuhr
		{false, models.PointsNotPrayed}, // Asr
		{false, models.PointsNotPrayed}, // Maghrib
		{false, models.PointsNotPrayed}, // Isha
	}
	for i, p := range points {
		_, err := svc.Log(LogInput{
			UserID: user.ID, PrayerID: ids[i], PrayerDate: date,
			IsOnTime: p.onTime, PointsAwarded: p.pts,
		})
		require.NoError(t, err)
	}

	rows, err := svc.ForDate(user.ID, date)
	require.NoError(t, err)
	total := 0
	for _, r := range rows {
		total += r.PointsAwarded
	}
	assert.Equal(t, 6, total)

	var flag models.DailyStreak
	require.NoError(t, db.Where("user_id = ? AND streak_date = ?", user.ID, date).First(&flag).Error)
	assert.False(t, flag.IsQualified)
}

func TestUpdateDailyStreakUpsert(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "Ahmad", 30, "ahmad@example.com")
	svc := NewPrayerService(db)

	require.NoError(t, svc.UpdateDailyStreak(user.ID, "2025-03-14", true))
	require.NoError(t, svc.UpdateDailyStreak(user.ID, "2025-03-14", false))

	var flags []models.DailyStreak
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&flags).Error)
	require.Len(t, flags, 1)
	assert.False(t, flags[0].IsQualified)
}

func TestForMonthHonorsStringBounds(t *testing.T) {
	db := newTestDB(t)
	ids := seedCatalog(t, db)
	user := createUser(t, db, "Ahmad", 30, "ahmad@example.com")
	svc := NewPrayerService(db)

	for _, date := range []string{"2025-02-28", "2025-03-01", "2025-03-31", "2025-04-01"} {
		_, err := svc.Log(LogInput{
			UserID: user.ID, PrayerID: ids[0], PrayerDate: date,
			IsOnTime: true, PointsAwarded: models.PointsOnTime,
		})
		require.NoError(t, err)
	}

	rows, err := svc.ForMonth(user.ID, 2025, 3)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	// February's fictional day-31 bound matches nothing past the real month end.
	rows, err = svc.ForMonth(user.ID, 2025, 2)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
