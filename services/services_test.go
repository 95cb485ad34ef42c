package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hmdno/salahtrack/models"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A shared in-memory database exists per connection; pin the pool to one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Prayer{},
		&models.UserPrayer{},
		&models.DailyStreak{},
		&models.MonthlyReward{},
	))
	return db
}

// seedCatalog installs the five prayers and returns their ids in order.
func seedCatalog(t *testing.T, db *gorm.DB) []uint {
	t.Helper()

	svc := NewPrayerService(db)
	require.NoError(t, svc.Seed())

	prayers, err := svc.List()
	require.NoError(t, err)
	require.Len(t, prayers, models.PrayersPerDay)

	ids := make([]uint, 0, len(prayers))
	for _, p := range prayers {
		ids = append(ids, p.ID)
	}
	return ids
}

// createUser inserts a user directly, bypassing registration plumbing.
func createUser(t *testing.T, db *gorm.DB, name string, age int, email string) *models.User {
	t.Helper()

	user := models.User{Name: name, Age: age, Email: email, PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	return &user
}
