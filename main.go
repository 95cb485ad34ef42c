package main

import (
	"github.com/hmdno/salahtrack/config"
	"github.com/hmdno/salahtrack/models"
	"github.com/hmdno/salahtrack/routes"
	"github.com/hmdno/salahtrack/services"
	"github.com/hmdno/salahtrack/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Prayer{},
		&models.UserPrayer{},
		&models.DailyStreak{},
		&models.MonthlyReward{},
	)

	// The prayer catalog is reference data; seed it before serving.
	if err := services.NewPrayerService(db).Seed(); err != nil {
		utils.Sugar.Fatalf("failed to seed prayer catalog: %v", err)
	}

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
