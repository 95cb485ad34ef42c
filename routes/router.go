package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hmdno/salahtrack/config"
	"github.com/hmdno/salahtrack/controllers"
	"github.com/hmdno/salahtrack/middleware"
	"github.com/hmdno/salahtrack/services"
	"github.com/hmdno/salahtrack/utils"
)

// SetupRouter wires routes, middlewares, services, and controllers. Services
// are constructed once here and injected; nothing holds package-level state.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())

	// Access log goes to its own rolling file, separate from the app log.
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	userService := services.NewUserService(db)
	prayerService := services.NewPrayerService(db)
	rewardService := services.NewRewardService(db)
	statsService := services.NewStatsService(db, prayerService)

	authController := controllers.NewAuthController(userService)
	prayerController := controllers.NewPrayerController(prayerService)
	statsController := controllers.NewStatsController(statsService)
	rewardController := controllers.NewRewardController(rewardService)

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	authGroup := api.Group("")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired())

	protected.GET("/user", authController.Me)
	protected.PATCH("/user/profile", authController.UpdateProfile)
	protected.PATCH("/user/password", authController.ChangePassword)
	protected.GET("/user/stats", statsController.UserStats)

	protected.GET("/prayers", prayerController.List)
	protected.POST("/prayers/log", prayerController.Log)
	protected.GET("/prayers/date/:date", prayerController.ForDate)

	protected.GET("/leaderboard", statsController.Leaderboard)

	protected.POST("/rewards/suggest", rewardController.Suggest)
	protected.GET("/rewards/current", rewardController.Current)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
