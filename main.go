package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"rental-ledger/config"
	"rental-ledger/handlers"
	"rental-ledger/ledger"
	"rental-ledger/store"
)

func main() {
	cfg := config.Load()
	log := logrus.StandardLogger()

	st, err := openStore(cfg)
	if err != nil {
		log.Fatal("failed to open store: ", err)
	}

	eng, err := ledger.New(st)
	if err != nil {
		log.Fatal("failed to load ledger: ", err)
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.WebOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(sessions.Sessions("ledger_session", cookie.NewStore([]byte(cfg.SessionSecret))))

	s := handlers.NewSrv(eng, log)
	r.Use(s.Serialize())
	registerRoutes(r, s)

	log.Info("listening on :", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

func openStore(cfg config.Config) (store.Store, error) {
	if cfg.Backend == "sqlite" {
		return store.NewSQLiteStore(cfg.SQLitePath)
	}
	return store.NewJSONStore(cfg.DataFile), nil
}

func registerRoutes(r *gin.Engine, s *handlers.Srv) {
	auth := handlers.NewAuthHandler(s)
	admin := handlers.NewAdminHandler(s)
	vehicles := handlers.NewVehicleHandler(s)
	rentals := handlers.NewRentalHandler(s)
	stats := handlers.NewStatsHandler(s)

	r.POST("/api/login", auth.Login)
	r.POST("/api/logout", auth.Logout)

	authed := r.Group("/api", s.AuthRequired())
	{
		authed.GET("/me", auth.Me)

		authed.GET("/vehicles", vehicles.List)

		authed.POST("/rentals", rentals.Rent)
		authed.POST("/rentals/:id/return", rentals.Return)
		authed.GET("/rentals/open", rentals.ListOpen)

		authed.GET("/stats/recent", stats.Recent)
		authed.GET("/stats/week", stats.Week)
		authed.GET("/stats/top-vehicles", stats.TopVehicles)
		authed.GET("/stats/top-customers", stats.TopCustomers)
		authed.GET("/stats/revenue", stats.Revenue)
	}

	adminOnly := r.Group("/api", s.AuthRequired(), s.AdminRequired())
	{
		adminOnly.POST("/users", admin.CreateUser)
		adminOnly.POST("/vehicles", vehicles.Register)
		adminOnly.PUT("/vehicles/:id", vehicles.Modify)
		adminOnly.POST("/admin/clear", admin.ClearAll)
	}
}
