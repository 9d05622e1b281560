package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/salonworks/salon-api/controllers"
	"github.com/salonworks/salon-api/cron"
	"github.com/salonworks/salon-api/db"
	"github.com/salonworks/salon-api/middleware"
	"github.com/salonworks/salon-api/redis"
	"github.com/salonworks/salon-api/routes"
	"github.com/salonworks/salon-api/scheduler"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	app := fiber.New()
	db.Init()
	if os.Getenv("AUTO_MIGRATE") == "true" {
		db.Migrate()
	}

	var cache scheduler.AvailabilityCache
	if redis.InitRedis() {
		cache = redis.NewAvailabilityCache(redis.Client)
	}

	store := db.NewScheduleStore(db.DB)
	staffStore := db.NewStaffStore(db.DB)
	svc := scheduler.NewService(store, staffStore, cache, log.Logger)
	controllers.Init(svc, staffStore)

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(middleware.RequestLogger())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Salon scheduling API")
	})
	routes.SetupScheduleRoutes(app)
	routes.SetupAppointmentRoutes(app)

	cron.StartCronJobs()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	if err := app.Listen(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
