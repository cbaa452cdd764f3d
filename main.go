package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"lingua/config"
	"lingua/database"
	"lingua/middleware"
	"lingua/routers/authRoutes"
	"lingua/routers/courseRoutes"
	"lingua/routers/diagRoutes"
	"lingua/routers/userRoutes"
	"lingua/services"
	"lingua/store"
)

func main() {
	cfg := config.LoadConfig()

	clients, err := database.Connect(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Firebase: %v", err)
	}
	defer clients.Close()

	st := store.NewFirestoreStore(clients.Firestore)
	verifier := services.NewFirebaseVerifier(clients.Auth)
	users := services.NewUserService(st)
	courses := services.NewCourseService(st)
	progress := services.NewProgressService(st)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: middleware.AllowOrigin(cfg.AllowedOrigins),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Content-Type,Authorization,X-Requested-With",
		AllowCredentials: true,
		MaxAge:           86400, // preflight cached for 24h
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app, users, verifier)
	courseRoutes.SetupCourseRoutes(app, courses)
	userRoutes.SetupUserRoutes(app, users, courses, progress, verifier)
	diagRoutes.SetupDiagRoutes(app, st, cfg)

	log.Printf("Server is running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
