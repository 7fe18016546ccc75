package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Srgrv/mern-food-ordering-app-backend/internal/db"
	"github.com/Srgrv/mern-food-ordering-app-backend/internal/restaurant"
	"github.com/Srgrv/mern-food-ordering-app-backend/internal/router"
	"github.com/Srgrv/mern-food-ordering-app-backend/internal/storage"
	"github.com/Srgrv/mern-food-ordering-app-backend/internal/user"
)

func main() {
	// Load environment variables and fail fast on missing config
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	required := []string{
		"DATABASE_URL",
		"JWT_SECRET",
		"JWT_AUDIENCE",
		"JWT_ISSUER",
		"R2_ACCESS_KEY",
		"R2_SECRET_KEY",
		"R2_BUCKET_NAME",
		"R2_ENDPOINT",
		"R2_PUBLIC_BASE_URL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			logrus.Fatalf("Missing env var: %s", k)
		}
	}

	// Database connection
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// Media storage client
	r2Client, err := storage.NewR2Client(context.Background())
	if err != nil {
		logrus.Fatal("R2 init failed: ", err)
	}

	// Feature dependencies
	userRepo := user.NewPostgresRepository(pgDB)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	restaurantRepo := restaurant.NewPostgresRepository(pgDB)
	restaurantService := restaurant.NewService(restaurantRepo, r2Client)
	restaurantHandler := restaurant.NewHandler(restaurantService)

	// Routes
	r := router.New(userHandler, restaurantHandler, userRepo)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	logrus.Infof("API running at http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		logrus.Fatal("Failed to start server: ", err)
	}
}
