package db

import (
	"context"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logrus.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logrus.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		logrus.Fatal("Postgres connection failed: ", err)
	}

	logrus.Info("Connected to PostgreSQL")

	if err := initSchema(pool); err != nil {
		logrus.Fatal("Failed to initialize schema: ", err)
	}

	return pool
}

// initSchema creates or updates the database schema
func initSchema(pool *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// USERS
	// -------------------------------
	userTableSQL := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			auth0_id VARCHAR(255) UNIQUE NOT NULL,
			email VARCHAR(255) NOT NULL,
			name VARCHAR(255) NOT NULL DEFAULT '',
			address_line1 VARCHAR(255) NOT NULL DEFAULT '',
			city VARCHAR(255) NOT NULL DEFAULT '',
			country VARCHAR(255) NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := pool.Exec(ctx, userTableSQL); err != nil {
		return err
	}

	// -------------------------------
	// RESTAURANTS
	// user_id is UNIQUE: one restaurant per owner is enforced by the
	// database, not only by the create-time existence check.
	// -------------------------------
	restaurantTableSQL := `
		CREATE TABLE IF NOT EXISTS restaurants (
			id UUID PRIMARY KEY,
			user_id UUID UNIQUE NOT NULL REFERENCES users(id),
			restaurant_name VARCHAR(255) NOT NULL,
			city VARCHAR(255) NOT NULL,
			country VARCHAR(255) NOT NULL,
			delivery_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			estimated_delivery_time INTEGER NOT NULL DEFAULT 0,
			cuisines TEXT[] NOT NULL DEFAULT '{}',
			menu_items JSONB NOT NULL DEFAULT '[]',
			image_url VARCHAR(500) NOT NULL DEFAULT '',
			last_updated TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := pool.Exec(ctx, restaurantTableSQL); err != nil {
		return err
	}

	citySearchIndexSQL := `
		CREATE INDEX IF NOT EXISTS idx_restaurants_city
		ON restaurants (lower(city))
	`
	if _, err := pool.Exec(ctx, citySearchIndexSQL); err != nil {
		return err
	}

	logrus.Info("Schema initialized successfully")
	return nil
}
