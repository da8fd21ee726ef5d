package db

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"recipe-server/entities"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// connectAttempts bounds the wait-for-db loop at startup.
const connectAttempts = 30

func Connect() (Database, error) {
	dsn, err := buildDSN()
	if err != nil {
		return nil, err
	}

	db, err := waitForDB(dsn)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(0)

	log.Println("Database connection established successfully!")

	log.Println("Running database migrations...")
	if err := db.AutoMigrate(&entities.User{}, &entities.Token{}, &entities.Ingredient{}, &entities.Recipe{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Println("Database migrations completed successfully!")

	return &GormDatabase{DB: db}, nil
}

// waitForDB retries once per second until the database accepts
// connections or the attempt budget runs out.
func waitForDB(dsn string) (*gorm.DB, error) {
	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Info),
			PrepareStmt:    true,
			TranslateError: true,
		})
		if err == nil {
			return db, nil
		}
		lastErr = err
		log.Printf("DB unavailable (attempt %d/%d), waiting 1s...", attempt, connectAttempts)
		time.Sleep(1 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to database: %w", lastErr)
}

func buildDSN() (string, error) {
	// Check if DB_URL is provided (connection string)
	dbURL := os.Getenv("DB_URL")
	if dbURL != "" {
		dsn := dbURL
		// Hosted databases want SSL; add it when the URL doesn't say
		if !strings.Contains(dsn, "sslmode=") {
			if strings.Contains(dsn, "?") {
				dsn += "&sslmode=require"
			} else {
				dsn += "?sslmode=require"
			}
		}
		log.Println("Connecting to database using DB_URL...")
		return dsn, nil
	}

	// Build DSN from individual parameters
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	if dbHost == "" || dbPort == "" || dbUser == "" || dbPassword == "" || dbName == "" {
		return "", fmt.Errorf("missing required database configuration: DB_URL or (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	sslMode := "require"
	if dbHost == "localhost" || dbHost == "127.0.0.1" {
		sslMode = "disable"
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		dbHost, dbUser, dbPassword, dbName, dbPort, sslMode)
	log.Printf("Connecting to database using individual parameters (sslmode=%s)...", sslMode)
	return dsn, nil
}
