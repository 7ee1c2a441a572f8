package db

import (
	"fmt"
	"os"
	"strconv"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens a Postgres connection with the given settings.
func Connect(port uint, host, dbname, username, password string) (*gorm.DB, error) {
	sslMode := ""
	if os.Getenv("DB_SSL_MODE_DISABLE") == "true" {
		sslMode = " sslmode=disable"
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d%s", host, username, password, dbname, port, sslMode)
	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Error),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	return database, nil
}

// GetDB reads connection settings from the environment and connects.
func GetDB() (*gorm.DB, error) {
	host := os.Getenv("DB_HOST")
	port, err := strconv.ParseUint(os.Getenv("DB_PORT"), 10, 32)
	if err != nil {
		port = 5432 // default PostgreSQL port
	}

	name := os.Getenv("DB_NAME")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	return Connect(uint(port), host, name, user, password)
}
