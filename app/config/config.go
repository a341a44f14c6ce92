package config

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

type Config struct {
	DB   *sql.DB
	Port string
}

var AppConfig *Config

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB opens the Postgres pool and fills AppConfig. Connection settings
// come from DATABASE_URL, or from the individual PG* variables when unset.
func InitDB() {
	logg := GetLogger()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			getenv("PGHOST", "localhost"),
			getenv("PGPORT", "5432"),
			getenv("PGUSER", "postgres"),
			getenv("PGPASSWORD", ""),
			getenv("PGDATABASE", "rentedge"),
			getenv("PGSSLMODE", "disable"),
		)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logg.WithError(err).Fatal("failed to open database connection")
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if err = db.Ping(); err != nil {
		logg.WithError(err).Fatal("cannot establish database connection")
	}

	AppConfig = &Config{
		DB:   db,
		Port: getenv("PORT", "3001"),
	}
	logg.Info("database connected")
}

func GetDB() *sql.DB {
	return AppConfig.DB
}
