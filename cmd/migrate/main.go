// Command migrate applies the schema migrations with goose. Subcommands: up
// (default), down, status.
package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

const migrationsDir = "migrations"

// dbURL builds the connection string from DB_URL or the individual DB_* vars.
// The API server's full configuration is not required here.
func dbURL() string {
	if url := os.Getenv("DB_URL"); url != "" {
		return url
	}
	get := func(key, def string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return def
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		get("DB_USER", "postgres"),
		get("DB_PASSWORD", "postgres"),
		get("DB_HOST", "localhost"),
		get("DB_PORT", "5432"),
		get("DB_NAME", "coinverse"))
}

func main() {
	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	_ = godotenv.Load()

	db, err := sql.Open("pgx", dbURL())
	if err != nil {
		slog.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		slog.Error("Failed to set dialect", "error", err)
		os.Exit(1)
	}

	switch cmd {
	case "up":
		err = goose.Up(db, migrationsDir)
	case "down":
		err = goose.Down(db, migrationsDir)
	case "status":
		err = goose.Status(db, migrationsDir)
	default:
		slog.Error("Unknown subcommand", "cmd", cmd)
		os.Exit(2)
	}
	if err != nil {
		slog.Error("Migration failed", "cmd", cmd, "error", err)
		os.Exit(1)
	}

	slog.Info("Migration complete", "cmd", cmd)
}
