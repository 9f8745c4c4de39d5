package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/enigma-chat/enigma/config"
	"github.com/enigma-chat/enigma/pkg/database"
)

const usage = `
Enigma Chat - Database CLI Tool

Usage:
  migrate [command]

Commands:
  up          Run GORM migrations and seed the stats row
  status      Show database connection status
  seed        Ensure the singleton site-stats row exists

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go status
`

func main() {
	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	cfg := config.LoadConfig()
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	switch command := flag.Arg(0); command {
	case "up":
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		fmt.Println("Migrations applied")
	case "status":
		if err := database.HealthCheck(db); err != nil {
			log.Fatalf("Database unreachable: %v", err)
		}
		fmt.Println("Database connection OK")
	case "seed":
		if err := database.SeedStats(db); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		fmt.Println("Stats row seeded")
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}
