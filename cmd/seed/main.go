package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"hoteldesk/internal/database"
	"hoteldesk/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "hoteldesk.db"
		log.Println("DATABASE_URL is empty, using local sqlite file:", dsn)
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	if err := repository.SeedDemoData(db); err != nil {
		log.Fatal("Seeding failed:", err)
	}
}
