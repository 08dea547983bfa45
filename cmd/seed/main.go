package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/surveysavvy/surveysavvy/database"
	"github.com/surveysavvy/surveysavvy/model"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Initialize database connection using GORM
	store, err := database.StartGORM()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	separator := strings.Repeat("=", 60)
	fmt.Println(separator)
	fmt.Println("SurveySavvy - Database Seeding")
	fmt.Println(separator)
	fmt.Println()

	// Migrations plus the canonical question catalog
	if err := store.Init(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	// Discipline catalog
	db := store.GetDB()
	for code, name := range model.DefaultDisciplineNames() {
		discipline := model.Discipline{Code: code}
		if err := db.Where(model.Discipline{Code: code}).
			Attrs(model.Discipline{Name: name}).
			FirstOrCreate(&discipline).Error; err != nil {
			log.Fatalf("Failed to seed discipline %s: %v", code, err)
		}
	}

	fmt.Println()
	fmt.Println(separator)
	fmt.Println("Seeding completed successfully")
	fmt.Println(separator)
	fmt.Println()
	fmt.Println("Seeded the question catalog and the discipline catalog.")
	fmt.Println("Survey data comes from 'surveysavvy import' or 'surveysavvy generate'.")
}
