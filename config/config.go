package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// This function will Load the ENVIORNMENT VARIABLES from .env if GO_ENV variable is not set
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil {
			return err
		}
	}

	return nil
}

type EnviornmentVariable struct {
	// All variables
	GO_ENV string
	// Database: SQLite file path by default, Postgres DSN when DATABASE_URL is set
	DB_PATH      string
	DATABASE_URL string
	PORT         int
	// Importer Configuration
	IMPORT_DIR      string
	IMPORT_SCHEDULE string
	JSON_DUMP_DIR   string
	DEBUG           bool
}

func Get() (*EnviornmentVariable, error) {

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	// Database defaults
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "unit_survey.db"
	}

	importDir := os.Getenv("IMPORT_DIR")
	if importDir == "" {
		importDir = "imports"
	}

	// Cron spec with seconds precision, hourly by default
	importSchedule := os.Getenv("IMPORT_SCHEDULE")
	if importSchedule == "" {
		importSchedule = "0 0 * * * *"
	}

	debug, err := strconv.ParseBool(os.Getenv("DEBUG"))
	if err != nil {
		debug = false
	}

	envVariables := &EnviornmentVariable{
		GO_ENV:       os.Getenv("GO_ENV"),
		DB_PATH:      dbPath,
		DATABASE_URL: os.Getenv("DATABASE_URL"),
		PORT:         port,
		// Importer
		IMPORT_DIR:      importDir,
		IMPORT_SCHEDULE: importSchedule,
		JSON_DUMP_DIR:   os.Getenv("JSON_DUMP_DIR"),
		DEBUG:           debug,
	}

	return envVariables, nil
}
