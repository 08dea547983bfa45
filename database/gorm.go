package database

import (
	"log"

	"github.com/surveysavvy/surveysavvy/config"
	"github.com/surveysavvy/surveysavvy/model"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type GORMStore struct {
	db *gorm.DB
}

// StartGORM initializes a GORM connection from the environment: a SQLite
// file at DB_PATH by default, or Postgres when DATABASE_URL is set.
func StartGORM() (*GORMStore, error) {
	getEnv, err := config.Get()
	if err != nil {
		return nil, err
	}

	if getEnv.DATABASE_URL != "" {
		return OpenPostgres(getEnv.DATABASE_URL, getEnv.GO_ENV)
	}
	return OpenSQLite(getEnv.DB_PATH, getEnv.GO_ENV)
}

// OpenSQLite opens (creating if necessary) a SQLite database file.
func OpenSQLite(path string, goEnv string) (*GORMStore, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig(goEnv))
	if err != nil {
		log.Println("Unable to open SQLite database with GORM:", err)
		return nil, err
	}

	// Enforce FK resolution on child inserts
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, err
	}

	return &GORMStore{db: db}, nil
}

// OpenPostgres connects to a PostgreSQL database via DSN.
func OpenPostgres(dsn string, goEnv string) (*GORMStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig(goEnv))
	if err != nil {
		log.Println("Unable to connect to PostgreSQL with GORM:", err)
		return nil, err
	}

	return &GORMStore{db: db}, nil
}

func gormConfig(goEnv string) *gorm.Config {
	// Configure GORM logger
	gormLogger := logger.Default.LogMode(logger.Warn)
	if goEnv == "production" {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	return &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: false,
		PrepareStmt:            true,
	}
}

// Init runs AutoMigrate for all models and seeds the fixed question catalog.
func (s *GORMStore) Init() error {
	if err := s.db.AutoMigrate(model.AllTables()...); err != nil {
		log.Println("GORM AutoMigrate failed:", err)
		return err
	}

	return NewSeeder(s.db).SeedQuestions()
}

// GetDB returns the underlying GORM handle.
func (s *GORMStore) GetDB() *gorm.DB {
	return s.db
}

// Close releases the underlying database connection.
func (s *GORMStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
