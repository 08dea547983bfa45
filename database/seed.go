package database

import (
	"fmt"
	"log"

	"github.com/surveysavvy/surveysavvy/model"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedQuestions inserts the six canonical survey questions if the catalog
// is empty. The catalog is fixed: import never adds questions, so this is
// the only place question rows are created.
func (s *Seeder) SeedQuestions() error {
	var count int64
	if err := s.db.Model(&model.Question{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count questions: %w", err)
	}

	if count > 0 {
		return nil
	}

	log.Println("Seeding canonical question catalog...")

	for _, key := range model.QuestionKeys() {
		q := model.Question{Text: key.Text()}
		if err := s.db.Create(&q).Error; err != nil {
			return fmt.Errorf("failed to seed question %q: %w", key.Label(), err)
		}
	}

	return nil
}

// QuestionIDs returns a map from canonical question key to its seeded
// database id. Callers hold this for the lifetime of an import run; the
// catalog never changes underneath them.
func QuestionIDs(db *gorm.DB) (map[model.QuestionKey]uint, error) {
	var rows []model.Question
	if err := db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load question catalog: %w", err)
	}

	ids := make(map[model.QuestionKey]uint, len(rows))
	for _, row := range rows {
		if key, ok := model.MatchQuestionText(row.Text); ok {
			ids[key] = row.ID
		}
	}

	if len(ids) != len(model.QuestionKeys()) {
		return nil, fmt.Errorf("question catalog incomplete: have %d of %d canonical questions", len(ids), len(model.QuestionKeys()))
	}

	return ids, nil
}
