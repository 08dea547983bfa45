package services

import (
	"testing"

	"github.com/surveysavvy/surveysavvy/model"
)

func TestGeneratePopulatesEveryTable(t *testing.T) {
	db := openTestDB(t)

	generator := NewGeneratorService(db, 42)
	if err := generator.Generate(6, 2023, 2024); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var disciplines, units, offerings, events, surveys, results, benchmarks, comments int64
	db.Model(&model.Discipline{}).Count(&disciplines)
	db.Model(&model.Unit{}).Count(&units)
	db.Model(&model.UnitOffering{}).Count(&offerings)
	db.Model(&model.SurveyEvent{}).Count(&events)
	db.Model(&model.UnitSurvey{}).Count(&surveys)
	db.Model(&model.UnitSurveyResult{}).Count(&results)
	db.Model(&model.Benchmark{}).Count(&benchmarks)
	db.Model(&model.Comment{}).Count(&comments)

	if disciplines != 20 {
		t.Errorf("disciplines = %d, want 20", disciplines)
	}
	if units != 6 {
		t.Errorf("units = %d, want 6", units)
	}
	if offerings == 0 {
		t.Error("no offerings generated")
	}
	if events != 4 {
		t.Errorf("events = %d, want 4 (two years, two semesters)", events)
	}
	if surveys == 0 || results == 0 || benchmarks == 0 || comments == 0 {
		t.Errorf("empty survey data: surveys=%d results=%d benchmarks=%d comments=%d",
			surveys, results, benchmarks, comments)
	}

	// six results per survey, every question covered
	if results != surveys*6 {
		t.Errorf("results = %d, want %d (6 per survey)", results, surveys*6)
	}
}

func TestGenerateBenchmarksUniquePerEvent(t *testing.T) {
	db := openTestDB(t)

	generator := NewGeneratorService(db, 7)
	if err := generator.Generate(5, 2024, 2024); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// at most one row per (event, question, group)
	type identity struct {
		EventID    uint
		QuestionID uint
		GroupType  string
		N          int64
	}
	var rows []identity
	if err := db.Model(&model.Benchmark{}).
		Select("event_id, question_id, group_type, COUNT(*) AS n").
		Group("event_id, question_id, group_type").
		Scan(&rows).Error; err != nil {
		t.Fatalf("query failed: %v", err)
	}
	for _, row := range rows {
		if row.N != 1 {
			t.Errorf("benchmark (%d, %d, %s) has %d rows", row.EventID, row.QuestionID, row.GroupType, row.N)
		}
	}
}

func TestGenerateResultRowsSumToResponses(t *testing.T) {
	db := openTestDB(t)

	generator := NewGeneratorService(db, 99)
	if err := generator.Generate(3, 2024, 2024); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var results []model.UnitSurveyResult
	if err := db.Find(&results).Error; err != nil {
		t.Fatalf("load results: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("no results generated")
	}
	for _, r := range results {
		total := r.StronglyDisagree + r.Disagree + r.Neutral + r.Agree + r.StronglyAgree + r.UnableToJudge
		if total < 50 || total > 150 {
			t.Errorf("result %d: distribution sums to %d, want 50-150", r.ID, total)
		}
		if r.PercentAgree < 0 || r.PercentAgree > 100 {
			t.Errorf("result %d: percent agree %.2f out of range", r.ID, r.PercentAgree)
		}
	}
}

func TestGenerateCommentScoresInRange(t *testing.T) {
	db := openTestDB(t)

	generator := NewGeneratorService(db, 1)
	if err := generator.Generate(3, 2024, 2024); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var comments []model.Comment
	if err := db.Find(&comments).Error; err != nil {
		t.Fatalf("load comments: %v", err)
	}
	for _, c := range comments {
		if c.SentimentScore < -1 || c.SentimentScore > 1 {
			t.Errorf("comment %d: sentiment %.2f out of range", c.ID, c.SentimentScore)
		}
		if c.Text == "" {
			t.Errorf("comment %d: empty text", c.ID)
		}
	}
}
