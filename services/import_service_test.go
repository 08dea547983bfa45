package services

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/surveysavvy/surveysavvy/database"
	"github.com/surveysavvy/surveysavvy/model"
	"github.com/surveysavvy/surveysavvy/services/extract"
	"github.com/surveysavvy/surveysavvy/utils/validation"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	store, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"), "test")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
	return store.GetDB()
}

func sampleRecord(unitCode string) *extract.Record {
	record := &extract.Record{
		UnitCode:          unitCode,
		UnitName:          "Introduction to Business Programming",
		DisciplineCode:    unitCode[:4],
		DisciplineName:    "Information Systems",
		Semester:          1,
		Year:              2024,
		Location:          "Bentley Perth",
		Availability:      "Internal",
		Enrolments:        34,
		Responses:         12,
		ResponseRate:      35.3,
		OverallExperience: 91.7,
	}

	groups := []struct {
		groupType model.BenchmarkGroup
		name      string
	}{
		{model.GroupUnit, "Unit - " + unitCode},
		{model.GroupSchool, "School - School of Management"},
		{model.GroupUniversity, "Curtin"},
	}
	for _, group := range groups {
		for _, key := range model.QuestionKeys() {
			record.Benchmarks = append(record.Benchmarks, extract.BenchmarkRow{
				GroupType:     group.groupType,
				GroupName:     group.name,
				Question:      key,
				QuestionLabel: key.Label(),
				PercentAgree:  85.0,
				TotalN:        100,
			})
		}
	}

	record.DetailedResults = []extract.QuestionResult{
		{
			QuestionText:  "I was engaged by the learning activities",
			Agree:         5,
			StronglyAgree: 6,
			Disagree:      1,
			PercentAgree:  91.7,
		},
		{
			QuestionText:  "Overall, this unit was a worthwhile experience.",
			Agree:         7,
			StronglyAgree: 4,
			Neutral:       1,
			PercentAgree:  91.7,
		},
	}

	record.Comments = []extract.CommentEntry{
		{Text: "The lectures were great and the examples helpful.", SentimentScore: 1.0},
		{Text: "Some of the assessment criteria were confusing.", SentimentScore: -1.0},
	}

	return record
}

func TestStoreRecordCreatesHierarchy(t *testing.T) {
	db := openTestDB(t)
	importer := NewImportService(db, extract.NewExtractor(nil, false))

	counts, err := importer.StoreRecord(sampleRecord("ISYS2001"))
	if err != nil {
		t.Fatalf("StoreRecord failed: %v", err)
	}

	if counts.Benchmarks != 18 {
		t.Errorf("Benchmarks = %d, want 18", counts.Benchmarks)
	}
	if counts.Results != 2 {
		t.Errorf("Results = %d, want 2", counts.Results)
	}
	if counts.Comments != 2 {
		t.Errorf("Comments = %d, want 2", counts.Comments)
	}
	if counts.QuestionsSkipped != 0 {
		t.Errorf("QuestionsSkipped = %d, want 0", counts.QuestionsSkipped)
	}

	var unit model.Unit
	if err := db.First(&unit, "unit_code = ?", "ISYS2001").Error; err != nil {
		t.Fatalf("Unit not created: %v", err)
	}
	if unit.DisciplineCode != "ISYS" {
		t.Errorf("DisciplineCode = %q, want ISYS", unit.DisciplineCode)
	}

	var event model.SurveyEvent
	if err := db.First(&event, "year = ? AND month = ?", 2024, 5).Error; err != nil {
		t.Fatalf("Survey event not created at canonical month: %v", err)
	}
	if event.Description != "Semester 1 2024 Survey" {
		t.Errorf("Description = %q", event.Description)
	}

	var survey model.UnitSurvey
	if err := db.First(&survey).Error; err != nil {
		t.Fatalf("Survey not created: %v", err)
	}
	if survey.Enrolments != 34 || survey.Responses != 12 {
		t.Errorf("Survey stats = %d/%d, want 34/12", survey.Enrolments, survey.Responses)
	}
}

func TestStoreRecordIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	importer := NewImportService(db, extract.NewExtractor(nil, false))

	if _, err := importer.StoreRecord(sampleRecord("ISYS2001")); err != nil {
		t.Fatalf("first StoreRecord failed: %v", err)
	}
	counts, err := importer.StoreRecord(sampleRecord("ISYS2001"))
	if err != nil {
		t.Fatalf("second StoreRecord failed: %v", err)
	}

	if counts.Benchmarks != 0 || counts.Results != 0 || counts.Comments != 0 {
		t.Errorf("second import added rows: %+v", counts)
	}

	var surveys int64
	db.Model(&model.UnitSurvey{}).Count(&surveys)
	if surveys != 1 {
		t.Errorf("surveys = %d, want 1", surveys)
	}

	var comments int64
	db.Model(&model.Comment{}).Count(&comments)
	if comments != 2 {
		t.Errorf("comments = %d, want 2", comments)
	}
}

func TestStoreRecordSharedBenchmarksAcrossUnits(t *testing.T) {
	db := openTestDB(t)
	importer := NewImportService(db, extract.NewExtractor(nil, false))

	if _, err := importer.StoreRecord(sampleRecord("ISYS2001")); err != nil {
		t.Fatalf("first StoreRecord failed: %v", err)
	}

	// Same event: every benchmark group is already claimed, including the
	// Unit level, so the second unit adds none.
	counts, err := importer.StoreRecord(sampleRecord("COMP1005"))
	if err != nil {
		t.Fatalf("second StoreRecord failed: %v", err)
	}
	if counts.Benchmarks != 0 {
		t.Errorf("Benchmarks = %d, want 0", counts.Benchmarks)
	}

	// But its survey, results and comments are its own.
	if counts.Results != 2 {
		t.Errorf("Results = %d, want 2", counts.Results)
	}

	var surveys int64
	db.Model(&model.UnitSurvey{}).Count(&surveys)
	if surveys != 2 {
		t.Errorf("surveys = %d, want 2", surveys)
	}
}

func TestStoreRecordFirstUnitNameWins(t *testing.T) {
	db := openTestDB(t)
	importer := NewImportService(db, extract.NewExtractor(nil, false))

	record := sampleRecord("ISYS2001")
	if _, err := importer.StoreRecord(record); err != nil {
		t.Fatalf("first StoreRecord failed: %v", err)
	}

	record = sampleRecord("ISYS2001")
	record.UnitName = "Information Systems Unit"
	record.Semester = 2
	if _, err := importer.StoreRecord(record); err != nil {
		t.Fatalf("second StoreRecord failed: %v", err)
	}

	var unit model.Unit
	if err := db.First(&unit, "unit_code = ?", "ISYS2001").Error; err != nil {
		t.Fatalf("Unit missing: %v", err)
	}
	if unit.Name != "Introduction to Business Programming" {
		t.Errorf("Name = %q, first import should win", unit.Name)
	}
}

func TestStoreRecordSkipsUnresolvableQuestion(t *testing.T) {
	db := openTestDB(t)
	importer := NewImportService(db, extract.NewExtractor(nil, false))

	record := sampleRecord("ISYS2001")
	record.DetailedResults = append(record.DetailedResults, extract.QuestionResult{
		QuestionText: "A question nobody has ever asked before",
		Agree:        3,
	})

	counts, err := importer.StoreRecord(record)
	if err != nil {
		t.Fatalf("StoreRecord failed: %v", err)
	}
	if counts.QuestionsSkipped != 1 {
		t.Errorf("QuestionsSkipped = %d, want 1", counts.QuestionsSkipped)
	}
	if counts.Results != 2 {
		t.Errorf("Results = %d, want 2", counts.Results)
	}
}

func TestStoreRecordDeduplicatesCommentsByPrefix(t *testing.T) {
	db := openTestDB(t)
	importer := NewImportService(db, extract.NewExtractor(nil, false))

	record := sampleRecord("ISYS2001")
	if _, err := importer.StoreRecord(record); err != nil {
		t.Fatalf("first StoreRecord failed: %v", err)
	}

	// Same opening 50 characters, different tail: still a duplicate.
	record = sampleRecord("ISYS2001")
	record.Comments = []extract.CommentEntry{
		{Text: "The lectures were great and the examples helpful. Truly.", SentimentScore: 1.0},
	}
	counts, err := importer.StoreRecord(record)
	if err != nil {
		t.Fatalf("second StoreRecord failed: %v", err)
	}
	if counts.Comments != 0 {
		t.Errorf("Comments = %d, want 0 (prefix duplicate)", counts.Comments)
	}
}

func TestStoreRecordCommentWildcardsMatchLiterally(t *testing.T) {
	db := openTestDB(t)
	importer := NewImportService(db, extract.NewExtractor(nil, false))

	record := sampleRecord("ISYS2001")
	record.Comments = []extract.CommentEntry{
		{Text: "It was 100x a worthwhile unit in the end.", SentimentScore: 0.5},
	}
	if _, err := importer.StoreRecord(record); err != nil {
		t.Fatalf("first StoreRecord failed: %v", err)
	}

	// A % in the prefix must not turn the dedup lookup into a pattern
	// that swallows the earlier, distinct comment.
	record = sampleRecord("ISYS2001")
	record.Comments = []extract.CommentEntry{
		{Text: "It was 100% a worthwhile unit in the end.", SentimentScore: 0.5},
		{Text: "The under_score criteria were clear.", SentimentScore: 0.5},
	}
	counts, err := importer.StoreRecord(record)
	if err != nil {
		t.Fatalf("second StoreRecord failed: %v", err)
	}
	if counts.Comments != 2 {
		t.Errorf("Comments = %d, want 2 (distinct comments with wildcards)", counts.Comments)
	}
}

func TestStoreRecordCommentPrefixIsRuneSafe(t *testing.T) {
	db := openTestDB(t)
	importer := NewImportService(db, extract.NewExtractor(nil, false))

	// Three-byte runes put byte 50 mid-rune; the cut must back up to a
	// rune boundary for both the insert and the later dedup lookup.
	text := strings.Repeat("好", 20) + " and then some more feedback."

	record := sampleRecord("ISYS2001")
	record.Comments = []extract.CommentEntry{{Text: text, SentimentScore: 0.0}}
	counts, err := importer.StoreRecord(record)
	if err != nil {
		t.Fatalf("first StoreRecord failed: %v", err)
	}
	if counts.Comments != 1 {
		t.Fatalf("Comments = %d, want 1", counts.Comments)
	}

	record = sampleRecord("ISYS2001")
	record.Comments = []extract.CommentEntry{{Text: text, SentimentScore: 0.0}}
	counts, err = importer.StoreRecord(record)
	if err != nil {
		t.Fatalf("second StoreRecord failed: %v", err)
	}
	if counts.Comments != 0 {
		t.Errorf("Comments = %d, want 0 (duplicate)", counts.Comments)
	}
}

func TestStoreRecordRollsBackFailedDocument(t *testing.T) {
	db := openTestDB(t)
	importer := NewImportService(db, extract.NewExtractor(nil, false))

	if _, err := importer.StoreRecord(sampleRecord("ISYS2001")); err != nil {
		t.Fatalf("first StoreRecord failed: %v", err)
	}

	// Drop the comment table so the next document fails at the last step
	// of its transaction, after its hierarchy, benchmarks and results.
	if err := db.Migrator().DropTable(&model.Comment{}); err != nil {
		t.Fatalf("drop comment table: %v", err)
	}

	if _, err := importer.StoreRecord(sampleRecord("COMP1005")); err == nil {
		t.Fatal("StoreRecord succeeded without a comment table")
	}

	// The failed document contributed nothing, not even its hierarchy.
	var comp int64
	if err := db.Model(&model.Unit{}).Where("unit_code = ?", "COMP1005").
		Count(&comp).Error; err != nil {
		t.Fatalf("count units: %v", err)
	}
	if comp != 0 {
		t.Errorf("COMP1005 unit rows = %d, want 0 after rollback", comp)
	}

	tables := []struct {
		name  string
		model interface{}
		want  int64
	}{
		{"units", &model.Unit{}, 1},
		{"offerings", &model.UnitOffering{}, 1},
		{"surveys", &model.UnitSurvey{}, 1},
		{"benchmarks", &model.Benchmark{}, 18},
		{"results", &model.UnitSurveyResult{}, 2},
	}
	for _, table := range tables {
		var count int64
		if err := db.Model(table.model).Count(&count).Error; err != nil {
			t.Fatalf("count %s: %v", table.name, err)
		}
		if count != table.want {
			t.Errorf("%s = %d, want %d (earlier document must stay intact)", table.name, count, table.want)
		}
	}
}

func TestImportFileRecordsFailedJob(t *testing.T) {
	db := openTestDB(t)
	importer := NewImportService(db, extract.NewExtractor(nil, false))

	result := importer.ImportFile(filepath.Join(t.TempDir(), "missing.pdf"))
	if result.Success {
		t.Fatal("import of missing file reported success")
	}

	var job model.ImportJob
	if err := db.First(&job).Error; err != nil {
		t.Fatalf("ImportJob not recorded: %v", err)
	}
	if job.Status != model.ImportStatusFailed {
		t.Errorf("Status = %q, want %q", job.Status, model.ImportStatusFailed)
	}
	if job.SourceFile != "missing.pdf" {
		t.Errorf("SourceFile = %q", job.SourceFile)
	}
}

func TestFormatRecordErrorsListsFields(t *testing.T) {
	v := validation.NewValidator()

	err := v.ValidateStruct(&extract.Record{Semester: 1, Year: 2024})
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	msg := formatRecordErrors(err)
	if !strings.Contains(msg, "UnitCode is required") {
		t.Errorf("message %q missing unit code failure", msg)
	}
	if !strings.Contains(msg, "; ") {
		t.Errorf("message %q not a joined field list", msg)
	}
}

func TestImportFolderEmptyDirectory(t *testing.T) {
	db := openTestDB(t)
	importer := NewImportService(db, extract.NewExtractor(nil, false))

	batch, err := importer.ImportFolder(t.TempDir())
	if err != nil {
		t.Fatalf("ImportFolder failed: %v", err)
	}
	if batch.Total != 0 || batch.Failed != 0 {
		t.Errorf("batch = %+v, want empty", batch)
	}
}
