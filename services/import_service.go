package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/surveysavvy/surveysavvy/database"
	"github.com/surveysavvy/surveysavvy/model"
	"github.com/surveysavvy/surveysavvy/services/extract"
	"github.com/surveysavvy/surveysavvy/utils/pdfvalidation"
	"github.com/surveysavvy/surveysavvy/utils/validation"
	"gorm.io/gorm"
)

// Importer error taxonomy. Extraction and persistence failures abort one
// document only; unresolvable questions are per-row skips surfaced as counts.
var (
	ErrExtractionFailed  = errors.New("extraction failed")
	ErrPersistenceFailed = errors.New("persistence failed")
)

// ImportResult reports the outcome of one PDF import.
type ImportResult struct {
	Success          bool   `json:"success"`
	File             string `json:"file"`
	UnitCode         string `json:"unit_code,omitempty"`
	Semester         int    `json:"semester,omitempty"`
	Year             int    `json:"year,omitempty"`
	BenchmarksAdded  int    `json:"benchmarks_added"`
	ResultsAdded     int    `json:"detailed_results_added"`
	CommentsAdded    int    `json:"comments_added"`
	QuestionsSkipped int    `json:"questions_skipped"`
	Message          string `json:"message,omitempty"`
}

// BatchResult aggregates a folder import.
type BatchResult struct {
	Total      int            `json:"total"`
	Successful int            `json:"successful"`
	Failed     int            `json:"failed"`
	Details    []ImportResult `json:"details"`
}

// ImportService turns extraction records into persisted survey data. One
// transaction per PDF: a mid-document failure rolls the whole document back
// while earlier documents in the batch stay committed.
type ImportService struct {
	db        *gorm.DB
	extractor *extract.Extractor
	validator *validation.Validator

	// JSONDumpDir, when set, receives one merged-record JSON per PDF.
	JSONDumpDir string
}

// NewImportService creates an import service around a database handle and a
// configured extractor.
func NewImportService(db *gorm.DB, extractor *extract.Extractor) *ImportService {
	return &ImportService{
		db:        db,
		extractor: extractor,
		validator: validation.NewValidator(),
	}
}

// ImportFile processes a single PDF end to end: extract, validate, persist.
// Failures are returned as structured results, never panics; the batch
// driver relies on that.
func (s *ImportService) ImportFile(path string) ImportResult {
	started := time.Now()
	result := ImportResult{File: filepath.Base(path)}

	check, err := pdfvalidation.ValidateReportFile(path, pdfvalidation.ReportLimits)
	if err != nil {
		result.Message = fmt.Sprintf("%v: %v", ErrExtractionFailed, err)
		s.recordJob(uuid.NewString(), result, started)
		return result
	}
	if !check.Valid {
		result.Message = fmt.Sprintf("%v: %s", ErrExtractionFailed, check.Error)
		s.recordJob(uuid.NewString(), result, started)
		return result
	}

	record, err := s.extractor.ExtractFile(path)
	if err != nil {
		result.Message = fmt.Sprintf("%v: %v", ErrExtractionFailed, err)
		s.recordJob(uuid.NewString(), result, started)
		return result
	}

	result.UnitCode = record.UnitCode
	result.Semester = record.Semester
	result.Year = record.Year

	if err := s.validator.ValidateStruct(record); err != nil {
		result.Message = fmt.Sprintf("%v: invalid record: %s", ErrExtractionFailed, formatRecordErrors(err))
		s.recordJob(uuid.NewString(), result, started)
		return result
	}

	if s.JSONDumpDir != "" {
		if err := s.dumpJSON(path, record); err != nil {
			log.Printf("Import: failed to write JSON dump for %s: %v", result.File, err)
		}
	}

	counts, err := s.StoreRecord(record)
	if err != nil {
		result.Message = fmt.Sprintf("%v: %v", ErrPersistenceFailed, err)
		s.recordJob(uuid.NewString(), result, started)
		return result
	}

	result.Success = true
	result.BenchmarksAdded = counts.Benchmarks
	result.ResultsAdded = counts.Results
	result.CommentsAdded = counts.Comments
	result.QuestionsSkipped = counts.QuestionsSkipped
	s.recordJob(uuid.NewString(), result, started)
	return result
}

// ImportFolder processes every PDF in a directory (non-recursive). A single
// file's failure never stops the batch.
func (s *ImportService) ImportFolder(dir string) (BatchResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return BatchResult{}, fmt.Errorf("failed to read import folder: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	batch := BatchResult{Total: len(files)}
	for _, name := range files {
		result := s.ImportFile(filepath.Join(dir, name))
		if result.Success {
			batch.Successful++
		} else {
			batch.Failed++
			log.Printf("Import: %s failed: %s", name, result.Message)
		}
		batch.Details = append(batch.Details, result)
	}

	return batch, nil
}

// StoreCounts reports how many child rows one import actually added.
type StoreCounts struct {
	Benchmarks       int
	Results          int
	Comments         int
	QuestionsSkipped int
}

// StoreRecord persists a merged record inside one transaction, resolving or
// creating the entity hierarchy in strict dependency order:
// Discipline -> Unit -> UnitOffering -> SurveyEvent -> UnitSurvey, then the
// guarded child rows. Safe to retry: re-running on the same record is a
// no-op beyond the first successful import. The same contract serves the
// synthetic generator.
func (s *ImportService) StoreRecord(record *extract.Record) (StoreCounts, error) {
	var counts StoreCounts

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// 1. Discipline: insert-if-absent, never update
		discipline := model.Discipline{Code: record.DisciplineCode}
		if err := tx.Where(model.Discipline{Code: record.DisciplineCode}).
			Attrs(model.Discipline{Name: record.DisciplineName}).
			FirstOrCreate(&discipline).Error; err != nil {
			return fmt.Errorf("discipline upsert: %w", err)
		}

		// 2. Unit: insert-if-absent; a later, better name never overwrites
		unit := model.Unit{Code: record.UnitCode}
		if err := tx.Where(model.Unit{Code: record.UnitCode}).
			Attrs(model.Unit{Name: record.UnitName, DisciplineCode: record.DisciplineCode}).
			FirstOrCreate(&unit).Error; err != nil {
			return fmt.Errorf("unit upsert: %w", err)
		}

		// 3. Unit offering
		offering := model.UnitOffering{}
		if err := tx.Where(model.UnitOffering{
			UnitCode:     record.UnitCode,
			Semester:     record.Semester,
			Year:         record.Year,
			Location:     record.Location,
			Availability: record.Availability,
		}).FirstOrCreate(&offering).Error; err != nil {
			return fmt.Errorf("unit offering upsert: %w", err)
		}

		// 4. Survey event at the canonical month for the semester
		event := model.SurveyEvent{}
		if err := tx.Where(model.SurveyEvent{
			Month: model.CanonicalEventMonth(record.Semester),
			Year:  record.Year,
		}).Attrs(model.SurveyEvent{
			Description: fmt.Sprintf("Semester %d %d Survey", record.Semester, record.Year),
		}).FirstOrCreate(&event).Error; err != nil {
			return fmt.Errorf("survey event upsert: %w", err)
		}

		// 5. Unit survey: first import wins, statistics never overwritten
		survey := model.UnitSurvey{}
		if err := tx.Where(model.UnitSurvey{
			UnitOfferingID: offering.ID,
			EventID:        event.ID,
		}).Attrs(model.UnitSurvey{
			Enrolments:        record.Enrolments,
			Responses:         record.Responses,
			ResponseRate:      record.ResponseRate,
			OverallExperience: record.OverallExperience,
		}).FirstOrCreate(&survey).Error; err != nil {
			return fmt.Errorf("unit survey upsert: %w", err)
		}

		questionIDs, err := database.QuestionIDs(tx)
		if err != nil {
			return err
		}

		// 6. Benchmarks, existence-guarded per (event, question, group)
		for _, row := range record.Benchmarks {
			questionID, ok := questionIDs[row.Question]
			if !ok {
				counts.QuestionsSkipped++
				continue
			}

			var existing model.Benchmark
			err := tx.Where("event_id = ? AND question_id = ? AND group_type = ?",
				event.ID, questionID, row.GroupType).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("benchmark lookup: %w", err)
			}

			if err := tx.Create(&model.Benchmark{
				EventID:      event.ID,
				QuestionID:   questionID,
				GroupType:    row.GroupType,
				GroupName:    row.GroupName,
				PercentAgree: row.PercentAgree,
				TotalN:       row.TotalN,
			}).Error; err != nil {
				return fmt.Errorf("benchmark insert: %w", err)
			}
			counts.Benchmarks++
		}

		// 7. Detailed results: layered question matching, per-row skips
		for _, row := range record.DetailedResults {
			key, ok := model.MatchQuestionText(row.QuestionText)
			if !ok {
				log.Printf("Import: no canonical question for %q - skipping result row", row.QuestionText)
				counts.QuestionsSkipped++
				continue
			}
			questionID := questionIDs[key]

			var existing model.UnitSurveyResult
			err := tx.Where("survey_id = ? AND question_id = ?", survey.ID, questionID).
				First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("result lookup: %w", err)
			}

			if err := tx.Create(&model.UnitSurveyResult{
				SurveyID:         survey.ID,
				QuestionID:       questionID,
				StronglyDisagree: row.StronglyDisagree,
				Disagree:         row.Disagree,
				Neutral:          row.Neutral,
				Agree:            row.Agree,
				StronglyAgree:    row.StronglyAgree,
				UnableToJudge:    row.UnableToJudge,
				PercentAgree:     row.PercentAgree,
			}).Error; err != nil {
				return fmt.Errorf("result insert: %w", err)
			}
			counts.Results++
		}

		// 8. Comments, deduplicated on their first 50 characters
		for _, comment := range record.Comments {
			var existing model.Comment
			err := tx.Where("survey_id = ? AND comment_text LIKE ? ESCAPE '\\'",
				survey.ID, commentDedupPattern(comment.Text)).
				First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("comment lookup: %w", err)
			}

			if err := tx.Create(&model.Comment{
				SurveyID:       survey.ID,
				Text:           comment.Text,
				SentimentScore: comment.SentimentScore,
			}).Error; err != nil {
				return fmt.Errorf("comment insert: %w", err)
			}
			counts.Comments++
		}

		return nil
	})

	if err != nil {
		return StoreCounts{}, err
	}
	return counts, nil
}

// commentDedupPattern builds the LIKE pattern matching any comment sharing
// the text's first 50 bytes. The cut never splits a UTF-8 rune, and LIKE
// metacharacters in the prefix are escaped so they match literally.
func commentDedupPattern(text string) string {
	prefix := text
	if len(prefix) > 50 {
		cut := 50
		for cut > 0 && !utf8.RuneStart(prefix[cut]) {
			cut--
		}
		prefix = prefix[:cut]
	}

	var pattern strings.Builder
	for _, r := range prefix {
		switch r {
		case '\\', '%', '_':
			pattern.WriteByte('\\')
		}
		pattern.WriteRune(r)
	}
	pattern.WriteByte('%')
	return pattern.String()
}

// formatRecordErrors flattens field-level validation failures into one
// stable line for the audit row and batch summary.
func formatRecordErrors(err error) string {
	fields := validation.FormatValidationErrors(err)
	if len(fields) == 0 {
		return err.Error()
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fields[key])
	}
	return strings.Join(parts, "; ")
}

// recordJob writes the audit row for one processed file. Kept outside the
// per-document transaction so failed imports are recorded too.
func (s *ImportService) recordJob(runID string, result ImportResult, started time.Time) {
	status := model.ImportStatusCompleted
	if !result.Success {
		status = model.ImportStatusFailed
	}

	job := model.ImportJob{
		RunID:            runID,
		SourceFile:       result.File,
		Status:           status,
		UnitCode:         result.UnitCode,
		Semester:         result.Semester,
		Year:             result.Year,
		BenchmarksAdded:  result.BenchmarksAdded,
		ResultsAdded:     result.ResultsAdded,
		CommentsAdded:    result.CommentsAdded,
		QuestionsSkipped: result.QuestionsSkipped,
		Message:          result.Message,
		StartedAt:        started,
		FinishedAt:       time.Now(),
	}

	if err := s.db.Create(&job).Error; err != nil {
		log.Printf("Import: failed to record import job for %s: %v", result.File, err)
	}
}

func (s *ImportService) dumpJSON(pdfPath string, record *extract.Record) error {
	if err := os.MkdirAll(s.JSONDumpDir, 0o755); err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	out := filepath.Join(s.JSONDumpDir, base+".json")

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(out, data, 0o644)
}
