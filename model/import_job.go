package model

import "time"

// ImportJobStatus represents the outcome of one PDF import
type ImportJobStatus string

const (
	ImportStatusCompleted ImportJobStatus = "completed"
	ImportStatusFailed    ImportJobStatus = "failed"
)

// ImportJob is the audit record for one processed PDF file. One row per
// attempt; re-importing the same file writes a new row but, thanks to the
// importer's idempotence, adds no new survey data.
type ImportJob struct {
	ID         uint            `gorm:"column:import_job_id;primaryKey" json:"import_job_id"`
	RunID      string          `gorm:"column:run_id;type:varchar(36);not null;index" json:"run_id"`
	SourceFile string          `gorm:"column:source_file;not null" json:"source_file"`
	Status     ImportJobStatus `gorm:"column:status;type:varchar(20);not null" json:"status"`
	UnitCode   string          `gorm:"column:unit_code" json:"unit_code,omitempty"`
	Semester   int             `gorm:"column:semester" json:"semester,omitempty"`
	Year       int             `gorm:"column:year" json:"year,omitempty"`

	// Per-section counts
	BenchmarksAdded  int `gorm:"column:benchmarks_added" json:"benchmarks_added"`
	ResultsAdded     int `gorm:"column:results_added" json:"results_added"`
	CommentsAdded    int `gorm:"column:comments_added" json:"comments_added"`
	QuestionsSkipped int `gorm:"column:questions_skipped" json:"questions_skipped"`

	// Error tracking
	Message string `gorm:"column:message" json:"message,omitempty"`

	StartedAt  time.Time `gorm:"column:started_at" json:"started_at"`
	FinishedAt time.Time `gorm:"column:finished_at" json:"finished_at"`
}

func (ImportJob) TableName() string { return "import_job" }
