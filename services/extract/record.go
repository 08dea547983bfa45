package extract

import "github.com/surveysavvy/surveysavvy/model"

// Confidence is a rough hint attached to recognizer output: High when the
// primary pattern matched, Low when a fallback strategy had to be used.
type Confidence int

const (
	ConfidenceNone Confidence = iota
	ConfidenceLow
	ConfidenceHigh
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceLow:
		return "low"
	}
	return "none"
}

// UnitIdentity is the unit code and name recovered from the identity page.
type UnitIdentity struct {
	Code string `json:"unit_code"`
	Name string `json:"unit_name"`
}

// CampusMode is the campus location and delivery mode.
type CampusMode struct {
	Location string `json:"location"`
	Mode     string `json:"mode"`
}

// TermYear is the survey term. A record without a resolvable term is
// unusable and gets rejected by the orchestrator.
type TermYear struct {
	Semester int `json:"semester"`
	Year     int `json:"year"`
}

// ResponseStats is the enrolment / response headline triple.
type ResponseStats struct {
	Enrolments   int     `json:"enrolments"`
	Responses    int     `json:"responses"`
	ResponseRate float64 `json:"response_rate"`
}

// BenchmarkRow is one (level, question) benchmark figure.
type BenchmarkRow struct {
	GroupType     model.BenchmarkGroup `json:"group_type"`
	GroupName     string               `json:"group_name"`
	Question      model.QuestionKey    `json:"-"`
	QuestionLabel string               `json:"question_label"`
	PercentAgree  float64              `json:"percent_agree"`
	TotalN        int                  `json:"total_n"`
}

// QuestionResult is the per-question response distribution from the detail
// pages. Question text is kept raw; the persistence layer resolves it onto
// the canonical catalog.
type QuestionResult struct {
	QuestionText     string  `json:"question_text"`
	StronglyDisagree int     `json:"strongly_disagree"`
	Disagree         int     `json:"disagree"`
	Neutral          int     `json:"neutral"`
	Agree            int     `json:"agree"`
	StronglyAgree    int     `json:"strongly_agree"`
	UnableToJudge    int     `json:"unable_to_judge"`
	PercentAgree     float64 `json:"percent_agree"`
}

// CommentEntry is one student comment plus its estimated sentiment.
type CommentEntry struct {
	Text           string  `json:"comment_text"`
	SentimentScore float64 `json:"sentiment_score"`
}

// Record is the fully-merged extraction result for one PDF, shaped for
// direct persistence. It is also the JSON mirror written by -json dumps.
type Record struct {
	UnitCode       string `json:"unit_code" validate:"required"`
	UnitName       string `json:"unit_name" validate:"required"`
	DisciplineCode string `json:"discipline_code" validate:"required,len=4"`
	DisciplineName string `json:"discipline_name" validate:"required"`
	Semester       int    `json:"semester" validate:"required,min=1,max=3"`
	Year           int    `json:"year" validate:"required,min=1900,max=2100"`
	Location       string `json:"location" validate:"required"`
	Availability   string `json:"availability" validate:"required"`

	Enrolments        int     `json:"enrolments" validate:"min=0"`
	Responses         int     `json:"responses" validate:"min=0"`
	ResponseRate      float64 `json:"response_rate" validate:"min=0,max=100"`
	OverallExperience float64 `json:"overall_experience" validate:"min=0,max=100"`

	Benchmarks      []BenchmarkRow   `json:"benchmarks"`
	DetailedResults []QuestionResult `json:"detailed_results"`
	Comments        []CommentEntry   `json:"comments"`

	// Sections that degraded to empty/zero because no recognizer matched.
	MissingSections []string `json:"missing_sections,omitempty"`
}
