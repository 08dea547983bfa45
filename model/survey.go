package model

// Discipline represents a 4-letter academic discipline (e.g., ISYS, COMP)
type Discipline struct {
	Code string `gorm:"column:discipline_code;primaryKey;type:varchar(4)" json:"discipline_code"`
	Name string `gorm:"column:discipline_name;not null" json:"discipline_name"`

	// Relationships
	Units []Unit `gorm:"foreignKey:DisciplineCode;references:Code" json:"units,omitempty"`
}

func (Discipline) TableName() string { return "discipline" }

// Unit represents a teaching unit (e.g., ISYS2001)
type Unit struct {
	Code           string `gorm:"column:unit_code;primaryKey;type:varchar(10)" json:"unit_code"`
	Name           string `gorm:"column:unit_name;not null" json:"unit_name"`
	DisciplineCode string `gorm:"column:discipline_code;not null;index" json:"discipline_code"`

	// Relationships
	Discipline Discipline     `gorm:"foreignKey:DisciplineCode;references:Code" json:"discipline,omitempty"`
	Offerings  []UnitOffering `gorm:"foreignKey:UnitCode;references:Code" json:"offerings,omitempty"`
}

func (Unit) TableName() string { return "unit" }

// UnitOffering represents one run of a unit in a given term at a given
// campus and mode. The same unit can run at several campuses per term.
type UnitOffering struct {
	ID           uint   `gorm:"column:unit_offering_id;primaryKey" json:"unit_offering_id"`
	UnitCode     string `gorm:"column:unit_code;not null;uniqueIndex:idx_offering_identity" json:"unit_code"`
	Semester     int    `gorm:"column:semester;not null;uniqueIndex:idx_offering_identity" json:"semester"`
	Year         int    `gorm:"column:year;not null;uniqueIndex:idx_offering_identity" json:"year"`
	Location     string `gorm:"column:location;not null;uniqueIndex:idx_offering_identity" json:"location"`
	Availability string `gorm:"column:availability;not null;uniqueIndex:idx_offering_identity" json:"availability"`

	// Relationships
	Unit    Unit         `gorm:"foreignKey:UnitCode;references:Code" json:"unit,omitempty"`
	Surveys []UnitSurvey `gorm:"foreignKey:UnitOfferingID" json:"surveys,omitempty"`
}

func (UnitOffering) TableName() string { return "unit_offering" }

// SurveyEvent represents the term-wide survey round that individual unit
// surveys and benchmarks are scoped to. One event per (year, canonical
// month): month 5 for semester 1, month 10 for semester 2.
type SurveyEvent struct {
	ID          uint   `gorm:"column:event_id;primaryKey" json:"event_id"`
	Month       int    `gorm:"column:month;not null;uniqueIndex:idx_event_term" json:"month"`
	Year        int    `gorm:"column:year;not null;uniqueIndex:idx_event_term" json:"year"`
	Description string `gorm:"column:description" json:"description"`

	// Relationships
	Surveys    []UnitSurvey `gorm:"foreignKey:EventID" json:"surveys,omitempty"`
	Benchmarks []Benchmark  `gorm:"foreignKey:EventID" json:"benchmarks,omitempty"`
}

func (SurveyEvent) TableName() string { return "survey_event" }

// CanonicalEventMonth maps a semester number to the month its survey event
// is anchored at: May for semester 1, October for everything later.
func CanonicalEventMonth(semester int) int {
	if semester == 1 {
		return 5
	}
	return 10
}

// Question is one of the six canonical survey questions. The catalog is
// seeded once at schema creation and never grows during import.
type Question struct {
	ID   uint   `gorm:"column:question_id;primaryKey" json:"question_id"`
	Text string `gorm:"column:question_text;uniqueIndex;not null" json:"question_text"`
}

func (Question) TableName() string { return "question" }

// UnitSurvey holds the headline numbers for one offering in one event.
type UnitSurvey struct {
	ID                uint    `gorm:"column:survey_id;primaryKey" json:"survey_id"`
	UnitOfferingID    uint    `gorm:"column:unit_offering_id;not null;uniqueIndex:idx_survey_identity" json:"unit_offering_id"`
	EventID           uint    `gorm:"column:event_id;not null;uniqueIndex:idx_survey_identity" json:"event_id"`
	Enrolments        int     `gorm:"column:enrolments;not null" json:"enrolments"`
	Responses         int     `gorm:"column:responses;not null" json:"responses"`
	ResponseRate      float64 `gorm:"column:response_rate;not null" json:"response_rate"`
	OverallExperience float64 `gorm:"column:overall_experience;not null" json:"overall_experience"`

	// Relationships
	Offering UnitOffering       `gorm:"foreignKey:UnitOfferingID" json:"offering,omitempty"`
	Event    SurveyEvent        `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Results  []UnitSurveyResult `gorm:"foreignKey:SurveyID" json:"results,omitempty"`
	Comments []Comment          `gorm:"foreignKey:SurveyID" json:"comments,omitempty"`
}

func (UnitSurvey) TableName() string { return "unit_survey" }

// UnitSurveyResult is the per-question response distribution for a survey.
type UnitSurveyResult struct {
	ID               uint    `gorm:"column:result_id;primaryKey" json:"result_id"`
	SurveyID         uint    `gorm:"column:survey_id;not null;uniqueIndex:idx_result_identity" json:"survey_id"`
	QuestionID       uint    `gorm:"column:question_id;not null;uniqueIndex:idx_result_identity" json:"question_id"`
	StronglyDisagree int     `gorm:"column:strongly_disagree;not null" json:"strongly_disagree"`
	Disagree         int     `gorm:"column:disagree;not null" json:"disagree"`
	Neutral          int     `gorm:"column:neutral;not null" json:"neutral"`
	Agree            int     `gorm:"column:agree;not null" json:"agree"`
	StronglyAgree    int     `gorm:"column:strongly_agree;not null" json:"strongly_agree"`
	UnableToJudge    int     `gorm:"column:unable_to_judge;not null" json:"unable_to_judge"`
	PercentAgree     float64 `gorm:"column:percent_agree;not null" json:"percent_agree"`

	// Relationships
	Survey   UnitSurvey `gorm:"foreignKey:SurveyID" json:"-"`
	Question Question   `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
}

func (UnitSurveyResult) TableName() string { return "unit_survey_result" }

// BenchmarkGroup is the closed set of aggregation levels a benchmark row
// can belong to.
type BenchmarkGroup string

const (
	GroupUnit       BenchmarkGroup = "Unit"
	GroupSchool     BenchmarkGroup = "School"
	GroupFaculty    BenchmarkGroup = "Faculty"
	GroupUniversity BenchmarkGroup = "University"
	GroupOverall    BenchmarkGroup = "Overall"
)

// Benchmark is a comparison percentage-agreement figure at one aggregation
// level for one question in one survey event. Benchmarks hang off the event,
// not the individual survey, because school/faculty/university comparisons
// are shared by every unit surveyed in the same term.
type Benchmark struct {
	ID           uint           `gorm:"column:benchmark_id;primaryKey" json:"benchmark_id"`
	EventID      uint           `gorm:"column:event_id;not null;uniqueIndex:idx_benchmark_identity" json:"event_id"`
	QuestionID   uint           `gorm:"column:question_id;not null;uniqueIndex:idx_benchmark_identity" json:"question_id"`
	GroupType    BenchmarkGroup `gorm:"column:group_type;not null;uniqueIndex:idx_benchmark_identity;type:varchar(20)" json:"group_type"`
	GroupName    string         `gorm:"column:group_name;not null" json:"group_name"`
	PercentAgree float64        `gorm:"column:percent_agree;not null" json:"percent_agree"`
	TotalN       int            `gorm:"column:total_n;not null" json:"total_n"`

	// Relationships
	Event    SurveyEvent `gorm:"foreignKey:EventID" json:"-"`
	Question Question    `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
}

func (Benchmark) TableName() string { return "benchmark" }

// Comment is one free-text student comment with its estimated sentiment.
type Comment struct {
	ID             uint    `gorm:"column:comment_id;primaryKey" json:"comment_id"`
	SurveyID       uint    `gorm:"column:survey_id;not null;index" json:"survey_id"`
	Text           string  `gorm:"column:comment_text;type:text;not null" json:"comment_text"`
	SentimentScore float64 `gorm:"column:sentiment_score;not null" json:"sentiment_score"`

	// Relationships
	Survey UnitSurvey `gorm:"foreignKey:SurveyID" json:"-"`
}

func (Comment) TableName() string { return "comment" }

// AllTables lists every persisted model in dependency order. Used by
// AutoMigrate and the exporter.
func AllTables() []interface{} {
	return []interface{}{
		&Discipline{},
		&Unit{},
		&UnitOffering{},
		&SurveyEvent{},
		&Question{},
		&UnitSurvey{},
		&UnitSurveyResult{},
		&Benchmark{},
		&Comment{},
		&ImportJob{},
	}
}
