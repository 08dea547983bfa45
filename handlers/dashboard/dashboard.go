package dashboard

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/surveysavvy/surveysavvy/model"
	"github.com/surveysavvy/surveysavvy/utils/response"
	"github.com/surveysavvy/surveysavvy/utils/validation"
	"gorm.io/gorm"
)

// DashboardHandler serves read-only aggregate views over the survey data.
type DashboardHandler struct {
	db *gorm.DB
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// UnitExperience is one unit's average overall-experience figure.
type UnitExperience struct {
	UnitCode      string  `json:"unit_code"`
	UnitName      string  `json:"unit_name"`
	AvgExperience float64 `json:"avg_experience"`
	SurveyCount   int     `json:"survey_count"`
}

// UnitResponseRate is one unit's average response rate.
type UnitResponseRate struct {
	UnitCode        string  `json:"unit_code"`
	AvgResponseRate float64 `json:"avg_response_rate"`
}

// RecentSurvey is one row of the recent-surveys table.
type RecentSurvey struct {
	UnitCode          string  `json:"unit_code"`
	Semester          int     `json:"semester"`
	Year              int     `json:"year"`
	Responses         int     `json:"responses"`
	OverallExperience float64 `json:"overall_experience"`
}

// OverviewResponse is the dashboard landing payload.
type OverviewResponse struct {
	Disciplines   int64              `json:"disciplines"`
	Units         int64              `json:"units"`
	Surveys       int64              `json:"surveys"`
	Comments      int64              `json:"comments"`
	TopUnits      []UnitExperience   `json:"top_units"`
	BottomUnits   []UnitExperience   `json:"bottom_units"`
	ResponseRates []UnitResponseRate `json:"response_rates"`
	RecentSurveys []RecentSurvey     `json:"recent_surveys"`
}

// GetOverview handles GET /api/v1/overview
func (h *DashboardHandler) GetOverview(c *fiber.Ctx) error {
	var overview OverviewResponse

	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&model.Discipline{}, &overview.Disciplines},
		{&model.Unit{}, &overview.Units},
		{&model.UnitSurvey{}, &overview.Surveys},
		{&model.Comment{}, &overview.Comments},
	}
	for _, count := range counts {
		if err := h.db.Model(count.model).Count(count.dest).Error; err != nil {
			return response.InternalServerError(c, "Failed to count records")
		}
	}

	experienceQuery := `
		SELECT u.unit_code, u.unit_name,
		       AVG(us.overall_experience) AS avg_experience,
		       COUNT(us.survey_id) AS survey_count
		FROM unit_survey us
		JOIN unit_offering uo ON us.unit_offering_id = uo.unit_offering_id
		JOIN unit u ON uo.unit_code = u.unit_code
		GROUP BY u.unit_code, u.unit_name
		ORDER BY avg_experience `

	if err := h.db.Raw(experienceQuery + "DESC LIMIT 10").Scan(&overview.TopUnits).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch top units")
	}
	if err := h.db.Raw(experienceQuery + "ASC LIMIT 10").Scan(&overview.BottomUnits).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch bottom units")
	}

	if err := h.db.Raw(`
		SELECT u.unit_code, AVG(us.response_rate) AS avg_response_rate
		FROM unit_survey us
		JOIN unit_offering uo ON us.unit_offering_id = uo.unit_offering_id
		JOIN unit u ON uo.unit_code = u.unit_code
		GROUP BY u.unit_code
		ORDER BY avg_response_rate DESC
		LIMIT 10`).Scan(&overview.ResponseRates).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch response rates")
	}

	if err := h.db.Raw(`
		SELECT u.unit_code, uo.semester, uo.year, us.responses, us.overall_experience
		FROM unit_survey us
		JOIN unit_offering uo ON us.unit_offering_id = uo.unit_offering_id
		JOIN unit u ON uo.unit_code = u.unit_code
		ORDER BY uo.year DESC, uo.semester DESC
		LIMIT 20`).Scan(&overview.RecentSurveys).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch recent surveys")
	}

	return response.Success(c, overview)
}

// ListUnits handles GET /api/v1/units
func (h *DashboardHandler) ListUnits(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	search := validation.SanitizeString(c.Query("search", ""))
	discipline := c.Query("discipline", "")

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := h.db.Model(&model.Unit{})

	if search != "" {
		like := "%" + search + "%"
		query = query.Where("unit_code LIKE ? OR unit_name LIKE ?", like, like)
	}
	if discipline != "" {
		query = query.Where("discipline_code = ?", strings.ToUpper(discipline))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count units")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var units []model.Unit
	if err := query.Order("unit_code").
		Limit(limit).
		Offset(offset).
		Find(&units).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch units")
	}

	return response.Paginated(c, units, pagination)
}

// SurveyHistoryRow is one term's survey for a unit, newest first.
type SurveyHistoryRow struct {
	Semester          int     `json:"semester"`
	Year              int     `json:"year"`
	Location          string  `json:"location"`
	Enrolments        int     `json:"enrolments"`
	Responses         int     `json:"responses"`
	ResponseRate      float64 `json:"response_rate"`
	OverallExperience float64 `json:"overall_experience"`
}

// BenchmarkRow is an averaged benchmark figure per question and group.
type BenchmarkRow struct {
	QuestionText string  `json:"question_text"`
	GroupType    string  `json:"group_type"`
	PercentAgree float64 `json:"percent_agree"`
}

// UnitDetailResponse is the unit drill-down payload.
type UnitDetailResponse struct {
	UnitCode       string             `json:"unit_code"`
	UnitName       string             `json:"unit_name"`
	DisciplineName string             `json:"discipline_name"`
	Surveys        []SurveyHistoryRow `json:"surveys"`
	Benchmarks     []BenchmarkRow     `json:"benchmarks"`
}

// GetUnit handles GET /api/v1/units/:code
func (h *DashboardHandler) GetUnit(c *fiber.Ctx) error {
	code := strings.ToUpper(c.Params("code"))
	if !validation.ValidateUnitCode(code) {
		return response.BadRequest(c, "Invalid unit code")
	}

	var detail UnitDetailResponse
	err := h.db.Raw(`
		SELECT u.unit_code, u.unit_name, d.discipline_name
		FROM unit u
		JOIN discipline d ON u.discipline_code = d.discipline_code
		WHERE u.unit_code = ?`, code).Scan(&detail).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch unit")
	}
	if detail.UnitCode == "" {
		return response.NotFound(c, "Unit not found")
	}

	if err := h.db.Raw(`
		SELECT uo.semester, uo.year, uo.location, us.enrolments, us.responses,
		       us.response_rate, us.overall_experience
		FROM unit_survey us
		JOIN unit_offering uo ON us.unit_offering_id = uo.unit_offering_id
		WHERE uo.unit_code = ?
		ORDER BY uo.year DESC, uo.semester DESC`, code).
		Scan(&detail.Surveys).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch survey history")
	}

	if err := h.db.Raw(`
		SELECT q.question_text, b.group_type, AVG(b.percent_agree) AS percent_agree
		FROM benchmark b
		JOIN survey_event se ON b.event_id = se.event_id
		JOIN question q ON b.question_id = q.question_id
		JOIN unit_survey us ON us.event_id = se.event_id
		JOIN unit_offering uo ON us.unit_offering_id = uo.unit_offering_id
		WHERE uo.unit_code = ?
		GROUP BY q.question_text, b.group_type`, code).
		Scan(&detail.Benchmarks).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch benchmarks")
	}

	return response.Success(c, detail)
}

// SentimentBucket counts comments whose score falls in one band.
type SentimentBucket struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// GetSentiment handles GET /api/v1/sentiment. Scores live in [-1, 1] with
// 0.0 meaning neutral; the upper bound is open past 1 so a perfect 1.0
// lands in the top band.
func (h *DashboardHandler) GetSentiment(c *fiber.Ctx) error {
	bands := []struct {
		label    string
		min, max float64
	}{
		{"very_negative", -1.0, -0.6},
		{"negative", -0.6, -0.2},
		{"neutral", -0.2, 0.2},
		{"positive", 0.2, 0.6},
		{"very_positive", 0.6, 1.01},
	}

	buckets := make([]SentimentBucket, 0, len(bands))
	for _, band := range bands {
		var count int64
		if err := h.db.Model(&model.Comment{}).
			Where("sentiment_score >= ? AND sentiment_score < ?", band.min, band.max).
			Count(&count).Error; err != nil {
			return response.InternalServerError(c, "Failed to count comments")
		}
		buckets = append(buckets, SentimentBucket{Label: band.label, Count: count})
	}

	return response.Success(c, buckets)
}

// ListImports handles GET /api/v1/imports
func (h *DashboardHandler) ListImports(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := h.db.Model(&model.ImportJob{})
	if status := c.Query("status", ""); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count import jobs")
	}

	offset := (page - 1) * limit
	pagination := response.CalculatePagination(page, limit, total)

	var jobs []model.ImportJob
	if err := query.Order("started_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&jobs).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch import jobs")
	}

	return response.Paginated(c, jobs, pagination)
}
