package services

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/surveysavvy/surveysavvy/database"
	"github.com/surveysavvy/surveysavvy/model"
	"gorm.io/gorm"
)

// sentimentCategory buckets a unit's term into one of five moods that drive
// its response distributions and comments.
type sentimentCategory string

const (
	sentimentVeryPositive sentimentCategory = "very_positive"
	sentimentPositive     sentimentCategory = "positive"
	sentimentNeutral      sentimentCategory = "neutral"
	sentimentNegative     sentimentCategory = "negative"
	sentimentVeryNegative sentimentCategory = "very_negative"
)

// countRange is an inclusive [Min, Max] sampling range.
type countRange struct {
	Min, Max int
}

// responseTemplate gives per-answer sampling ranges for one sentiment.
type responseTemplate struct {
	StronglyAgree    countRange
	Agree            countRange
	Neutral          countRange
	Disagree         countRange
	StronglyDisagree countRange
	UnableToJudge    countRange
}

var responseTemplates = map[sentimentCategory]responseTemplate{
	sentimentVeryPositive: {
		StronglyAgree:    countRange{50, 70},
		Agree:            countRange{20, 35},
		Neutral:          countRange{5, 15},
		Disagree:         countRange{0, 5},
		StronglyDisagree: countRange{0, 3},
		UnableToJudge:    countRange{0, 2},
	},
	sentimentPositive: {
		StronglyAgree:    countRange{25, 40},
		Agree:            countRange{35, 50},
		Neutral:          countRange{10, 20},
		Disagree:         countRange{3, 10},
		StronglyDisagree: countRange{0, 5},
		UnableToJudge:    countRange{0, 3},
	},
	sentimentNeutral: {
		StronglyAgree:    countRange{10, 25},
		Agree:            countRange{25, 40},
		Neutral:          countRange{20, 40},
		Disagree:         countRange{10, 25},
		StronglyDisagree: countRange{5, 15},
		UnableToJudge:    countRange{0, 5},
	},
	sentimentNegative: {
		StronglyAgree:    countRange{0, 10},
		Agree:            countRange{10, 25},
		Neutral:          countRange{15, 30},
		Disagree:         countRange{30, 45},
		StronglyDisagree: countRange{15, 30},
		UnableToJudge:    countRange{0, 5},
	},
	sentimentVeryNegative: {
		StronglyAgree:    countRange{0, 5},
		Agree:            countRange{5, 15},
		Neutral:          countRange{10, 20},
		Disagree:         countRange{25, 40},
		StronglyDisagree: countRange{30, 50},
		UnableToJudge:    countRange{0, 5},
	},
}

// Score anchors on the [-1, 1] sentiment scale, 0.0 neutral. The per-comment
// jitter stays within the anchor's band.
var sentimentScores = map[sentimentCategory]float64{
	sentimentVeryPositive: 0.8,
	sentimentPositive:     0.4,
	sentimentNeutral:      0.0,
	sentimentNegative:     -0.4,
	sentimentVeryNegative: -0.8,
}

// Unit name templates. ISYS and COMP get hand-picked names; everything else
// falls back to the generic templates with the discipline name filled in.
var unitTemplates = map[string][]string{
	"ISYS": {
		"Introduction to %s",
		"Advanced %s",
		"Business Information Systems",
		"Database Design and Implementation",
		"Systems Analysis and Design",
		"Knowledge Management Systems",
		"Enterprise Systems",
		"Business Intelligence",
		"Information Security",
		"Project Management",
	},
	"COMP": {
		"Introduction to Programming",
		"Data Structures and Algorithms",
		"Operating Systems",
		"Computer Networks",
		"Artificial Intelligence",
		"Machine Learning",
		"Computer Graphics",
		"Software Engineering",
		"Web Development",
		"Mobile Application Development",
	},
}

var defaultUnitTemplates = []string{
	"Introduction to %s",
	"Advanced %s",
	"Principles of %s",
	"Applied %s",
	"%s Theory",
	"%s Practice",
	"Contemporary Issues in %s",
	"Research Methods in %s",
	"%s Strategy",
	"%s Management",
}

var commentTemplates = map[sentimentCategory][]string{
	sentimentVeryPositive: {
		"This unit was excellent! %[1]s",
		"I really enjoyed this unit. %[1]s",
		"One of the best units I've taken. %[1]s",
		"%[1]s Overall an outstanding experience.",
		"The %[4]s was fantastic. %[1]s",
	},
	sentimentPositive: {
		"Good unit overall. %[1]s",
		"I liked the %[4]s. %[2]s",
		"%[1]s Would recommend this unit.",
		"The content was interesting and %[1]s",
		"Generally well-organized unit. %[2]s",
	},
	sentimentNeutral: {
		"This unit was okay. %[2]s",
		"Some aspects were good, but %[3]s",
		"%[1]s However, %[3]s",
		"The %[4]s could be improved. %[2]s",
		"Mixed feelings about this unit. %[2]s",
	},
	sentimentNegative: {
		"I struggled with this unit. %[3]s",
		"The %[4]s was disappointing. %[3]s",
		"%[3]s Needs improvement.",
		"Not a great experience. %[3]s",
		"This unit was challenging for the wrong reasons. %[3]s",
	},
	sentimentVeryNegative: {
		"This unit was terrible. %[3]s",
		"Very disappointed with the %[4]s. %[3]s",
		"%[3]s Would not recommend.",
		"The %[4]s was extremely poor. %[3]s",
		"One of the worst units I've taken. %[3]s",
	},
}

var (
	positivePhrases = []string{
		"The instructor was very helpful.",
		"The content was well organized.",
		"Assessments were fair and relevant.",
		"The tutorials were engaging.",
		"Materials were clear and useful.",
		"Concepts were explained well.",
	}
	neutralPhrases = []string{
		"The workload was manageable.",
		"Most of the content was relevant.",
		"The pace was reasonable.",
		"Assignments were as expected.",
		"The structure made sense.",
		"The textbook was adequate.",
	}
	negativePhrases = []string{
		"The instructions were unclear.",
		"The workload was too heavy.",
		"Feedback was often delayed.",
		"Lectures were hard to follow.",
		"The assessment criteria were confusing.",
		"The content felt outdated.",
	}
	courseAspects = []string{
		"lectures", "tutorials", "assignments", "instructor",
		"course structure", "learning resources", "assessments",
	}
	campusLocations = []string{"Bentley Campus", "City Campus", "Online"}
	availabilities  = []string{"Internal", "External", "Online"}
)

// GeneratorService populates a database with plausible synthetic survey
// data: units across disciplines, offerings, events, per-question response
// distributions, benchmarks and templated comments. Everything is driven by
// one seeded RNG so a given seed reproduces the same dataset.
type GeneratorService struct {
	db  *gorm.DB
	rng *rand.Rand

	// sentiment trajectory per unit, so a unit's mood drifts rather than
	// jumping randomly term to term
	history map[string][]sentimentCategory
}

// NewGeneratorService creates a generator around a database handle with a
// deterministic seed.
func NewGeneratorService(db *gorm.DB, seed int64) *GeneratorService {
	return &GeneratorService{
		db:      db,
		rng:     rand.New(rand.NewSource(seed)),
		history: make(map[string][]sentimentCategory),
	}
}

// Generate builds the full synthetic dataset: unitCount units surveyed each
// semester between startYear and endYear inclusive.
func (g *GeneratorService) Generate(unitCount, startYear, endYear int) error {
	if err := g.PopulateDisciplines(); err != nil {
		return err
	}
	if err := g.PopulateUnits(unitCount); err != nil {
		return err
	}
	if err := g.generateOfferings(startYear, endYear); err != nil {
		return err
	}
	if err := g.generateEvents(startYear, endYear); err != nil {
		return err
	}
	return g.generateSurveys()
}

// PopulateDisciplines inserts the discipline catalog, skipping existing rows.
func (g *GeneratorService) PopulateDisciplines() error {
	for code, name := range model.DefaultDisciplineNames() {
		discipline := model.Discipline{Code: code}
		if err := g.db.Where(model.Discipline{Code: code}).
			Attrs(model.Discipline{Name: name}).
			FirstOrCreate(&discipline).Error; err != nil {
			return fmt.Errorf("discipline insert: %w", err)
		}
	}
	return nil
}

// PopulateUnits generates count units spread evenly across disciplines.
func (g *GeneratorService) PopulateUnits(count int) error {
	disciplines := model.DefaultDisciplineNames()
	codes := model.SortedDisciplineCodes(disciplines)

	// round-robin over disciplines keeps the spread even
	perDiscipline := make(map[string]int, len(codes))

	for i := 0; i < count; i++ {
		code := codes[0]
		for _, c := range codes {
			if perDiscipline[c] < perDiscipline[code] {
				code = c
			}
		}
		perDiscipline[code]++

		// 70% undergraduate (levels 1-3), 30% postgraduate (5-6)
		var level int
		if g.rng.Float64() < 0.7 {
			level = 1 + g.rng.Intn(3)
		} else {
			level = 5 + g.rng.Intn(2)
		}

		unitCode := fmt.Sprintf("%s%d%02d", code, level, 1+g.rng.Intn(99))
		unitName := g.unitName(code, disciplines[code], level)

		unit := model.Unit{Code: unitCode}
		if err := g.db.Where(model.Unit{Code: unitCode}).
			Attrs(model.Unit{Name: unitName, DisciplineCode: code}).
			FirstOrCreate(&unit).Error; err != nil {
			return fmt.Errorf("unit insert: %w", err)
		}
	}
	return nil
}

func (g *GeneratorService) unitName(disciplineCode, disciplineName string, level int) string {
	templates, ok := unitTemplates[disciplineCode]
	if !ok {
		templates = defaultUnitTemplates
	}

	template := templates[g.rng.Intn(len(templates))]
	name := fmt.Sprintf(template, disciplineName)

	if g.rng.Float64() < 0.5 {
		if level <= 3 {
			name = fmt.Sprintf("%s %d", name, level)
		} else {
			name += " (PG)"
		}
	}
	return name
}

// generateOfferings runs each unit in 70-90% of the possible semesters.
func (g *GeneratorService) generateOfferings(startYear, endYear int) error {
	var units []model.Unit
	if err := g.db.Find(&units).Error; err != nil {
		return fmt.Errorf("load units: %w", err)
	}

	for _, unit := range units {
		offeringRate := 0.7 + g.rng.Float64()*0.2

		for year := startYear; year <= endYear; year++ {
			for semester := 1; semester <= 2; semester++ {
				if g.rng.Float64() >= offeringRate {
					continue
				}

				offering := model.UnitOffering{}
				if err := g.db.Where(model.UnitOffering{
					UnitCode:     unit.Code,
					Semester:     semester,
					Year:         year,
					Location:     campusLocations[g.rng.Intn(len(campusLocations))],
					Availability: availabilities[g.rng.Intn(len(availabilities))],
				}).FirstOrCreate(&offering).Error; err != nil {
					return fmt.Errorf("offering insert: %w", err)
				}
			}
		}
	}
	return nil
}

func (g *GeneratorService) generateEvents(startYear, endYear int) error {
	for year := startYear; year <= endYear; year++ {
		for semester := 1; semester <= 2; semester++ {
			event := model.SurveyEvent{}
			if err := g.db.Where(model.SurveyEvent{
				Month: model.CanonicalEventMonth(semester),
				Year:  year,
			}).Attrs(model.SurveyEvent{
				Description: fmt.Sprintf("Semester %d %d Survey", semester, year),
			}).FirstOrCreate(&event).Error; err != nil {
				return fmt.Errorf("event insert: %w", err)
			}
		}
	}
	return nil
}

// questionCounts is one sampled response distribution.
type questionCounts struct {
	StronglyDisagree int
	Disagree         int
	Neutral          int
	Agree            int
	StronglyAgree    int
	UnableToJudge    int
	PercentAgree     float64
	Total            int
}

func (g *GeneratorService) generateSurveys() error {
	questionIDs, err := database.QuestionIDs(g.db)
	if err != nil {
		return err
	}

	var offerings []model.UnitOffering
	if err := g.db.Preload("Unit").Order("year, semester, unit_code").Find(&offerings).Error; err != nil {
		return fmt.Errorf("load offerings: %w", err)
	}

	for _, offering := range offerings {
		var event model.SurveyEvent
		err := g.db.Where("month = ? AND year = ?",
			model.CanonicalEventMonth(offering.Semester), offering.Year).
			First(&event).Error
		if err != nil {
			log.Printf("Generator: no survey event for %d semester %d - skipping %s",
				offering.Year, offering.Semester, offering.UnitCode)
			continue
		}

		if err := g.generateSurvey(offering, event, questionIDs); err != nil {
			return err
		}
	}
	return nil
}

func (g *GeneratorService) generateSurvey(offering model.UnitOffering, event model.SurveyEvent, questionIDs map[model.QuestionKey]uint) error {
	sentiment := g.nextSentiment(offering.UnitCode)

	enrolments := 30 + g.rng.Intn(171)
	responseRate := 0.15 + g.rng.Float64()*0.2
	responses := int(float64(enrolments)*responseRate + 0.5)

	return g.db.Transaction(func(tx *gorm.DB) error {
		survey := model.UnitSurvey{}
		if err := tx.Where(model.UnitSurvey{
			UnitOfferingID: offering.ID,
			EventID:        event.ID,
		}).Attrs(model.UnitSurvey{
			Enrolments:   enrolments,
			Responses:    responses,
			ResponseRate: responseRate * 100,
		}).FirstOrCreate(&survey).Error; err != nil {
			return fmt.Errorf("survey insert: %w", err)
		}

		var overallAgree float64
		unitAgree := make(map[model.QuestionKey]float64, len(questionIDs))

		for _, key := range model.QuestionKeys() {
			counts := g.responseDistribution(sentiment)
			unitAgree[key] = counts.PercentAgree
			if key == model.QuestionOverall {
				overallAgree = counts.PercentAgree
			}

			if err := tx.Create(&model.UnitSurveyResult{
				SurveyID:         survey.ID,
				QuestionID:       questionIDs[key],
				StronglyDisagree: counts.StronglyDisagree,
				Disagree:         counts.Disagree,
				Neutral:          counts.Neutral,
				Agree:            counts.Agree,
				StronglyAgree:    counts.StronglyAgree,
				UnableToJudge:    counts.UnableToJudge,
				PercentAgree:     counts.PercentAgree,
			}).Error; err != nil {
				return fmt.Errorf("result insert: %w", err)
			}
		}

		if err := tx.Model(&model.UnitSurvey{}).Where("survey_id = ?", survey.ID).
			Update("overall_experience", overallAgree).Error; err != nil {
			return fmt.Errorf("survey update: %w", err)
		}

		if err := g.generateBenchmarks(tx, event, offering.UnitCode, questionIDs, unitAgree); err != nil {
			return err
		}

		commentCount := 5 + g.rng.Intn(6)
		for i := 0; i < commentCount; i++ {
			text, score := g.comment(sentiment)
			if err := tx.Create(&model.Comment{
				SurveyID:       survey.ID,
				Text:           text,
				SentimentScore: score,
			}).Error; err != nil {
				return fmt.Errorf("comment insert: %w", err)
			}
		}

		return nil
	})
}

// nextSentiment advances a unit's sentiment trajectory. With 70% probability
// the unit stays near last term's mood; otherwise it redraws from the base
// distribution (20/50/20/8/2).
func (g *GeneratorService) nextSentiment(unitCode string) sentimentCategory {
	history := g.history[unitCode]

	var next sentimentCategory
	if len(history) > 0 && g.rng.Float64() < 0.7 {
		switch history[len(history)-1] {
		case sentimentVeryPositive:
			next = g.weightedPick(
				[]sentimentCategory{sentimentVeryPositive, sentimentPositive},
				[]float64{0.7, 0.3})
		case sentimentPositive:
			next = g.weightedPick(
				[]sentimentCategory{sentimentVeryPositive, sentimentPositive, sentimentNeutral},
				[]float64{0.2, 0.6, 0.2})
		case sentimentNeutral:
			next = g.weightedPick(
				[]sentimentCategory{sentimentPositive, sentimentNeutral, sentimentNegative},
				[]float64{0.3, 0.4, 0.3})
		case sentimentNegative:
			next = g.weightedPick(
				[]sentimentCategory{sentimentNeutral, sentimentNegative, sentimentVeryNegative},
				[]float64{0.2, 0.6, 0.2})
		default:
			next = g.weightedPick(
				[]sentimentCategory{sentimentNegative, sentimentVeryNegative},
				[]float64{0.3, 0.7})
		}
	} else {
		next = g.weightedPick(
			[]sentimentCategory{sentimentVeryPositive, sentimentPositive, sentimentNeutral, sentimentNegative, sentimentVeryNegative},
			[]float64{0.2, 0.5, 0.2, 0.08, 0.02})
	}

	g.history[unitCode] = append(history, next)
	return next
}

func (g *GeneratorService) weightedPick(options []sentimentCategory, weights []float64) sentimentCategory {
	var total float64
	for _, w := range weights {
		total += w
	}

	target := g.rng.Float64() * total
	for i, w := range weights {
		target -= w
		if target < 0 {
			return options[i]
		}
	}
	return options[len(options)-1]
}

// responseDistribution samples raw weights from the sentiment's template,
// then scales them to a plausible response count so every row sums exactly
// to the total.
func (g *GeneratorService) responseDistribution(sentiment sentimentCategory) questionCounts {
	template := responseTemplates[sentiment]
	total := 50 + g.rng.Intn(101)

	sample := func(r countRange) int {
		return r.Min + g.rng.Intn(r.Max-r.Min+1)
	}

	raw := []int{
		sample(template.StronglyDisagree),
		sample(template.Disagree),
		sample(template.Neutral),
		sample(template.Agree),
		sample(template.StronglyAgree),
		sample(template.UnableToJudge),
	}

	var rawTotal int
	for _, v := range raw {
		rawTotal += v
	}
	if rawTotal == 0 {
		rawTotal = 1
	}

	scaled := make([]int, len(raw))
	sum := 0
	largest := 0
	for i, v := range raw {
		scaled[i] = int(float64(v)/float64(rawTotal)*float64(total) + 0.5)
		sum += scaled[i]
		if scaled[i] > scaled[largest] {
			largest = i
		}
	}
	// rounding drift lands on the largest category
	scaled[largest] += total - sum

	counts := questionCounts{
		StronglyDisagree: scaled[0],
		Disagree:         scaled[1],
		Neutral:          scaled[2],
		Agree:            scaled[3],
		StronglyAgree:    scaled[4],
		UnableToJudge:    scaled[5],
		Total:            total,
	}
	counts.PercentAgree = float64(counts.Agree+counts.StronglyAgree) / float64(total) * 100
	return counts
}

// generateBenchmarks writes event-scoped comparison rows. The event owns one
// benchmark per (question, group), so whichever unit's survey is generated
// first for an event fixes the Unit-level rows; later surveys in the same
// event only fill gaps.
func (g *GeneratorService) generateBenchmarks(tx *gorm.DB, event model.SurveyEvent, unitCode string, questionIDs map[model.QuestionKey]uint, unitAgree map[model.QuestionKey]float64) error {
	type groupSpec struct {
		group    model.BenchmarkGroup
		name     string
		variance float64
		minN     int
		maxN     int
	}

	specs := []groupSpec{
		{model.GroupUnit, "Unit - " + unitCode, 0, 30, 70},
		{model.GroupSchool, "School - School of Management", 5, 200, 500},
		{model.GroupFaculty, "Faculty - Faculty of Business and Law", 8, 500, 1500},
		{model.GroupUniversity, "Curtin", 10, 2000, 5000},
	}

	for _, key := range model.QuestionKeys() {
		questionID := questionIDs[key]

		for _, spec := range specs {
			var existing model.Benchmark
			err := tx.Where("event_id = ? AND question_id = ? AND group_type = ?",
				event.ID, questionID, spec.group).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("benchmark lookup: %w", err)
			}

			percent := unitAgree[key]
			if spec.variance > 0 {
				percent += (g.rng.Float64()*2 - 1) * spec.variance
				if percent < 0 {
					percent = 0
				}
				if percent > 100 {
					percent = 100
				}
			}

			if err := tx.Create(&model.Benchmark{
				EventID:      event.ID,
				QuestionID:   questionID,
				GroupType:    spec.group,
				GroupName:    spec.name,
				PercentAgree: percent,
				TotalN:       spec.minN + g.rng.Intn(spec.maxN-spec.minN+1),
			}).Error; err != nil {
				return fmt.Errorf("benchmark insert: %w", err)
			}
		}
	}
	return nil
}

// comment fills a sentiment-matched template and derives a score near the
// sentiment's anchor, clamped to [-1, 1].
func (g *GeneratorService) comment(sentiment sentimentCategory) (string, float64) {
	templates := commentTemplates[sentiment]
	template := templates[g.rng.Intn(len(templates))]

	text := fmt.Sprintf(template,
		positivePhrases[g.rng.Intn(len(positivePhrases))],
		neutralPhrases[g.rng.Intn(len(neutralPhrases))],
		negativePhrases[g.rng.Intn(len(negativePhrases))],
		courseAspects[g.rng.Intn(len(courseAspects))],
	)

	score := sentimentScores[sentiment] + (g.rng.Float64()*0.2 - 0.1)
	if score < -1 {
		score = -1
	}
	if score > 1 {
		score = 1
	}
	return text, score
}
