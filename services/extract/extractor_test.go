package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surveysavvy/surveysavvy/model"
)

func detailPage(question string) string {
	return question + `

1 Strongly Disagree 0 0.0%
2 Disagree 1 8.3%
3 Neither Agree nor Disagree 0 0.0%
4 Agree 5 41.7%
5 Strongly Agree 6 50.0%
6 Unable to Judge 0 0.0%

Agreement 91.7%
`
}

func surveyPages() []string {
	return []string{
		identityPage,
		"About this report",
		statsPage,
		benchmarkPage,
		detailPage("I was engaged by the learning activities"),
		detailPage("My learning was supported"),
		detailPage("Overall, this unit was a worthwhile experience"),
		commentPage,
		"",
		"",
	}
}

func TestExtractFullDocument(t *testing.T) {
	extractor := NewExtractor(nil, false)

	record, err := extractor.Extract(NewDocumentFromPages(surveyPages()))
	require.NoError(t, err)

	assert.Equal(t, "ISYS2001", record.UnitCode)
	assert.Equal(t, "Introduction to Business Programming", record.UnitName)
	assert.Equal(t, "ISYS", record.DisciplineCode)
	assert.Equal(t, "Information Systems", record.DisciplineName)
	assert.Equal(t, 1, record.Semester)
	assert.Equal(t, 2024, record.Year)
	assert.Equal(t, "Bentley Perth", record.Location)
	assert.Equal(t, "Internal", record.Availability)

	assert.Equal(t, 34, record.Enrolments)
	assert.Equal(t, 12, record.Responses)
	assert.InDelta(t, 35.3, record.ResponseRate, 0.001)
	assert.InDelta(t, 91.7, record.OverallExperience, 0.001)

	assert.Len(t, record.Benchmarks, 30)
	require.Len(t, record.DetailedResults, 3)
	first := record.DetailedResults[0]
	assert.Equal(t, "I was engaged by the learning activities", first.QuestionText)
	assert.Equal(t, 5, first.Agree)
	assert.Equal(t, 6, first.StronglyAgree)
	assert.InDelta(t, 91.7, first.PercentAgree, 0.001)

	require.Len(t, record.Comments, 3)
	assert.Greater(t, record.Comments[0].SentimentScore, 0.0)

	assert.Empty(t, record.MissingSections)
}

func TestExtractDegradesSectionBySection(t *testing.T) {
	// Only the identity page is usable; everything else is noise.
	pages := []string{
		identityPage,
		"garbled", "garbled", "garbled", "garbled",
		"garbled", "garbled", "garbled", "garbled", "garbled",
	}

	extractor := NewExtractor(nil, false)
	record, err := extractor.Extract(NewDocumentFromPages(pages))
	require.NoError(t, err)

	assert.Equal(t, "ISYS2001", record.UnitCode)
	assert.Zero(t, record.Enrolments)
	assert.Empty(t, record.Benchmarks)
	assert.Empty(t, record.DetailedResults)
	assert.Empty(t, record.Comments)

	for _, section := range []string{"statistics", "agreement", "benchmarks", "detailed_results", "comments"} {
		assert.Contains(t, record.MissingSections, section)
	}
}

func TestExtractShortDocument(t *testing.T) {
	extractor := NewExtractor(nil, false)
	record, err := extractor.Extract(NewDocumentFromPages([]string{identityPage}))
	require.NoError(t, err)
	assert.Equal(t, "ISYS2001", record.UnitCode)
	assert.Empty(t, record.Benchmarks)
}

func TestExtractRejectsMissingUnitCode(t *testing.T) {
	pages := surveyPages()
	pages[0] = "Unit Survey Report - Semester 1 2024"

	extractor := NewExtractor(nil, false)
	_, err := extractor.Extract(NewDocumentFromPages(pages))

	var unusable *ErrUnusableDocument
	require.True(t, errors.As(err, &unusable))
	assert.Contains(t, unusable.Reason, "unit code")
}

func TestExtractRejectsMissingTerm(t *testing.T) {
	pages := surveyPages()
	pages[0] = "ISYS2001 Introduction to Business Programming - Bentley Perth Campus - Internal"

	extractor := NewExtractor(nil, false)
	_, err := extractor.Extract(NewDocumentFromPages(pages))

	var unusable *ErrUnusableDocument
	require.True(t, errors.As(err, &unusable))
	assert.Contains(t, unusable.Reason, "term")
}

func TestExtractPlaceholderUnitName(t *testing.T) {
	pages := surveyPages()
	pages[0] = "COMP1005\nSemester 2 2023\n"

	extractor := NewExtractor(nil, false)
	record, err := extractor.Extract(NewDocumentFromPages(pages))
	require.NoError(t, err)

	assert.Equal(t, "COMP1005", record.UnitCode)
	assert.Equal(t, "Computer Science Unit", record.UnitName)
	assert.Equal(t, "Unknown", record.Location)
	assert.Contains(t, record.MissingSections, "campus")
}

func TestExtractUnknownDisciplineFallsBackToCode(t *testing.T) {
	pages := surveyPages()
	pages[0] = "ZXQW1001 Experimental Unit - Semester 1 2024 - Bentley Perth Campus - Internal"

	extractor := NewExtractor(map[string]string{"ISYS": "Information Systems"}, false)
	record, err := extractor.Extract(NewDocumentFromPages(pages))
	require.NoError(t, err)
	assert.Equal(t, "ZXQW", record.DisciplineCode)
	assert.Equal(t, "ZXQW", record.DisciplineName)
}

func TestQuestionKeysOrder(t *testing.T) {
	keys := model.QuestionKeys()
	require.Len(t, keys, 6)
	assert.Equal(t, model.QuestionEngaged, keys[0])
	assert.Equal(t, model.QuestionOverall, keys[5])
}
