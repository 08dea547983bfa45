package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surveysavvy/surveysavvy/model"
)

const identityPage = `Unit Survey Report

ISYS2001 Introduction to Business Programming - Semester 1 2024 - Bentley Perth Campus - Internal
`

func TestRecognizeUnitIdentity(t *testing.T) {
	identity, conf, ok := RecognizeUnitIdentity(identityPage)
	require.True(t, ok)
	assert.Equal(t, "ISYS2001", identity.Code)
	assert.Equal(t, "Introduction to Business Programming", identity.Name)
	assert.Equal(t, ConfidenceHigh, conf)
}

func TestRecognizeUnitIdentityUnknownPrefix(t *testing.T) {
	identity, conf, ok := RecognizeUnitIdentity("MGMT3042 Strategic Management - Semester 2 2023")
	require.True(t, ok)
	assert.Equal(t, "MGMT3042", identity.Code)
	assert.Equal(t, "Strategic Management", identity.Name)
	assert.Equal(t, ConfidenceHigh, conf)
}

func TestRecognizeUnitIdentityMissing(t *testing.T) {
	_, conf, ok := RecognizeUnitIdentity("Unit Survey Report\n\nNo code on this page")
	assert.False(t, ok)
	assert.Equal(t, ConfidenceNone, conf)
}

func TestRecognizeCampusMode(t *testing.T) {
	campus, conf, ok := RecognizeCampusMode(identityPage)
	require.True(t, ok)
	assert.Equal(t, "Bentley Perth", campus.Location)
	assert.Equal(t, "Internal", campus.Mode)
	assert.Equal(t, ConfidenceHigh, conf)
}

func TestRecognizeCampusModeMojibakeDash(t *testing.T) {
	text := "COMP1005 Fundamentals - Semester 1 2023 - City Campusâ€“Online"
	campus, _, ok := RecognizeCampusMode(text)
	require.True(t, ok)
	assert.Equal(t, "City", campus.Location)
	assert.Equal(t, "Online", campus.Mode)
}

func TestRecognizeCampusModeLooseFallback(t *testing.T) {
	campus, conf, ok := RecognizeCampusMode("Taught at the Kalgoorlie Centre during the year")
	require.True(t, ok)
	assert.Equal(t, ConfidenceLow, conf)
	assert.Equal(t, "Internal", campus.Mode)
	assert.NotEmpty(t, campus.Location)
}

func TestRecognizeTermYear(t *testing.T) {
	term, conf, ok := RecognizeTermYear(identityPage)
	require.True(t, ok)
	assert.Equal(t, 1, term.Semester)
	assert.Equal(t, 2024, term.Year)
	assert.Equal(t, ConfidenceHigh, conf)
}

func TestRecognizeTermYearTrimester(t *testing.T) {
	term, _, ok := RecognizeTermYear("BUSN5001 Accounting - Trimester 3 2022")
	require.True(t, ok)
	assert.Equal(t, 3, term.Semester)
	assert.Equal(t, 2022, term.Year)
}

func TestRecognizeTermYearMissingIsHardFailure(t *testing.T) {
	_, _, ok := RecognizeTermYear("ISYS2001 Introduction to Business Programming")
	assert.False(t, ok)
}

const statsPage = `Unit Survey Statistics

# Enrolments (N) # Responses Response Rate
34 12 35.3

Percentage Agreement
I was engaged by the learning activities 91.7%
The resources provided helped me to learn 83.3%
My learning was supported 91.7%
Assessments helped me to demonstrate my learning 100.0%
I knew what was expected of me 91.7%
Overall, this unit was a worthwhile experience 91.7%
`

func TestRecognizeResponseStats(t *testing.T) {
	stats, conf, ok := RecognizeResponseStats(statsPage)
	require.True(t, ok)
	assert.Equal(t, 34, stats.Enrolments)
	assert.Equal(t, 12, stats.Responses)
	assert.InDelta(t, 35.3, stats.ResponseRate, 0.001)
	assert.Equal(t, ConfidenceHigh, conf)
}

func TestRecognizeResponseStatsLoose(t *testing.T) {
	text := "Enrolments 120 total. Responses received 41. Rate was 34.2 percent."
	stats, conf, ok := RecognizeResponseStats(text)
	require.True(t, ok)
	assert.Equal(t, 120, stats.Enrolments)
	assert.Equal(t, 41, stats.Responses)
	assert.InDelta(t, 34.2, stats.ResponseRate, 0.001)
	assert.Equal(t, ConfidenceLow, conf)
}

func TestRecognizePercentAgreement(t *testing.T) {
	agreement, conf := RecognizePercentAgreement(statsPage)
	assert.Equal(t, ConfidenceHigh, conf)
	assert.Len(t, agreement, 6)
	assert.InDelta(t, 91.7, agreement[model.QuestionEngaged], 0.001)
	assert.InDelta(t, 83.3, agreement[model.QuestionResources], 0.001)
	assert.InDelta(t, 91.7, agreement[model.QuestionOverall], 0.001)
}
