package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchQuestionText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want QuestionKey
		ok   bool
	}{
		{"exact", "I was engaged by the learning activities.", QuestionEngaged, true},
		{"no trailing period", "I was engaged by the learning activities", QuestionEngaged, true},
		{"prefix", "Overall, this unit was a worthwhile", QuestionOverall, true},
		{"keyword resources", "Did the learning resources help?", QuestionResources, true},
		{"keyword demonstrate", "I could demonstrate what I learned", QuestionAssessments, true},
		{"keyword expectations", "Expectations were communicated clearly", QuestionExpectations, true},
		{"unmatched", "How was the parking?", 0, false},
		{"empty", "", 0, false},
		{"whitespace", "   ", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := MatchQuestionText(tt.text)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, key)
			}
		})
	}
}

func TestMatchQuestionLabel(t *testing.T) {
	key, ok := MatchQuestionLabel("Engaged")
	require.True(t, ok)
	assert.Equal(t, QuestionEngaged, key)

	_, ok = MatchQuestionLabel("Parking")
	assert.False(t, ok)
}

func TestQuestionTextRoundTrip(t *testing.T) {
	for _, key := range QuestionKeys() {
		match, ok := MatchQuestionText(key.Text())
		require.True(t, ok, "text %q did not match", key.Text())
		assert.Equal(t, key, match)
	}
}

func TestNormalizeBenchmarkGroup(t *testing.T) {
	tests := []struct {
		label string
		want  BenchmarkGroup
	}{
		{"Unit - ISYS2001", GroupUnit},
		{"School - School of Management", GroupSchool},
		{"Faculty - Faculty of Business and Law", GroupFaculty},
		{"Curtin", GroupUniversity},
		{"University", GroupUniversity},
		{"Overall", GroupOverall},
		{"Something else", GroupOverall},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeBenchmarkGroup(tt.label), "label %q", tt.label)
	}
}

func TestCanonicalEventMonth(t *testing.T) {
	assert.Equal(t, 5, CanonicalEventMonth(1))
	assert.Equal(t, 10, CanonicalEventMonth(2))
	assert.Equal(t, 10, CanonicalEventMonth(3))
}
