package model

import "strings"

// QuestionKey identifies one of the six canonical survey questions. Every
// piece of extracted text must resolve onto this closed set; questions are
// never created dynamically during import.
type QuestionKey int

const (
	QuestionEngaged QuestionKey = iota
	QuestionResources
	QuestionSupport
	QuestionAssessments
	QuestionExpectations
	QuestionOverall

	questionCount
)

// canonical question texts, in benchmark column order
var questionTexts = [questionCount]string{
	QuestionEngaged:      "I was engaged by the learning activities.",
	QuestionResources:    "The resources provided helped me to learn.",
	QuestionSupport:      "My learning was supported.",
	QuestionAssessments:  "Assessments helped me to demonstrate my learning.",
	QuestionExpectations: "I knew what was expected of me.",
	QuestionOverall:      "Overall, this unit was a worthwhile experience.",
}

// short labels as they appear in benchmark table headers
var questionLabels = [questionCount]string{
	QuestionEngaged:      "Engaged",
	QuestionResources:    "Resources",
	QuestionSupport:      "Support",
	QuestionAssessments:  "Assessments",
	QuestionExpectations: "Expectations",
	QuestionOverall:      "Overall",
}

// Text returns the canonical question wording as seeded into the database.
func (k QuestionKey) Text() string { return questionTexts[k] }

// Label returns the short column label used by the benchmark table.
func (k QuestionKey) Label() string { return questionLabels[k] }

// QuestionKeys returns all six keys in benchmark column order:
// Engaged, Resources, Support, Assessments, Expectations, Overall.
func QuestionKeys() []QuestionKey {
	keys := make([]QuestionKey, 0, questionCount)
	for k := QuestionKey(0); k < questionCount; k++ {
		keys = append(keys, k)
	}
	return keys
}

// MatchQuestionLabel resolves a benchmark column label (e.g. "Engaged")
// to its question key.
func MatchQuestionLabel(label string) (QuestionKey, bool) {
	for k := QuestionKey(0); k < questionCount; k++ {
		if questionLabels[k] == label {
			return k, true
		}
	}
	return 0, false
}

// MatchQuestionText resolves free text recovered from a PDF to a canonical
// question. Strategies are tried in order: exact match, trailing-period
// insensitive match, unambiguous prefix match, then keyword classification
// as a last resort.
func MatchQuestionText(text string) (QuestionKey, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, false
	}

	// Exact match
	for k := QuestionKey(0); k < questionCount; k++ {
		if trimmed == questionTexts[k] {
			return k, true
		}
	}

	// Trailing-period insensitive match
	bare := strings.TrimSuffix(trimmed, ".")
	for k := QuestionKey(0); k < questionCount; k++ {
		if bare == strings.TrimSuffix(questionTexts[k], ".") {
			return k, true
		}
	}

	// Prefix match, only when unambiguous
	var (
		prefixKey   QuestionKey
		prefixCount int
	)
	for k := QuestionKey(0); k < questionCount; k++ {
		if strings.HasPrefix(questionTexts[k], bare) || strings.HasPrefix(bare, strings.TrimSuffix(questionTexts[k], ".")) {
			prefixKey = k
			prefixCount++
		}
	}
	if prefixCount == 1 {
		return prefixKey, true
	}

	// Keyword classification
	lower := strings.ToLower(trimmed)
	switch {
	case strings.Contains(lower, "engaged"):
		return QuestionEngaged, true
	case strings.Contains(lower, "resources"):
		return QuestionResources, true
	case strings.Contains(lower, "support"):
		return QuestionSupport, true
	case strings.Contains(lower, "assessments"), strings.Contains(lower, "demonstrate"):
		return QuestionAssessments, true
	case strings.Contains(lower, "expect"):
		return QuestionExpectations, true
	case strings.Contains(lower, "overall"), strings.Contains(lower, "worthwhile"):
		return QuestionOverall, true
	}

	return 0, false
}

// NormalizeBenchmarkGroup folds a raw benchmark row label into the closed
// BenchmarkGroup set. The raw label is preserved separately as group_name.
func NormalizeBenchmarkGroup(label string) BenchmarkGroup {
	switch {
	case strings.Contains(label, "School"):
		return GroupSchool
	case strings.Contains(label, "Faculty"):
		return GroupFaculty
	case strings.Contains(label, "University"), strings.Contains(label, "Curtin"):
		return GroupUniversity
	case strings.Contains(label, "Unit"):
		return GroupUnit
	}
	return GroupOverall
}
