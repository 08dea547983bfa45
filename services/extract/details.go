package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/surveysavvy/surveysavvy/model"
)

// Likert rows on the detail pages carry a numeric prefix and a fixed label,
// then count and percentage. Each row is matched independently; a missing
// row defaults to zero rather than sinking the whole question.
var detailRowPatterns = []struct {
	re    *regexp.Regexp
	apply func(*QuestionResult, int)
}{
	{regexp.MustCompile(`1 Strongly Disagree\s+(\d+)\s+(\d+\.\d+)%`), func(r *QuestionResult, n int) { r.StronglyDisagree = n }},
	{regexp.MustCompile(`2 Disagree\s+(\d+)\s+(\d+\.\d+)%`), func(r *QuestionResult, n int) { r.Disagree = n }},
	{regexp.MustCompile(`3 Neither Agree nor Disagree\s+(\d+)\s+(\d+\.\d+)%`), func(r *QuestionResult, n int) { r.Neutral = n }},
	{regexp.MustCompile(`4 Agree\s+(\d+)\s+(\d+\.\d+)%`), func(r *QuestionResult, n int) { r.Agree = n }},
	{regexp.MustCompile(`5 Strongly Agree\s+(\d+)\s+(\d+\.\d+)%`), func(r *QuestionResult, n int) { r.StronglyAgree = n }},
	{regexp.MustCompile(`6 Unable to Judge\s+(\d+)\s+(\d+\.\d+)%`), func(r *QuestionResult, n int) { r.UnableToJudge = n }},
}

var detailAgreementRe = regexp.MustCompile(`Agreement\s+(\d+\.\d+)%`)

// RecognizeQuestionDetail extracts the response distribution for one
// canonical question from a detail page, if that question appears there.
// ok=false means the question is not on this page at all.
func RecognizeQuestionDetail(text string, key model.QuestionKey) (QuestionResult, bool) {
	question := strings.TrimSuffix(key.Text(), ".")
	if !strings.Contains(text, question) {
		return QuestionResult{}, false
	}

	result := QuestionResult{QuestionText: question}

	for _, row := range detailRowPatterns {
		if m := row.re.FindStringSubmatch(text); m != nil {
			count, _ := strconv.Atoi(m[1])
			row.apply(&result, count)
		}
	}

	if m := detailAgreementRe.FindStringSubmatch(text); m != nil {
		result.PercentAgree, _ = strconv.ParseFloat(m[1], 64)
	}

	return result, true
}
