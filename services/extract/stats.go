package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/surveysavvy/surveysavvy/model"
)

var (
	statsAnchoredRe = regexp.MustCompile(`(?s)# Enrolments.*?\(N\).*?# Responses.*?Response Rate\s*(\d+)\s+(\d+)\s+(\d+\.\d+)`)
	statsLooseRe    = regexp.MustCompile(`(?s)Enrolments.*?(\d+).*?Responses.*?(\d+).*?Rate.*?(\d+\.\d+)`)
)

// RecognizeResponseStats extracts the enrolments / responses / response-rate
// triple from the statistics page. Statistics are supplementary: ok=false
// leaves the record usable with zeroed stats.
func RecognizeResponseStats(text string) (ResponseStats, Confidence, bool) {
	for i, re := range []*regexp.Regexp{statsAnchoredRe, statsLooseRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			enrolments, _ := strconv.Atoi(m[1])
			responses, _ := strconv.Atoi(m[2])
			rate, _ := strconv.ParseFloat(m[3], 64)
			conf := ConfidenceHigh
			if i > 0 {
				conf = ConfidenceLow
			}
			return ResponseStats{Enrolments: enrolments, Responses: responses, ResponseRate: rate}, conf, true
		}
	}
	return ResponseStats{}, ConfidenceNone, false
}

// RecognizePercentAgreement finds the headline agreement percentage for each
// canonical question on the statistics page. Every question is independently
// optional; absent questions are simply missing from the returned map.
func RecognizePercentAgreement(text string) (map[model.QuestionKey]float64, Confidence) {
	agreement := make(map[model.QuestionKey]float64)
	conf := ConfidenceHigh

	for _, key := range model.QuestionKeys() {
		question := strings.TrimSuffix(key.Text(), ".")
		re := regexp.MustCompile(regexp.QuoteMeta(question) + `\s*\.?\s+(\d+\.\d+)%`)
		if m := re.FindStringSubmatch(text); m != nil {
			value, _ := strconv.ParseFloat(m[1], 64)
			agreement[key] = value
		}
	}

	if len(agreement) > 0 {
		return agreement, conf
	}

	// Fallback: nearest decimal after the question text, anywhere on the page.
	for _, key := range model.QuestionKeys() {
		question := strings.TrimSuffix(key.Text(), ".")
		re := regexp.MustCompile(`(?si)` + regexp.QuoteMeta(question) + `.*?(\d+\.\d+)`)
		if m := re.FindStringSubmatch(text); m != nil {
			value, _ := strconv.ParseFloat(m[1], 64)
			agreement[key] = value
		}
	}

	if len(agreement) > 0 {
		return agreement, ConfidenceLow
	}
	return agreement, ConfidenceNone
}
