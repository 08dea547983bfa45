package extract

import "strings"

// Keyword lists for the lexical sentiment estimate. Matching is substring
// containment on the lowercased comment, not tokenized, so "enjoyed" also
// matches via "enjoy".
var positiveWords = []string{
	"good", "great", "excellent", "helpful", "enjoy", "enjoyed", "clear",
	"useful", "valuable", "effective", "well", "love", "best", "perfect",
	"interesting", "engaging", "engaged", "recommend", "supportive",
}

var negativeWords = []string{
	"bad", "poor", "difficult", "hard", "confusing", "unclear", "boring",
	"useless", "waste", "ineffective", "terrible", "worst", "dislike",
	"hate", "awful", "frustrating", "disappointed", "struggle",
}

// EstimateSentiment maps free text to a score in [-1, 1]:
// (positive - negative) / (positive + negative), exactly 0.0 when neither
// list matches. Deterministic; no external calls.
func EstimateSentiment(text string) float64 {
	lower := strings.ToLower(text)

	var positive, negative int
	for _, word := range positiveWords {
		if strings.Contains(lower, word) {
			positive++
		}
	}
	for _, word := range negativeWords {
		if strings.Contains(lower, word) {
			negative++
		}
	}

	total := positive + negative
	if total == 0 {
		return 0.0
	}
	return float64(positive-negative) / float64(total)
}
