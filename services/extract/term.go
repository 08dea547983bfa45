package extract

import (
	"regexp"
	"strconv"
)

var (
	termYearRe = regexp.MustCompile(`(?i)(Semester\s+([12])|Trimester\s+([123]))\s+(\d{4})`)

	// Fallback tolerating out-of-range semester digits in sloppy headers.
	termLooseRe = regexp.MustCompile(`Semester\s+(\d)\s+(\d{4})`)
)

// RecognizeTermYear extracts the survey term. There is no default: a record
// without a term is rejected upstream, so ok=false is a hard miss.
func RecognizeTermYear(text string) (TermYear, Confidence, bool) {
	if m := termYearRe.FindStringSubmatch(text); m != nil {
		digit := m[2]
		if digit == "" {
			digit = m[3]
		}
		semester, _ := strconv.Atoi(digit)
		year, _ := strconv.Atoi(m[4])
		return TermYear{Semester: semester, Year: year}, ConfidenceHigh, true
	}

	if m := termLooseRe.FindStringSubmatch(text); m != nil {
		semester, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		return TermYear{Semester: semester, Year: year}, ConfidenceLow, true
	}

	return TermYear{}, ConfidenceNone, false
}
