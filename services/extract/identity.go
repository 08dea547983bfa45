package extract

import (
	"regexp"
	"strings"
)

// Recognizer patterns for the unit identity header. The header is supposed
// to read "<CODE> <Name> - Semester <n> <year>", but renderer output drifts,
// so fallbacks loosen the anchoring step by step.
var (
	// Known discipline prefixes seen in real reports; a bare code match on
	// one of these beats the header patterns for robustness.
	knownCodeRe = regexp.MustCompile(`(?:ISYS|COMP|BUSN|ACCT)\d{4}`)
	anyCodeRe   = regexp.MustCompile(`[A-Z]{4}\d+`)

	identityStrategies = []struct {
		re *regexp.Regexp
	}{
		// Full anchored header
		{regexp.MustCompile(`([A-Z]{4}\d+)\s+(.*?)\s+-\s+Semester`)},
		// Loosened separator / ordering
		{regexp.MustCompile(`([A-Z]{4}\d+)\s+(.*?)(?:\s+-\s+|\s+Semester)`)},
		// "Unit Survey Report - CODE Name" variant
		{regexp.MustCompile(`Unit Survey Report\s*-\s*([A-Z]{4}\d+)\s+([^\n]+)`)},
	}

	codeStripRe    = regexp.MustCompile(`[A-Z]{4}\d+\s*`)
	leadingDashRe  = regexp.MustCompile(`^[-–]\s*`)
	trailingTermRe = regexp.MustCompile(`\s*[-–]\s*Semester.*$`)
)

// RecognizeUnitIdentity extracts the unit code and name from identity-page
// text. A known fixed-code match anywhere in the text wins over the header
// patterns; the name is then recovered from whichever header strategy or
// title line still applies. Returns ok=false only when no code can be found
// at all.
func RecognizeUnitIdentity(text string) (UnitIdentity, Confidence, bool) {
	if code := knownCodeRe.FindString(text); code != "" {
		name, conf := recognizeUnitName(text, code)
		return UnitIdentity{Code: code, Name: name}, conf, true
	}

	for i, strategy := range identityStrategies {
		if m := strategy.re.FindStringSubmatch(text); m != nil {
			conf := ConfidenceHigh
			if i > 0 {
				conf = ConfidenceLow
			}
			return UnitIdentity{Code: m[1], Name: strings.TrimSpace(m[2])}, conf, true
		}
	}

	// Last resort: any code-shaped token, name left for the orchestrator's
	// placeholder policy.
	if code := anyCodeRe.FindString(text); code != "" {
		name, _ := recognizeUnitName(text, code)
		return UnitIdentity{Code: code, Name: name}, ConfidenceLow, true
	}

	return UnitIdentity{}, ConfidenceNone, false
}

// recognizeUnitName recovers the unit name once the code is known: header
// strategies first, then a cleanup of the title line containing the code.
func recognizeUnitName(text, code string) (string, Confidence) {
	for i, strategy := range identityStrategies {
		if m := strategy.re.FindStringSubmatch(text); m != nil && m[1] == code {
			conf := ConfidenceHigh
			if i > 0 {
				conf = ConfidenceLow
			}
			return strings.TrimSpace(m[2]), conf
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, code) {
			continue
		}
		title := strings.TrimSpace(line)
		title = strings.TrimSpace(codeStripRe.ReplaceAllString(title, ""))
		title = strings.TrimSpace(leadingDashRe.ReplaceAllString(title, ""))
		title = strings.TrimSpace(trailingTermRe.ReplaceAllString(title, ""))
		if title != "" {
			return title, ConfidenceLow
		}
	}

	return "", ConfidenceNone
}
