package extract

import (
	"regexp"
	"strings"
)

// Campus lines arrive with any of a hyphen, an en dash, or the mis-encoded
// UTF-8-as-Latin-1 byte sequence for an en/em dash between campus and mode.
const dashVariant = `(?:[-–—]|â€“|â€”)`

var (
	campusModeRe = regexp.MustCompile(`(?i)-\s*([^-–—\n]+?)\s+Campus\s*` + dashVariant + `\s*(Internal|Online)`)

	// Fallback: anything that mentions a campus or centre, mode unresolved.
	campusLooseRe = regexp.MustCompile(`(?i)(?:campus|centre)[-\s]*([^\n_]*)`)
)

// RecognizeCampusMode extracts the campus location and delivery mode from
// identity-page text. Mode defaults to "Internal" when only the loose
// pattern matches. ok=false means no campus hint at all; the orchestrator
// then persists the record with an unknown location.
func RecognizeCampusMode(text string) (CampusMode, Confidence, bool) {
	if m := campusModeRe.FindStringSubmatch(text); m != nil {
		mode := strings.ToUpper(m[2][:1]) + strings.ToLower(m[2][1:])
		return CampusMode{Location: strings.TrimSpace(m[1]), Mode: mode}, ConfidenceHigh, true
	}

	if m := campusLooseRe.FindStringSubmatch(text); m != nil {
		loc := strings.TrimSpace(m[1])
		if loc != "" {
			return CampusMode{Location: loc, Mode: "Internal"}, ConfidenceLow, true
		}
	}

	return CampusMode{}, ConfidenceNone, false
}
