package extract

import (
	"regexp"
	"strings"
)

var (
	commentSectionRe = regexp.MustCompile(`(?si)What are the main reasons for your rating.*?Comments\s*(.*?)(?:This report may contain|$)`)

	paragraphBreakRe = regexp.MustCompile(`\n\s*\n`)

	// When the renderer collapses paragraph breaks, comments run together on
	// single newlines. Known comment-opening words mark where one ends and
	// the next begins.
	commentOpenerRe = regexp.MustCompile(`(?:^|\n)(As |The |I |Overall|It was|Was |Fun |Good |best )`)

	whitespaceRe = regexp.MustCompile(`\s+`)
)

// RecognizeComments extracts the individual student comments from comment-
// page text. The section sits between the rating-question prompt and the
// end-of-report disclaimer; paragraphs separate comments, with an opener-
// word split as fallback when fewer than 3 paragraphs survive. Fragments
// that still contain the "Comments" header or are trivially short are
// dropped.
func RecognizeComments(text string) ([]string, Confidence, bool) {
	m := commentSectionRe.FindStringSubmatch(text)
	if m == nil {
		return nil, ConfidenceNone, false
	}

	sectionText := strings.TrimSpace(m[1])
	conf := ConfidenceHigh

	paragraphs := paragraphBreakRe.Split(sectionText, -1)
	if len(paragraphs) < 3 {
		paragraphs = splitOnOpeners(sectionText)
		conf = ConfidenceLow
	}

	var comments []string
	for _, para := range paragraphs {
		clean := whitespaceRe.ReplaceAllString(strings.TrimSpace(para), " ")
		if clean == "" || len(clean) <= 5 {
			continue
		}
		// Header leakage guard
		if strings.Contains(clean, "Comments") {
			continue
		}
		comments = append(comments, clean)
	}

	if len(comments) == 0 {
		return nil, ConfidenceNone, false
	}
	return comments, conf, true
}

// splitOnOpeners cuts the section at each comment-opening word, keeping the
// opener attached to the fragment it starts.
func splitOnOpeners(text string) []string {
	locs := commentOpenerRe.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return []string{text}
	}

	var parts []string
	for i, loc := range locs {
		start := loc[2] // opener word start, newline excluded
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][2]
		}
		parts = append(parts, text[start:end])
	}
	return parts
}
