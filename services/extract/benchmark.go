package extract

import (
	"log"
	"regexp"
	"sort"
	"strconv"

	"github.com/surveysavvy/surveysavvy/model"
)

// The benchmark page is a table flattened to prose: one row per aggregation
// level, six percentage columns (Engaged, Resources, Support, Assessments,
// Expectations, Overall) each followed somewhere by its sample size. Levels
// are located by their row labels; the text span between one label and the
// next holds that row's tokens.
var (
	benchmarkSectionRe = regexp.MustCompile(`(?s)Benchmarks.*?Percentage Agreement\s*(.*)`)

	benchmarkLevels = []struct {
		name string
		re   *regexp.Regexp
	}{
		{"Overall", regexp.MustCompile(`(?m)^\s*Overall\b`)},
		{"Unit", regexp.MustCompile(`(?m)^\s*Unit\s*-\s*[A-Z]{4}\d+`)},
		{"School", regexp.MustCompile(`(?m)^\s*School\s*-\s*School of`)},
		{"Faculty", regexp.MustCompile(`(?m)^\s*Faculty\s*-\s*Faculty of`)},
		{"University", regexp.MustCompile(`(?m)^\s*Curtin\b`)},
	}

	percentTokenRe = regexp.MustCompile(`(\d+\.\d+)%`)
	countTokenRe   = regexp.MustCompile(`\b(\d{2,})\b`)
)

// RecognizeBenchmarks extracts benchmark rows from benchmark-page text.
// unitCode labels the unit's own row distinctly from the shared rows; it is
// the one recognizer input that depends on another recognizer's output.
//
// The token zip is positional: the first six percentages and the first six
// 2+-digit counts in a level's span are assigned to the six questions in
// fixed column order. A span whose token counts are not exactly six of each
// is treated as unresolvable and skipped rather than risk misaligned data.
// Returns the rows, the number of skipped levels, and a confidence hint.
func RecognizeBenchmarks(text, unitCode string) ([]BenchmarkRow, int, Confidence) {
	section := text
	conf := ConfidenceHigh
	if m := benchmarkSectionRe.FindStringSubmatch(text); m != nil {
		section = m[1]
	} else {
		conf = ConfidenceLow
	}

	type levelSpan struct {
		name  string
		start int
	}

	var spans []levelSpan
	for _, level := range benchmarkLevels {
		if loc := level.re.FindStringIndex(section); loc != nil {
			name := level.name
			if name == "Unit" && unitCode != "" {
				name = "Unit - " + unitCode
			}
			spans = append(spans, levelSpan{name: name, start: loc[0]})
		}
	}

	if len(spans) == 0 {
		return nil, 0, ConfidenceNone
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var rows []BenchmarkRow
	skipped := 0

	for i, span := range spans {
		end := len(section)
		if i+1 < len(spans) {
			end = spans[i+1].start
		}
		levelText := section[span.start:end]

		percents := percentTokenRe.FindAllStringSubmatch(levelText, -1)
		// Strip percentage tokens before scanning for counts, so the integer
		// part of "85.3%" is not mistaken for a sample size.
		counts := countTokenRe.FindAllStringSubmatch(percentTokenRe.ReplaceAllString(levelText, ""), -1)

		if len(percents) != 6 || len(counts) != 6 {
			log.Printf("Benchmark recognizer: level %q has %d percentages and %d counts, want 6 and 6 - skipping",
				span.name, len(percents), len(counts))
			skipped++
			continue
		}

		for qi, key := range model.QuestionKeys() {
			percent, _ := strconv.ParseFloat(percents[qi][1], 64)
			totalN, _ := strconv.Atoi(counts[qi][1])
			rows = append(rows, BenchmarkRow{
				GroupType:     model.NormalizeBenchmarkGroup(span.name),
				GroupName:     span.name,
				Question:      key,
				QuestionLabel: key.Label(),
				PercentAgree:  percent,
				TotalN:        totalN,
			})
		}
	}

	if len(rows) == 0 {
		return nil, skipped, ConfidenceNone
	}
	return rows, skipped, conf
}
