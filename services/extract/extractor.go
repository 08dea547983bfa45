package extract

import (
	"fmt"
	"log"

	"github.com/surveysavvy/surveysavvy/model"
)

// Canonical page roles of a survey report (0-indexed). Shorter documents are
// tolerated: each section is skipped, not aborted, when its page is absent.
const (
	pageIdentity     = 0
	pageStatistics   = 2
	pageBenchmarks   = 3
	pageDetailFirst  = 4
	pageDetailLast   = 6
	pageCommentFirst = 7
	pageCommentLast  = 9
)

// ErrUnusableDocument is returned when a document fails the minimum viable
// record requirement: a resolvable unit code and term.
type ErrUnusableDocument struct {
	Reason string
}

func (e *ErrUnusableDocument) Error() string {
	return fmt.Sprintf("document unusable: %s", e.Reason)
}

// Extractor runs every recognizer against its page role and merges the
// partial results into one Record. Sections fail independently: a garbled
// benchmark page still yields a persistable record with zero benchmarks.
type Extractor struct {
	disciplines map[string]string
	debug       bool
}

// NewExtractor builds an extractor around an immutable discipline catalog.
func NewExtractor(disciplines map[string]string, debug bool) *Extractor {
	if disciplines == nil {
		disciplines = model.DefaultDisciplineNames()
	}
	return &Extractor{disciplines: disciplines, debug: debug}
}

// ExtractFile opens a PDF and extracts its merged record.
func (e *Extractor) ExtractFile(path string) (*Record, error) {
	doc, err := OpenDocument(path)
	if err != nil {
		return nil, &ErrUnusableDocument{Reason: err.Error()}
	}
	return e.Extract(doc)
}

// Extract merges all recognizer output for one document. Every recognizer
// runs even when earlier ones fail, so partial records stay usable. The only
// hard requirements are the unit code and the term; everything else degrades
// to empty/zero and is listed in MissingSections.
func (e *Extractor) Extract(doc *Document) (*Record, error) {
	record := &Record{}

	identityText, _ := doc.Page(pageIdentity)

	identity, identityConf, identityOK := RecognizeUnitIdentity(identityText)
	term, termConf, termOK := RecognizeTermYear(identityText)
	campus, _, campusOK := RecognizeCampusMode(identityText)

	if e.debug {
		log.Printf("Extractor: identity=%v (%s) term=%v (%s) campus=%v",
			identity, identityConf, term, termConf, campus)
	}

	// Minimum viable record check
	if !identityOK {
		return nil, &ErrUnusableDocument{Reason: "unit code not found on identity page"}
	}
	if !termOK {
		return nil, &ErrUnusableDocument{Reason: "term/year not found on identity page"}
	}

	record.UnitCode = identity.Code
	record.Semester = term.Semester
	record.Year = term.Year

	if len(identity.Code) >= 4 {
		record.DisciplineCode = identity.Code[:4]
	}
	record.DisciplineName = e.disciplineName(record.DisciplineCode)

	// Name quality degrades gracefully: a placeholder derived from the
	// discipline beats rejecting an otherwise usable record.
	record.UnitName = identity.Name
	if record.UnitName == "" {
		record.UnitName = record.DisciplineName + " Unit"
	}

	if campusOK {
		record.Location = campus.Location
		record.Availability = campus.Mode
	} else {
		record.Location = "Unknown"
		record.Availability = "Internal"
		record.MissingSections = append(record.MissingSections, "campus")
	}

	e.extractStatistics(doc, record)
	e.extractBenchmarks(doc, record)
	e.extractDetails(doc, record)
	e.extractComments(doc, record)

	return record, nil
}

func (e *Extractor) extractStatistics(doc *Document, record *Record) {
	text, ok := doc.Page(pageStatistics)
	if !ok {
		record.MissingSections = append(record.MissingSections, "statistics", "agreement")
		return
	}

	stats, _, statsOK := RecognizeResponseStats(text)
	if statsOK {
		record.Enrolments = stats.Enrolments
		record.Responses = stats.Responses
		record.ResponseRate = stats.ResponseRate
	} else {
		record.MissingSections = append(record.MissingSections, "statistics")
	}

	agreement, _ := RecognizePercentAgreement(text)
	if overall, ok := agreement[model.QuestionOverall]; ok {
		record.OverallExperience = overall
	}
	if len(agreement) == 0 {
		record.MissingSections = append(record.MissingSections, "agreement")
	}
}

func (e *Extractor) extractBenchmarks(doc *Document, record *Record) {
	text, ok := doc.Page(pageBenchmarks)
	if !ok {
		record.MissingSections = append(record.MissingSections, "benchmarks")
		return
	}

	rows, skipped, conf := RecognizeBenchmarks(text, record.UnitCode)
	if skipped > 0 && e.debug {
		log.Printf("Extractor: %d benchmark levels unresolvable for %s", skipped, record.UnitCode)
	}
	if conf == ConfidenceNone {
		record.MissingSections = append(record.MissingSections, "benchmarks")
		return
	}
	record.Benchmarks = rows
}

func (e *Extractor) extractDetails(doc *Document, record *Record) {
	seen := make(map[model.QuestionKey]bool)

	for idx := pageDetailFirst; idx <= pageDetailLast; idx++ {
		text, ok := doc.Page(idx)
		if !ok {
			break
		}
		for _, key := range model.QuestionKeys() {
			if seen[key] {
				continue
			}
			if result, found := RecognizeQuestionDetail(text, key); found {
				record.DetailedResults = append(record.DetailedResults, result)
				seen[key] = true
			}
		}
	}

	if len(record.DetailedResults) == 0 {
		record.MissingSections = append(record.MissingSections, "detailed_results")
	}
}

func (e *Extractor) extractComments(doc *Document, record *Record) {
	for idx := pageCommentFirst; idx <= pageCommentLast; idx++ {
		text, ok := doc.Page(idx)
		if !ok {
			break
		}
		comments, _, found := RecognizeComments(text)
		if !found {
			continue
		}
		for _, comment := range comments {
			record.Comments = append(record.Comments, CommentEntry{
				Text:           comment,
				SentimentScore: EstimateSentiment(comment),
			})
		}
		return
	}

	record.MissingSections = append(record.MissingSections, "comments")
}

func (e *Extractor) disciplineName(code string) string {
	if name, ok := e.disciplines[code]; ok {
		return name
	}
	return code
}
