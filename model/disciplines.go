package model

import "sort"

// DefaultDisciplineNames returns the discipline catalog shipped with the
// tool. Callers receive a fresh copy; the importer and generator take the
// catalog at construction time rather than sharing mutable state. Codes
// outside the catalog fall back to the code itself as the name.
func DefaultDisciplineNames() map[string]string {
	return map[string]string{
		"ISYS": "Information Systems",
		"COMP": "Computer Science",
		"BUSN": "Business",
		"MKTG": "Marketing",
		"MGMT": "Management",
		"ACCT": "Accounting",
		"ECON": "Economics",
		"FINA": "Finance",
		"STAT": "Statistics",
		"PSYC": "Psychology",
		"BIOL": "Biology",
		"CHEM": "Chemistry",
		"PHYS": "Physics",
		"MATH": "Mathematics",
		"ENGL": "English",
		"HIST": "History",
		"POLI": "Political Science",
		"SOCL": "Sociology",
		"ARTS": "Arts",
		"EDUC": "Education",
	}
}

// SortedDisciplineCodes returns the catalog's codes in a stable order, for
// callers that need deterministic iteration.
func SortedDisciplineCodes(catalog map[string]string) []string {
	codes := make([]string, 0, len(catalog))
	for code := range catalog {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
