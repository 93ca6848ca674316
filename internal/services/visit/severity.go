package visit

import "breadroute/internal/models"

// severityRank orders problem severities from none to critical.
var severityRank = map[string]int{
	models.SeverityNone:     0,
	models.SeverityLow:      1,
	models.SeverityMedium:   2,
	models.SeverityHigh:     3,
	models.SeverityCritical: 4,
}

// MaxSeverity returns the highest severity across a visit's problems, or
// "none" for an empty list. This is the single derivation point for a
// visit's ProblemSeverity field; every write path must go through it.
func MaxSeverity(problems []models.VisitProblem) string {
	max := models.SeverityNone
	for _, p := range problems {
		if severityRank[p.Severity] > severityRank[max] {
			max = p.Severity
		}
	}
	return max
}

// ValidSeverity reports whether s is a known problem severity.
func ValidSeverity(s string) bool {
	_, ok := severityRank[s]
	return ok && s != models.SeverityNone
}
