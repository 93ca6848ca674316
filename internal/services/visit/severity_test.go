package visit

import (
	"testing"

	"breadroute/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestMaxSeverity(t *testing.T) {
	tests := []struct {
		name     string
		problems []models.VisitProblem
		want     string
	}{
		{
			name:     "no problems means none",
			problems: nil,
			want:     models.SeverityNone,
		},
		{
			name:     "single problem",
			problems: []models.VisitProblem{{Severity: models.SeverityLow}},
			want:     models.SeverityLow,
		},
		{
			name: "highest wins regardless of order",
			problems: []models.VisitProblem{
				{Severity: models.SeverityHigh},
				{Severity: models.SeverityCritical},
				{Severity: models.SeverityLow},
			},
			want: models.SeverityCritical,
		},
		{
			name: "medium over low",
			problems: []models.VisitProblem{
				{Severity: models.SeverityLow},
				{Severity: models.SeverityMedium},
			},
			want: models.SeverityMedium,
		},
		{
			name:     "unknown severity ranks below low",
			problems: []models.VisitProblem{{Severity: "bogus"}, {Severity: models.SeverityLow}},
			want:     models.SeverityLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaxSeverity(tt.problems))
		})
	}
}

func TestValidSeverity(t *testing.T) {
	for _, s := range []string{models.SeverityLow, models.SeverityMedium, models.SeverityHigh, models.SeverityCritical} {
		assert.True(t, ValidSeverity(s), s)
	}

	// "none" is a derived resting state, not a reportable severity.
	assert.False(t, ValidSeverity(models.SeverityNone))
	assert.False(t, ValidSeverity("urgent"))
	assert.False(t, ValidSeverity(""))
}
