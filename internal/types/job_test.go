package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJob_Validate(t *testing.T) {
	intPtr := func(v int) *int { return &v }

	tests := []struct {
		name    string
		job     Job
		wantErr bool
	}{
		{
			name: "minimal job",
			job:  Job{ID: "job-1", JobDescription: "Requirements:\n- SQL"},
		},
		{
			name: "full job",
			job:  Job{ID: "job-1", CompMin: intPtr(100000), CompMax: intPtr(150000), OnsiteDaysPerWeek: intPtr(3)},
		},
		{
			name:    "missing id",
			job:     Job{Title: "PM"},
			wantErr: true,
		},
		{
			name:    "negative compensation",
			job:     Job{ID: "job-1", CompMax: intPtr(-1)},
			wantErr: true,
		},
		{
			name:    "more than seven onsite days",
			job:     Job{ID: "job-1", OnsiteDaysPerWeek: intPtr(8)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.job.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResearchBrief_Text(t *testing.T) {
	var nilBrief *ResearchBrief
	assert.Empty(t, nilBrief.Text())

	brief := &ResearchBrief{Summary: "Series A fintech", Products: []string{"Cards", "Payroll"}, Notes: "Raised in 2023"}
	assert.Equal(t, "Series A fintech\nCards\nPayroll\nRaised in 2023", brief.Text())
}
