package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfile_Validate(t *testing.T) {
	intPtr := func(v int) *int { return &v }

	tests := []struct {
		name    string
		profile Profile
		wantErr bool
	}{
		{
			name:    "empty profile",
			profile: Profile{},
		},
		{
			name: "with filters",
			profile: Profile{
				CompFloor:     120000,
				HardFilters:   HardFilters{MinSalary: 130000, MaxOnsiteDaysPerWeek: intPtr(2), MaxTravelPercent: intPtr(25)},
				ScoringPolicy: ScoringPolicy{SeedStage: SeedStageDisqualify},
			},
		},
		{
			name:    "negative floor",
			profile: Profile{CompFloor: -5},
			wantErr: true,
		},
		{
			name:    "travel above 100 percent",
			profile: Profile{HardFilters: HardFilters{MaxTravelPercent: intPtr(120)}},
			wantErr: true,
		},
		{
			name:    "unknown seed policy",
			profile: Profile{ScoringPolicy: ScoringPolicy{SeedStage: "ignore"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProfile_SeedStagePolicy(t *testing.T) {
	p := Profile{}
	assert.Equal(t, SeedStageWarn, p.SeedStagePolicy())

	p.ScoringPolicy.SeedStage = SeedStageDisqualify
	assert.Equal(t, SeedStageDisqualify, p.SeedStagePolicy())
}
