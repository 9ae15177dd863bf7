package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobsearch-tracker/internal/store"
	"github.com/jonathan/jobsearch-tracker/internal/types"
)

func TestScoreCommand_FromFiles(t *testing.T) {
	dir := t.TempDir()
	job := writeFile(t, dir, "job.json", lifecycleJobJSON(t, "job-1"))
	profile := writeFile(t, dir, "profile.json", lifecycleProfileJSON)
	claims := writeFile(t, dir, "claims.json", lifecycleClaimsJSON)

	out, _, err := execute(t, dir, "score", "--job", job, "--profile", profile, "--claims", claims, "--as-of", "2024-06-01")
	require.NoError(t, err)

	result := decode[types.ScoreResult](t, out)
	assert.Equal(t, "job-1", result.JobID)
	assert.Equal(t, 66, result.FitScore)
	assert.Equal(t, types.FitGood, result.FitLabel)
	assert.Equal(t, result.Breakdown.Total(), result.FitScore)
	assert.Empty(t, result.Disqualifiers)
	assert.Len(t, result.RequirementsExtracted, 7)
	assert.Nil(t, result.NextFollowUp)
}

func TestScoreCommand_BelowFloorIsDisqualified(t *testing.T) {
	dir := t.TempDir()
	job := writeFile(t, dir, "job.json", `{"id": "job-2", "job_description": "Requirements:\n- Advanced SQL", "comp_max": 120000}`)
	profile := writeFile(t, dir, "profile.json", `{"comp_floor": 150000}`)
	claims := writeFile(t, dir, "claims.json", `[]`)

	out, _, err := execute(t, dir, "score", "-j", job, "-p", profile, "-c", claims)
	require.NoError(t, err)

	result := decode[types.ScoreResult](t, out)
	assert.Equal(t, 0, result.FitScore)
	assert.Equal(t, types.FitPass, result.FitLabel)
	assert.Equal(t, []string{"compensation $120,000 is below your floor of $150,000"}, result.Disqualifiers)
}

func TestScoreCommand_ConfigSeedPolicyApplies(t *testing.T) {
	dir := t.TempDir()
	job := writeFile(t, dir, "job.json", `{"id": "job-3", "job_description": "We are a seed-stage startup building software for marketers."}`)
	profile := writeFile(t, dir, "profile.json", `{}`)
	claims := writeFile(t, dir, "claims.json", `[]`)
	t.Setenv("TRACKER_SCORING_SEED_STAGE_POLICY", "disqualify")

	out, _, err := execute(t, dir, "score", "-j", job, "-p", profile, "-c", claims)
	require.NoError(t, err)

	result := decode[types.ScoreResult](t, out)
	assert.Equal(t, 0, result.FitScore)
	require.Len(t, result.Disqualifiers, 1)
	assert.Contains(t, result.Disqualifiers[0], "seed-stage")
}

func TestScoreCommand_AllStoredJobsAndSave(t *testing.T) {
	dir := t.TempDir()
	data := t.TempDir()

	for _, id := range []string{"job-b", "job-a"} {
		path := writeFile(t, dir, id+".json", lifecycleJobJSON(t, id))
		_, _, err := execute(t, data, "store", "put", "job", id, path)
		require.NoError(t, err)
	}
	profile := writeFile(t, dir, "profile.json", lifecycleProfileJSON)
	_, _, err := execute(t, data, "store", "put", "profile", DefaultProfileID, profile)
	require.NoError(t, err)
	claims := writeFile(t, dir, "claims.json", lifecycleClaimsJSON)

	out, _, err := execute(t, data, "score", "--all", "--save", "--claims", claims, "--as-of", "2024-06-01")
	require.NoError(t, err)

	results := decode[[]types.ScoreResult](t, out)
	require.Len(t, results, 2)
	// stored jobs are listed in id order
	assert.Equal(t, "job-a", results[0].JobID)
	assert.Equal(t, "job-b", results[1].JobID)
	assert.Equal(t, results[0].FitScore, results[1].FitScore)

	out, _, err = execute(t, data, "store", "list", "score")
	require.NoError(t, err)
	records := decode[[]store.Record](t, out)
	require.Len(t, records, 2)
	assert.Equal(t, "job-a", records[0].ID)
}

func TestScoreCommand_FlagsValidation(t *testing.T) {
	dir := t.TempDir()
	job := writeFile(t, dir, "job.json", lifecycleJobJSON(t, "job-1"))

	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{
			name:        "no job source",
			args:        []string{"score"},
			errorString: "exactly one of --job, --job-id or --all",
		},
		{
			name:        "two job sources",
			args:        []string{"score", "--job", job, "--all"},
			errorString: "exactly one of --job, --job-id or --all",
		},
		{
			name:        "bad as-of date",
			args:        []string{"score", "--job", job, "--as-of", "June 1"},
			errorString: "invalid --as-of date",
		},
		{
			name:        "missing stored profile",
			args:        []string{"score", "--job", job},
			errorString: "failed to load profile",
		},
		{
			name:        "invalid job document",
			args:        []string{"score", "--job", writeFile(t, dir, "bad.json", `{"title": "no id"}`), "--profile", writeFile(t, dir, "p.json", `{}`)},
			errorString: "validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, t.TempDir(), tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestScoreCommand_VerbosePrintsSummary(t *testing.T) {
	dir := t.TempDir()
	job := writeFile(t, dir, "job.json", lifecycleJobJSON(t, "job-1"))
	profile := writeFile(t, dir, "profile.json", lifecycleProfileJSON)
	claims := writeFile(t, dir, "claims.json", lifecycleClaimsJSON)
	out := writeFile(t, dir, "score.json", "")

	stdout, stderr, err := execute(t, dir, "--verbose", "score", "-j", job, "-p", profile, "-c", claims, "-o", out)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Fit score: job-1")
}

func TestResolveAsOf(t *testing.T) {
	orig := clock
	t.Cleanup(func() { clock = orig })

	clock = func() time.Time { return time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC) }
	morning, err := resolveAsOf("")
	require.NoError(t, err)
	clock = func() time.Time { return time.Date(2024, 6, 1, 22, 15, 0, 0, time.UTC) }
	evening, err := resolveAsOf("")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), morning)
	assert.Equal(t, morning, evening)

	asOf, err := resolveAsOf("2023-01-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), asOf)

	_, err = resolveAsOf("15/01/2023")
	assert.ErrorContains(t, err, "invalid --as-of date")
}
