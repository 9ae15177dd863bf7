package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/jobsearch-tracker/internal/schemas"
	"github.com/jonathan/jobsearch-tracker/internal/scoring"
	"github.com/jonathan/jobsearch-tracker/internal/store"
	"github.com/jonathan/jobsearch-tracker/internal/types"
)

// DefaultProfileID is the stored profile used when --profile and --profile-id are not given
const DefaultProfileID = "default"

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a job against your profile and claims ledger",
	Long: "Score one job (--job file or --job-id) or every stored job (--all) against a profile and " +
		"claims snapshot. Inputs not given as files are read from the record store.",
	RunE: runScore,
}

var (
	scoreJobFile     string
	scoreJobID       string
	scoreProfileFile string
	scoreProfileID   string
	scoreClaimsFile  string
	scoreAll         bool
	scoreSave        bool
	scoreAutoUseOnly bool
	scoreAsOf        string
	scoreOutputFile  string
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreJobFile, "job", "j", "", "Path to job JSON file")
	scoreCmd.Flags().StringVar(&scoreJobID, "job-id", "", "Stored job id to score")
	scoreCmd.Flags().StringVarP(&scoreProfileFile, "profile", "p", "", "Path to profile JSON file")
	scoreCmd.Flags().StringVar(&scoreProfileID, "profile-id", DefaultProfileID, "Stored profile id")
	scoreCmd.Flags().StringVarP(&scoreClaimsFile, "claims", "c", "", "Path to claims JSON file (default: stored claims)")
	scoreCmd.Flags().BoolVar(&scoreAll, "all", false, "Score every stored job")
	scoreCmd.Flags().BoolVar(&scoreSave, "save", false, "Store score results under the job id")
	scoreCmd.Flags().BoolVar(&scoreAutoUseOnly, "auto-use-only", false, "Only match claims marked for automatic use")
	scoreCmd.Flags().StringVar(&scoreAsOf, "as-of", "", "Score as of this date (YYYY-MM-DD), default today")
	scoreCmd.Flags().StringVarP(&scoreOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")

	rootCmd.AddCommand(scoreCmd)
}

// clock is swapped in tests
var clock = time.Now

// resolveAsOf pins the scoring clock to the start of a UTC day so repeated runs on the same
// inputs agree.
func resolveAsOf(value string) (time.Time, error) {
	if value == "" {
		return clock().UTC().Truncate(24 * time.Hour), nil
	}
	asOf, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --as-of date: %w", err)
	}
	return asOf, nil
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	jobSources := 0
	for _, set := range []bool{scoreJobFile != "", scoreJobID != "", scoreAll} {
		if set {
			jobSources++
		}
	}
	if jobSources != 1 {
		return fmt.Errorf("exactly one of --job, --job-id or --all is required")
	}

	opts := scoring.Options{
		FollowUp:    cfg.FollowUp(),
		AutoUseOnly: cfg.Scoring.AutoUseOnly || scoreAutoUseOnly,
	}
	asOf, err := resolveAsOf(scoreAsOf)
	if err != nil {
		return err
	}
	opts.Now = asOf

	var st store.Store
	if scoreJobFile == "" || scoreProfileFile == "" || scoreClaimsFile == "" || scoreSave {
		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()
		st = s
	}

	profile, err := loadProfile(cmd, st)
	if err != nil {
		return err
	}
	if profile.ScoringPolicy.SeedStage == "" {
		profile.ScoringPolicy.SeedStage = cfg.Scoring.SeedStagePolicy
	}

	claims, err := loadClaims(cmd, st, scoreClaimsFile)
	if err != nil {
		return err
	}

	var results []types.ScoreResult
	if scoreAll {
		jobs, err := store.NewTable[types.Job](st, store.KindJob).List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list stored jobs: %w", err)
		}
		log.Info("scoring stored jobs", zap.Int("jobs", len(jobs)), zap.Int("claims", len(claims)))
		results, err = scoring.ScoreJobs(ctx, jobs, profile, claims, opts, cfg.Scoring.BatchLimit)
		if err != nil {
			return fmt.Errorf("failed to score jobs: %w", err)
		}
	} else {
		job, err := loadJob(cmd, st)
		if err != nil {
			return err
		}
		results = []types.ScoreResult{scoring.ScoreJob(job, profile, claims, opts)}
	}

	if scoreSave {
		scores := store.NewTable[types.ScoreResult](st, store.KindScore)
		for _, r := range results {
			if err := scores.Put(ctx, r.JobID, r); err != nil {
				return fmt.Errorf("failed to save score for job %s: %w", r.JobID, err)
			}
		}
		log.Info("saved score results", zap.Int("count", len(results)))
	}

	if p := printer(cmd); p != nil {
		for _, r := range results {
			p.PrintScoreResult("Fit score: "+r.JobID, &r)
		}
	}

	for _, r := range results {
		log.Debug("scored job", zap.String("job", r.JobID), zap.Int("score", r.FitScore), zap.String("label", r.FitLabel))
	}

	if scoreAll {
		return writeOutput(cmd, scoreOutputFile, results)
	}
	return writeOutput(cmd, scoreOutputFile, results[0])
}

func loadJob(cmd *cobra.Command, st store.Store) (types.Job, error) {
	var job types.Job
	if scoreJobFile != "" {
		if err := readDocument(cmd, scoreJobFile, schemas.Job, &job); err != nil {
			return job, err
		}
	} else {
		stored, err := store.NewTable[types.Job](st, store.KindJob).Get(cmd.Context(), scoreJobID)
		if err != nil {
			return job, fmt.Errorf("failed to load job: %w", err)
		}
		job = stored
	}
	if err := job.Validate(); err != nil {
		return job, fmt.Errorf("invalid job: %w", err)
	}
	return job, nil
}

func loadProfile(cmd *cobra.Command, st store.Store) (types.Profile, error) {
	var profile types.Profile
	if scoreProfileFile != "" {
		if err := readDocument(cmd, scoreProfileFile, schemas.Profile, &profile); err != nil {
			return profile, err
		}
	} else {
		stored, err := store.NewTable[types.Profile](st, store.KindProfile).Get(cmd.Context(), scoreProfileID)
		if err != nil {
			return profile, fmt.Errorf("failed to load profile: %w", err)
		}
		profile = stored
	}
	if err := profile.Validate(); err != nil {
		return profile, fmt.Errorf("invalid profile: %w", err)
	}
	return profile, nil
}
