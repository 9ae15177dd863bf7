package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/jobsearch-tracker/internal/intake"
	"github.com/jonathan/jobsearch-tracker/internal/store"
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Import the included review items into the claims ledger",
	Long: "Commit included review items into the claims ledger. With --claims the snapshot is read " +
		"from the file and the new snapshot is written to stdout or --out; otherwise the stored " +
		"claims are updated in place.",
	RunE: runCommit,
}

var (
	commitItemsFile  string
	commitClaimsFile string
	commitOutputFile string
)

func init() {
	commitCmd.Flags().StringVar(&commitItemsFile, "items", "", "Path to review items JSON file (default: stored review items)")
	commitCmd.Flags().StringVarP(&commitClaimsFile, "claims", "c", "", "Path to claims JSON file (default: stored claims)")
	commitCmd.Flags().StringVarP(&commitOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")

	rootCmd.AddCommand(commitCmd)
}

func runCommit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	var st store.Store
	if commitItemsFile == "" || commitClaimsFile == "" {
		s, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()
		st = s
	}

	items, err := loadReviewItems(cmd, st, commitItemsFile)
	if err != nil {
		return err
	}
	existing, err := loadClaims(cmd, st, commitClaimsFile)
	if err != nil {
		return err
	}

	claims, err := intake.Commit(items, existing, intake.Options{})
	if err != nil {
		return fmt.Errorf("failed to commit review items: %w", err)
	}
	log.Info("committed review items",
		zap.Int("items", len(items)),
		zap.Int("claims_before", len(existing)),
		zap.Int("claims_after", len(claims)),
	)

	if commitClaimsFile == "" {
		if err := saveClaims(ctx, st, claims); err != nil {
			return err
		}
	}

	if p := printer(cmd); p != nil {
		p.PrintClaimQueue(claims)
	}
	return writeOutput(cmd, commitOutputFile, claims)
}
