package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/jobsearch-tracker/internal/ledger"
	"github.com/jonathan/jobsearch-tracker/internal/store"
	"github.com/jonathan/jobsearch-tracker/internal/types"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Inspect and maintain the claims ledger",
	Long: "Inspect and maintain the claims ledger. Claims are read from --claims or the record store; " +
		"merge writes back to the store unless --claims is given.",
}

var ledgerBundlesCmd = &cobra.Command{
	Use:   "bundles",
	Short: "Fold claims into one bundle per experience",
	RunE: func(cmd *cobra.Command, _ []string) error {
		claims, err := ledgerClaims(cmd)
		if err != nil {
			return err
		}
		bundles := ledger.BuildExperienceBundles(claims)
		if p := printer(cmd); p != nil {
			p.PrintBundles(bundles)
		}
		return writeOutput(cmd, ledgerOutputFile, bundles)
	},
}

var ledgerQueueCmd = &cobra.Command{
	Use:   "queue",
	Short: "List claims that still need review, lowest confidence first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		claims, err := ledgerClaims(cmd)
		if err != nil {
			return err
		}
		queue := ledger.ClaimReviewQueue(claims)
		if p := printer(cmd); p != nil {
			p.PrintClaimQueue(queue)
		}
		return writeOutput(cmd, ledgerOutputFile, queue)
	},
}

var ledgerGroupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Group claims by type",
	RunE: func(cmd *cobra.Command, _ []string) error {
		claims, err := ledgerClaims(cmd)
		if err != nil {
			return err
		}
		return writeOutput(cmd, ledgerOutputFile, ledger.GroupClaimsByType(claims))
	},
}

var ledgerDuplicatesCmd = &cobra.Command{
	Use:   "duplicates",
	Short: "Find experiences that share company, role and dates",
	RunE: func(cmd *cobra.Command, _ []string) error {
		claims, err := ledgerClaims(cmd)
		if err != nil {
			return err
		}
		groups := ledger.FindDuplicateClaimGroups(claims)
		if p := printer(cmd); p != nil {
			p.PrintDuplicateGroups(groups)
		}
		return writeOutput(cmd, ledgerOutputFile, groups)
	},
}

var ledgerMergeCmd = &cobra.Command{
	Use:   "merge <target-id> <source-id>...",
	Short: "Merge source claims into a target claim",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runLedgerMerge,
}

var ledgerValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check every claim against the ledger rules",
	RunE:  runLedgerValidate,
}

var (
	ledgerClaimsFile string
	ledgerOutputFile string
)

func init() {
	ledgerCmd.PersistentFlags().StringVarP(&ledgerClaimsFile, "claims", "c", "", "Path to claims JSON file (default: stored claims)")
	ledgerCmd.PersistentFlags().StringVarP(&ledgerOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")

	ledgerCmd.AddCommand(ledgerBundlesCmd, ledgerQueueCmd, ledgerGroupsCmd, ledgerDuplicatesCmd, ledgerMergeCmd, ledgerValidateCmd)
	rootCmd.AddCommand(ledgerCmd)
}

func ledgerClaims(cmd *cobra.Command) ([]types.Claim, error) {
	if ledgerClaimsFile != "" {
		return loadClaims(cmd, nil, ledgerClaimsFile)
	}
	st, err := openStore(cmd.Context())
	if err != nil {
		return nil, err
	}
	defer st.Close()
	return loadClaims(cmd, st, "")
}

func runLedgerMerge(cmd *cobra.Command, args []string) error {
	target, sources := args[0], args[1:]

	var st store.Store
	if ledgerClaimsFile == "" {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()
		st = s
	}

	claims, err := loadClaims(cmd, st, ledgerClaimsFile)
	if err != nil {
		return err
	}

	merged, err := ledger.MergeClaims(claims, target, sources)
	if err != nil {
		return fmt.Errorf("failed to merge claims: %w", err)
	}
	log.Info("merged claims", zap.String("target", target), zap.Strings("sources", sources))

	if st != nil {
		if err := saveClaims(cmd.Context(), st, merged); err != nil {
			return err
		}
	}
	return writeOutput(cmd, ledgerOutputFile, merged)
}

// ClaimProblem is one claim that fails validation
type ClaimProblem struct {
	ID      string                `json:"id"`
	Type    types.ClaimType       `json:"type"`
	Code    ledger.ValidationCode `json:"code"`
	Message string                `json:"message"`
}

func runLedgerValidate(cmd *cobra.Command, _ []string) error {
	claims, err := ledgerClaims(cmd)
	if err != nil {
		return err
	}

	problems := make([]ClaimProblem, 0)
	for _, c := range claims {
		err := ledger.ValidateClaimContext(ledger.InputFromClaim(c), claims)
		var verr *ledger.ValidationError
		if errors.As(err, &verr) {
			problems = append(problems, ClaimProblem{ID: c.ID, Type: c.Type, Code: verr.Code, Message: verr.Message})
		} else if err != nil {
			return fmt.Errorf("failed to validate claim %s: %w", c.ID, err)
		}
	}

	if err := writeOutput(cmd, ledgerOutputFile, problems); err != nil {
		return err
	}
	if len(problems) > 0 {
		ids := make([]string, 0, len(problems))
		for _, p := range problems {
			ids = append(ids, p.ID)
		}
		return fmt.Errorf("%d of %d claims are invalid: %s", len(problems), len(claims), strings.Join(ids, ", "))
	}
	log.Info("ledger is valid", zap.Int("claims", len(claims)))
	return nil
}
