package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/jobsearch-tracker/internal/review"
	"github.com/jonathan/jobsearch-tracker/internal/schemas"
	"github.com/jonathan/jobsearch-tracker/internal/store"
	"github.com/jonathan/jobsearch-tracker/internal/types"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Stage parsed resume claims for review before they enter the ledger",
	Long: "Create, reconcile and edit review items. Items are read from --in or the record store " +
		"and written to stdout or --out; --save writes the result back to the store. " +
		"Run with --interactive to edit items in a terminal menu.",
	RunE: runReviewInteractive,
}

var reviewCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create review items from parsed resume claims",
	RunE:  runReviewCreate,
}

var reviewRegroupCmd = &cobra.Command{
	Use:   "regroup",
	Short: "Recompute status and autoUse for every review item",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return editReviewItems(cmd, func(items []types.ReviewItem) ([]types.ReviewItem, error) {
			return review.RegroupClaimReviewItems(items), nil
		})
	},
}

var reviewSplitCmd = &cobra.Command{
	Use:   "split <item-id>",
	Short: "Split one review item on its bullet boundaries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editReviewItems(cmd, func(items []types.ReviewItem) ([]types.ReviewItem, error) {
			return review.SplitAt(items, args[0])
		})
	},
}

var reviewMergeCmd = &cobra.Command{
	Use:   "merge <index>",
	Short: "Merge the item at index into the item before it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", args[0], err)
		}
		return editReviewItems(cmd, func(items []types.ReviewItem) ([]types.ReviewItem, error) {
			return review.MergeWithPrevious(items, index)
		})
	},
}

var reviewSetCmd = &cobra.Command{
	Use:   "set <item-id>",
	Short: "Set the included or autoUse flag of one item",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviewSet,
}

var (
	reviewInputFile   string
	reviewOutputFile  string
	reviewSave        bool
	reviewInteractive bool

	reviewSetIncluded bool
	reviewSetAutoUse  bool
)

func init() {
	reviewCmd.PersistentFlags().StringVarP(&reviewInputFile, "in", "i", "", "Path to input JSON file (default: stored review items)")
	reviewCmd.PersistentFlags().StringVarP(&reviewOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	reviewCmd.PersistentFlags().BoolVar(&reviewSave, "save", false, "Replace the stored review items with the result")
	reviewCmd.Flags().BoolVar(&reviewInteractive, "interactive", false, "Edit review items in a terminal menu")

	reviewSetCmd.Flags().BoolVar(&reviewSetIncluded, "included", true, "Import the item when committing")
	reviewSetCmd.Flags().BoolVar(&reviewSetAutoUse, "auto-use", false, "Let the scorer use the committed claims automatically")

	reviewCmd.AddCommand(reviewCreateCmd, reviewRegroupCmd, reviewSplitCmd, reviewMergeCmd, reviewSetCmd)
	rootCmd.AddCommand(reviewCmd)
}

func runReviewCreate(cmd *cobra.Command, _ []string) error {
	if reviewInputFile == "" {
		return fmt.Errorf("--in is required: path to parsed claims JSON")
	}

	var parsed []types.ParsedClaim
	if err := readDocument(cmd, reviewInputFile, schemas.ParsedClaims, &parsed); err != nil {
		return err
	}

	items := review.CreateClaimReviewItems(parsed)
	log.Info("created review items", zap.Int("parsed", len(parsed)), zap.Int("items", len(items)))
	return finishReview(cmd, nil, items)
}

func runReviewSet(cmd *cobra.Command, args []string) error {
	includedSet := cmd.Flags().Changed("included")
	autoUseSet := cmd.Flags().Changed("auto-use")
	if !includedSet && !autoUseSet {
		return fmt.Errorf("set at least one of --included or --auto-use")
	}

	return editReviewItems(cmd, func(items []types.ReviewItem) ([]types.ReviewItem, error) {
		var err error
		if includedSet {
			if items, err = review.SetIncluded(items, args[0], reviewSetIncluded); err != nil {
				return nil, err
			}
		}
		if autoUseSet {
			if items, err = review.SetAutoUse(items, args[0], reviewSetAutoUse); err != nil {
				return nil, err
			}
		}
		return items, nil
	})
}

// editReviewItems loads the review items, applies edit and writes the result
func editReviewItems(cmd *cobra.Command, edit func([]types.ReviewItem) ([]types.ReviewItem, error)) error {
	var st store.Store
	if reviewInputFile == "" || reviewSave {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()
		st = s
	}

	items, err := loadReviewItems(cmd, st, reviewInputFile)
	if err != nil {
		return err
	}

	edited, err := edit(items)
	if err != nil {
		return fmt.Errorf("failed to edit review items: %w", err)
	}
	log.Debug("edited review items", zap.Int("before", len(items)), zap.Int("after", len(edited)))
	return finishReview(cmd, st, edited)
}

// finishReview saves items when --save is set, prints groups when verbose and writes the output.
// st may be nil, in which case it is opened on demand.
func finishReview(cmd *cobra.Command, st store.Store, items []types.ReviewItem) error {
	if reviewSave {
		if st == nil {
			s, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()
			st = s
		}
		if err := saveReviewItems(cmd.Context(), st, items); err != nil {
			return err
		}
		log.Info("saved review items", zap.Int("count", len(items)))
	}

	if p := printer(cmd); p != nil {
		p.PrintReviewGroups(review.GroupClaimReviewItems(items))
	}
	return writeOutput(cmd, reviewOutputFile, items)
}
