package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/jobsearch-tracker/internal/logger"
	"github.com/jonathan/jobsearch-tracker/internal/review"
	"github.com/jonathan/jobsearch-tracker/internal/types"
)

// Menu entries
const (
	ActionToggleIncluded = "Toggle included"
	ActionToggleAutoUse  = "Toggle auto-use"
	ActionEditText       = "Edit claim text"
	ActionSplit          = "Split on bullet boundaries"
	ActionMerge          = "Merge into previous item"
	ActionBack           = "back"

	MenuSave = "Save and exit"
	MenuQuit = "Quit without saving"
)

var itemActions = []string{ActionToggleIncluded, ActionToggleAutoUse, ActionEditText, ActionSplit, ActionMerge, ActionBack}

var errQuit = errors.New("review aborted")

func runReviewInteractive(cmd *cobra.Command, _ []string) error {
	if !reviewInteractive {
		return cmd.Help()
	}

	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	items, err := loadReviewItems(cmd, st, reviewInputFile)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		log.Info("nothing to review", zap.String("hint", "run 'tracker review create --in parsed.json --save' first"))
		return nil
	}

	edited, err := editInteractively(review.RegroupClaimReviewItems(items))
	if errors.Is(err, errQuit) {
		log.Info("exiting", zap.String("reason", "quit without saving"))
		return nil
	}
	if err != nil {
		return err
	}

	// the interactive editor always writes back to the store
	reviewSave = true
	return finishReview(cmd, st, edited)
}

// editInteractively runs the item menu until the user saves or quits
func editInteractively(items []types.ReviewItem) ([]types.ReviewItem, error) {
	for {
		labels := make([]string, 0, len(items)+2)
		for i, item := range items {
			labels = append(labels, itemLabel(i, item))
		}
		labels = append(labels, MenuSave, MenuQuit)

		prompt := promptui.Select{
			Label: fmt.Sprintf("Review items (%d)", len(items)),
			Items: labels,
			Size:  15,
		}
		index, choice, err := prompt.Run()
		if err != nil {
			return nil, fmt.Errorf("review menu: %w", err)
		}
		switch choice {
		case MenuSave:
			return items, nil
		case MenuQuit:
			return nil, errQuit
		}

		actionPrompt := promptui.Select{
			Label: logger.Truncate(items[index].ClaimText, 60),
			Items: itemActions,
		}
		_, action, err := actionPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("action menu: %w", err)
		}

		text := ""
		if action == ActionEditText {
			textPrompt := promptui.Prompt{
				Label:     "Claim text",
				Default:   items[index].ClaimText,
				AllowEdit: true,
			}
			if text, err = textPrompt.Run(); err != nil {
				return nil, fmt.Errorf("text prompt: %w", err)
			}
		}

		next, msg, err := applyReviewAction(items, index, action, text)
		if err != nil {
			fmt.Println(err)
			continue
		}
		if msg != "" {
			fmt.Println(msg)
		}
		items = next
	}
}

// applyReviewAction applies one menu action to items[index]. Edits that cannot be applied
// return an error and leave items untouched.
func applyReviewAction(items []types.ReviewItem, index int, action, text string) ([]types.ReviewItem, string, error) {
	if index < 0 || index >= len(items) {
		return nil, "", fmt.Errorf("no review item at index %d", index)
	}
	item := items[index]

	switch action {
	case ActionToggleIncluded:
		next, err := review.SetIncluded(items, item.ID, !item.Included)
		return next, "", err
	case ActionToggleAutoUse:
		next, err := review.SetAutoUse(items, item.ID, !item.AutoUse)
		if err != nil {
			return nil, "", err
		}
		if !item.AutoUse && !next[index].AutoUse {
			return next, fmt.Sprintf("auto-use stays off while the item is %s", next[index].Status), nil
		}
		return next, "", nil
	case ActionEditText:
		item.ClaimText = strings.TrimSpace(text)
		next, err := review.UpdateItem(items, item)
		return next, "", err
	case ActionSplit:
		next, err := review.SplitAt(items, item.ID)
		if err != nil {
			return nil, "", err
		}
		return next, fmt.Sprintf("split into %d items", len(next)-len(items)+1), nil
	case ActionMerge:
		next, err := review.MergeWithPrevious(items, index)
		return next, "", err
	case ActionBack:
		return items, "", nil
	default:
		return nil, "", fmt.Errorf("unknown action %q", action)
	}
}

func itemLabel(i int, item types.ReviewItem) string {
	included := "[ ]"
	if item.Included {
		included = "[x]"
	}
	auto := " "
	if item.AutoUse {
		auto = "A"
	}
	status := ""
	if item.Status != types.ReviewActive {
		status = " (" + string(item.Status) + ")"
	}
	return fmt.Sprintf("%3d %s%s %s @ %s%s: %s", i, included, auto, item.Role, item.Company, status,
		logger.Truncate(item.ClaimText, 50))
}
