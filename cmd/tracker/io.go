package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobsearch-tracker/internal/ledger"
	"github.com/jonathan/jobsearch-tracker/internal/observability"
	"github.com/jonathan/jobsearch-tracker/internal/schemas"
	"github.com/jonathan/jobsearch-tracker/internal/store"
	"github.com/jonathan/jobsearch-tracker/internal/types"
)

// readInput reads path, or stdin when path is "-"
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return data, nil
}

// readDocument reads a JSON document, validates it against the named schema and decodes it into v
func readDocument(cmd *cobra.Command, path, schema string, v any) error {
	data, err := readInput(cmd, path)
	if err != nil {
		return err
	}
	if err := schemas.ValidateDocument(schema, data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// writeOutput writes v as indented JSON to path, or to the command output when path is empty
func writeOutput(cmd *cobra.Command, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// printer returns the verbose summary printer, or nil when --verbose is off
func printer(cmd *cobra.Command) *observability.Printer {
	if cfg == nil || !cfg.Verbose {
		return nil
	}
	return observability.NewPrinter(cmd.ErrOrStderr())
}

func openStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, cfg.StoreOptions(), log)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store.Driver, err)
	}
	return st, nil
}

// loadClaims reads a claims snapshot from path, or every stored claim when path is empty
func loadClaims(cmd *cobra.Command, st store.Store, path string) ([]types.Claim, error) {
	if path != "" {
		data, err := readInput(cmd, path)
		if err != nil {
			return nil, err
		}
		if err := schemas.ValidateDocument(schemas.Claims, data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		claims, err := ledger.ParseClaims(data)
		if err != nil {
			return nil, fmt.Errorf("failed to load claims: %w", err)
		}
		return claims, nil
	}

	claims, err := store.NewTable[types.Claim](st, store.KindClaim).List(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to list stored claims: %w", err)
	}
	return ledger.NormalizeClaims(claims), nil
}

// saveClaims replaces the stored claims with the snapshot, deleting ids it no longer holds
func saveClaims(ctx context.Context, st store.Store, claims []types.Claim) error {
	table := store.NewTable[types.Claim](st, store.KindClaim)
	keep := make(map[string]bool, len(claims))
	for _, c := range claims {
		keep[c.ID] = true
		if err := table.Put(ctx, c.ID, c); err != nil {
			return fmt.Errorf("failed to store claim: %w", err)
		}
	}
	return pruneKind(ctx, st, store.KindClaim, keep)
}

// loadReviewItems reads review items from path, or every stored item when path is empty
func loadReviewItems(cmd *cobra.Command, st store.Store, path string) ([]types.ReviewItem, error) {
	if path != "" {
		var items []types.ReviewItem
		if err := readDocument(cmd, path, schemas.ReviewItems, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	items, err := store.NewTable[types.ReviewItem](st, store.KindReview).List(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to list stored review items: %w", err)
	}
	return items, nil
}

// saveReviewItems replaces the stored review items with items
func saveReviewItems(ctx context.Context, st store.Store, items []types.ReviewItem) error {
	table := store.NewTable[types.ReviewItem](st, store.KindReview)
	keep := make(map[string]bool, len(items))
	for _, item := range items {
		keep[item.ID] = true
		if err := table.Put(ctx, item.ID, item); err != nil {
			return fmt.Errorf("failed to store review item: %w", err)
		}
	}
	return pruneKind(ctx, st, store.KindReview, keep)
}

func pruneKind(ctx context.Context, st store.Store, kind store.Kind, keep map[string]bool) error {
	records, err := st.List(ctx, kind)
	if err != nil {
		return fmt.Errorf("failed to list stored %s records: %w", kind, err)
	}
	for _, r := range records {
		if keep[r.ID] {
			continue
		}
		if err := st.Delete(ctx, kind, r.ID); err != nil {
			return fmt.Errorf("failed to delete stale %s record: %w", kind, err)
		}
	}
	return nil
}
