package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/jobsearch-tracker/internal/schemas"
	"github.com/jonathan/jobsearch-tracker/internal/store"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Read and write raw records in the configured store",
}

var storePutCmd = &cobra.Command{
	Use:   "put <kind> <id> <file>",
	Short: "Store a JSON document, validating it against the kind's schema",
	Args:  cobra.ExactArgs(3),
	RunE:  runStorePut,
}

var storeGetCmd = &cobra.Command{
	Use:   "get <kind> <id>",
	Short: "Print one stored record",
	Args:  cobra.ExactArgs(2),
	RunE:  runStoreGet,
}

var storeListCmd = &cobra.Command{
	Use:   "list <kind>",
	Short: "Print every stored record of a kind, ordered by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreList,
}

var storeDeleteCmd = &cobra.Command{
	Use:   "delete <kind> <id>",
	Short: "Delete one stored record",
	Args:  cobra.ExactArgs(2),
	RunE:  runStoreDelete,
}

var storeOutputFile string

func init() {
	storeCmd.PersistentFlags().StringVarP(&storeOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")

	storeCmd.AddCommand(storePutCmd, storeGetCmd, storeListCmd, storeDeleteCmd)
	rootCmd.AddCommand(storeCmd)
}

// validateRecord checks a single document against the schema for its kind. Claims and review
// items are validated as one-element lists.
func validateRecord(kind store.Kind, data []byte) error {
	switch kind {
	case store.KindJob:
		return schemas.ValidateDocument(schemas.Job, data)
	case store.KindProfile:
		return schemas.ValidateDocument(schemas.Profile, data)
	case store.KindClaim:
		return schemas.ValidateDocument(schemas.Claims, listOf(data))
	case store.KindReview:
		return schemas.ValidateDocument(schemas.ReviewItems, listOf(data))
	default:
		if !json.Valid(data) {
			return fmt.Errorf("%s record is not valid JSON", kind)
		}
		return nil
	}
}

func listOf(data []byte) []byte {
	out := make([]byte, 0, len(data)+2)
	out = append(out, '[')
	out = append(out, data...)
	return append(out, ']')
}

func runStorePut(cmd *cobra.Command, args []string) error {
	kind, err := store.ParseKind(args[0])
	if err != nil {
		return err
	}
	data, err := readInput(cmd, args[2])
	if err != nil {
		return err
	}
	if err := validateRecord(kind, data); err != nil {
		return fmt.Errorf("%s: %w", args[2], err)
	}

	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Put(cmd.Context(), kind, args[1], data); err != nil {
		return fmt.Errorf("failed to store record: %w", err)
	}
	log.Info("stored record", zap.String("kind", string(kind)), zap.String("id", args[1]))
	return nil
}

func runStoreGet(cmd *cobra.Command, args []string) error {
	kind, err := store.ParseKind(args[0])
	if err != nil {
		return err
	}
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	body, err := st.Get(cmd.Context(), kind, args[1])
	if err != nil {
		return fmt.Errorf("failed to load record: %w", err)
	}
	return writeOutput(cmd, storeOutputFile, json.RawMessage(body))
}

func runStoreList(cmd *cobra.Command, args []string) error {
	kind, err := store.ParseKind(args[0])
	if err != nil {
		return err
	}
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	records, err := st.List(cmd.Context(), kind)
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}
	return writeOutput(cmd, storeOutputFile, records)
}

func runStoreDelete(cmd *cobra.Command, args []string) error {
	kind, err := store.ParseKind(args[0])
	if err != nil {
		return err
	}
	st, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Delete(cmd.Context(), kind, args[1]); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	log.Info("deleted record", zap.String("kind", string(kind)), zap.String("id", args[1]))
	return nil
}
