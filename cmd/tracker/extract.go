package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/jobsearch-tracker/internal/parsing"
	"github.com/jonathan/jobsearch-tracker/internal/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [description-file]",
	Short: "Extract requirements from a job description",
	Long: "Extract structured requirements from a plain-text job description, or from a JSON array " +
		"of lines produced by a document extractor (--lines). Use - to read stdin.",
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

var (
	extractLinesFile  string
	extractOutputFile string
)

func init() {
	extractCmd.Flags().StringVar(&extractLinesFile, "lines", "", "Path to a JSON array of extracted text lines")
	extractCmd.Flags().StringVarP(&extractOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if (len(args) == 1) == (extractLinesFile != "") {
		return fmt.Errorf("provide either a description file or --lines")
	}

	var reqs []types.Requirement
	if extractLinesFile != "" {
		data, err := readInput(cmd, extractLinesFile)
		if err != nil {
			return err
		}
		var lines []string
		if err := json.Unmarshal(data, &lines); err != nil {
			return fmt.Errorf("failed to parse lines file: %w", err)
		}
		reqs = parsing.ExtractRequirementsFromLines(lines)
	} else {
		data, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}
		reqs = parsing.ExtractRequirements(string(data))
	}

	if reqs == nil {
		reqs = []types.Requirement{}
	}
	log.Debug("extracted requirements", zap.Int("count", len(reqs)))
	if p := printer(cmd); p != nil {
		p.PrintRequirements(reqs)
	}
	return writeOutput(cmd, extractOutputFile, reqs)
}
