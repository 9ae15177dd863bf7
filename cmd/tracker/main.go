// Package main provides the tracker CLI for scoring jobs and curating the claims ledger.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/jobsearch-tracker/internal/config"
	"github.com/jonathan/jobsearch-tracker/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "tracker",
	Short: "Job-search tracker",
	Long: "Tracker extracts requirements from job postings, curates a ledger of career claims " +
		"through a review step, and scores each job against your profile and evidence.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

var (
	cfgFile string

	// set by setup before any command runs
	cfg *config.Config
	log = zap.NewNop()
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Path to config file (default ./tracker.yaml)")
	flags.Bool("json", false, "Log in JSON format")
	flags.Bool("debug", false, "Enable debug logging")
	flags.BoolP("verbose", "v", false, "Print human-readable summaries to stderr")
	flags.String("store-driver", "", "Record store driver: file, postgres or redis")
	flags.String("store-path", "", "Directory for the file store")
	flags.String("database-url", "", "PostgreSQL URL for the postgres store")
	flags.String("redis-addr", "", "Redis address for the redis store")
}

// flagKeys maps persistent flags to config keys
var flagKeys = map[string]string{
	"json":         "log.json",
	"debug":        "log.debug",
	"verbose":      "verbose",
	"store-driver": "store.driver",
	"store-path":   "store.path",
	"database-url": "store.database-url",
	"redis-addr":   "store.redis-addr",
}

// setup loads the configuration and builds the logger for the command about to run
func setup(cmd *cobra.Command, _ []string) error {
	v := config.NewViper()
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}

	loaded, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	l, err := logger.New(loaded.Log.JSON, loaded.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	cfg = loaded
	log = l
	log.Debug("loaded config", zap.String("store", cfg.Store.Driver), zap.String("command", cmd.CommandPath()))
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	err := rootCmd.Execute()
	_ = log.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
