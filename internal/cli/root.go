// Package cli implements the wordfreq CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/wordfreq/internal/config"
	"github.com/rcliao/wordfreq/internal/logger"
	"github.com/rcliao/wordfreq/internal/store"
)

var (
	cfgPath  string
	dbPath   string
	logLevel string
	cfg      *config.Config
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "wordfreq",
	Short: "Count word and phrase frequencies in a text file",
	Long: "Count phrases from a settings file, remove them from the text, then count the remaining words.\n" +
		"The frequency table is written next to the input as .xlsx or .csv.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := loadConfig(); err != nil {
			exitErr("load config", err)
		}
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Config file (default: $WORDFREQ_CONFIG or ~/.wordfreq/config.yaml)")
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "History database path (default: $WORDFREQ_DB or ~/.wordfreq/history.db)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
}

func loadConfig() error {
	path, required := cfgPath, cfgPath != ""
	if path == "" {
		if env := os.Getenv("WORDFREQ_CONFIG"); env != "" {
			path, required = env, true
		} else {
			path = config.DefaultPath()
		}
	}

	c, err := config.Load(path, required)
	if err != nil {
		return err
	}
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if dbPath != "" {
		c.History.DB = dbPath
	}
	logger.Setup(c.Logging.Level, c.Logging.Format)
	cfg = c
	return nil
}

func getDBPath() string {
	return cfg.History.DB
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
