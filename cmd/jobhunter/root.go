package main

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/cliffordnwanna/JOB-HUNTER/internal/config"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/logger"
)

var (
	cfgFile      string
	flagVerbose  bool
	flagJSONLogs bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (default: jobhunter.yaml in current directory or home)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.PersistentFlags().BoolVar(&flagJSONLogs, "json-logs", false, "JSON format for logging")
}

// loadConfig builds the effective configuration: file and environment via
// viper, defaults for the rest, persistent flags on top. Command flags are
// applied by each command after this returns.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(config.NewViper(cfgFile))
	if err != nil {
		return config.Config{}, err
	}

	merged := cfg.MergeWithDefaults(config.Defaults())
	if flagVerbose {
		merged.Verbose = true
	}
	if flagJSONLogs {
		merged.JSONLogs = true
	}
	if merged.APIKey == "" {
		merged.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if merged.DatabaseURL == "" {
		merged.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	return merged, nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	log, err := logger.New(cfg.JSONLogs, cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}

func writeJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
