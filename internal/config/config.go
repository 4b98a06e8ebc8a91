// Package config provides configuration loading and validation for the CLI.
// Values come from three layers: built-in defaults, an optional config file
// (plus JOBHUNTER_* environment variables) read through viper, and CLI flags
// bound on top. Later layers win.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/cliffordnwanna/JOB-HUNTER/internal/match"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/posting"
)

// Config is the full application configuration. All fields are optional;
// missing values fall back to defaults or CLI flags.
type Config struct {
	// Inputs
	Resume       string `mapstructure:"resume" json:"resume,omitempty"`
	Query        string `mapstructure:"query" json:"query,omitempty"`
	TaxonomyFile string `mapstructure:"taxonomy_file" json:"taxonomy_file,omitempty"`

	// Candidate preferences
	Titles    []string `mapstructure:"titles" json:"titles,omitempty"`
	Locations []string `mapstructure:"locations" json:"locations,omitempty"`

	// Fetching
	Sources    []string `mapstructure:"sources" json:"sources,omitempty"`
	UseBrowser bool     `mapstructure:"use_browser" json:"use_browser,omitempty"`

	// Filtering
	ExcludeKeywords []string `mapstructure:"exclude_keywords" json:"exclude_keywords,omitempty"`
	MaxAgeDays      int      `mapstructure:"max_age_days" json:"max_age_days,omitempty" validate:"gte=0"`
	MinScore        float64  `mapstructure:"min_score" json:"min_score,omitempty" validate:"gte=0,lte=100"`

	// Ranking
	TopN         int           `mapstructure:"top_n" json:"top_n,omitempty" validate:"gte=0"`
	Concurrency  int           `mapstructure:"concurrency" json:"concurrency,omitempty" validate:"gte=0"`
	EmbedTimeout time.Duration `mapstructure:"embed_timeout" json:"embed_timeout,omitempty" validate:"gte=0"`
	Weights      match.Weights `mapstructure:"weights" json:"weights,omitempty"`

	// Services
	APIKey      string `mapstructure:"api_key" json:"api_key,omitempty"`
	DatabaseURL string `mapstructure:"database_url" json:"database_url,omitempty"`

	// Output
	Verbose  bool   `mapstructure:"verbose" json:"verbose,omitempty"`
	JSONLogs bool   `mapstructure:"json_logs" json:"json_logs,omitempty"`
	Output   string `mapstructure:"output" json:"output,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Query:   "remote",
		TopN:    match.DefaultTopN,
		Weights: match.DefaultWeights(),
	}
}

// NewViper returns a viper instance wired for the jobhunter.yaml config file
// and JOBHUNTER_* environment variables. Keys with underscores map to
// JOBHUNTER_ prefixed, fully uppercased variables.
func NewViper(cfgFile string) *viper.Viper {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("jobhunter")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}
	v.SetEnvPrefix("JOBHUNTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file (when present) and unmarshals the merged viper
// state. A missing config file is not an error; a malformed one is.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Validate checks field ranges and cross-field constraints. Weight problems
// surface as ConfigurationError so callers can treat them as fatal.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if err := c.Weights.Validate(); err != nil {
		return err
	}

	for _, name := range c.Sources {
		if _, err := posting.ParseSource(name); err != nil {
			return &match.ConfigurationError{
				Message: fmt.Sprintf("unknown source %q in config", name),
			}
		}
	}

	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("resume file not found: %s", c.Resume)
		}
	}
	if c.TaxonomyFile != "" {
		if _, err := os.Stat(c.TaxonomyFile); os.IsNotExist(err) {
			return fmt.Errorf("taxonomy file not found: %s", c.TaxonomyFile)
		}
	}

	return nil
}

// MergeWithDefaults fills unset fields from defaults. Booleans are not
// merged; flags always win for those.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Query == "" {
		result.Query = defaults.Query
	}
	if result.TaxonomyFile == "" {
		result.TaxonomyFile = defaults.TaxonomyFile
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.TopN == 0 {
		result.TopN = defaults.TopN
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.MaxAgeDays == 0 {
		result.MaxAgeDays = defaults.MaxAgeDays
	}
	if result.MinScore == 0 {
		result.MinScore = defaults.MinScore
	}
	if result.EmbedTimeout == 0 {
		result.EmbedTimeout = defaults.EmbedTimeout
	}
	if len(result.Sources) == 0 {
		result.Sources = defaults.Sources
	}
	if len(result.Titles) == 0 {
		result.Titles = defaults.Titles
	}
	if len(result.Locations) == 0 {
		result.Locations = defaults.Locations
	}
	if len(result.ExcludeKeywords) == 0 {
		result.ExcludeKeywords = defaults.ExcludeKeywords
	}
	if result.Weights == (match.Weights{}) {
		result.Weights = defaults.Weights
	}

	return result
}

// ParsedSources resolves the configured source names. An empty list means
// all known boards.
func (c *Config) ParsedSources() ([]posting.Source, error) {
	if len(c.Sources) == 0 {
		return posting.AllSources(), nil
	}
	sources := make([]posting.Source, 0, len(c.Sources))
	for _, name := range c.Sources {
		src, err := posting.ParseSource(name)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}
