// Package config loads the YAML run configuration of an analysis.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-social/pkg/algorithms"
	"github.com/dd0wney/cluso-social/pkg/analysis"
	"github.com/dd0wney/cluso-social/pkg/logging"
	"github.com/dd0wney/cluso-social/pkg/social"
	"github.com/dd0wney/cluso-social/pkg/validation"
	"github.com/dd0wney/cluso-social/pkg/visualization"
)

// DSNEnv overrides provider.dsn
const DSNEnv = "SOCIAL_PG_DSN"

const (
	ProviderMemory   = "memory"
	ProviderPostgres = "postgres"
)

// Config is the root of the YAML file
type Config struct {
	Namespace string         `yaml:"namespace" validate:"required,oneof=id handle"`
	Seeds     []string       `yaml:"seeds" validate:"required,min=1"`
	Provider  ProviderConfig `yaml:"provider"`
	Analysis  AnalysisConfig `yaml:"analysis"`
	Export    ExportConfig   `yaml:"export"`
	Server    ServerConfig   `yaml:"server"`
	LogLevel  string         `yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
}

// ProviderConfig selects where account activity is read from
type ProviderConfig struct {
	Kind string `yaml:"kind" validate:"required,oneof=memory postgres"`
	// Path is a YAML or JSON dataset for the memory provider
	Path string `yaml:"path"`
	DSN  string `yaml:"dsn"`
}

// AnalysisConfig tunes the metric engine and the reports
type AnalysisConfig struct {
	SampleThreshold    int      `yaml:"sample_threshold" validate:"gte=0"`
	Seed               int64    `yaml:"seed"`
	Resolution         float64  `yaml:"resolution"`
	EigenMaxIterations int      `yaml:"eigen_max_iterations"`
	EigenTolerance     float64  `yaml:"eigen_tolerance"`
	Top                int      `yaml:"top"`
	Parallel           bool     `yaml:"parallel"`
	Keywords           []string `yaml:"keywords" validate:"max=100"`
}

// ExportConfig configures node/link exports. Empty Dir and S3Bucket disable the
// corresponding sink.
type ExportConfig struct {
	Dir      string `yaml:"dir"`
	Compress bool   `yaml:"compress"`
	Layout   string `yaml:"layout"`
	S3Bucket string `yaml:"s3_bucket"`
	S3Prefix string `yaml:"s3_prefix"`
}

// ServerConfig enables the GraphQL and metrics endpoints when Addr is set
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Default returns a configuration with every tunable at its default
func Default() *Config {
	b := algorithms.DefaultBetweennessOptions()
	e := algorithms.DefaultEigenvectorOptions()
	l := algorithms.DefaultLouvainOptions()
	return &Config{
		Namespace: "id",
		Provider:  ProviderConfig{Kind: ProviderMemory},
		Analysis: AnalysisConfig{
			SampleThreshold:    b.SampleThreshold,
			Seed:               b.Seed,
			Resolution:         l.Resolution,
			EigenMaxIterations: e.MaxIterations,
			EigenTolerance:     e.Tolerance,
			Top:                10,
			Parallel:           true,
		},
		Export:   ExportConfig{Layout: string(visualization.KindNone)},
		Server:   ServerConfig{ShutdownTimeout: 5 * time.Second},
		LogLevel: "info",
	}
}

// Load reads, overrides from the environment and validates a config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults, applies environment overrides and
// validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides the log level and the Postgres DSN from the environment
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(logging.LevelEnv); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := getenv(DSNEnv); v != "" {
		c.Provider.DSN = v
	}
}

// Validate checks struct tags first, then the cross-field rules
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return err
	}

	cv := validation.NewConfigValidator("config")
	cv.Custom("seeds", func() error {
		return validation.ValidateSeeds(c.Seeds, c.Namespace == "handle")
	})
	cv.When(c.Provider.Kind == ProviderPostgres, func(cv *validation.ConfigValidator) {
		cv.Required("provider.dsn", c.Provider.DSN)
	})
	cv.When(c.Provider.Kind == ProviderMemory, func(cv *validation.ConfigValidator) {
		cv.Required("provider.path", c.Provider.Path)
	})
	cv.Positive("analysis.eigen_max_iterations", c.Analysis.EigenMaxIterations).
		PositiveFloat("analysis.eigen_tolerance", c.Analysis.EigenTolerance).
		PositiveFloat("analysis.resolution", c.Analysis.Resolution).
		RangeInt("analysis.top", c.Analysis.Top, 0, validation.MaxTop)
	cv.Custom("export.layout", func() error {
		_, err := visualization.ParseKind(c.Export.Layout)
		return err
	})
	cv.When(c.Server.Addr != "", func(cv *validation.ConfigValidator) {
		cv.MinDuration("server.shutdown_timeout", c.Server.ShutdownTimeout, 100*time.Millisecond)
	})
	return cv.Validate()
}

// NamespaceValue returns the parsed identifier namespace
func (c *Config) NamespaceValue() social.Namespace {
	ns, err := social.ParseNamespace(c.Namespace)
	if err != nil {
		return social.NamespaceID
	}
	return ns
}

// Identifiers parses the seeds in the configured namespace
func (c *Config) Identifiers() ([]social.Identifier, error) {
	ns := c.NamespaceValue()
	ids := make([]social.Identifier, 0, len(c.Seeds))
	for _, s := range c.Seeds {
		id, err := social.ParseIdentifier(ns, s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// AnalysisOptions maps the analysis section onto the engine options
func (c *Config) AnalysisOptions() analysis.Options {
	opts := analysis.DefaultOptions()
	opts.Betweenness.SampleThreshold = c.Analysis.SampleThreshold
	opts.Betweenness.Seed = c.Analysis.Seed
	opts.Eigenvector.MaxIterations = c.Analysis.EigenMaxIterations
	opts.Eigenvector.Tolerance = c.Analysis.EigenTolerance
	opts.Louvain.Resolution = c.Analysis.Resolution
	opts.Parallel = c.Analysis.Parallel
	return opts
}

// Level returns the configured log level
func (c *Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}

// LayoutKind returns the configured export layout
func (c *Config) LayoutKind() visualization.Kind {
	k, err := visualization.ParseKind(c.Export.Layout)
	if err != nil {
		return visualization.KindNone
	}
	return k
}
