package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string

	// Scan settings
	FeatureDirs  []string
	FeatureGlobs []string
	StepDirs     []string
	StepGlobs    []string
	SkipDirs     []string

	// Output settings
	OutputDir      string
	OutputJSONFile string
	HistoryDBFile  string

	// Parse settings
	Workers int
	Strict  bool

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	ProjectPath string
	FeaturePath string
	StepPath    string
	NameFilter  string
	Workers     int
	Strict      bool
	JSON        bool
	Details     bool
	FailUnder   float64
	Steps       bool
	Flat        bool
	Out         string
	Limit       int
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		OutputDir:      DefaultOutputDir,
		OutputJSONFile: DefaultOutputJSONFile,
		HistoryDBFile:  DefaultHistoryDBFile,
		Workers:        DefaultWorkers,
		Flags:          Flags{Workers: DefaultWorkers},
	}
	cfg.FeatureDirs = append([]string(nil), DefaultFeatureDirs...)
	cfg.FeatureGlobs = append([]string(nil), DefaultFeatureGlobs...)
	cfg.StepDirs = append([]string(nil), DefaultStepDirs...)
	cfg.StepGlobs = append([]string(nil), DefaultStepGlobs...)
	cfg.SkipDirs = append([]string(nil), DefaultSkipDirs...)
	return cfg
}

// Load creates a config, applies .env overrides from the project root and
// then applies flags on top.
func Load(flags Flags) *Config {
	cfg := New()
	cfg.Flags = flags

	if flags.ProjectPath != "" {
		cfg.ProjectPath = flags.ProjectPath
	}
	cfg.ApplyEnv()

	if flags.Workers > 0 {
		cfg.Workers = flags.Workers
	}
	if flags.Strict {
		cfg.Strict = true
	}
	return cfg
}

// ApplyEnv reads STEPCOV_* overrides. A missing .env file is fine; plain
// environment variables still apply.
func (c *Config) ApplyEnv() {
	envPath := filepath.Join(c.ProjectPath, ".env")
	_ = godotenv.Load(envPath)

	if v := os.Getenv("STEPCOV_FEATURE_DIRS"); v != "" {
		c.FeatureDirs = splitList(v)
	}
	if v := os.Getenv("STEPCOV_STEP_DIRS"); v != "" {
		c.StepDirs = splitList(v)
	}
	if v := os.Getenv("STEPCOV_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("STEPCOV_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Workers = n
		}
	}
	if v := os.Getenv("STEPCOV_STRICT"); v == "1" || strings.EqualFold(v, "true") {
		c.Strict = true
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GetFeatureDirs returns the feature directories to scan, honoring the
// --feature-path flag when provided.
func (c *Config) GetFeatureDirs() []string {
	if c.Flags.FeaturePath != "" {
		return []string{c.Flags.FeaturePath}
	}
	return c.FeatureDirs
}

// GetStepDirs returns the step definition directories to scan, honoring
// the --step-path flag when provided.
func (c *Config) GetStepDirs() []string {
	if c.Flags.StepPath != "" {
		return []string{c.Flags.StepPath}
	}
	return c.StepDirs
}

// GetOutputPath returns the absolute path of the coverage report JSON file
// (under the project so check and browse always use the same file).
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetHistoryPath returns the absolute path of the coverage history database.
func (c *Config) GetHistoryPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputDir, c.HistoryDBFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
