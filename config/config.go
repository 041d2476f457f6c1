package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/BurntSushi/toml"
	"github.com/ghodss/yaml"
)

// Config is the root configuration structure.
type Config struct {
	VCS        VCSConfig        `json:"vcs" toml:"vcs"`
	Extraction ExtractionConfig `json:"extraction" toml:"extraction"`
	Output     OutputConfig     `json:"output" toml:"output"`
	Chart      ChartConfig      `json:"chart" toml:"chart"`
}

// VCSConfig selects the version control backend.
type VCSConfig struct {
	Backend string `json:"backend" toml:"backend"` // "gitcli" or "gogit"
}

// ExtractionConfig controls how words are counted in a file.
type ExtractionConfig struct {
	Tool    string   `json:"tool" toml:"tool"`       // "detex" or "plain"
	Command string   `json:"command" toml:"command"` // overrides the detex binary
	Args    []string `json:"args" toml:"args"`       // overrides the detex arguments
	Strict  bool     `json:"strict" toml:"strict"`   // extraction failures abort the run
}

// OutputConfig holds output file names. Relative names are resolved
// against the repository directory.
type OutputConfig struct {
	CountFile       string `json:"countFile" toml:"countFile"`
	PlotFile        string `json:"plotFile" toml:"plotFile"`
	SummaryFormat   string `json:"summaryFormat" toml:"summaryFormat"`
	BurstWindowDays int    `json:"burstWindowDays" toml:"burstWindowDays"` // window for the peak gain in the summary
}

// ChartConfig holds chart rendering options. Sizes are in centimeters.
type ChartConfig struct {
	Width          float64 `json:"width" toml:"width"`
	Height         float64 `json:"height" toml:"height"`
	RangeFrame     bool    `json:"rangeFrame" toml:"rangeFrame"`
	MinorTickLimit int     `json:"minorTickLimit" toml:"minorTickLimit"` // days; 0 means unlimited
}

const (
	DefaultCountFile = "wordcount.txt"
	DefaultPlotFile  = "wordcount_plot.pdf"
)

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		VCS: VCSConfig{
			Backend: "gitcli",
		},
		Extraction: ExtractionConfig{
			Tool: "detex",
		},
		Output: OutputConfig{
			CountFile:       DefaultCountFile,
			PlotFile:        DefaultPlotFile,
			SummaryFormat:   "console",
			BurstWindowDays: 7,
		},
		Chart: ChartConfig{
			Width:          16,
			Height:         10,
			RangeFrame:     true,
			MinorTickLimit: 400,
		},
	}
}

var candidateNames = []string{".wordhist.json", ".wordhist.yaml", ".wordhist.yml", ".wordhist.toml"}

// LoadConfig loads configuration from a file, merging with defaults. An
// empty path searches the working directory and then the home directory;
// finding nothing there is not an error, but an explicit path must exist.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = findCandidate()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := decode(path, data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func findCandidate() string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs, home)
	} else if envHome := os.Getenv("HOME"); envHome != "" {
		dirs = append(dirs, envHome)
	}
	for _, dir := range dirs {
		for _, name := range candidateNames {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}
	return ""
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".toml":
		_, err := toml.Decode(string(data), cfg)
		return err
	default:
		return json.Unmarshal(data, cfg)
	}
}

// Merge applies the non-zero fields of overrides on top of c.
func (c *Config) Merge(overrides Config) error {
	return mergo.Merge(c, overrides, mergo.WithOverride)
}

// Validate checks enumerated values and sizes.
func (c *Config) Validate() error {
	switch c.VCS.Backend {
	case "gitcli", "gogit":
	default:
		return fmt.Errorf("vcs.backend %q must be gitcli or gogit", c.VCS.Backend)
	}
	switch c.Extraction.Tool {
	case "detex", "plain":
	default:
		return fmt.Errorf("extraction.tool %q must be detex or plain", c.Extraction.Tool)
	}
	switch c.Output.SummaryFormat {
	case "", "console", "json", "markdown":
	default:
		return fmt.Errorf("output.summaryFormat %q must be console, json or markdown", c.Output.SummaryFormat)
	}
	if c.Output.BurstWindowDays < 0 {
		return fmt.Errorf("output.burstWindowDays %d must not be negative", c.Output.BurstWindowDays)
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("chart size %gx%g cm must be positive", c.Chart.Width, c.Chart.Height)
	}
	if c.Chart.MinorTickLimit < 0 {
		return fmt.Errorf("chart.minorTickLimit %d must not be negative", c.Chart.MinorTickLimit)
	}
	return nil
}

// ResolveOutput joins a relative output name onto repoDir.
func ResolveOutput(repoDir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(repoDir, name)
}
