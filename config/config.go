// Package config defines the run configuration of the expression toolkit. A
// configuration is read from a YAML file over the defaults, then environment
// variables override it.
package config

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/blang/semver/v4"
	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/darkowlzz/expression-toolkit/artifact"
	layoutv1 "github.com/darkowlzz/expression-toolkit/layout/v1"
	"github.com/darkowlzz/expression-toolkit/token"
)

const (
	// Version is the configuration version written by Default.
	Version = "1.0.0"
	// supportedVersions is the range of configuration versions this
	// package can read.
	supportedVersions = ">=1.0.0 <2.0.0"

	// EnvOutputDir overrides the output directory.
	EnvOutputDir = "EXPRTREE_OUTPUT_DIR"
)

const (
	// ComparisonFull compares all the operators by precedence.
	ComparisonFull = "full"
	// ComparisonRestricted leaves ^ out of the precedence comparison.
	ComparisonRestricted = "restricted"
)

// Config is the configuration of a run.
type Config struct {
	// Version of the configuration schema, a semantic version.
	Version string `json:"version"`

	// OutputDir is the directory the artifacts are written into.
	OutputDir string `json:"outputDir,omitempty"`
	// FormulaFile is the name of the formula file.
	FormulaFile string `json:"formulaFile"`
	// ImagePattern is the name pattern of the tree images, with a verb for
	// the depth.
	ImagePattern string `json:"imagePattern"`

	// Formulas is the range of depths written into the formula file.
	Formulas DepthRange `json:"formulas"`
	// Trees is the range of depths whose x1 formula is converted and
	// rendered as a tree.
	Trees DepthRange `json:"trees"`

	Converter ConverterConfig `json:"converter"`
	Render    RenderConfig    `json:"render"`
}

// DepthRange is an inclusive range of formula depths.
type DepthRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains returns true if depth is in the range.
func (r DepthRange) Contains(depth int) bool {
	return depth >= r.Min && depth <= r.Max
}

// ConverterConfig configures the infix to postfix conversion.
type ConverterConfig struct {
	// Comparison is "full" or "restricted".
	Comparison string `json:"comparison"`
	// RightAssociative lists the right-associative operators.
	RightAssociative []string `json:"rightAssociative,omitempty"`
	// MultiCharOperands allows operands of more than one character.
	MultiCharOperands bool `json:"multiCharOperands,omitempty"`
}

// RenderConfig configures the tree images.
type RenderConfig struct {
	Layout     string `json:"layout"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	NodeRadius int    `json:"nodeRadius"`
}

// Default returns the configuration of the reference run: formulas of depth
// 0 to 6 and trees of depth 1 to 3.
func Default() *Config {
	return &Config{
		Version:      Version,
		FormulaFile:  artifact.DefaultFormulaFile,
		ImagePattern: artifact.DefaultImagePattern,
		Formulas:     DepthRange{Min: 0, Max: 6},
		Trees:        DepthRange{Min: 1, Max: 3},
		Converter: ConverterConfig{
			Comparison: ComparisonFull,
		},
		Render: RenderConfig{
			Layout:     string(layoutv1.Layered),
			Width:      1200,
			Height:     900,
			NodeRadius: 14,
		},
	}
}

// Load reads the configuration file at path over the defaults, applies the
// environment overrides and validates the result. An empty path loads the
// defaults only.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		b, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %q: %w", path, err)
		}
		if err := Parse(b, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse unmarshals YAML configuration data into cfg. Fields missing from the
// data keep their value in cfg.
func Parse(data []byte, cfg *Config) error {
	return yaml.UnmarshalStrict(data, cfg)
}

// applyEnv overrides the configuration with the environment variables.
func (c *Config) applyEnv() {
	if dir, ok := os.LookupEnv(EnvOutputDir); ok {
		c.OutputDir = dir
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := checkVersion(c.Version); err != nil {
		return err
	}

	if c.Formulas.Min < 0 || c.Formulas.Min > c.Formulas.Max {
		return fmt.Errorf("invalid formula depths [%d, %d]", c.Formulas.Min, c.Formulas.Max)
	}
	if c.Trees.Min < 0 || c.Trees.Min > c.Trees.Max {
		return fmt.Errorf("invalid tree depths [%d, %d]", c.Trees.Min, c.Trees.Max)
	}
	if !c.Formulas.Contains(c.Trees.Min) || !c.Formulas.Contains(c.Trees.Max) {
		return fmt.Errorf("tree depths [%d, %d] outside formula depths [%d, %d]",
			c.Trees.Min, c.Trees.Max, c.Formulas.Min, c.Formulas.Max)
	}

	if c.FormulaFile == "" {
		return fmt.Errorf("formula file name is empty")
	}
	if err := artifact.CheckImagePattern(c.ImagePattern); err != nil {
		return err
	}

	switch c.Converter.Comparison {
	case ComparisonFull, ComparisonRestricted:
	default:
		return fmt.Errorf("unknown comparison mode %q", c.Converter.Comparison)
	}
	for _, op := range c.Converter.RightAssociative {
		if _, ok := token.Precedence(op); !ok {
			return fmt.Errorf("right-associative operator %q isn't an operator", op)
		}
	}

	if _, err := layoutv1.ParseStrategy(c.Render.Layout); err != nil {
		return err
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", c.Render.Width, c.Render.Height)
	}
	if c.Render.NodeRadius < 0 {
		return fmt.Errorf("invalid node radius %d", c.Render.NodeRadius)
	}

	return nil
}

// checkVersion checks that the configuration version is supported.
func checkVersion(version string) error {
	v, err := semver.ParseTolerant(version)
	if err != nil {
		return errors.Wrapf(err, "invalid config version %q", version)
	}
	supported := semver.MustParseRange(supportedVersions)
	if !supported(v) {
		return fmt.Errorf("unsupported config version %s, supported: %s", v, supportedVersions)
	}
	return nil
}
