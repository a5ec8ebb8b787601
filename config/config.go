// Package config loads batch run configuration from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Run describes one batch run.
type Run struct {
	// Format names the source-schema adapter ("jats", "pubmed").
	Format string `yaml:"format"`

	// InputDir holds the source files.
	InputDir string `yaml:"input_dir"`

	// OutputDir receives one JSON artifact per document.
	OutputDir string `yaml:"output_dir"`

	// Workers is the pool size; zero means one worker per CPU.
	Workers int `yaml:"workers"`

	// Resume skips inputs that already have artifacts.
	Resume bool `yaml:"resume"`
}

// Load reads and validates a run config file.
func Load(path string) (*Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates run config YAML. Unknown keys are rejected so
// typos fail loudly.
func Parse(data []byte) (*Run, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var run Run
	if err := decoder.Decode(&run); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := run.Validate(); err != nil {
		return nil, err
	}
	return &run, nil
}

// Validate checks that the run config is complete.
func (r *Run) Validate() error {
	if r.Format == "" {
		return errors.New("config: format is required")
	}
	if r.InputDir == "" {
		return errors.New("config: input_dir is required")
	}
	if r.OutputDir == "" {
		return errors.New("config: output_dir is required")
	}
	if r.Workers < 0 {
		return fmt.Errorf("config: workers must be >= 0, got %d", r.Workers)
	}
	return nil
}
