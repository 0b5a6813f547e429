package netfile

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/qsymm/symten"
)

// RunConfig is the declarative run configuration a contraction deployment
// carries beyond the bare network pattern: logging verbosity and the
// handful of contraction options spec.md leaves as operational choices.
type RunConfig struct {
	LogLevel    string `yaml:"logLevel"`
	Fast        bool   `yaml:"fast"`
	EmitSwapLog bool   `yaml:"emitSwapLog"`
}

// DefaultRunConfig is what a Network run uses when no config file is
// supplied.
func DefaultRunConfig() RunConfig {
	return RunConfig{LogLevel: "info", Fast: false, EmitSwapLog: false}
}

// LoadRunConfig decodes a YAML run configuration, starting from
// DefaultRunConfig so a partial file only overrides the fields it sets.
func LoadRunConfig(r io.Reader) (RunConfig, error) {
	cfg := DefaultRunConfig()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return RunConfig{}, symten.Wrap(symten.InvalidNetwork, "netfile: run config decode failed", err)
	}
	return cfg, nil
}
