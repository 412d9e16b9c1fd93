package main

import (
	"os"

	"github.com/flyingtimes/presstran"
	"gopkg.in/yaml.v3"
)

// DefaultStyle returns the default translation style configuration:
// Chinese output with a lively, readable register.
func DefaultStyle() *presstran.TranslationConfig {
	return &presstran.TranslationConfig{
		Target: "zh-CN",
		Tone:   "lively and warm, with natural sentence breaks and fluent phrasing",
		Formatting: []string{
			"bold key concepts and proper nouns on first mention",
			"preserve the paragraph structure of the source",
		},
	}
}

// LoadStyle builds the run's translation configuration: defaults, then the
// YAML config file when given, then explicit flag overrides. The result is
// fixed for the whole run.
func LoadStyle(path, target, model string) (*presstran.TranslationConfig, error) {
	cfg := DefaultStyle()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, presstran.Errorf(presstran.EINVALID, "cannot read config file %q: %v", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, presstran.Errorf(presstran.EINVALID, "malformed config file %q: %v", path, err)
		}
	}

	if target != "" {
		cfg.Target = target
	}
	if model != "" {
		cfg.Model = model
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
