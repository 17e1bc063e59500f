package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nsxbet/abap-reviewer/pkg/advisor"
	"github.com/nsxbet/abap-reviewer/pkg/types"
)

// Config represents the configuration for ABAP review
type Config struct {
	ID    string              `yaml:"id" json:"id"`
	Rules []*types.ReviewRule `yaml:"rules" json:"rules"`
}

// LoadFromFile loads configuration from a file
func LoadFromFile(filename string) (*Config, error) {
	slog.Debug("Loading config from file", "filename", filename)
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file: %s", filename)
	}

	cfg, err := Parse(data, filepath.Ext(filename))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file: %s", filename)
	}

	slog.Debug("Loaded config", "id", cfg.ID, "rules_count", len(cfg.Rules))
	return cfg, nil
}

// Parse decodes a configuration document. A ".json" ext forces JSON;
// anything else is tried as YAML first, then JSON.
func Parse(data []byte, ext string) (*Config, error) {
	var cfg Config
	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		slog.Debug("YAML unmarshal failed", "error", err)
		if jsonErr := json.Unmarshal(data, &cfg); jsonErr != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every rule names a registered advisor.
// Rules disabled in the file are not checked.
func (c *Config) Validate() error {
	known := make(map[advisor.Type]bool)
	for _, t := range advisor.Registered() {
		known[t] = true
	}
	for i, rule := range c.Rules {
		if rule == nil || rule.Type == "" {
			return errors.Errorf("rule #%d has no type", i)
		}
		if rule.Level == types.ReviewRuleLevel_DISABLED {
			continue
		}
		if len(known) > 0 && !known[advisor.Type(rule.Type)] {
			return errors.Errorf("unknown rule type: %s", rule.Type)
		}
	}
	return nil
}

// DefaultConfig returns the default configuration: the draft filter rule
// enabled at ERROR level.
func DefaultConfig(id string) *Config {
	return &Config{
		ID: id,
		Rules: []*types.ReviewRule{
			{
				Type:  string(advisor.RuleSelectDraftFilter),
				Level: types.ReviewRuleLevel_ERROR,
			},
		},
	}
}

// EnabledRules returns the rules that are not disabled
func (c *Config) EnabledRules() []*types.ReviewRule {
	var rules []*types.ReviewRule
	for _, rule := range c.Rules {
		if rule.Level == types.ReviewRuleLevel_DISABLED {
			continue
		}
		rules = append(rules, rule)
	}
	return rules
}
