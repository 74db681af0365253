/*
Copyright 2025 The AlaudaDevops Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// KnownTopLevelKeys is the set of recognized top-level document keys
var KnownTopLevelKeys = map[string]bool{
	"$schema":             true,
	"extends":             true,
	"enabled":             true,
	"labels":              true,
	"schedule":            true,
	"timezone":            true,
	"branchPrefix":        true,
	"commitMessageSuffix": true,
	"assignees":           true,
	"reviewers":           true,
	"automerge":           true,
	"rangeStrategy":       true,
	"prConcurrentLimit":   true,
	"dependencyDashboard": true,
	"ignorePaths":         true,
	"packageRules":        true,
}

// KnownRuleKeys is the set of recognized packageRules entry keys
var KnownRuleKeys = map[string]bool{
	"matchPackageNames":    true,
	"matchPackagePatterns": true,
	"excludePackageNames":  true,
	"matchManagers":        true,
	"matchCategories":      true,
	"matchUpdateTypes":     true,
	"matchDatasources":     true,
	"matchCurrentVersion":  true,
	"enabled":              true,
	"labels":               true,
	"addLabels":            true,
	"schedule":             true,
	"branchPrefix":         true,
	"commitMessageSuffix":  true,
	"groupName":            true,
	"automerge":            true,
	"prPriority":           true,
	"assignees":            true,
	"reviewers":            true,
}

// repoConfigNames are the conventional file names, in discovery order
var repoConfigNames = []string{
	"renovate.json",
	"renovate.json5",
	filepath.Join(".github", "renovate.json"),
	filepath.Join(".github", "renovate.json5"),
	".renovaterc",
	".renovaterc.json",
	".renovaterc.yaml",
}

// ConfigReader handles reading and merging configuration files
type ConfigReader struct{}

// NewConfigReader creates a new configuration reader
func NewConfigReader() *ConfigReader {
	return &ConfigReader{}
}

// ReadRepoConfig discovers and reads the repository's update-bot
// configuration from its conventional locations
func (c *ConfigReader) ReadRepoConfig(projectPath string) (*Config, error) {
	for _, name := range repoConfigNames {
		configPath := filepath.Join(projectPath, name)
		if _, err := os.Stat(configPath); err == nil {
			logrus.Debugf("Found repository configuration: %s", configPath)
			return c.ReadFile(configPath)
		}
	}

	// No config file found, return empty config
	logrus.Debug("No repository configuration found, using defaults")
	return &Config{}, nil
}

// ReadExternalConfig reads configuration from external file specified by CLI
func (c *ConfigReader) ReadExternalConfig(configPath string) (*Config, error) {
	if configPath == "" {
		return &Config{}, nil
	}

	logrus.Debugf("Reading external configuration: %s", configPath)
	return c.ReadFile(configPath)
}

// ReadFile reads and parses a single configuration file. The format is
// chosen by extension: .yaml/.yml parse as YAML, everything else as
// JSON with comments and trailing commas tolerated (JSON5 subset).
func (c *ConfigReader) ReadFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}
	cfg, err := Parse(data, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}
	return cfg, nil
}

// Parse parses a configuration document. The name is only used to pick the
// parser by extension and to label errors.
func Parse(data []byte, name string) (*Config, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return parseYAML(data)
	default:
		return parseJSON(data)
	}
}

func parseJSON(data []byte) (*Config, error) {
	plain := jsonc.ToJSON(data)

	var raw map[string]interface{}
	if err := json.Unmarshal(plain, &raw); err != nil {
		return nil, fmt.Errorf("not a well-formed document: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(plain, &cfg); err != nil {
		return nil, err
	}
	collectUnknownKeys(&cfg, raw)
	return &cfg, nil
}

func parseYAML(data []byte) (*Config, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("not a well-formed document: %w", err)
	}

	if looksLikeDependabot(raw) {
		return convertDependabot(data)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	collectUnknownKeys(&cfg, raw)
	return &cfg, nil
}

// collectUnknownKeys records keys outside the schema so the linter can
// report them instead of silently dropping them
func collectUnknownKeys(cfg *Config, raw map[string]interface{}) {
	for key := range raw {
		if !KnownTopLevelKeys[key] {
			cfg.UnknownKeys = append(cfg.UnknownKeys, key)
		}
	}
	sort.Strings(cfg.UnknownKeys)

	rawRules, _ := raw["packageRules"].([]interface{})
	for i := range cfg.PackageRules {
		if i >= len(rawRules) {
			break
		}
		rawRule, _ := rawRules[i].(map[string]interface{})
		rule := &cfg.PackageRules[i]
		for key := range rawRule {
			if !KnownRuleKeys[key] {
				rule.UnknownKeys = append(rule.UnknownKeys, key)
			}
		}
		sort.Strings(rule.UnknownKeys)
	}
}

// MergeConfigs merges multiple configurations with priority order.
// Scalar fields from later configurations override earlier ones; package
// rules are concatenated in order so later rules keep the last word.
func (c *ConfigReader) MergeConfigs(configs ...*Config) *Config {
	merged := &Config{}

	for _, config := range configs {
		if config == nil {
			continue
		}

		merged.Extends = append(merged.Extends, config.Extends...)
		if config.Enabled != nil {
			merged.Enabled = config.Enabled
		}
		if len(config.Labels) > 0 {
			merged.Labels = config.Labels
		}
		if len(config.Schedule) > 0 {
			merged.Schedule = config.Schedule
		}
		if config.Timezone != "" {
			merged.Timezone = config.Timezone
		}
		if config.BranchPrefix != "" {
			merged.BranchPrefix = config.BranchPrefix
		}
		if config.CommitMessageSuffix != "" {
			merged.CommitMessageSuffix = config.CommitMessageSuffix
		}
		if len(config.Assignees) > 0 {
			merged.Assignees = config.Assignees
		}
		if len(config.Reviewers) > 0 {
			merged.Reviewers = config.Reviewers
		}
		if config.Automerge != nil {
			merged.Automerge = config.Automerge
		}
		if config.RangeStrategy != "" {
			merged.RangeStrategy = config.RangeStrategy
		}
		if config.PRConcurrentLimit != 0 {
			merged.PRConcurrentLimit = config.PRConcurrentLimit
		}
		if config.DependencyDashboard != nil {
			merged.DependencyDashboard = config.DependencyDashboard
		}
		if len(config.IgnorePaths) > 0 {
			merged.IgnorePaths = config.IgnorePaths
		}
		merged.PackageRules = append(merged.PackageRules, config.PackageRules...)
		merged.UnknownKeys = append(merged.UnknownKeys, config.UnknownKeys...)
	}

	return merged
}

// ApplyDefaults applies default values to configuration
func (c *ConfigReader) ApplyDefaults(config *Config) *Config {
	if config.Timezone == "" {
		config.Timezone = "UTC"
	}
	if config.BranchPrefix == "" {
		config.BranchPrefix = "deps/"
	}
	if config.RangeStrategy == "" {
		config.RangeStrategy = RangeAuto
	}
	if config.PRConcurrentLimit == 0 {
		config.PRConcurrentLimit = 10
	}
	return config
}
