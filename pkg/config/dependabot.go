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
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DependabotConfig represents a GitHub Dependabot v2 configuration file,
// accepted as an alternate input format and converted into the native schema
type DependabotConfig struct {
	Version int                     `yaml:"version" json:"version"`
	Updates []DependabotUpdateEntry `yaml:"updates" json:"updates"`
}

// DependabotUpdateEntry is a single package-ecosystem entry
type DependabotUpdateEntry struct {
	PackageEcosystem      string             `yaml:"package-ecosystem" json:"package-ecosystem"`
	Directory             string             `yaml:"directory,omitempty" json:"directory,omitempty"`
	Schedule              DependabotSchedule `yaml:"schedule,omitempty" json:"schedule,omitempty"`
	Labels                []string           `yaml:"labels,omitempty" json:"labels,omitempty"`
	Assignees             []string           `yaml:"assignees,omitempty" json:"assignees,omitempty"`
	OpenPullRequestsLimit int                `yaml:"open-pull-requests-limit,omitempty" json:"open-pull-requests-limit,omitempty"`
	Ignore                []DependabotIgnore `yaml:"ignore,omitempty" json:"ignore,omitempty"`
}

// DependabotSchedule is the update cadence of one entry
type DependabotSchedule struct {
	Interval string `yaml:"interval,omitempty" json:"interval,omitempty"`
	Day      string `yaml:"day,omitempty" json:"day,omitempty"`
}

// DependabotIgnore excludes a dependency from one entry
type DependabotIgnore struct {
	DependencyName string   `yaml:"dependency-name,omitempty" json:"dependency-name,omitempty"`
	Versions       []string `yaml:"versions,omitempty" json:"versions,omitempty"`
}

// ecosystemManagers maps dependabot package-ecosystem names to managers
var ecosystemManagers = map[string]Manager{
	"gomod":          ManagerGomod,
	"cargo":          ManagerCargo,
	"npm":            ManagerNpm,
	"pip":            ManagerPip,
	"docker":         ManagerDockerfile,
	"github-actions": ManagerGithubActions,
}

// looksLikeDependabot reports whether raw is a dependabot v2 document
func looksLikeDependabot(raw map[string]interface{}) bool {
	version, ok := raw["version"]
	if !ok {
		return false
	}
	v, ok := version.(int)
	if !ok || v != 2 {
		return false
	}
	_, ok = raw["updates"]
	return ok
}

// convertDependabot converts a dependabot v2 document into the native schema.
// Each ecosystem entry becomes a manager-scoped package rule; ignores become
// disabling rules so the precedence semantics stay uniform.
func convertDependabot(data []byte) (*Config, error) {
	var db DependabotConfig
	if err := yaml.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("failed to parse dependabot config: %w", err)
	}

	cfg := &Config{}
	disabled := false

	for _, update := range db.Updates {
		manager, ok := ecosystemManagers[update.PackageEcosystem]
		if !ok {
			logrus.Warnf("Unknown dependabot package-ecosystem %q, keeping as-is", update.PackageEcosystem)
			manager = Manager(update.PackageEcosystem)
		}

		rule := PackageRule{
			MatchManagers: []string{string(manager)},
			Labels:        update.Labels,
			Assignees:     update.Assignees,
		}
		if schedule := convertDependabotSchedule(update.Schedule); schedule != "" {
			rule.Schedule = []string{schedule}
		}
		cfg.PackageRules = append(cfg.PackageRules, rule)

		if update.OpenPullRequestsLimit > cfg.PRConcurrentLimit {
			cfg.PRConcurrentLimit = update.OpenPullRequestsLimit
		}

		for _, ignore := range update.Ignore {
			if ignore.DependencyName == "" {
				continue
			}
			cfg.PackageRules = append(cfg.PackageRules, PackageRule{
				MatchManagers:     []string{string(manager)},
				MatchPackageNames: []string{ignore.DependencyName},
				Enabled:           &disabled,
			})
		}
	}

	logrus.Debugf("Converted dependabot config with %d update entries", len(db.Updates))
	return cfg, nil
}

// convertDependabotSchedule maps a dependabot interval onto a schedule
// expression. Intervals without an equivalent return "".
func convertDependabotSchedule(schedule DependabotSchedule) string {
	switch schedule.Interval {
	case "daily":
		return "before 6am"
	case "weekly":
		day := schedule.Day
		if day == "" {
			day = "monday"
		}
		return "on " + day
	case "monthly":
		// No day-of-month grammar; the closest stable window is weekly
		return "on monday"
	default:
		return ""
	}
}
