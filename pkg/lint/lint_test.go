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

package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlaudaDevops/toolbox/updaterules/pkg/config"
)

func boolPtr(b bool) *bool { return &b }

// issuePaths collects the paths of all issues at a given severity
func issuePaths(result Result, severity Severity) []string {
	var paths []string
	for _, issue := range result {
		if issue.Severity == severity {
			paths = append(paths, issue.Path)
		}
	}
	return paths
}

func TestLintCleanConfig(t *testing.T) {
	cfg := &config.Config{
		Extends:  []string{"config:recommended", "schedule:weekly"},
		Labels:   []string{"dependencies"},
		Timezone: "Europe/Berlin",
		PackageRules: []config.PackageRule{
			{
				MatchManagers:    []string{string(config.ManagerCargo)},
				MatchUpdateTypes: []string{"minor", "patch"},
				GroupName:        "cargo non-major",
			},
		},
	}

	result := NewLinter().Lint(cfg)
	assert.Empty(t, result)
	assert.False(t, result.HasErrors())
}

func TestLintUnknownKeys(t *testing.T) {
	cfg := &config.Config{
		UnknownKeys: []string{"lockFileMaintenanse"},
		PackageRules: []config.PackageRule{
			{
				MatchManagers: []string{string(config.ManagerGomod)},
				GroupName:     "go",
				UnknownKeys:   []string{"automurge"},
			},
		},
	}

	result := NewLinter().Lint(cfg)
	require.True(t, result.HasErrors())
	assert.Contains(t, issuePaths(result, SeverityError), "lockFileMaintenanse")
	assert.Contains(t, issuePaths(result, SeverityError), "packageRules[0].automurge")
}

func TestLintExtends(t *testing.T) {
	cfg := &config.Config{
		Extends: []string{
			"config:recommended",
			":noSuchPreset",
			"github>acme/renovate-config",
			"bitbucket>acme/config",
		},
	}

	result := NewLinter().Lint(cfg)
	require.True(t, result.HasErrors())

	errors := issuePaths(result, SeverityError)
	assert.Contains(t, errors, "extends[1]", "unknown builtin preset is an error")
	assert.Contains(t, errors, "extends[3]", "unknown provider is an error")

	warnings := issuePaths(result, SeverityWarning)
	assert.Contains(t, warnings, "extends[2]", "hosted preset is only a warning offline")
}

func TestLintTopLevel(t *testing.T) {
	cfg := &config.Config{
		RangeStrategy:     "freestyle",
		PRConcurrentLimit: -1,
		Schedule:          []string{"whenever"},
	}

	result := NewLinter().Lint(cfg)
	errors := issuePaths(result, SeverityError)
	assert.Contains(t, errors, "rangeStrategy")
	assert.Contains(t, errors, "prConcurrentLimit")
	assert.Contains(t, errors, "schedule")
}

func TestLintRuleShape(t *testing.T) {
	cfg := &config.Config{
		PackageRules: []config.PackageRule{
			{},
			{MatchManagers: []string{string(config.ManagerCargo)}},
			{Automerge: boolPtr(true)},
		},
	}

	result := NewLinter().Lint(cfg)
	assert.Contains(t, issuePaths(result, SeverityError), "packageRules[0]")
	assert.Contains(t, issuePaths(result, SeverityWarning), "packageRules[1]")
	assert.Contains(t, issuePaths(result, SeverityWarning), "packageRules[2]")
}

func TestLintRuleValues(t *testing.T) {
	cfg := &config.Config{
		PackageRules: []config.PackageRule{
			{
				MatchPackagePatterns: []string{"("},
				MatchManagers:        []string{"composer-ish"},
				MatchUpdateTypes:     []string{"gigantic"},
				MatchDatasources:     []string{"carrier-pigeon"},
				MatchCurrentVersion:  "not a range",
				Schedule:             []string{"on funday"},
				GroupName:            "broken",
			},
		},
	}

	result := NewLinter().Lint(cfg)
	errors := issuePaths(result, SeverityError)
	assert.Contains(t, errors, "packageRules[0].matchPackagePatterns")
	assert.Contains(t, errors, "packageRules[0].matchManagers")
	assert.Contains(t, errors, "packageRules[0].matchUpdateTypes")
	assert.Contains(t, errors, "packageRules[0].matchDatasources")
	assert.Contains(t, errors, "packageRules[0].matchCurrentVersion")
	assert.Contains(t, errors, "packageRules[0].schedule")
}

func TestLintConflictingRules(t *testing.T) {
	cfg := &config.Config{
		PackageRules: []config.PackageRule{
			{
				MatchUpdateTypes: []string{"patch"},
				Automerge:        boolPtr(true),
			},
			{
				MatchUpdateTypes: []string{"patch"},
				Automerge:        boolPtr(false),
			},
		},
	}

	result := NewLinter().Lint(cfg)
	assert.False(t, result.HasErrors(), "conflicts are warnings, the later rule wins")
	assert.Contains(t, issuePaths(result, SeverityWarning), "packageRules[1].automerge")
}

func TestLintOverlappingLabels(t *testing.T) {
	cfg := &config.Config{
		PackageRules: []config.PackageRule{
			{
				MatchManagers: []string{string(config.ManagerNpm)},
				Labels:        []string{"dependencies", "js"},
				AddLabels:     []string{"js"},
			},
		},
	}

	result := NewLinter().Lint(cfg)
	assert.Contains(t, issuePaths(result, SeverityWarning), "packageRules[0].addLabels")
}
