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

// Package lint validates update-bot configurations: schema conformance,
// preset references, rule predicates and effects, and silent rule conflicts
package lint

import (
	"fmt"
	"regexp"

	"github.com/AlaudaDevops/toolbox/updaterules/pkg/config"
	"github.com/AlaudaDevops/toolbox/updaterules/pkg/preset"
	"github.com/AlaudaDevops/toolbox/updaterules/pkg/schedule"
	"github.com/AlaudaDevops/toolbox/updaterules/pkg/version"
)

// Severity grades an issue
type Severity string

const (
	// SeverityError marks configuration the bot would reject or ignore
	SeverityError Severity = "error"
	// SeverityWarning marks configuration that works but probably not as
	// the operator intended
	SeverityWarning Severity = "warning"
)

// Issue is one problem found in a configuration
type Issue struct {
	// Severity grades the issue
	Severity Severity `json:"severity" yaml:"severity"`
	// Path locates the issue in the document (e.g. "packageRules[2].schedule")
	Path string `json:"path" yaml:"path"`
	// Message describes the issue
	Message string `json:"message" yaml:"message"`
}

// String renders the issue one-per-line for CLI output
func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Severity, i.Path, i.Message)
}

// Result is the ordered list of issues a lint run produced
type Result []Issue

// HasErrors reports whether any issue is an error
func (r Result) HasErrors() bool {
	for _, issue := range r {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Warnings returns only the warning-severity issues
func (r Result) Warnings() Result {
	var warnings Result
	for _, issue := range r {
		if issue.Severity == SeverityWarning {
			warnings = append(warnings, issue)
		}
	}
	return warnings
}

// Linter validates parsed configurations
type Linter struct{}

// NewLinter creates a new configuration linter
func NewLinter() *Linter {
	return &Linter{}
}

// Lint runs every check against the configuration, in a fixed order so
// output stays stable
func (l *Linter) Lint(cfg *config.Config) Result {
	var result Result

	checks := []func(*config.Config) Result{
		l.checkUnknownKeys,
		l.checkExtends,
		l.checkTopLevel,
		l.checkRules,
		l.checkConflicts,
	}
	for _, check := range checks {
		result = append(result, check(cfg)...)
	}
	return result
}

// checkUnknownKeys flags keys outside the schema
func (l *Linter) checkUnknownKeys(cfg *config.Config) Result {
	var result Result
	for _, key := range cfg.UnknownKeys {
		result = append(result, Issue{
			Severity: SeverityError,
			Path:     key,
			Message:  "unknown configuration key",
		})
	}
	for i := range cfg.PackageRules {
		for _, key := range cfg.PackageRules[i].UnknownKeys {
			result = append(result, Issue{
				Severity: SeverityError,
				Path:     fmt.Sprintf("packageRules[%d].%s", i, key),
				Message:  "unknown rule key",
			})
		}
	}
	return result
}

// checkExtends validates every preset reference. Builtin names must exist;
// hosted references are checked syntactically only, since linting must
// work offline.
func (l *Linter) checkExtends(cfg *config.Config) Result {
	var result Result
	for i, entry := range cfg.Extends {
		path := fmt.Sprintf("extends[%d]", i)

		ref, err := preset.ParseRef(entry)
		if err != nil {
			result = append(result, Issue{Severity: SeverityError, Path: path, Message: err.Error()})
			continue
		}

		switch ref.Provider {
		case preset.ProviderBuiltin:
			if !preset.IsBuiltin(ref.Name) {
				result = append(result, Issue{
					Severity: SeverityError,
					Path:     path,
					Message:  fmt.Sprintf("unknown preset %q", ref.Name),
				})
			}
		default:
			result = append(result, Issue{
				Severity: SeverityWarning,
				Path:     path,
				Message:  fmt.Sprintf("hosted preset %q not verified offline", entry),
			})
		}
	}
	return result
}

// checkTopLevel validates the top-level defaults
func (l *Linter) checkTopLevel(cfg *config.Config) Result {
	var result Result

	if cfg.RangeStrategy != "" && !config.KnownRangeStrategies[cfg.RangeStrategy] {
		result = append(result, Issue{
			Severity: SeverityError,
			Path:     "rangeStrategy",
			Message:  fmt.Sprintf("unknown rangeStrategy %q", cfg.RangeStrategy),
		})
	}
	if cfg.PRConcurrentLimit < 0 {
		result = append(result, Issue{
			Severity: SeverityError,
			Path:     "prConcurrentLimit",
			Message:  "must not be negative",
		})
	}
	if err := schedule.Validate(cfg.Schedule, cfg.Timezone); err != nil {
		result = append(result, Issue{
			Severity: SeverityError,
			Path:     "schedule",
			Message:  err.Error(),
		})
	}
	return result
}

// checkRules validates each package rule in isolation
func (l *Linter) checkRules(cfg *config.Config) Result {
	var result Result

	for i := range cfg.PackageRules {
		rule := &cfg.PackageRules[i]
		path := func(field string) string {
			return fmt.Sprintf("packageRules[%d].%s", i, field)
		}

		switch {
		case !rule.HasPredicates() && !rule.HasEffects():
			result = append(result, Issue{
				Severity: SeverityError,
				Path:     fmt.Sprintf("packageRules[%d]", i),
				Message:  "rule has no predicates and no effects",
			})
		case !rule.HasPredicates():
			result = append(result, Issue{
				Severity: SeverityWarning,
				Path:     fmt.Sprintf("packageRules[%d]", i),
				Message:  "rule has no match predicates and applies to every update",
			})
		case !rule.HasEffects():
			result = append(result, Issue{
				Severity: SeverityWarning,
				Path:     fmt.Sprintf("packageRules[%d]", i),
				Message:  "rule matches updates but changes nothing",
			})
		}

		for _, pattern := range rule.MatchPackagePatterns {
			if _, err := regexp.Compile(pattern); err != nil {
				result = append(result, Issue{
					Severity: SeverityError,
					Path:     path("matchPackagePatterns"),
					Message:  fmt.Sprintf("invalid pattern %q: %v", pattern, err),
				})
			}
		}

		for _, manager := range rule.MatchManagers {
			if !config.KnownManagers[config.Manager(manager)] {
				result = append(result, Issue{
					Severity: SeverityError,
					Path:     path("matchManagers"),
					Message:  fmt.Sprintf("unknown manager %q", manager),
				})
			}
		}
		for _, updateType := range rule.MatchUpdateTypes {
			if !config.KnownUpdateTypes[config.UpdateType(updateType)] {
				result = append(result, Issue{
					Severity: SeverityError,
					Path:     path("matchUpdateTypes"),
					Message:  fmt.Sprintf("unknown update type %q", updateType),
				})
			}
		}
		for _, datasource := range rule.MatchDatasources {
			if !config.KnownDatasources[config.Datasource(datasource)] {
				result = append(result, Issue{
					Severity: SeverityError,
					Path:     path("matchDatasources"),
					Message:  fmt.Sprintf("unknown datasource %q", datasource),
				})
			}
		}

		if rule.MatchCurrentVersion != "" {
			if err := version.ValidRange(rule.MatchCurrentVersion); err != nil {
				result = append(result, Issue{
					Severity: SeverityError,
					Path:     path("matchCurrentVersion"),
					Message:  err.Error(),
				})
			}
		}

		if err := schedule.Validate(rule.Schedule, cfg.Timezone); err != nil {
			result = append(result, Issue{
				Severity: SeverityError,
				Path:     path("schedule"),
				Message:  err.Error(),
			})
		}

		if len(rule.Labels) > 0 && len(rule.AddLabels) > 0 {
			if overlap := intersect(rule.Labels, rule.AddLabels); len(overlap) > 0 {
				result = append(result, Issue{
					Severity: SeverityWarning,
					Path:     path("addLabels"),
					Message:  fmt.Sprintf("labels already listed in labels: %v", overlap),
				})
			}
		}
	}
	return result
}

// checkConflicts flags rules that target the identical update set but
// assign different enabled or automerge values; the later rule silently
// wins, which is rarely what the operator intended
func (l *Linter) checkConflicts(cfg *config.Config) Result {
	var result Result

	byPredicates := map[string]int{}
	for i := range cfg.PackageRules {
		rule := &cfg.PackageRules[i]
		key := rule.PredicateKey()

		previous, ok := byPredicates[key]
		if !ok {
			byPredicates[key] = i
			continue
		}

		prev := &cfg.PackageRules[previous]
		if conflictingBool(prev.Enabled, rule.Enabled) {
			result = append(result, Issue{
				Severity: SeverityWarning,
				Path:     fmt.Sprintf("packageRules[%d].enabled", i),
				Message:  fmt.Sprintf("conflicts with packageRules[%d] for the same updates; the later rule wins", previous),
			})
		}
		if conflictingBool(prev.Automerge, rule.Automerge) {
			result = append(result, Issue{
				Severity: SeverityWarning,
				Path:     fmt.Sprintf("packageRules[%d].automerge", i),
				Message:  fmt.Sprintf("conflicts with packageRules[%d] for the same updates; the later rule wins", previous),
			})
		}
		byPredicates[key] = i
	}
	return result
}

func conflictingBool(a, b *bool) bool {
	return a != nil && b != nil && *a != *b
}

func intersect(a, b []string) []string {
	inA := make(map[string]bool, len(a))
	for _, s := range a {
		inA[s] = true
	}
	var both []string
	for _, s := range b {
		if inA[s] {
			both = append(both, s)
		}
	}
	return both
}
