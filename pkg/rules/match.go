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

package rules

import (
	"fmt"
	"regexp"

	"github.com/AlaudaDevops/toolbox/updaterules/pkg/config"
	"github.com/AlaudaDevops/toolbox/updaterules/pkg/version"
)

// Matches reports whether every predicate present on the rule holds for
// the candidate. A rule with no predicates matches every candidate.
func Matches(rule *config.PackageRule, candidate *Candidate) (bool, error) {
	for _, name := range rule.ExcludePackageNames {
		if name == candidate.PackageName {
			return false, nil
		}
	}

	if len(rule.MatchPackageNames) > 0 || len(rule.MatchPackagePatterns) > 0 {
		matched, err := matchesPackage(rule, candidate.PackageName)
		if err != nil || !matched {
			return false, err
		}
	}

	if len(rule.MatchManagers) > 0 && !containsString(rule.MatchManagers, string(candidate.Manager)) {
		return false, nil
	}

	if len(rule.MatchDatasources) > 0 && !containsString(rule.MatchDatasources, string(candidate.Datasource)) {
		return false, nil
	}

	if len(rule.MatchUpdateTypes) > 0 && !containsString(rule.MatchUpdateTypes, string(candidate.EffectiveUpdateType())) {
		return false, nil
	}

	if len(rule.MatchCategories) > 0 && !matchesAnyCategory(rule.MatchCategories, candidate.Categories) {
		return false, nil
	}

	if rule.MatchCurrentVersion != "" {
		matched, err := version.MatchesRange(candidate.CurrentVersion, rule.MatchCurrentVersion)
		if err != nil {
			return false, fmt.Errorf("matchCurrentVersion: %w", err)
		}
		if !matched {
			return false, nil
		}
	}

	return true, nil
}

// matchesPackage checks name and pattern predicates; they are alternatives,
// a candidate passes when either set accepts it
func matchesPackage(rule *config.PackageRule, packageName string) (bool, error) {
	if containsString(rule.MatchPackageNames, packageName) {
		return true, nil
	}

	for _, pattern := range rule.MatchPackagePatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return false, fmt.Errorf("invalid package pattern %q: %w", pattern, err)
		}
		if re.MatchString(packageName) {
			return true, nil
		}
	}
	return false, nil
}

// matchesAnyCategory reports whether the candidate carries at least one of
// the wanted categories
func matchesAnyCategory(wanted, have []string) bool {
	for _, category := range have {
		if containsString(wanted, category) {
			return true
		}
	}
	return false
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
