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

// Package config defines the update-bot configuration schema: the extends
// preset list, package rules, and the top-level defaults rules can override
package config

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Config is a complete update-bot configuration document
type Config struct {
	// Extends references named presets whose settings this config inherits
	Extends []string `yaml:"extends,omitempty" json:"extends,omitempty" mapstructure:"extends"`
	// Enabled toggles all updates; rules may re-enable or disable subsets
	Enabled *bool `yaml:"enabled,omitempty" json:"enabled,omitempty" mapstructure:"enabled"`
	// Labels are applied to every update PR unless a rule replaces them
	Labels []string `yaml:"labels,omitempty" json:"labels,omitempty" mapstructure:"labels"`
	// Schedule restricts when updates may be proposed
	Schedule []string `yaml:"schedule,omitempty" json:"schedule,omitempty" mapstructure:"schedule"`
	// Timezone is the IANA zone schedule expressions are evaluated in
	Timezone string `yaml:"timezone,omitempty" json:"timezone,omitempty" mapstructure:"timezone"`
	// BranchPrefix is prepended to every update branch name
	BranchPrefix string `yaml:"branchPrefix,omitempty" json:"branchPrefix,omitempty" mapstructure:"branchPrefix"`
	// CommitMessageSuffix is appended to every update commit subject
	CommitMessageSuffix string `yaml:"commitMessageSuffix,omitempty" json:"commitMessageSuffix,omitempty" mapstructure:"commitMessageSuffix"`
	// Assignees are users assigned to every update PR
	Assignees []string `yaml:"assignees,omitempty" json:"assignees,omitempty" mapstructure:"assignees"`
	// Reviewers are users requested to review every update PR
	Reviewers []string `yaml:"reviewers,omitempty" json:"reviewers,omitempty" mapstructure:"reviewers"`
	// Automerge merges passing update PRs without human review
	Automerge *bool `yaml:"automerge,omitempty" json:"automerge,omitempty" mapstructure:"automerge"`
	// RangeStrategy controls how existing version ranges are rewritten
	RangeStrategy RangeStrategy `yaml:"rangeStrategy,omitempty" json:"rangeStrategy,omitempty" mapstructure:"rangeStrategy"`
	// PRConcurrentLimit caps the number of simultaneously open update PRs
	PRConcurrentLimit int `yaml:"prConcurrentLimit,omitempty" json:"prConcurrentLimit,omitempty" mapstructure:"prConcurrentLimit"`
	// DependencyDashboard enables the dashboard issue
	DependencyDashboard *bool `yaml:"dependencyDashboard,omitempty" json:"dependencyDashboard,omitempty" mapstructure:"dependencyDashboard"`
	// IgnorePaths excludes files from update scanning by glob
	IgnorePaths []string `yaml:"ignorePaths,omitempty" json:"ignorePaths,omitempty" mapstructure:"ignorePaths"`
	// PackageRules pair match predicates with effects, applied in order
	PackageRules []PackageRule `yaml:"packageRules,omitempty" json:"packageRules,omitempty" mapstructure:"packageRules"`

	// UnknownKeys holds top-level keys the schema does not recognize.
	// The reader fills it so the linter can report them; it is never
	// serialized back out.
	UnknownKeys []string `yaml:"-" json:"-"`
}

// PackageRule pairs match predicates with the effects to apply when every
// present predicate holds. A rule with no predicates matches every update.
type PackageRule struct {
	// MatchPackageNames matches candidates by exact package name
	MatchPackageNames []string `yaml:"matchPackageNames,omitempty" json:"matchPackageNames,omitempty" mapstructure:"matchPackageNames"`
	// MatchPackagePatterns matches candidates by package name regex
	MatchPackagePatterns []string `yaml:"matchPackagePatterns,omitempty" json:"matchPackagePatterns,omitempty" mapstructure:"matchPackagePatterns"`
	// ExcludePackageNames rejects candidates by exact package name
	ExcludePackageNames []string `yaml:"excludePackageNames,omitempty" json:"excludePackageNames,omitempty" mapstructure:"excludePackageNames"`
	// MatchManagers matches candidates by package manager
	MatchManagers []string `yaml:"matchManagers,omitempty" json:"matchManagers,omitempty" mapstructure:"matchManagers"`
	// MatchCategories matches candidates by category tag
	MatchCategories []string `yaml:"matchCategories,omitempty" json:"matchCategories,omitempty" mapstructure:"matchCategories"`
	// MatchUpdateTypes matches candidates by update type (major, minor, ...)
	MatchUpdateTypes []string `yaml:"matchUpdateTypes,omitempty" json:"matchUpdateTypes,omitempty" mapstructure:"matchUpdateTypes"`
	// MatchDatasources matches candidates by datasource
	MatchDatasources []string `yaml:"matchDatasources,omitempty" json:"matchDatasources,omitempty" mapstructure:"matchDatasources"`
	// MatchCurrentVersion matches candidates whose current version satisfies
	// a semver range (e.g. "<1.0.0")
	MatchCurrentVersion string `yaml:"matchCurrentVersion,omitempty" json:"matchCurrentVersion,omitempty" mapstructure:"matchCurrentVersion"`

	// Enabled enables or disables matched updates
	Enabled *bool `yaml:"enabled,omitempty" json:"enabled,omitempty" mapstructure:"enabled"`
	// Labels replaces the label set for matched updates
	Labels []string `yaml:"labels,omitempty" json:"labels,omitempty" mapstructure:"labels"`
	// AddLabels appends labels for matched updates without replacing
	AddLabels []string `yaml:"addLabels,omitempty" json:"addLabels,omitempty" mapstructure:"addLabels"`
	// Schedule replaces the schedule for matched updates
	Schedule []string `yaml:"schedule,omitempty" json:"schedule,omitempty" mapstructure:"schedule"`
	// BranchPrefix replaces the branch prefix for matched updates
	BranchPrefix string `yaml:"branchPrefix,omitempty" json:"branchPrefix,omitempty" mapstructure:"branchPrefix"`
	// CommitMessageSuffix replaces the commit suffix for matched updates
	CommitMessageSuffix string `yaml:"commitMessageSuffix,omitempty" json:"commitMessageSuffix,omitempty" mapstructure:"commitMessageSuffix"`
	// GroupName collects matched updates into a single branch and PR
	GroupName string `yaml:"groupName,omitempty" json:"groupName,omitempty" mapstructure:"groupName"`
	// Automerge merges matched update PRs without human review
	Automerge *bool `yaml:"automerge,omitempty" json:"automerge,omitempty" mapstructure:"automerge"`
	// PRPriority orders PR creation when the concurrent limit applies
	PRPriority *int `yaml:"prPriority,omitempty" json:"prPriority,omitempty" mapstructure:"prPriority"`
	// Assignees replaces the assignee set for matched updates
	Assignees []string `yaml:"assignees,omitempty" json:"assignees,omitempty" mapstructure:"assignees"`
	// Reviewers replaces the reviewer set for matched updates
	Reviewers []string `yaml:"reviewers,omitempty" json:"reviewers,omitempty" mapstructure:"reviewers"`

	// UnknownKeys holds rule keys the schema does not recognize
	UnknownKeys []string `yaml:"-" json:"-"`
}

// HasPredicates reports whether the rule constrains which updates it applies to
func (r *PackageRule) HasPredicates() bool {
	return len(r.MatchPackageNames) > 0 ||
		len(r.MatchPackagePatterns) > 0 ||
		len(r.ExcludePackageNames) > 0 ||
		len(r.MatchManagers) > 0 ||
		len(r.MatchCategories) > 0 ||
		len(r.MatchUpdateTypes) > 0 ||
		len(r.MatchDatasources) > 0 ||
		r.MatchCurrentVersion != ""
}

// HasEffects reports whether the rule changes anything for matched updates
func (r *PackageRule) HasEffects() bool {
	return r.Enabled != nil ||
		len(r.Labels) > 0 ||
		len(r.AddLabels) > 0 ||
		len(r.Schedule) > 0 ||
		r.BranchPrefix != "" ||
		r.CommitMessageSuffix != "" ||
		r.GroupName != "" ||
		r.Automerge != nil ||
		r.PRPriority != nil ||
		len(r.Assignees) > 0 ||
		len(r.Reviewers) > 0
}

// PredicateKey returns a stable fingerprint of the rule's predicate set,
// used by the linter to detect rules that target the identical update set
func (r *PackageRule) PredicateKey() string {
	key := struct {
		Names    []string `json:"names,omitempty"`
		Patterns []string `json:"patterns,omitempty"`
		Excludes []string `json:"excludes,omitempty"`
		Managers []string `json:"managers,omitempty"`
		Cats     []string `json:"cats,omitempty"`
		Types    []string `json:"types,omitempty"`
		Sources  []string `json:"sources,omitempty"`
		Current  string   `json:"current,omitempty"`
	}{
		r.MatchPackageNames, r.MatchPackagePatterns, r.ExcludePackageNames,
		r.MatchManagers, r.MatchCategories, r.MatchUpdateTypes,
		r.MatchDatasources, r.MatchCurrentVersion,
	}
	data, err := json.Marshal(key)
	if err != nil {
		return fmt.Sprintf("%+v", key)
	}
	return string(data)
}

// IsEnabled returns the top-level enabled value with default fallback
func (c *Config) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// String implements fmt.Stringer interface for better debugging experience
func (c *Config) String() string {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		logrus.Errorf("Failed to marshal config to JSON: %v", err)
		return fmt.Sprintf("%+v", *c)
	}
	return string(data)
}
