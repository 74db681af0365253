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

	"github.com/sirupsen/logrus"

	"github.com/AlaudaDevops/toolbox/updaterules/pkg/config"
)

// Effective is the settings a candidate ends up with after the top-level
// defaults and every matching rule have been applied
type Effective struct {
	// Enabled reports whether the update should be proposed at all
	Enabled bool `json:"enabled" yaml:"enabled"`
	// Labels is the final label set (labels replaced, addLabels appended)
	Labels []string `json:"labels,omitempty" yaml:"labels,omitempty"`
	// Schedule is the final schedule expression list
	Schedule []string `json:"schedule,omitempty" yaml:"schedule,omitempty"`
	// Timezone the schedule is evaluated in
	Timezone string `json:"timezone,omitempty" yaml:"timezone,omitempty"`
	// BranchPrefix for the update branch
	BranchPrefix string `json:"branchPrefix,omitempty" yaml:"branchPrefix,omitempty"`
	// CommitMessageSuffix for the update commit subject
	CommitMessageSuffix string `json:"commitMessageSuffix,omitempty" yaml:"commitMessageSuffix,omitempty"`
	// GroupName collects the update into a shared branch, empty for none
	GroupName string `json:"groupName,omitempty" yaml:"groupName,omitempty"`
	// Automerge merges the PR without human review
	Automerge bool `json:"automerge" yaml:"automerge"`
	// PRPriority orders PR creation under the concurrent limit
	PRPriority int `json:"prPriority,omitempty" yaml:"prPriority,omitempty"`
	// Assignees for the update PR
	Assignees []string `json:"assignees,omitempty" yaml:"assignees,omitempty"`
	// Reviewers for the update PR
	Reviewers []string `json:"reviewers,omitempty" yaml:"reviewers,omitempty"`
	// MatchedRules are the indices (in file order) of the rules that fired
	MatchedRules []int `json:"matchedRules,omitempty" yaml:"matchedRules,omitempty"`
}

// Resolve computes the effective settings for a candidate. Rules apply in
// file order and later rules override earlier ones field-by-field; labels
// replace while addLabels accumulate. The config is expected to have its
// extends chain already resolved.
func Resolve(cfg *config.Config, candidate *Candidate) (*Effective, error) {
	effective := &Effective{
		Enabled:             cfg.IsEnabled(),
		Labels:              append([]string(nil), cfg.Labels...),
		Schedule:            append([]string(nil), cfg.Schedule...),
		Timezone:            cfg.Timezone,
		BranchPrefix:        cfg.BranchPrefix,
		CommitMessageSuffix: cfg.CommitMessageSuffix,
		Assignees:           append([]string(nil), cfg.Assignees...),
		Reviewers:           append([]string(nil), cfg.Reviewers...),
		Automerge:           cfg.Automerge != nil && *cfg.Automerge,
	}

	var addedLabels []string

	for i := range cfg.PackageRules {
		rule := &cfg.PackageRules[i]

		matched, err := Matches(rule, candidate)
		if err != nil {
			return nil, fmt.Errorf("packageRules[%d]: %w", i, err)
		}
		if !matched {
			continue
		}

		logrus.Debugf("Rule %d matched candidate %s", i, candidate)
		effective.MatchedRules = append(effective.MatchedRules, i)

		if rule.Enabled != nil {
			effective.Enabled = *rule.Enabled
		}
		if len(rule.Labels) > 0 {
			effective.Labels = append([]string(nil), rule.Labels...)
		}
		addedLabels = append(addedLabels, rule.AddLabels...)
		if len(rule.Schedule) > 0 {
			effective.Schedule = append([]string(nil), rule.Schedule...)
		}
		if rule.BranchPrefix != "" {
			effective.BranchPrefix = rule.BranchPrefix
		}
		if rule.CommitMessageSuffix != "" {
			effective.CommitMessageSuffix = rule.CommitMessageSuffix
		}
		if rule.GroupName != "" {
			effective.GroupName = rule.GroupName
		}
		if rule.Automerge != nil {
			effective.Automerge = *rule.Automerge
		}
		if rule.PRPriority != nil {
			effective.PRPriority = *rule.PRPriority
		}
		if len(rule.Assignees) > 0 {
			effective.Assignees = append([]string(nil), rule.Assignees...)
		}
		if len(rule.Reviewers) > 0 {
			effective.Reviewers = append([]string(nil), rule.Reviewers...)
		}
	}

	effective.Labels = dedupe(append(effective.Labels, addedLabels...))
	return effective, nil
}

// dedupe removes duplicates while keeping first-occurrence order
func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(values))
	result := values[:0]
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		result = append(result, v)
	}
	return result
}
