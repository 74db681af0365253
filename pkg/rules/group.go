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
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/AlaudaDevops/toolbox/updaterules/pkg/config"
)

// Group is a set of candidates that share one update branch and PR
type Group struct {
	// Name is the resolved groupName, or the single candidate's package
	// name for ungrouped updates
	Name string `json:"name" yaml:"name"`
	// Candidates are the updates in the group, in input order
	Candidates []*Candidate `json:"candidates" yaml:"candidates"`
}

// GroupCandidates partitions candidates by their resolved groupName.
// Candidates without a group stay as singletons; disabled candidates are
// dropped. Groups come back sorted by name for deterministic output.
func GroupCandidates(cfg *config.Config, candidates []*Candidate) ([]Group, error) {
	byName := map[string]*Group{}
	var singletons []Group

	for _, candidate := range candidates {
		effective, err := Resolve(cfg, candidate)
		if err != nil {
			return nil, err
		}
		if !effective.Enabled {
			logrus.Debugf("Skipping disabled candidate %s", candidate)
			continue
		}

		if effective.GroupName == "" {
			singletons = append(singletons, Group{
				Name:       candidate.PackageName,
				Candidates: []*Candidate{candidate},
			})
			continue
		}

		group, ok := byName[effective.GroupName]
		if !ok {
			group = &Group{Name: effective.GroupName}
			byName[effective.GroupName] = group
		}
		group.Candidates = append(group.Candidates, candidate)
	}

	groups := make([]Group, 0, len(byName)+len(singletons))
	for _, group := range byName {
		groups = append(groups, *group)
	}
	groups = append(groups, singletons...)

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Name < groups[j].Name
	})
	return groups, nil
}
