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

package preset

import (
	"context"
	"fmt"
	"sort"

	"github.com/AlaudaDevops/toolbox/updaterules/pkg/config"
)

func boolPtr(b bool) *bool { return &b }

// builtinPresets is the compiled-in preset registry. Presets may extend
// other builtin presets; the resolver expands them recursively.
var builtinPresets = map[string]*config.Config{
	"config:recommended": {
		Extends: []string{
			":dependencyDashboard",
			"group:allNonMajor",
		},
		Labels:            []string{"dependencies"},
		RangeStrategy:     config.RangeAuto,
		PRConcurrentLimit: 10,
	},
	"config:best-practices": {
		Extends: []string{
			"config:recommended",
			":automergePatch",
			"schedule:nonOfficeHours",
		},
	},
	":dependencyDashboard": {
		DependencyDashboard: boolPtr(true),
	},
	":disableDependencyDashboard": {
		DependencyDashboard: boolPtr(false),
	},
	":pinVersions": {
		RangeStrategy: config.RangePin,
	},
	":widenRanges": {
		RangeStrategy: config.RangeWiden,
	},
	":automergePatch": {
		PackageRules: []config.PackageRule{
			{
				MatchUpdateTypes: []string{string(config.UpdatePatch)},
				Automerge:        boolPtr(true),
			},
		},
	},
	":automergeMinor": {
		PackageRules: []config.PackageRule{
			{
				MatchUpdateTypes: []string{string(config.UpdateMinor), string(config.UpdatePatch)},
				Automerge:        boolPtr(true),
			},
		},
	},
	":disableMajorUpdates": {
		PackageRules: []config.PackageRule{
			{
				MatchUpdateTypes: []string{string(config.UpdateMajor)},
				Enabled:          boolPtr(false),
			},
		},
	},
	"schedule:weekly": {
		Schedule: []string{"before 6am on monday"},
	},
	"schedule:nonOfficeHours": {
		Schedule: []string{"after 10pm", "before 5am", "every weekend"},
	},
	"group:allNonMajor": {
		PackageRules: []config.PackageRule{
			{
				MatchUpdateTypes: []string{string(config.UpdateMinor), string(config.UpdatePatch)},
				GroupName:        "all non-major dependencies",
			},
		},
	},
	"group:githubActions": {
		PackageRules: []config.PackageRule{
			{
				MatchManagers: []string{string(config.ManagerGithubActions)},
				GroupName:     "github actions",
			},
		},
	},
}

// IsBuiltin reports whether name is a known builtin preset
func IsBuiltin(name string) bool {
	_, ok := builtinPresets[name]
	return ok
}

// BuiltinNames returns the sorted names of all builtin presets
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinPresets))
	for name := range builtinPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuiltinSource serves presets from the compiled-in registry
type BuiltinSource struct{}

// NewBuiltinSource creates a builtin preset source
func NewBuiltinSource() *BuiltinSource {
	return &BuiltinSource{}
}

// Fetch looks the preset up in the registry
func (s *BuiltinSource) Fetch(_ context.Context, ref *Ref) (*config.Config, error) {
	preset, ok := builtinPresets[ref.Name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q", ref.Name)
	}
	// Callers merge into the result; hand out a shallow copy so the
	// registry entry stays pristine
	copied := *preset
	return &copied, nil
}

// GetProviderType returns the provider this source serves
func (s *BuiltinSource) GetProviderType() Provider {
	return ProviderBuiltin
}
