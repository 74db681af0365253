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

// Package rules evaluates package rules against update candidates and
// computes the effective settings for each candidate
package rules

import (
	"fmt"

	"github.com/AlaudaDevops/toolbox/updaterules/pkg/config"
	"github.com/AlaudaDevops/toolbox/updaterules/pkg/version"
)

// Candidate is one proposed version bump a bot would act on
type Candidate struct {
	// PackageName is the dependency's name within its ecosystem
	PackageName string `json:"packageName" yaml:"packageName"`
	// Manager is the package manager that discovered the candidate
	Manager config.Manager `json:"manager" yaml:"manager"`
	// Datasource is the registry the new version came from
	Datasource config.Datasource `json:"datasource,omitempty" yaml:"datasource,omitempty"`
	// Categories are free-form tags (e.g. "rust", "test") on the dependency
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`
	// CurrentVersion is the version currently in use
	CurrentVersion string `json:"currentVersion" yaml:"currentVersion"`
	// NewVersion is the proposed version
	NewVersion string `json:"newVersion" yaml:"newVersion"`
	// UpdateType classifies the bump; derived from the versions when empty
	UpdateType config.UpdateType `json:"updateType,omitempty" yaml:"updateType,omitempty"`
}

// EffectiveUpdateType returns the update type, deriving it from the
// current and new versions when not set explicitly
func (c *Candidate) EffectiveUpdateType() config.UpdateType {
	if c.UpdateType != "" {
		return c.UpdateType
	}
	return version.UpdateTypeOf(c.CurrentVersion, c.NewVersion)
}

// String renders the candidate for log and explain output
func (c *Candidate) String() string {
	return fmt.Sprintf("%s (%s) %s -> %s", c.PackageName, c.Manager, c.CurrentVersion, c.NewVersion)
}
