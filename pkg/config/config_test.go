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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackageRulePredicatesAndEffects(t *testing.T) {
	enabled := false

	empty := PackageRule{}
	assert.False(t, empty.HasPredicates())
	assert.False(t, empty.HasEffects())

	predicateOnly := PackageRule{MatchManagers: []string{"cargo"}}
	assert.True(t, predicateOnly.HasPredicates())
	assert.False(t, predicateOnly.HasEffects())

	effectOnly := PackageRule{Enabled: &enabled}
	assert.False(t, effectOnly.HasPredicates())
	assert.True(t, effectOnly.HasEffects())

	versionPredicate := PackageRule{MatchCurrentVersion: "<1.0.0"}
	assert.True(t, versionPredicate.HasPredicates())
}

func TestPredicateKeyStability(t *testing.T) {
	a := PackageRule{MatchManagers: []string{"cargo"}, MatchUpdateTypes: []string{"major"}}
	b := PackageRule{MatchManagers: []string{"cargo"}, MatchUpdateTypes: []string{"major"}, GroupName: "x"}
	c := PackageRule{MatchManagers: []string{"npm"}, MatchUpdateTypes: []string{"major"}}

	assert.Equal(t, a.PredicateKey(), b.PredicateKey(), "effects must not change the key")
	assert.NotEqual(t, a.PredicateKey(), c.PredicateKey())
}

func TestConfigIsEnabled(t *testing.T) {
	disabled := false

	assert.True(t, (&Config{}).IsEnabled(), "enabled defaults to true")
	assert.False(t, (&Config{Enabled: &disabled}).IsEnabled())
}
