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

// Package version provides semantic version comparison, update-type
// classification and range matching for rule evaluation
package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/AlaudaDevops/toolbox/updaterules/pkg/config"
)

// CompareVersions compares two version strings and returns:
// -1 if version1 < version2
//
//	0 if version1 == version2
//	1 if version1 > version2
//
// Versions are normalized first (the "v" prefix is stripped, short versions
// are padded to three components). Strings neither side can parse as semver
// fall back to lexicographic comparison.
func CompareVersions(version1, version2 string) int {
	if version1 == "" && version2 == "" {
		return 0
	}
	if version1 == "" {
		return -1
	}
	if version2 == "" {
		return 1
	}

	v1 := normalize(version1)
	v2 := normalize(version2)

	semVer1, err1 := semver.NewVersion(v1)
	semVer2, err2 := semver.NewVersion(v2)
	if err1 == nil && err2 == nil {
		return semVer1.Compare(semVer2)
	}

	if v1 < v2 {
		return -1
	}
	if v1 > v2 {
		return 1
	}
	return 0
}

// UpdateTypeOf classifies the bump from current to next. Identical versions
// classify as pin; anything that does not parse as semver (e.g. a container
// image digest) classifies as digest.
func UpdateTypeOf(current, next string) config.UpdateType {
	if CompareVersions(current, next) == 0 {
		return config.UpdatePin
	}

	curVer, err1 := semver.NewVersion(normalize(current))
	nextVer, err2 := semver.NewVersion(normalize(next))
	if err1 != nil || err2 != nil {
		return config.UpdateDigest
	}

	switch {
	case nextVer.Major() != curVer.Major():
		return config.UpdateMajor
	case nextVer.Minor() != curVer.Minor():
		return config.UpdateMinor
	default:
		return config.UpdatePatch
	}
}

// MatchesRange reports whether version satisfies the given semver range
// (e.g. "<1.0.0", ">=2.3, <3"). An unparsable range or version is an error.
func MatchesRange(version, constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("invalid version range %q: %w", constraint, err)
	}
	v, err := semver.NewVersion(normalize(version))
	if err != nil {
		return false, fmt.Errorf("invalid version %q: %w", version, err)
	}
	return c.Check(v), nil
}

// ValidRange reports whether constraint parses as a semver range
func ValidRange(constraint string) error {
	if _, err := semver.NewConstraint(constraint); err != nil {
		return fmt.Errorf("invalid version range %q: %w", constraint, err)
	}
	return nil
}

// normalize prepares a version string for semver parsing: strips the "v"
// prefix and pads "1" or "1.2" style versions to three components
func normalize(version string) string {
	if version == "" {
		return version
	}

	normalized := strings.TrimPrefix(version, "v")

	parts := strings.Split(normalized, ".")
	if len(parts) == 1 {
		normalized += ".0.0"
	} else if len(parts) == 2 {
		normalized += ".0"
	}

	return normalized
}
