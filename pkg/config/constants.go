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

// UpdateType classifies how far a version bump moves a dependency
type UpdateType string

const (
	UpdateMajor  UpdateType = "major"
	UpdateMinor  UpdateType = "minor"
	UpdatePatch  UpdateType = "patch"
	UpdatePin    UpdateType = "pin"
	UpdateDigest UpdateType = "digest"
)

// Manager identifies the package manager an update candidate belongs to
type Manager string

const (
	ManagerGomod         Manager = "gomod"
	ManagerCargo         Manager = "cargo"
	ManagerNpm           Manager = "npm"
	ManagerPip           Manager = "pip"
	ManagerDockerfile    Manager = "dockerfile"
	ManagerGithubActions Manager = "github-actions"
	ManagerRegex         Manager = "regex"
)

// Datasource identifies the registry an update candidate is resolved against
type Datasource string

const (
	DatasourceGo            Datasource = "go"
	DatasourceCrate         Datasource = "crate"
	DatasourceNpm           Datasource = "npm"
	DatasourcePypi          Datasource = "pypi"
	DatasourceDocker        Datasource = "docker"
	DatasourceGithubRelease Datasource = "github-releases"
)

// RangeStrategy controls how existing version ranges are rewritten
type RangeStrategy string

const (
	RangeAuto    RangeStrategy = "auto"
	RangeBump    RangeStrategy = "bump"
	RangePin     RangeStrategy = "pin"
	RangeReplace RangeStrategy = "replace"
	RangeWiden   RangeStrategy = "widen"
)

// KnownUpdateTypes lists every update type the rule matcher understands
var KnownUpdateTypes = map[UpdateType]bool{
	UpdateMajor:  true,
	UpdateMinor:  true,
	UpdatePatch:  true,
	UpdatePin:    true,
	UpdateDigest: true,
}

// KnownManagers lists every manager the rule matcher understands
var KnownManagers = map[Manager]bool{
	ManagerGomod:         true,
	ManagerCargo:         true,
	ManagerNpm:           true,
	ManagerPip:           true,
	ManagerDockerfile:    true,
	ManagerGithubActions: true,
	ManagerRegex:         true,
}

// KnownDatasources lists every datasource the rule matcher understands
var KnownDatasources = map[Datasource]bool{
	DatasourceGo:            true,
	DatasourceCrate:         true,
	DatasourceNpm:           true,
	DatasourcePypi:          true,
	DatasourceDocker:        true,
	DatasourceGithubRelease: true,
}

// KnownRangeStrategies lists every accepted rangeStrategy value
var KnownRangeStrategies = map[RangeStrategy]bool{
	RangeAuto:    true,
	RangeBump:    true,
	RangePin:     true,
	RangeReplace: true,
	RangeWiden:   true,
}
