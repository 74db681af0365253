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
	"errors"
	"fmt"
	"strings"
)

// Provider identifies where a preset is hosted
type Provider string

const (
	// ProviderBuiltin is the compiled-in preset registry
	ProviderBuiltin Provider = "builtin"
	// ProviderLocal is a file on the local filesystem
	ProviderLocal Provider = "local"
	// ProviderGitHub is a file in a GitHub repository
	ProviderGitHub Provider = "github"
	// ProviderGitLab is a file in a GitLab project
	ProviderGitLab Provider = "gitlab"
)

// Ref is a parsed extends entry.
// Supported forms:
//   - "config:recommended", ":automergePatch" (builtin preset names)
//   - "local>path/to/preset.json"
//   - "github>owner/repo", "github>owner/repo:name", "github>owner/repo#v1.2.3"
//   - "gitlab>group/subgroup/repo:name#ref"
type Ref struct {
	// Provider is where the preset lives
	Provider Provider
	// Name is the builtin preset name, or the preset name within a repo
	// (empty means the repo's default preset)
	Name string
	// Repo is the "owner/repo" path for hosted presets, or the file path
	// for local presets
	Repo string
	// Revision is the git revision to read hosted presets at
	Revision string
}

// ParseRef parses an extends entry into a Ref
func ParseRef(entry string) (*Ref, error) {
	trimmed := strings.TrimSpace(entry)
	if trimmed == "" {
		return nil, errors.New("empty preset reference")
	}

	providerName, rest, hosted := strings.Cut(trimmed, ">")
	if !hosted {
		// No ">" separator means a builtin preset name
		return &Ref{Provider: ProviderBuiltin, Name: trimmed}, nil
	}

	var provider Provider
	switch providerName {
	case "local":
		provider = ProviderLocal
	case "github":
		provider = ProviderGitHub
	case "gitlab":
		provider = ProviderGitLab
	default:
		return nil, fmt.Errorf("unknown preset provider %q in %q", providerName, entry)
	}

	if rest == "" {
		return nil, fmt.Errorf("preset reference %q has no path", entry)
	}

	if provider == ProviderLocal {
		return &Ref{Provider: ProviderLocal, Repo: rest}, nil
	}

	ref := &Ref{Provider: provider}
	rest, ref.Revision, _ = cutLast(rest, "#")
	ref.Repo, ref.Name, _ = cutLast(rest, ":")

	segments := strings.Split(strings.Trim(ref.Repo, "/"), "/")
	if len(segments) < 2 {
		return nil, fmt.Errorf("preset repository %q: not enough path segments", ref.Repo)
	}

	return ref, nil
}

// String renders the reference back into extends-entry form
func (r *Ref) String() string {
	switch r.Provider {
	case ProviderBuiltin:
		return r.Name
	case ProviderLocal:
		return "local>" + r.Repo
	default:
		s := string(r.Provider) + ">" + r.Repo
		if r.Name != "" {
			s += ":" + r.Name
		}
		if r.Revision != "" {
			s += "#" + r.Revision
		}
		return s
	}
}

// FileName returns the file the preset is stored in within its repository
func (r *Ref) FileName() string {
	if r.Name == "" {
		return "default.json"
	}
	return r.Name + ".json"
}

// cutLast splits s around the last occurrence of sep
func cutLast(s, sep string) (before, after string, found bool) {
	idx := strings.LastIndex(s, sep)
	if idx < 0 {
		return s, "", false
	}
	return s[:idx], s[idx+len(sep):], true
}
