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

// Package preset resolves extends references into configuration bundles:
// builtin presets, local files, and presets hosted in GitHub or GitLab
// repositories
package preset

import (
	"context"
	"fmt"

	"github.com/AlaudaDevops/toolbox/updaterules/pkg/config"
)

// Source fetches the configuration a preset reference points at
type Source interface {
	// Fetch retrieves and parses the preset the ref points at
	Fetch(ctx context.Context, ref *Ref) (*config.Config, error)

	// GetProviderType returns the provider this source serves
	GetProviderType() Provider
}

// SourceOptions carries the credentials and endpoints remote sources need
type SourceOptions struct {
	// Token authenticates against the hosting provider
	Token string
	// BaseURL overrides the provider API endpoint (enterprise installs)
	BaseURL string
}

// NewSource creates the Source for a provider
func NewSource(provider Provider, opts SourceOptions) (Source, error) {
	switch provider {
	case ProviderGitHub:
		return NewGitHubSource(opts.BaseURL, opts.Token)
	case ProviderGitLab:
		return NewGitLabSource(opts.BaseURL, opts.Token)
	case ProviderLocal:
		return NewLocalSource(), nil
	case ProviderBuiltin:
		return NewBuiltinSource(), nil
	default:
		return nil, fmt.Errorf("unsupported preset provider: %s", provider)
	}
}
