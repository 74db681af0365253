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

	"github.com/sirupsen/logrus"

	"github.com/AlaudaDevops/toolbox/updaterules/pkg/config"
)

// Resolver expands a config's extends list into a single merged config.
// Presets resolve depth-first in listed order; the host config's own
// settings override everything a preset set.
type Resolver struct {
	opts    SourceOptions
	sources map[Provider]Source
	reader  *config.ConfigReader
	// cache memoizes fully-expanded presets per run, keyed by reference
	cache map[string]*config.Config
}

// NewResolver creates a resolver. Remote sources are constructed lazily on
// first use, so configs without hosted presets never need credentials.
func NewResolver(opts SourceOptions) *Resolver {
	return &Resolver{
		opts:    opts,
		sources: map[Provider]Source{},
		reader:  config.NewConfigReader(),
		cache:   map[string]*config.Config{},
	}
}

// Resolve returns cfg with its extends chain expanded and merged away.
// The input config is not modified.
func (r *Resolver) Resolve(ctx context.Context, cfg *config.Config) (*config.Config, error) {
	resolving := map[string]bool{}

	expanded, err := r.expand(ctx, cfg, resolving)
	if err != nil {
		return nil, err
	}

	merged := r.reader.MergeConfigs(expanded...)
	merged.Extends = nil
	return merged, nil
}

// expand returns the configs contributing to cfg in merge order: each
// preset fully expanded (depth-first, listed order), then cfg itself
func (r *Resolver) expand(ctx context.Context, cfg *config.Config, resolving map[string]bool) ([]*config.Config, error) {
	var contributions []*config.Config

	for _, entry := range cfg.Extends {
		ref, err := ParseRef(entry)
		if err != nil {
			return nil, err
		}

		preset, err := r.resolveRef(ctx, ref, resolving)
		if err != nil {
			return nil, err
		}
		contributions = append(contributions, preset)
	}

	// The host config itself merges last so its own settings win
	own := *cfg
	own.Extends = nil
	contributions = append(contributions, &own)
	return contributions, nil
}

// resolveRef fetches one preset and expands its own extends chain
func (r *Resolver) resolveRef(ctx context.Context, ref *Ref, resolving map[string]bool) (*config.Config, error) {
	key := ref.String()
	if resolving[key] {
		return nil, fmt.Errorf("preset cycle detected at %q", key)
	}
	if cached, ok := r.cache[key]; ok {
		return cached, nil
	}

	source, err := r.source(ref.Provider)
	if err != nil {
		return nil, err
	}

	logrus.Debugf("Resolving preset %s", key)
	fetched, err := source.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}

	resolving[key] = true
	defer delete(resolving, key)

	expanded, err := r.expand(ctx, fetched, resolving)
	if err != nil {
		return nil, err
	}

	merged := r.reader.MergeConfigs(expanded...)
	merged.Extends = nil
	r.cache[key] = merged
	return merged, nil
}

// source returns the Source for a provider, creating it on first use
func (r *Resolver) source(provider Provider) (Source, error) {
	if s, ok := r.sources[provider]; ok {
		return s, nil
	}
	s, err := NewSource(provider, r.opts)
	if err != nil {
		return nil, err
	}
	r.sources[provider] = s
	return s, nil
}
