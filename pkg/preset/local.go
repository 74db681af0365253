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

	"github.com/AlaudaDevops/toolbox/updaterules/pkg/config"
)

// LocalSource reads presets from the local filesystem
type LocalSource struct {
	reader *config.ConfigReader
}

// NewLocalSource creates a local preset source
func NewLocalSource() *LocalSource {
	return &LocalSource{reader: config.NewConfigReader()}
}

// Fetch reads the preset file the ref's path points at
func (s *LocalSource) Fetch(_ context.Context, ref *Ref) (*config.Config, error) {
	return s.reader.ReadFile(ref.Repo)
}

// GetProviderType returns the provider this source serves
func (s *LocalSource) GetProviderType() Provider {
	return ProviderLocal
}
