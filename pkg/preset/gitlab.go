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
	gitlab "gitlab.com/gitlab-org/api/client-go"

	"github.com/AlaudaDevops/toolbox/updaterules/pkg/config"
)

// GitLabSource fetches presets from GitLab projects
type GitLabSource struct {
	client *gitlab.Client
}

// NewGitLabSource creates a new GitLab preset source
func NewGitLabSource(baseURL, token string) (*GitLabSource, error) {
	var opts []gitlab.ClientOptionFunc
	if baseURL != "" {
		opts = append(opts, gitlab.WithBaseURL(baseURL))
	}
	client, err := gitlab.NewClient(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitLab client: %w", err)
	}

	return &GitLabSource{client: client}, nil
}

// Fetch reads the preset file from the project's repository files API
func (s *GitLabSource) Fetch(ctx context.Context, ref *Ref) (*config.Config, error) {
	opts := &gitlab.GetRawFileOptions{}
	if ref.Revision != "" {
		opts.Ref = gitlab.Ptr(ref.Revision)
	}

	raw, _, err := s.client.RepositoryFiles.GetRawFile(ref.Repo, ref.FileName(), opts, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch preset %s: %w", ref, err)
	}

	logrus.Debugf("Fetched preset %s (%d bytes)", ref, len(raw))

	cfg, err := config.Parse(raw, ref.FileName())
	if err != nil {
		return nil, fmt.Errorf("failed to parse preset %s: %w", ref, err)
	}
	return cfg, nil
}

// GetProviderType returns the provider this source serves
func (s *GitLabSource) GetProviderType() Provider {
	return ProviderGitLab
}
