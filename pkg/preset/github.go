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
	"strings"

	"github.com/google/go-github/v58/github"
	"github.com/sirupsen/logrus"

	"github.com/AlaudaDevops/toolbox/updaterules/pkg/config"
)

// GitHubSource fetches presets from GitHub repositories using the GitHub SDK
type GitHubSource struct {
	// client is the GitHub API client
	client *github.Client
}

// NewGitHubSource creates a new GitHub preset source
func NewGitHubSource(baseURL, token string) (*GitHubSource, error) {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	if baseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(baseURL, baseURL+"/api/v3")
		if err != nil {
			return nil, fmt.Errorf("failed to set enterprise URLs: %w", err)
		}
	}

	return &GitHubSource{client: client}, nil
}

// Fetch reads the preset file from the repository contents API
func (s *GitHubSource) Fetch(ctx context.Context, ref *Ref) (*config.Config, error) {
	segments := strings.SplitN(strings.Trim(ref.Repo, "/"), "/", 2)
	if len(segments) != 2 {
		return nil, fmt.Errorf("invalid GitHub preset repository %q", ref.Repo)
	}
	owner, repo := segments[0], segments[1]

	opts := &github.RepositoryContentGetOptions{Ref: ref.Revision}
	content, _, _, err := s.client.Repositories.GetContents(ctx, owner, repo, ref.FileName(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch preset %s: %w", ref, err)
	}
	if content == nil {
		return nil, fmt.Errorf("preset %s points at a directory, not a file", ref)
	}

	raw, err := content.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode preset %s: %w", ref, err)
	}

	logrus.Debugf("Fetched preset %s (%d bytes)", ref, len(raw))

	cfg, err := config.Parse([]byte(raw), ref.FileName())
	if err != nil {
		return nil, fmt.Errorf("failed to parse preset %s: %w", ref, err)
	}
	return cfg, nil
}

// GetProviderType returns the provider this source serves
func (s *GitHubSource) GetProviderType() Provider {
	return ProviderGitHub
}
