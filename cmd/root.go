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

// Package cmd provides the command line interface for updaterules
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AlaudaDevops/toolbox/updaterules/pkg/config"
	"github.com/AlaudaDevops/toolbox/updaterules/pkg/preset"
)

// EnvPrefix is the prefix for environment variable configuration
const EnvPrefix = "UPDATERULES"

var (
	// debug enables debug log output
	debug bool
	// projectDir is searched for a config file when none is given
	projectDir string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "updaterules",
	Short: "Validate and inspect dependency-update bot configuration",
	Long: `updaterules works with the declarative configuration consumed by
dependency-update bots: an extends preset list plus packageRules pairing
match predicates with effects.

It can validate a configuration (schema, preset references, rule
predicates, silent conflicts), resolve the extends chain into the
effective merged document, and explain which rules apply to a given
update candidate.

Configuration files are discovered at the conventional locations
(renovate.json, renovate.json5, .github/renovate.json, .renovaterc, ...)
or given explicitly as an argument. JSON with comments and trailing
commas, plain JSON and YAML are all accepted, as are GitHub Dependabot
v2 documents (converted on read).

Example usage:
  # Validate the repository configuration
  updaterules validate

  # Validate a specific file, treating warnings as failures
  updaterules validate ./renovate.json5 --strict

  # Print the configuration with all presets expanded
  updaterules resolve --output yaml

  # Show what happens to a specific update
  updaterules explain --package serde --manager cargo --current 1.0.100 --new 1.0.203`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug log output")
	rootCmd.PersistentFlags().StringVar(&projectDir, "dir", ".", "project directory searched for a config file")
	rootCmd.PersistentFlags().String("token", "", "access token for fetching hosted presets")
	rootCmd.PersistentFlags().String("api-base-url", "", "base API URL for self-hosted GitHub/GitLab preset sources")
	viper.BindPFlags(rootCmd.PersistentFlags())

	cobra.OnInitialize(func() {
		viper.SetEnvPrefix(EnvPrefix)
		viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
		viper.AutomaticEnv()

		if debug {
			logrus.SetLevel(logrus.DebugLevel)
			logrus.Debug("Debug logging enabled")
		} else {
			logrus.SetLevel(logrus.InfoLevel)
		}
	})
}

// sourceOptions builds the preset source credentials from flags and env
func sourceOptions() preset.SourceOptions {
	return preset.SourceOptions{
		Token:   viper.GetString("token"),
		BaseURL: viper.GetString("api-base-url"),
	}
}

// loadConfig reads the configuration file given as the command argument,
// falling back to discovery in the project directory
func loadConfig(args []string) (*config.Config, error) {
	reader := config.NewConfigReader()

	if len(args) > 0 {
		cfg, err := reader.ReadFile(args[0])
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}

	cfg, err := reader.ReadRepoConfig(projectDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read repository config: %w", err)
	}
	return cfg, nil
}
