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

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AlaudaDevops/toolbox/updaterules/pkg/preset"
)

var (
	// outputFormat selects the resolve serialization (yaml or json)
	outputFormat string
)

// resolveCmd expands the extends chain and prints the merged config
var resolveCmd = &cobra.Command{
	Use:   "resolve [file]",
	Short: "Resolve presets and print the effective merged configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(args)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		resolver := preset.NewResolver(sourceOptions())
		resolved, err := resolver.Resolve(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to resolve presets: %w", err)
		}

		switch outputFormat {
		case "yaml":
			data, err := yaml.Marshal(resolved)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
		case "json":
			data, err := json.MarshalIndent(resolved, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		default:
			return fmt.Errorf("unsupported output format %q", outputFormat)
		}
		return nil
	},
}

func init() {
	resolveCmd.Flags().StringVarP(&outputFormat, "output", "o", "yaml", "output format (yaml or json)")
	rootCmd.AddCommand(resolveCmd)
}
