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
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AlaudaDevops/toolbox/updaterules/pkg/config"
	"github.com/AlaudaDevops/toolbox/updaterules/pkg/preset"
	"github.com/AlaudaDevops/toolbox/updaterules/pkg/rules"
	"github.com/AlaudaDevops/toolbox/updaterules/pkg/schedule"
)

var (
	explainPackage    string
	explainManager    string
	explainDatasource string
	explainCategories []string
	explainCurrent    string
	explainNew        string
	explainUpdateType string
)

// explainCmd shows the effective settings for one update candidate
var explainCmd = &cobra.Command{
	Use:   "explain [file]",
	Short: "Explain which rules apply to an update candidate",
	Long: `Explain builds an update candidate from the given flags, resolves the
configuration's presets, applies the package rules in order and prints
the effective settings together with the rule indices that fired.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if explainPackage == "" {
			return fmt.Errorf("--package is required")
		}

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
		resolved = config.NewConfigReader().ApplyDefaults(resolved)

		candidate := &rules.Candidate{
			PackageName:    explainPackage,
			Manager:        config.Manager(explainManager),
			Datasource:     config.Datasource(explainDatasource),
			Categories:     explainCategories,
			CurrentVersion: explainCurrent,
			NewVersion:     explainNew,
			UpdateType:     config.UpdateType(explainUpdateType),
		}

		effective, err := rules.Resolve(resolved, candidate)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "# %s (%s update)\n", candidate, candidate.EffectiveUpdateType())

		data, err := yaml.Marshal(effective)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))

		inWindow, err := schedule.InWindow(time.Now(), effective.Schedule, effective.Timezone)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "inScheduleWindowNow: %t\n", inWindow)
		return nil
	},
}

func init() {
	explainCmd.Flags().StringVar(&explainPackage, "package", "", "package name of the update candidate")
	explainCmd.Flags().StringVar(&explainManager, "manager", string(config.ManagerGomod), "package manager of the candidate")
	explainCmd.Flags().StringVar(&explainDatasource, "datasource", "", "datasource of the candidate")
	explainCmd.Flags().StringSliceVar(&explainCategories, "category", nil, "category tags on the candidate")
	explainCmd.Flags().StringVar(&explainCurrent, "current", "", "current version")
	explainCmd.Flags().StringVar(&explainNew, "new", "", "proposed version")
	explainCmd.Flags().StringVar(&explainUpdateType, "update-type", "", "override the derived update type")
	rootCmd.AddCommand(explainCmd)
}
