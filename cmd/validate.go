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
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/AlaudaDevops/toolbox/updaterules/pkg/lint"
)

var (
	// strict promotes warnings to failures
	strict bool
)

// validateCmd lints a configuration file
var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate an update-bot configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(args)
		if err != nil {
			return err
		}

		result := lint.NewLinter().Lint(cfg)
		for _, issue := range result {
			fmt.Fprintln(cmd.OutOrStdout(), issue)
		}

		if result.HasErrors() {
			return fmt.Errorf("configuration has %d issue(s)", len(result))
		}
		if strict && len(result.Warnings()) > 0 {
			return fmt.Errorf("configuration has %d warning(s) and --strict is set", len(result.Warnings()))
		}

		logrus.Infof("Configuration is valid (%d warning(s))", len(result.Warnings()))
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as failures")
	rootCmd.AddCommand(validateCmd)
}
