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

package rules

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/AlaudaDevops/toolbox/updaterules/pkg/config"
)

func TestRules(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Rules Suite")
}

func boolPtr(b bool) *bool { return &b }

var _ = Describe("Matches", func() {
	candidate := &Candidate{
		PackageName:    "serde",
		Manager:        config.ManagerCargo,
		Datasource:     config.DatasourceCrate,
		Categories:     []string{"rust"},
		CurrentVersion: "1.0.100",
		NewVersion:     "1.0.203",
	}

	It("should match a rule without predicates", func() {
		Expect(Matches(&config.PackageRule{}, candidate)).To(BeTrue())
	})

	It("should match by exact package name", func() {
		rule := &config.PackageRule{MatchPackageNames: []string{"serde", "tokio"}}
		Expect(Matches(rule, candidate)).To(BeTrue())

		rule = &config.PackageRule{MatchPackageNames: []string{"tokio"}}
		Expect(Matches(rule, candidate)).To(BeFalse())
	})

	It("should match by package pattern", func() {
		rule := &config.PackageRule{MatchPackagePatterns: []string{"^serde"}}
		Expect(Matches(rule, candidate)).To(BeTrue())

		rule = &config.PackageRule{MatchPackagePatterns: []string{"^tokio"}}
		Expect(Matches(rule, candidate)).To(BeFalse())
	})

	It("should treat names and patterns as alternatives", func() {
		rule := &config.PackageRule{
			MatchPackageNames:    []string{"tokio"},
			MatchPackagePatterns: []string{"^serde"},
		}
		Expect(Matches(rule, candidate)).To(BeTrue())
	})

	It("should honor exclusions over name matches", func() {
		rule := &config.PackageRule{
			MatchPackagePatterns: []string{".*"},
			ExcludePackageNames:  []string{"serde"},
		}
		Expect(Matches(rule, candidate)).To(BeFalse())
	})

	It("should match by manager, datasource and category", func() {
		rule := &config.PackageRule{
			MatchManagers:    []string{string(config.ManagerCargo)},
			MatchDatasources: []string{string(config.DatasourceCrate)},
			MatchCategories:  []string{"rust"},
		}
		Expect(Matches(rule, candidate)).To(BeTrue())

		rule.MatchManagers = []string{string(config.ManagerNpm)}
		Expect(Matches(rule, candidate)).To(BeFalse())
	})

	It("should match by derived update type", func() {
		rule := &config.PackageRule{MatchUpdateTypes: []string{"patch"}}
		Expect(Matches(rule, candidate)).To(BeTrue())

		rule = &config.PackageRule{MatchUpdateTypes: []string{"major"}}
		Expect(Matches(rule, candidate)).To(BeFalse())
	})

	It("should match by current version range", func() {
		rule := &config.PackageRule{MatchCurrentVersion: "<2.0.0"}
		Expect(Matches(rule, candidate)).To(BeTrue())

		rule = &config.PackageRule{MatchCurrentVersion: ">=2.0.0"}
		Expect(Matches(rule, candidate)).To(BeFalse())
	})

	It("should surface invalid patterns as errors", func() {
		rule := &config.PackageRule{MatchPackagePatterns: []string{"("}}
		_, err := Matches(rule, candidate)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Resolve", func() {
	It("should start from top-level defaults", func() {
		cfg := &config.Config{
			Labels:       []string{"dependencies"},
			BranchPrefix: "deps/",
		}
		effective, err := Resolve(cfg, &Candidate{PackageName: "serde", Manager: config.ManagerCargo})
		Expect(err).NotTo(HaveOccurred())
		Expect(effective.Enabled).To(BeTrue())
		Expect(effective.Labels).To(Equal([]string{"dependencies"}))
		Expect(effective.BranchPrefix).To(Equal("deps/"))
		Expect(effective.MatchedRules).To(BeEmpty())
	})

	It("should let later rules override earlier ones", func() {
		cfg := &config.Config{
			PackageRules: []config.PackageRule{
				{MatchManagers: []string{"cargo"}, Automerge: boolPtr(true)},
				{MatchPackageNames: []string{"openssl"}, Automerge: boolPtr(false)},
			},
		}
		effective, err := Resolve(cfg, &Candidate{
			PackageName:    "openssl",
			Manager:        config.ManagerCargo,
			CurrentVersion: "0.10.50",
			NewVersion:     "0.10.60",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(effective.Automerge).To(BeFalse())
		Expect(effective.MatchedRules).To(Equal([]int{0, 1}))
	})

	It("should replace labels but accumulate addLabels", func() {
		cfg := &config.Config{
			Labels: []string{"dependencies"},
			PackageRules: []config.PackageRule{
				{MatchManagers: []string{"cargo"}, Labels: []string{"rust"}},
				{MatchUpdateTypes: []string{"patch"}, AddLabels: []string{"low-risk", "rust"}},
			},
		}
		effective, err := Resolve(cfg, &Candidate{
			PackageName:    "serde",
			Manager:        config.ManagerCargo,
			CurrentVersion: "1.0.100",
			NewVersion:     "1.0.203",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(effective.Labels).To(Equal([]string{"rust", "low-risk"}))
	})

	It("should disable candidates a rule turns off", func() {
		cfg := &config.Config{
			PackageRules: []config.PackageRule{
				{MatchUpdateTypes: []string{"major"}, Enabled: boolPtr(false)},
			},
		}
		effective, err := Resolve(cfg, &Candidate{
			PackageName:    "tokio",
			Manager:        config.ManagerCargo,
			CurrentVersion: "1.40.0",
			NewVersion:     "2.0.0",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(effective.Enabled).To(BeFalse())
	})
})

var _ = Describe("GroupCandidates", func() {
	cfg := &config.Config{
		PackageRules: []config.PackageRule{
			{
				MatchUpdateTypes: []string{"minor", "patch"},
				GroupName:        "all non-major dependencies",
			},
			{
				MatchPackageNames: []string{"leftpad"},
				Enabled:           boolPtr(false),
			},
		},
	}

	It("should group non-major updates and keep majors as singletons", func() {
		candidates := []*Candidate{
			{PackageName: "serde", Manager: config.ManagerCargo, CurrentVersion: "1.0.100", NewVersion: "1.0.203"},
			{PackageName: "rand", Manager: config.ManagerCargo, CurrentVersion: "0.8.0", NewVersion: "0.8.5"},
			{PackageName: "tokio", Manager: config.ManagerCargo, CurrentVersion: "1.40.0", NewVersion: "2.0.0"},
		}

		groups, err := GroupCandidates(cfg, candidates)
		Expect(err).NotTo(HaveOccurred())
		Expect(groups).To(HaveLen(2))

		Expect(groups[0].Name).To(Equal("all non-major dependencies"))
		Expect(groups[0].Candidates).To(HaveLen(2))
		Expect(groups[1].Name).To(Equal("tokio"))
	})

	It("should drop disabled candidates", func() {
		candidates := []*Candidate{
			{PackageName: "leftpad", Manager: config.ManagerNpm, CurrentVersion: "1.0.0", NewVersion: "1.0.1"},
		}
		groups, err := GroupCandidates(cfg, candidates)
		Expect(err).NotTo(HaveOccurred())
		Expect(groups).To(BeEmpty())
	})
})
