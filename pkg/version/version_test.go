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

package version

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/AlaudaDevops/toolbox/updaterules/pkg/config"
)

func TestVersion(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Version Suite")
}

var _ = Describe("CompareVersions", func() {
	It("should compare basic semantic versions correctly", func() {
		Expect(CompareVersions("1.0.0", "1.0.1")).To(Equal(-1))
		Expect(CompareVersions("1.0.1", "1.0.0")).To(Equal(1))
		Expect(CompareVersions("1.0.0", "1.0.0")).To(Equal(0))
		Expect(CompareVersions("1.0.0", "2.0.0")).To(Equal(-1))
	})

	It("should handle 'v' prefix correctly", func() {
		Expect(CompareVersions("v1.0.0", "v1.0.1")).To(Equal(-1))
		Expect(CompareVersions("v1.0.0", "1.0.1")).To(Equal(-1))
		Expect(CompareVersions("1.0.1", "v1.0.0")).To(Equal(1))
	})

	It("should handle short versions", func() {
		Expect(CompareVersions("1.2", "1.2.0")).To(Equal(0))
		Expect(CompareVersions("1", "1.0.1")).To(Equal(-1))
	})

	It("should handle pre-release versions", func() {
		Expect(CompareVersions("1.0.0-alpha", "1.0.0")).To(Equal(-1))
		Expect(CompareVersions("1.0.0-alpha", "1.0.0-beta")).To(Equal(-1))
	})

	It("should handle empty versions", func() {
		Expect(CompareVersions("", "")).To(Equal(0))
		Expect(CompareVersions("", "1.0.0")).To(Equal(-1))
		Expect(CompareVersions("1.0.0", "")).To(Equal(1))
	})
})

var _ = Describe("UpdateTypeOf", func() {
	It("should classify major, minor and patch bumps", func() {
		Expect(UpdateTypeOf("1.2.3", "2.0.0")).To(Equal(config.UpdateMajor))
		Expect(UpdateTypeOf("1.2.3", "1.3.0")).To(Equal(config.UpdateMinor))
		Expect(UpdateTypeOf("1.2.3", "1.2.4")).To(Equal(config.UpdatePatch))
	})

	It("should classify identical versions as pin", func() {
		Expect(UpdateTypeOf("1.2.3", "1.2.3")).To(Equal(config.UpdatePin))
		Expect(UpdateTypeOf("v1.2.3", "1.2.3")).To(Equal(config.UpdatePin))
	})

	It("should classify non-semver bumps as digest", func() {
		Expect(UpdateTypeOf("sha256:aaaa", "sha256:bbbb")).To(Equal(config.UpdateDigest))
	})
})

var _ = Describe("MatchesRange", func() {
	It("should match versions inside the range", func() {
		Expect(MatchesRange("0.9.1", "<1.0.0")).To(BeTrue())
		Expect(MatchesRange("2.5.0", ">=2.0.0, <3.0.0")).To(BeTrue())
		Expect(MatchesRange("v0.9.1", "<1.0.0")).To(BeTrue())
	})

	It("should reject versions outside the range", func() {
		Expect(MatchesRange("1.0.0", "<1.0.0")).To(BeFalse())
		Expect(MatchesRange("3.0.0", ">=2.0.0, <3.0.0")).To(BeFalse())
	})

	It("should error on invalid input", func() {
		_, err := MatchesRange("1.0.0", "not a range")
		Expect(err).To(HaveOccurred())

		_, err = MatchesRange("not a version", "<1.0.0")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("ValidRange", func() {
	It("should accept well-formed ranges", func() {
		Expect(ValidRange("<1.0.0")).To(Succeed())
		Expect(ValidRange(">=2.3, <3")).To(Succeed())
	})

	It("should reject malformed ranges", func() {
		Expect(ValidRange("one point oh")).NotTo(Succeed())
	})
})
