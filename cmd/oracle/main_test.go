/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

func parseCheck(args ...string) *checkArgs {
	cmd, err := parseArgs(append([]string{"check"}, args...))
	Expect(err).NotTo(HaveOccurred())
	Expect(cmd).To(BeAssignableToTypeOf(&checkArgs{}))
	check := cmd.(*checkArgs)
	check.logger = zap.NewNop()
	return check
}

func nonEmptyLines(s string) []string {
	var result []string
	for _, line := range strings.Split(s, "\n") {
		if line != "" {
			result = append(result, line)
		}
	}
	return result
}

var _ = Describe("Parsing", func() {
	var tmpDir string

	BeforeEach(func() {
		var err error
		tmpDir, err = ioutil.TempDir("", "oracle-cmd-test")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	It("parses a fully populated check command line", func() {
		configPath := filepath.Join(tmpDir, "oracle.yaml")
		Expect(ioutil.WriteFile(configPath, []byte("instance: from-file\nfleet: {miles: 3}\n"), 0644)).To(Succeed())

		check := parseCheck(
			"--config", configPath,
			"--hasher", "sha256",
			"--logLevel", "debug",
			"--verbose",
			"--width", "40",
			"--journal", filepath.Join(tmpDir, "journal"),
			"--store", filepath.Join(tmpDir, "store"),
			"--workers", "2",
			"--rounds", "3",
			"--faultEvery", "2",
			"--scenario", "health",
			"--scenario", "concurrent",
			"--json",
			"--metrics",
			"--dump",
		)
		Expect(check.config.Instance).To(Equal("from-file"))
		Expect(check.config.Hasher).To(Equal("sha256"))
		Expect(check.config.LogLevel).To(Equal("debug"))
		Expect(check.config.Verbose).To(BeTrue())
		Expect(check.config.ColumnWidth).To(Equal(40))
		Expect(check.config.Fleet.Workers).To(Equal(2))
		Expect(check.config.Fleet.Rounds).To(Equal(3))
		Expect(check.config.Fleet.Miles).To(Equal(3))
		Expect(check.config.Fleet.FaultEvery).To(Equal(2))
		Expect(check.scenarios).To(Equal([]string{"health", "concurrent"}))
		Expect(check.printJSON).To(BeTrue())
		Expect(check.printMetrics).To(BeTrue())
		Expect(check.dump).To(BeTrue())
	})

	It("runs every walkthrough by default", func() {
		check := parseCheck()
		Expect(check.scenarios).To(Equal(allScenarios))
		Expect(check.config.Instance).To(Equal("oracle"))
	})

	It("validates the overridden configuration", func() {
		_, err := parseArgs([]string{"check", "--width", "3"})
		Expect(err).To(MatchError("column width must be at least 8, got 3"))
	})

	It("rejects unknown walkthroughs", func() {
		_, err := parseArgs([]string{"check", "--scenario", "sideways"})
		Expect(err).To(HaveOccurred())
	})

	It("parses a cat command line", func() {
		cmd, err := parseArgs([]string{"cat", "--journal", tmpDir, "--instance", "a", "--instance", "b", "--eventType", "Declared"})
		Expect(err).NotTo(HaveOccurred())
		Expect(cmd).To(Equal(&catArgs{
			journal:    tmpDir,
			instances:  []string{"a", "b"},
			eventTypes: []string{"Declared"},
		}))
	})

	When("both event includes and event excludes are present", func() {
		It("returns an error", func() {
			_, err := parseArgs([]string{
				"cat",
				"--journal", tmpDir,
				"--eventType", "Declared",
				"--notEventType", "InputMatched",
			})
			Expect(err).To(MatchError("cannot set both --eventType and --notEventType"))
		})
	})

	It("requires an existing journal", func() {
		_, err := parseArgs([]string{"cat", "--journal", filepath.Join(tmpDir, "missing")})
		Expect(err).To(HaveOccurred())
	})

	It("parses a history command line", func() {
		cmd, err := parseArgs([]string{"history", "--store", tmpDir, "--id", "abc"})
		Expect(err).NotTo(HaveOccurred())
		Expect(cmd).To(Equal(&historyArgs{store: tmpDir, instance: "oracle", id: "abc"}))
	})

	It("requires a command", func() {
		_, err := parseArgs(nil)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Execution", func() {
	var (
		tmpDir string
		output *bytes.Buffer
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = ioutil.TempDir("", "oracle-cmd-test")
		Expect(err).NotTo(HaveOccurred())
		output = &bytes.Buffer{}
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	It("prints the result and coverage reports", func() {
		Expect(parseCheck("--scenario", "health").execute(output)).To(Succeed())

		Expect(output.String()).To(ContainSubstring("Result report for tester oracle:"))
		Expect(output.String()).To(ContainSubstring("Coverage report for tester oracle:"))
		Expect(output.String()).To(ContainSubstring("Overall Coverage: 10 / 10"))
		Expect(strings.Count(output.String(), "PASSED")).To(Equal(10))
	})

	It("reports the failures of a faulty fleet", func() {
		check := parseCheck("--scenario", "concurrent", "--workers", "2", "--rounds", "4", "--faultEvery", "2")
		Expect(check.execute(output)).To(Succeed())

		Expect(strings.Count(output.String(), "FAILED")).To(Equal(4))
		Expect(strings.Count(output.String(), "PASSED")).To(Equal(4))
		Expect(output.String()).To(ContainSubstring("Overall Coverage: 4 / 8"))
	})

	It("prints the reports as JSON", func() {
		Expect(parseCheck("--scenario", "identifiable", "--json").execute(output)).To(Succeed())

		var decoded map[string]interface{}
		Expect(json.Unmarshal(output.Bytes(), &decoded)).To(Succeed())
		Expect(decoded["instance"]).To(Equal("oracle"))
		Expect(decoded["summary"]).To(Equal(map[string]interface{}{"covered": 1.0, "total": 1.0}))
	})

	It("prints the event counters and the dump on request", func() {
		Expect(parseCheck("--scenario", "health", "--metrics", "--dump").execute(output)).To(Succeed())

		Expect(output.String()).To(ContainSubstring(`oracle_events_total{instance="oracle",type="Declared"} 10`))
		Expect(output.String()).To(ContainSubstring(`oracle_outcomes_total{instance="oracle",status="PASSED"} 10`))
		Expect(output.String()).To(ContainSubstring("Info for: oracle @ "))
		Expect(output.String()).To(ContainSubstring("Input: 144 -> Passed with result: 144"))
	})

	It("journals the events for cat", func() {
		journalDir := filepath.Join(tmpDir, "journal")
		Expect(parseCheck("--scenario", "health", "--journal", journalDir).execute(output)).To(Succeed())

		output.Reset()
		cat := &catArgs{journal: journalDir, eventTypes: []string{"OutputFinalized"}}
		Expect(cat.execute(output)).To(Succeed())
		lines := nonEmptyLines(output.String())
		Expect(lines).To(HaveLen(10))
		for _, line := range lines {
			Expect(line).To(ContainSubstring(" oracle "))
			Expect(line).To(ContainSubstring("OutputFinalized"))
		}

		output.Reset()
		cat = &catArgs{journal: journalDir, notEventTypes: []string{"OutputFinalized"}}
		Expect(cat.execute(output)).To(Succeed())
		Expect(output.String()).NotTo(ContainSubstring("OutputFinalized"))
		Expect(output.String()).To(ContainSubstring("Declared"))

		output.Reset()
		cat = &catArgs{journal: journalDir, instances: []string{"someone-else"}}
		Expect(cat.execute(output)).To(Succeed())
		Expect(output.String()).To(BeEmpty())
	})

	It("keeps a snapshot of every run for history", func() {
		storeDir := filepath.Join(tmpDir, "store")
		Expect(parseCheck("--scenario", "health", "--store", storeDir).execute(output)).To(Succeed())
		Expect(parseCheck("--scenario", "health", "--store", storeDir).execute(output)).To(Succeed())

		output.Reset()
		history := &historyArgs{store: storeDir, instance: "oracle"}
		Expect(history.execute(output)).To(Succeed())
		lines := nonEmptyLines(output.String())
		Expect(lines).To(HaveLen(2))
		for _, line := range lines {
			Expect(line).To(ContainSubstring("passed: 10 / 10 coverage: 10 / 10"))
		}

		id := strings.Fields(lines[0])[1]
		output.Reset()
		history = &historyArgs{store: storeDir, instance: "oracle", id: id}
		Expect(history.execute(output)).To(Succeed())
		Expect(output.String()).To(ContainSubstring(`"id":"` + id + `"`))

		output.Reset()
		history = &historyArgs{store: storeDir, instance: "nobody"}
		Expect(history.execute(output)).To(Succeed())
		Expect(output.String()).To(Equal("No snapshots of nobody\n"))
	})
})
