/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config_test

import (
	"io/ioutil"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	"github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
	"go.uber.org/zap/zapcore"

	"github.com/clratm/oracle/pkg/config"
)

var _ = Describe("Parse", func() {
	It("keeps the defaults for absent fields", func() {
		c, err := config.Parse([]byte("instance: garage\nfleet:\n  workers: 8\n"))
		Expect(err).NotTo(HaveOccurred())

		Expect(c.Instance).To(Equal("garage"))
		Expect(c.Fleet.Workers).To(Equal(8))
		Expect(c.Fleet.Rounds).To(Equal(25))
		Expect(c.ColumnWidth).To(Equal(30))
		Expect(c.Hasher).To(Equal("md5"))
	})

	It("accepts an empty document", func() {
		c, err := config.Parse(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(c).To(Equal(config.Default()))
	})

	It("reads every field", func() {
		c, err := config.Parse([]byte(`
instance: fleet
verbose: true
columnWidth: 40
hasher: xxhash
logLevel: debug
development: true
journal: /tmp/journal
store: /tmp/store
fleet:
  workers: 2
  rounds: 10
  miles: 7
  faultEvery: 5
`))
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Verbose).To(BeTrue())
		Expect(c.ColumnWidth).To(Equal(40))
		Expect(c.Hasher).To(Equal("xxhash"))
		Expect(c.Development).To(BeTrue())
		Expect(c.Journal).To(Equal("/tmp/journal"))
		Expect(c.Store).To(Equal("/tmp/store"))
		Expect(c.Fleet.Miles).To(Equal(7))
		Expect(c.Fleet.FaultEvery).To(Equal(5))

		level, err := c.Level()
		Expect(err).NotTo(HaveOccurred())
		Expect(level).To(Equal(zapcore.DebugLevel))
	})

	It("rejects unknown fields", func() {
		_, err := config.Parse([]byte("instances: 3\n"))
		Expect(err).To(MatchError(ContainSubstring("could not decode config")))
	})

	table.DescribeTable("rejects unusable values",
		func(doc, message string) {
			_, err := config.Parse([]byte(doc))
			Expect(err).To(MatchError(ContainSubstring(message)))
		},
		table.Entry("empty instance", "instance: ''", "instance name must not be empty"),
		table.Entry("narrow columns", "columnWidth: 5", "column width must be at least 8, got 5"),
		table.Entry("unknown hasher", "hasher: crc32", `unknown hasher "crc32"`),
		table.Entry("unknown level", "logLevel: loud", `invalid log level "loud"`),
		table.Entry("no workers", "fleet: {workers: 0}", "fleet needs at least one worker"),
		table.Entry("negative rounds", "fleet: {rounds: -1}", "fleet rounds must not be negative"),
		table.Entry("no miles", "fleet: {miles: 0}", "fleet miles must be positive"),
		table.Entry("negative faults", "fleet: {faultEvery: -2}", "fleet fault interval must not be negative"),
	)
})

var _ = Describe("Load", func() {
	var tmpDir string

	BeforeEach(func() {
		var err error
		tmpDir, err = ioutil.TempDir("", "config-test")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	It("returns the defaults without a path", func() {
		c, err := config.Load("")
		Expect(err).NotTo(HaveOccurred())
		Expect(c).To(Equal(config.Default()))
	})

	It("reads a file", func() {
		path := filepath.Join(tmpDir, "oracle.yaml")
		Expect(ioutil.WriteFile(path, []byte("instance: from-file\n"), 0644)).To(Succeed())

		c, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Instance).To(Equal("from-file"))
	})

	It("names the file it could not read", func() {
		path := filepath.Join(tmpDir, "missing.yaml")
		_, err := config.Load(path)
		Expect(err).To(MatchError(ContainSubstring("could not read config file " + path)))
	})

	It("names the file it could not use", func() {
		path := filepath.Join(tmpDir, "bad.yaml")
		Expect(ioutil.WriteFile(path, []byte("hasher: crc32\n"), 0644)).To(Succeed())

		_, err := config.Load(path)
		Expect(err).To(MatchError(ContainSubstring("invalid config file " + path)))
	})
})
