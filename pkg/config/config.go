/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package config loads the YAML configuration of the oracle command line tool.
package config

import (
	"bytes"
	"io"
	"io/ioutil"

	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/clratm/oracle/pkg/crypto"
)

type Config struct {
	Instance    string `yaml:"instance"`    // name of the engine, printed in report headers
	Verbose     bool   `yaml:"verbose"`     // include unexpected inputs in result reports
	ColumnWidth int    `yaml:"columnWidth"` // width of the report columns, values beyond it are truncated
	Hasher      string `yaml:"hasher"`      // key hasher, one of crypto.Names()
	LogLevel    string `yaml:"logLevel"`    // zap level name
	Development bool   `yaml:"development"` // human-readable instead of JSON logs

	Journal string `yaml:"journal"` // directory of the event journal, empty to disable
	Store   string `yaml:"store"`   // directory of the snapshot store, empty for in-memory

	// Load of the concurrent walkthrough
	Fleet struct {
		Workers    int `yaml:"workers"`    // concurrent workers, each with its own thread identity
		Rounds     int `yaml:"rounds"`     // cases per worker
		Miles      int `yaml:"miles"`      // miles added by each service
		FaultEvery int `yaml:"faultEvery"` // botch every n-th round of each worker, 0 disables faults
	} `yaml:"fleet"`
}

// Default returns the configuration used for every field a file leaves out.
func Default() *Config {
	c := &Config{
		Instance:    "oracle",
		ColumnWidth: 30,
		Hasher:      "md5",
		LogLevel:    "info",
	}
	c.Fleet.Workers = 4
	c.Fleet.Rounds = 25
	c.Fleet.Miles = 100
	return c
}

// Load reads and validates the configuration file at path.
// An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.WithMessagef(err, "could not read config file %s", path)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, errors.WithMessagef(err, "invalid config file %s", path)
	}
	return c, nil
}

// Parse decodes a YAML document over the defaults and validates the result.
// Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	c := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && err != io.EOF {
		return nil, errors.WithMessage(err, "could not decode config")
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks every field for a usable value.
func (c *Config) Validate() error {
	if c.Instance == "" {
		return errors.New("instance name must not be empty")
	}
	if c.ColumnWidth < 8 {
		return errors.Errorf("column width must be at least 8, got %d", c.ColumnWidth)
	}
	if _, err := crypto.ByName(c.Hasher); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Fleet.Workers < 1 {
		return errors.Errorf("fleet needs at least one worker, got %d", c.Fleet.Workers)
	}
	if c.Fleet.Rounds < 0 {
		return errors.Errorf("fleet rounds must not be negative, got %d", c.Fleet.Rounds)
	}
	if c.Fleet.Miles < 1 {
		return errors.Errorf("fleet miles must be positive, got %d", c.Fleet.Miles)
	}
	if c.Fleet.FaultEvery < 0 {
		return errors.Errorf("fleet fault interval must not be negative, got %d", c.Fleet.FaultEvery)
	}
	return nil
}

// Level parses the configured log level.
func (c *Config) Level() (zapcore.Level, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, errors.WithMessagef(err, "invalid log level %q", c.LogLevel)
	}
	return level, nil
}
