/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// oracle runs the sample walkthroughs against a fresh engine and prints its reports.
// It can also print the event journals written by such runs and list the report
// snapshots kept across runs.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/clratm/oracle/pkg/config"
	"github.com/clratm/oracle/pkg/events"
)

const (
	healthScenario       = "health"
	identifiableScenario = "identifiable"
	concurrentScenario   = "concurrent"
)

var allScenarios = []string{healthScenario, identifiableScenario, concurrentScenario}

func allEventTypes() []string {
	names := make([]string, len(events.AllTypes))
	for i, et := range events.AllTypes {
		names[i] = et.String()
	}
	return names
}

// excludeByType is used for --eventType/--notEventType.
// The assumption is that at least one of include or exclude is nil.
func excludeByType(value string, include []string, exclude []string) bool {
	if include != nil {
		for _, includeName := range include {
			if includeName == value {
				return false
			}
		}

		return true
	}

	for _, excludeName := range exclude {
		if excludeName == value {
			return true
		}
	}

	return false
}

type command interface {
	execute(output io.Writer) error
}

func parseArgs(args []string) (command, error) {
	app := kingpin.New("oracle", "Test oracle correlating declared expectations with observed inputs and outputs.")

	check := app.Command("check", "Run the sample walkthroughs and print the result and coverage reports.")
	configPath := check.Flag("config", "YAML configuration file (defaults apply without one).").String()
	instance := check.Flag("instance", "Name of the engine, overrides the configuration.").String()
	hasher := check.Flag("hasher", "Key hasher, overrides the configuration.").Enum("md5", "sha256", "xxhash")
	logLevel := check.Flag("logLevel", "Log level, overrides the configuration.").Enum("debug", "info", "warn", "error")
	verbose := check.Flag("verbose", "Include unexpected inputs in the result report.").Bool()
	width := check.Flag("width", "Column width of the reports, overrides the configuration.").Int()
	journalDir := check.Flag("journal", "Directory to journal every protocol event to.").String()
	storeDir := check.Flag("store", "Directory of the snapshot store the reports are kept in.").String()
	workers := check.Flag("workers", "Concurrent workers of the concurrent walkthrough.").Int()
	rounds := check.Flag("rounds", "Cases per worker of the concurrent walkthrough.").Int()
	faultEvery := check.Flag("faultEvery", "Botch every n-th case of each worker of the concurrent walkthrough.").Int()
	scenarios := check.Flag("scenario", "Walkthrough to run (repeatable, defaults to all).").Enums(allScenarios...)
	printJSON := check.Flag("json", "Print the reports as canonical JSON instead of tables.").Bool()
	printMetrics := check.Flag("metrics", "Print the event counters after the reports.").Bool()
	dump := check.Flag("dump", "Print everything the engine knows after the reports.").Bool()

	cat := app.Command("cat", "Print the events of a journal.")
	catJournal := cat.Flag("journal", "Journal directory to read.").Required().ExistingDir()
	catInstances := cat.Flag("instance", "Report events of this engine only, may be repeated.").Strings()
	eventTypes := cat.Flag("eventType", "Which event types to report.").Enums(allEventTypes()...)
	notEventTypes := cat.Flag("notEventType", "Which event types to exclude. (Cannot combine with --eventType)").Enums(allEventTypes()...)

	history := app.Command("history", "List the report snapshots kept in a store.")
	historyStore := history.Flag("store", "Snapshot store directory to read.").Required().ExistingDir()
	historyInstance := history.Flag("instance", "Engine whose snapshots to list.").Default("oracle").String()
	historyID := history.Flag("id", "Print this snapshot as JSON instead of listing.").String()

	selected, err := app.Parse(args)
	if err != nil {
		return nil, err
	}

	switch selected {
	case check.FullCommand():
		cfg, err := config.Load(*configPath)
		if err != nil {
			return nil, err
		}

		if *instance != "" {
			cfg.Instance = *instance
		}
		if *hasher != "" {
			cfg.Hasher = *hasher
		}
		if *logLevel != "" {
			cfg.LogLevel = *logLevel
		}
		if *verbose {
			cfg.Verbose = true
		}
		if *width != 0 {
			cfg.ColumnWidth = *width
		}
		if *journalDir != "" {
			cfg.Journal = *journalDir
		}
		if *storeDir != "" {
			cfg.Store = *storeDir
		}
		if *workers != 0 {
			cfg.Fleet.Workers = *workers
		}
		if *rounds != 0 {
			cfg.Fleet.Rounds = *rounds
		}
		if *faultEvery != 0 {
			cfg.Fleet.FaultEvery = *faultEvery
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}

		selectedScenarios := *scenarios
		if selectedScenarios == nil {
			selectedScenarios = allScenarios
		}

		return &checkArgs{
			config:       cfg,
			scenarios:    selectedScenarios,
			printJSON:    *printJSON,
			printMetrics: *printMetrics,
			dump:         *dump,
		}, nil

	case cat.FullCommand():
		if *eventTypes != nil && *notEventTypes != nil {
			return nil, errors.Errorf("cannot set both --eventType and --notEventType")
		}
		return &catArgs{
			journal:       *catJournal,
			instances:     *catInstances,
			eventTypes:    *eventTypes,
			notEventTypes: *notEventTypes,
		}, nil

	case history.FullCommand():
		return &historyArgs{
			store:    *historyStore,
			instance: *historyInstance,
			id:       *historyID,
		}, nil

	default:
		return nil, errors.Errorf("unknown command %q", selected)
	}
}

// newLogger builds the zap logger the configuration asks for. Logs go to stderr,
// leaving stdout to the reports.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	zapConfig := zap.NewProductionConfig()
	if cfg.Development {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	zapConfig.OutputPaths = []string{"stderr"}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, errors.WithMessage(err, "could not build logger")
	}
	return logger, nil
}

func main() {
	kingpin.Version("0.0.1")
	cmd, err := parseArgs(os.Args[1:])
	if err != nil {
		kingpin.Fatalf("failed to parse arguments, %s, try --help", err)
	}
	err = cmd.execute(os.Stdout)
	if err != nil {
		fmt.Println("")
		kingpin.Fatalf("%s", err)
	}
}
