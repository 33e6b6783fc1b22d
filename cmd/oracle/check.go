/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/clratm/oracle"
	"github.com/clratm/oracle/pkg/config"
	"github.com/clratm/oracle/pkg/crypto"
	"github.com/clratm/oracle/pkg/journal"
	"github.com/clratm/oracle/pkg/metrics"
	"github.com/clratm/oracle/pkg/modules"
	"github.com/clratm/oracle/pkg/report"
	"github.com/clratm/oracle/pkg/snapshotstore"
	"github.com/clratm/oracle/sample"
)

type checkArgs struct {
	config       *config.Config
	scenarios    []string
	printJSON    bool
	printMetrics bool
	dump         bool

	// logger overrides the logger built from the configuration.
	logger *zap.Logger
}

func (a *checkArgs) execute(output io.Writer) error {
	cfg := a.config

	logger := a.logger
	if logger == nil {
		var err error
		logger, err = newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()
	}

	hasher, err := crypto.ByName(cfg.Hasher)
	if err != nil {
		return err
	}
	opts := []oracle.EngineOpt{oracle.LoggerOpt(logger), oracle.HasherOpt(hasher)}

	if cfg.Journal != "" {
		j, err := journal.Open(cfg.Journal)
		if err != nil {
			return err
		}
		defer j.Close()
		opts = append(opts, oracle.InterceptorOpt(j))
	}

	var registry *prometheus.Registry
	if a.printMetrics {
		registry = prometheus.NewRegistry()
		opts = append(opts, oracle.InterceptorOpt(metrics.New(registry)))
	}

	var store modules.SnapshotStore
	if cfg.Store != "" {
		s, err := snapshotstore.Open(cfg.Store)
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
	} else {
		store = snapshotstore.NewVolatileStore()
	}

	engine := oracle.NewRegistry(opts...).Get(cfg.Instance)
	if err := a.run(context.Background(), logger, engine); err != nil {
		return err
	}

	if !engine.Enabled() {
		return report.WriteDisabled(output, cfg.Instance)
	}

	records, err := engine.ResultReport(cfg.Verbose)
	if err != nil {
		return err
	}
	rows, summary, err := engine.CoverageReport()
	if err != nil {
		return err
	}

	snapshot := snapshotstore.New(cfg.Instance, time.Now(), records, rows, summary)
	if err := store.Put(snapshot); err != nil {
		return err
	}
	if err := store.Sync(); err != nil {
		return err
	}
	logger.Info("stored report snapshot",
		zap.String("instance", cfg.Instance),
		zap.String("id", snapshot.ID),
		zap.Int("results", len(snapshot.Results)),
		zap.Int("passed", snapshot.Passed()))

	if a.printJSON {
		if err := report.WriteJSON(output, snapshot); err != nil {
			return err
		}
	} else {
		if err := report.WriteResults(output, cfg.Instance, records, cfg.Verbose, cfg.ColumnWidth); err != nil {
			return err
		}
		fmt.Fprintln(output)
		if err := report.WriteCoverage(output, cfg.Instance, rows, summary, cfg.ColumnWidth); err != nil {
			return err
		}
	}

	if a.dump {
		inv, err := engine.Inventory()
		if err != nil {
			return err
		}
		fmt.Fprintln(output)
		fmt.Fprint(output, report.Dump(inv))
	}

	if registry != nil {
		fmt.Fprintln(output)
		if err := writeCounters(output, registry); err != nil {
			return err
		}
	}

	return nil
}

func (a *checkArgs) run(ctx context.Context, logger *zap.Logger, engine *oracle.Engine) error {
	for _, scenario := range a.scenarios {
		logger.Debug("running walkthrough", zap.String("scenario", scenario))

		switch scenario {
		case healthScenario:
			if err := sample.HealthCheck(ctx, engine); err != nil {
				return errors.WithMessage(err, "health check failed")
			}
		case identifiableScenario:
			rejected, err := sample.IdentifiableScenario(ctx, engine)
			if err != nil {
				return errors.WithMessage(err, "identifiable walkthrough failed")
			}
			if rejected == nil {
				return errors.New("plain cars were accepted although they have no identity")
			}
			logger.Info("plain cars rejected as expected", zap.Error(rejected))
		case concurrentScenario:
			fleet := sample.Fleet{
				Workers:    a.config.Fleet.Workers,
				Rounds:     a.config.Fleet.Rounds,
				Miles:      a.config.Fleet.Miles,
				FaultEvery: a.config.Fleet.FaultEvery,
			}
			if err := sample.ConcurrentScenario(ctx, engine, fleet); err != nil {
				return errors.WithMessage(err, "concurrent walkthrough failed")
			}
		default:
			return errors.Errorf("unknown walkthrough %q", scenario)
		}
	}
	return nil
}

// writeCounters prints one line per counter sample, ordered by name and labels.
func writeCounters(output io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return errors.WithMessage(err, "could not gather metrics")
	}

	var lines []string
	for _, family := range families {
		for _, m := range family.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, pair := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", pair.GetName(), pair.GetValue()))
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %g", family.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)

	for _, line := range lines {
		if _, err := fmt.Fprintln(output, line); err != nil {
			return errors.WithMessage(err, "could not write metrics")
		}
	}
	return nil
}
