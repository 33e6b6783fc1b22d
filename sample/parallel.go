/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sample

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/clratm/oracle"
	t "github.com/clratm/oracle/pkg/types"
)

// GarageSite is the site the garage reports serviced cars at.
var GarageSite = t.NewSite("sample.Garage", "Service")

// Fleet describes a concurrent walkthrough: Workers goroutines each send Rounds cars
// to a garage running on a goroutine of its own. The worker declares what the car
// should look like after service; the garage observes the car before and after.
type Fleet struct {
	Workers int
	Rounds  int

	// Miles each service adds to a car.
	Miles int

	// FaultEvery makes the garage botch every FaultEvery-th round of each worker,
	// adding one mile too many. Zero disables faults.
	FaultEvery int
}

// Faults returns the number of cases the fleet is expected to fail.
func (f Fleet) Faults() int {
	if f.FaultEvery <= 0 {
		return 0
	}
	return f.Workers * (f.Rounds / f.FaultEvery)
}

type serviceRequest struct {
	car   *IdentifiableCar
	round int
}

// ConcurrentScenario runs the fleet against engine and returns the first error any
// worker ran into. Every worker presents its values under an explicit thread, so that
// the garage goroutine's observations correlate with the worker's declarations.
func ConcurrentScenario(ctx context.Context, engine *oracle.Engine, fleet Fleet) error {
	engine.Enable(true)

	g, gCtx := errgroup.WithContext(ctx)
	for w := 0; w < fleet.Workers; w++ {
		w := w
		g.Go(func() error {
			return fleet.work(oracle.WithThread(gCtx, t.ThreadID(w+1)), engine, w)
		})
	}
	return g.Wait()
}

func (f Fleet) work(ctx context.Context, engine *oracle.Engine, worker int) error {
	requests := make(chan serviceRequest)
	results := make(chan error)
	defer close(requests)

	go func() {
		for req := range requests {
			results <- f.service(ctx, engine, req)
		}
	}()

	for round := 1; round <= f.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		car := NewIdentifiableCar("Fleet", fmt.Sprintf("W%d-R%d", worker, round), 0)
		expected := car.Clone()
		expected.Drive(f.Miles)

		if err := engine.Declare(ctx, GarageSite, car, expected); err != nil {
			return errors.WithMessagef(err, "worker %d could not declare round %d", worker, round)
		}

		select {
		case requests <- serviceRequest{car: car, round: round}:
		case <-ctx.Done():
			return ctx.Err()
		}
		if err := <-results; err != nil {
			return errors.WithMessagef(err, "worker %d failed in round %d", worker, round)
		}
	}

	return nil
}

func (f Fleet) service(ctx context.Context, engine *oracle.Engine, req serviceRequest) error {
	if err := engine.ObserveInput(ctx, GarageSite, req.car); err != nil {
		return err
	}

	miles := f.Miles
	if f.FaultEvery > 0 && req.round%f.FaultEvery == 0 {
		miles++
	}
	req.car.Drive(miles)

	return engine.ObserveOutput(ctx, GarageSite, req.car)
}
