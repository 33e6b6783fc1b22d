/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package sample

import (
	"context"

	"github.com/pkg/errors"

	"github.com/clratm/oracle"
	t "github.com/clratm/oracle/pkg/types"
)

// HealthCheckSite is the site every step of HealthCheck is reported at.
var HealthCheckSite = t.NewSite("sample", "HealthCheck")

// HealthCheckValues are the values HealthCheck pushes through the engine, one per
// supported kind of scalar plus a scalar slice.
var HealthCheckValues = []interface{}{
	byte(0x42),
	int16(143),
	144,
	int64(123456789),
	float32(123459.10),
	123459.11,
	true,
	'c',
	"string",
	[]int{1, 2, 4},
}

// HealthCheck enables engine and runs every value of HealthCheckValues through a full
// declare, observe input, observe output cycle, each of which should pass. It then
// disables the engine at runtime, runs a cycle that would otherwise fail, and enables
// the engine again, leaving the reports untouched by the disabled cycle.
func HealthCheck(ctx context.Context, engine *oracle.Engine) error {
	engine.Enable(true)

	for _, v := range HealthCheckValues {
		if err := cycle(ctx, engine, HealthCheckSite, v, v, v); err != nil {
			return err
		}
	}

	engine.Enable(false)
	strs := []string{"Str1", "Str2"}
	if err := cycle(ctx, engine, HealthCheckSite, strs, strs, false); err != nil {
		return err
	}
	engine.Enable(true)

	return nil
}

// IdentifiableSite is the site every step of IdentifiableScenario is reported at.
var IdentifiableSite = t.NewSite("sample", "Identifiable")

// IdentifiableScenario declares that a car driven for 2000 miles reaches a mileage of 2000.
// Plain Cars are rejected by the engine; their error is returned as rejected. The same
// scenario with IdentifiableCars passes; err is non-nil only if that part fails.
func IdentifiableScenario(ctx context.Context, engine *oracle.Engine) (rejected error, err error) {
	engine.Enable(true)

	toTest := NewCar("Ford", "Mustang", 0)
	expected := NewCar("Ford", "Mustang", 2000)
	rejected = trip(ctx, engine, toTest, expected, func() { toTest.Drive(2000) })

	identifiable := NewIdentifiableCar("Ford", "Mustang", 0)
	identifiableExpected := NewIdentifiableCar("Ford", "Mustang", 2000)
	err = trip(ctx, engine, identifiable, identifiableExpected, func() { identifiable.Drive(2000) })

	return rejected, err
}

// trip declares that car ends up as expected after drive, then drives it.
func trip(ctx context.Context, engine *oracle.Engine, car, expected interface{}, drive func()) error {
	if err := engine.Declare(ctx, IdentifiableSite, car, expected); err != nil {
		return errors.WithMessage(err, "could not declare trip")
	}
	if err := engine.ObserveInput(ctx, IdentifiableSite, car); err != nil {
		return errors.WithMessage(err, "could not observe departure")
	}
	drive()
	if err := engine.ObserveOutput(ctx, IdentifiableSite, car); err != nil {
		return errors.WithMessage(err, "could not observe arrival")
	}
	return nil
}

// cycle runs one declare, observe input, observe output cycle at site.
func cycle(ctx context.Context, engine *oracle.Engine, site t.Site, input, expected, output interface{}) error {
	if err := engine.Declare(ctx, site, input, expected); err != nil {
		return errors.WithMessagef(err, "could not declare %v", input)
	}
	if err := engine.ObserveInput(ctx, site, input); err != nil {
		return errors.WithMessagef(err, "could not observe input %v", input)
	}
	if err := engine.ObserveOutput(ctx, site, output); err != nil {
		return errors.WithMessagef(err, "could not observe output %v", output)
	}
	return nil
}
