/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package sample contains a small demonstration domain and walkthroughs exercising an
// engine the way instrumented production code would.
package sample

import (
	"fmt"
)

// Car has no identity of its own; the engine refuses to fingerprint it.
type Car struct {
	Mileage int
	Model   string
	Make    string
}

func NewCar(make, model string, mileage int) *Car {
	return &Car{Mileage: mileage, Model: model, Make: make}
}

// Drive adds miles to the mileage.
func (c *Car) Drive(miles int) {
	c.Mileage += miles
}

// IdentifiableCar is a Car the engine can fingerprint.
type IdentifiableCar struct {
	Car
}

func NewIdentifiableCar(make, model string, mileage int) *IdentifiableCar {
	return &IdentifiableCar{Car: Car{Mileage: mileage, Model: model, Make: make}}
}

// ID concatenates all fields, e.g. "Ford Mustang, mileage: 2000".
func (c *IdentifiableCar) ID() string {
	return fmt.Sprintf("%s %s, mileage: %d", c.Make, c.Model, c.Mileage)
}

// Clone returns an independent copy of the car.
func (c *IdentifiableCar) Clone() *IdentifiableCar {
	clone := *c
	return &clone
}
