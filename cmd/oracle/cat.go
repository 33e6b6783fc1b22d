/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"
	"io"

	"github.com/clratm/oracle/pkg/events"
	"github.com/clratm/oracle/pkg/journal"
)

type catArgs struct {
	journal       string
	instances     []string
	eventTypes    []string
	notEventTypes []string
}

func excludedByInstance(e *events.Event, instances []string) bool {
	if len(instances) == 0 {
		return false
	}

	for _, instance := range instances {
		if instance == e.Instance {
			return false
		}
	}

	return true
}

func (a *catArgs) execute(output io.Writer) error {
	j, err := journal.Open(a.journal)
	if err != nil {
		return err
	}
	defer j.Close()

	var writeErr error
	err = j.LoadAll(func(index uint64, e *events.Event) {
		if writeErr != nil {
			return
		}
		if excludedByInstance(e, a.instances) {
			return
		}
		if excludeByType(e.Type.String(), a.eventTypes, a.notEventTypes) {
			return
		}
		_, writeErr = fmt.Fprintf(output, "%d %s %s\n", index, e.Instance, e)
	})
	if err != nil {
		return err
	}
	return writeErr
}
