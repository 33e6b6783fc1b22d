/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/clratm/oracle/pkg/report"
	"github.com/clratm/oracle/pkg/snapshotstore"
)

type historyArgs struct {
	store    string
	instance string
	id       string
}

func (a *historyArgs) execute(output io.Writer) error {
	store, err := snapshotstore.Open(a.store)
	if err != nil {
		return err
	}
	defer store.Close()

	if a.id != "" {
		snapshot, err := store.Get(a.instance, a.id)
		if err != nil {
			return err
		}
		return report.WriteJSON(output, snapshot)
	}

	snapshots, err := store.List(a.instance)
	if err != nil {
		return err
	}
	if len(snapshots) == 0 {
		fmt.Fprintf(output, "No snapshots of %s\n", a.instance)
		return nil
	}

	for _, s := range snapshots {
		fmt.Fprintf(output, "%s %s passed: %d / %d coverage: %s\n",
			s.Taken.Format(time.RFC3339), s.ID, s.Passed(), len(s.Results), s.Summary)
	}
	return nil
}
