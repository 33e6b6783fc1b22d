/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package events

import (
	"container/list"
)

// EventList holds the events of one protocol step, in emission order.
// The zero value is an empty list.
type EventList struct {
	events *list.List
}

// ListOf returns a list of the given events.
func ListOf(events ...*Event) *EventList {
	el := &EventList{}
	for _, e := range events {
		el.PushBack(e)
	}
	return el
}

func (el *EventList) init() *list.List {
	if el.events == nil {
		el.events = list.New()
	}
	return el.events
}

// PushBack appends event and returns the list, so that calls can be chained.
func (el *EventList) PushBack(event *Event) *EventList {
	el.init().PushBack(event)
	return el
}

// PushBackList appends the events of other, leaving other unchanged.
func (el *EventList) PushBackList(other *EventList) *EventList {
	if other.Len() > 0 {
		el.init().PushBackList(other.events)
	}
	return el
}

func (el *EventList) Len() int {
	if el.events == nil {
		return 0
	}
	return el.events.Len()
}

// Slice copies the events into a slice.
func (el *EventList) Slice() []*Event {
	result := make([]*Event, 0, el.Len())
	iter := el.Iterator()
	for e := iter.Next(); e != nil; e = iter.Next() {
		result = append(result, e)
	}
	return result
}

// Iterator walks the list from the front.
func (el *EventList) Iterator() *EventListIterator {
	if el.events == nil {
		return &EventListIterator{}
	}
	return &EventListIterator{next: el.events.Front()}
}

type EventListIterator struct {
	next *list.Element
}

// Next returns the next event, or nil once the list is exhausted.
func (eli *EventListIterator) Next() *Event {
	if eli.next == nil {
		return nil
	}
	e := eli.next.Value.(*Event)
	eli.next = eli.next.Next()
	return e
}
