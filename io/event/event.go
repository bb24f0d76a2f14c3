// SPDX-License-Identifier: Unlicense OR MIT

// Package event contains the base types for event handling:
// the Event marker interface implemented by every semantic
// event, and Id, the hierarchical widget identifier events
// are addressed with.
package event

// Event is the marker interface for events.
type Event interface {
	ImplementsEvent()
}
