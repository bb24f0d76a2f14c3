// SPDX-License-Identifier: Unlicense OR MIT

// Package system contains the vocabulary shared between the input
// router and the surrounding shell: the Action mask accumulated
// during event handling, window identifiers, popup descriptors and
// the events the shell delivers on window state changes.
package system

import (
	"strings"
	"time"

	"trellisui.org/f32"
	"trellisui.org/io/event"
)

// Action is a set of operations the shell must perform after a flush
// cycle. Actions accumulate during event handling and are returned
// as one mask; Close and Exit must be acted on immediately, the rest
// may wait for the next paint opportunity.
type Action uint16

const (
	// ActionRedraw requests a repaint of the window.
	ActionRedraw Action = 1 << iota
	// ActionRegionMoved invalidates cached widget positions, for
	// example after scrolling.
	ActionRegionMoved
	// ActionSetRect requests a layout of a widget within its
	// existing rectangle.
	ActionSetRect
	// ActionResize requests a full layout of the window.
	ActionResize
	// ActionUpdate requests a data update pass over the tree.
	ActionUpdate
	// ActionReconfigure requests a reconfigure pass over the tree,
	// reassigning widget identifiers.
	ActionReconfigure
	// ActionClose closes the window.
	ActionClose
	// ActionExit terminates the application.
	ActionExit
)

// WindowId identifies a shell window. The zero value identifies the
// base window; popup windows are assigned non-zero ids by the shell.
type WindowId uint64

// A PopupDescriptor describes an overlay window anchored to a widget
// of the base window.
type PopupDescriptor struct {
	// Id of the root widget shown inside the popup.
	Id event.Id
	// Parent is the widget owning the popup, for example the menu
	// opening it. The parent gets first refusal on events that
	// originate outside the popup.
	Parent event.Id
	// Anchor is the rectangle, in window coordinates, the popup is
	// placed against.
	Anchor f32.Rectangle
}

// A PopupClosedEvent notifies a popup's parent that the popup was
// closed, whatever the cause.
type PopupClosedEvent struct {
	Window WindowId
}

// A TimerHandle distinguishes the timers of one widget. Repeated
// requests for the same handle merge into a single timer entry: a
// negative handle keeps the earliest requested time, a non-negative
// handle the latest.
type TimerHandle int

// A TimerEvent is delivered when a requested timer elapses. Handle
// identifies which of the widget's timers fired.
type TimerEvent struct {
	Handle TimerHandle
	Time   time.Time
}

// A StageEvent is generated when the window gains or loses the
// platform input focus.
type StageEvent struct {
	Focused bool
}

// Contain reports whether a contains all actions in a2.
func (a Action) Contain(a2 Action) bool {
	return a&a2 == a2
}

func (a Action) String() string {
	var strs []string
	for _, f := range [...]struct {
		bit  Action
		name string
	}{
		{ActionRedraw, "Redraw"},
		{ActionRegionMoved, "RegionMoved"},
		{ActionSetRect, "SetRect"},
		{ActionResize, "Resize"},
		{ActionUpdate, "Update"},
		{ActionReconfigure, "Reconfigure"},
		{ActionClose, "Close"},
		{ActionExit, "Exit"},
	} {
		if a.Contain(f.bit) {
			strs = append(strs, f.name)
		}
	}
	return strings.Join(strs, "|")
}

func (PopupClosedEvent) ImplementsEvent() {}
func (TimerEvent) ImplementsEvent()       {}
func (StageEvent) ImplementsEvent()       {}
