// SPDX-License-Identifier: Unlicense OR MIT

// Package pointer implements pointer and touch events.
package pointer

import (
	"strings"

	"trellisui.org/f32"
	"trellisui.org/io/event"
	"trellisui.org/io/key"
)

// Event is a pointer or touch event addressed to a widget.
type Event struct {
	Kind   Kind
	Source Source
	// PointerID identifies the touch contact. It is zero for
	// mouse events.
	PointerID ID
	// Button is the mouse button a Press, Release or Cancel
	// concerns. Moves delivered without a grab carry no button.
	Button Buttons
	// Repetitions counts consecutive presses of the same button
	// within the double-click interval: 1 for a single click, 2
	// for a double click and so on. For touch events it is 1;
	// for moves without a grab it is 0.
	Repetitions int
	// Position of the pointer, in window coordinates.
	Position f32.Point
	// Delta is the accumulated motion since the last delivery.
	// Only Drag events carry it.
	Delta f32.Point
	// Scroll is the scroll distance of a Scroll event.
	Scroll f32.Point
	// Over is the widget currently under the pointer, if any.
	// For Press it equals the addressed widget; for Drag and
	// Release it tracks the pointer and may differ.
	Over event.Id
	// Modifiers held when the event fired.
	Modifiers key.Modifiers
}

// PanEvent reports the aggregate motion of a pan gesture as a
// rigid transform: treating points as complex numbers, a previous
// contact position p maps to alpha*p + delta. Alpha captures
// rotation and scale, delta the translation.
type PanEvent struct {
	Alpha f32.Point
	Delta f32.Point
}

// Kind of an Event.
type Kind uint

// Source of an Event.
type Source uint8

// ID of a pointer or touch contact.
type ID uint64

// Buttons is a set of mouse buttons.
type Buttons uint8

// Cursor denotes a pre-defined cursor shape.
type Cursor byte

// The cursors correspond to CSS pointer naming.
const (
	// CursorDefault is the default cursor.
	CursorDefault Cursor = iota
	// CursorNone hides the cursor. To show it again, use any other cursor.
	CursorNone
	// CursorText is for selecting and inserting text.
	CursorText
	// CursorPointer is for a link.
	// Usually displayed as a pointing hand.
	CursorPointer
	// CursorCrosshair is for a precise location.
	CursorCrosshair
	// CursorAllScroll is for indicating scrolling in all directions.
	CursorAllScroll
	// CursorColResize is for vertical resize.
	CursorColResize
	// CursorRowResize is for horizontal resize.
	CursorRowResize
	// CursorGrab is for content that can be grabbed (dragged to be moved).
	// Usually displayed as an open hand.
	CursorGrab
	// CursorGrabbing is for content that is being grabbed (dragged to be moved).
	// Usually displayed as a closed hand.
	CursorGrabbing
	// CursorNotAllowed is shown when the requested action cannot be
	// carried out. Usually displayed as a circle with a line through.
	CursorNotAllowed
	// CursorWait is shown when the program is busy and the user cannot
	// interact. Usually displayed as an hourglass or the system equivalent.
	CursorWait

	cursorCount
)

const (
	// A Cancel event concludes a grab whose gesture was interrupted:
	// the press did not complete successfully.
	Cancel Kind = 1 << iota
	// Press of a pointer over the addressed widget.
	Press
	// Release of a pointer, concluding a successful press.
	Release
	// Move of a pointer without an active grab. Only delivered
	// while a popup is open.
	Move
	// Drag of a pointer holding an active grab. Motion is
	// coalesced: one Drag is delivered per flush cycle.
	Drag
	// Enter of a pointer into the hovered widget.
	Enter
	// Leave of a pointer from the previously hovered widget.
	Leave
	// Scroll of a pointer.
	Scroll
)

const (
	// Mouse generated event.
	Mouse Source = iota
	// Touch generated event.
	Touch
)

const (
	// ButtonPrimary is the primary button, usually the left button for a
	// right-handed user.
	ButtonPrimary Buttons = 1 << iota
	// ButtonSecondary is the secondary button, usually the right button for a
	// right-handed user.
	ButtonSecondary
	// ButtonTertiary is the tertiary button, usually the middle button.
	ButtonTertiary
)

func (k Kind) String() string {
	switch k {
	case Cancel:
		return "Cancel"
	case Press:
		return "Press"
	case Release:
		return "Release"
	case Move:
		return "Move"
	case Drag:
		return "Drag"
	case Enter:
		return "Enter"
	case Leave:
		return "Leave"
	case Scroll:
		return "Scroll"
	default:
		panic("unknown Kind")
	}
}

func (s Source) String() string {
	switch s {
	case Mouse:
		return "Mouse"
	case Touch:
		return "Touch"
	default:
		panic("invalid Source")
	}
}

func (b Buttons) String() string {
	var strs []string
	if b.Contain(ButtonPrimary) {
		strs = append(strs, "ButtonPrimary")
	}
	if b.Contain(ButtonSecondary) {
		strs = append(strs, "ButtonSecondary")
	}
	if b.Contain(ButtonTertiary) {
		strs = append(strs, "ButtonTertiary")
	}
	return strings.Join(strs, "|")
}

// Contain reports whether b contains all of the buttons in b2.
func (b Buttons) Contain(b2 Buttons) bool {
	return b&b2 == b2
}

func (c Cursor) String() string {
	if c >= cursorCount {
		panic("invalid Cursor")
	}
	return [...]string{
		"Default", "None", "Text", "Pointer", "Crosshair", "AllScroll",
		"ColResize", "RowResize", "Grab", "Grabbing", "NotAllowed", "Wait",
	}[c]
}

func (Event) ImplementsEvent()    {}
func (PanEvent) ImplementsEvent() {}
