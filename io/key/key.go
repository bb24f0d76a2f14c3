// SPDX-License-Identifier: Unlicense OR MIT

// Package key implements key, text and keyboard focus events.
package key

import "strings"

// An Event is generated when a key is pressed or released.
// For text input use EditEvent.
type Event struct {
	// Name of the key.
	Name Name
	// Modifiers is the set of active modifiers when the key was pressed.
	Modifiers Modifiers
	// State is the state of the key when the event was fired.
	State State
}

// An EditEvent delivers text input to the widget holding
// character focus. Control characters are filtered out.
type EditEvent struct {
	Text string
}

// A FocusEvent is generated when a widget gains or loses
// character focus, the right to receive key and edit events.
type FocusEvent struct {
	Focus bool
}

// A SelectionEvent is generated when a widget gains or loses
// selection focus. Holding selection focus is a prerequisite of
// character focus; commands such as Copy are routed to it.
type SelectionEvent struct {
	Focus bool
}

// A NavFocusEvent is generated when a widget gains or loses
// keyboard navigation focus.
type NavFocusEvent struct {
	Focus bool
	// Source reports what triggered the change. A gain from
	// SourceKey or SourceSynthetic also scrolls the widget
	// into view.
	Source FocusSource
}

// FocusSource is the cause of a focus change.
type FocusSource uint8

const (
	// SourceSynthetic marks programmatic focus changes.
	SourceSynthetic FocusSource = iota
	// SourcePointer marks focus following a press or touch.
	SourcePointer
	// SourceKey marks focus moved by keyboard navigation.
	SourceKey
)

// State is the state of a key during an event.
type State uint8

const (
	// Press is the state of a pressed key.
	Press State = iota
	// Release is the state of a key that has been released.
	Release
)

// Modifiers
type Modifiers uint32

const (
	// ModCtrl is the ctrl modifier key.
	ModCtrl Modifiers = 1 << iota
	// ModShift is the shift modifier key.
	ModShift
	// ModAlt is the alt modifier key, or the option
	// key on Apple keyboards.
	ModAlt
	// ModSuper is the "logo" modifier key, often
	// represented by a Windows logo.
	ModSuper
)

// Name is the identifier for a keyboard key.
//
// For letters, the upper case form is used, via unicode.ToUpper.
// The shift modifier is taken into account, all other
// modifiers are ignored. For example, the "shift-1" and "ctrl-shift-1"
// combinations both give the Name "!" with the US keyboard layout.
type Name string

const (
	// Names for special keys.
	NameLeftArrow      Name = "←"
	NameRightArrow     Name = "→"
	NameUpArrow        Name = "↑"
	NameDownArrow      Name = "↓"
	NameReturn         Name = "⏎"
	NameEnter          Name = "⌤"
	NameEscape         Name = "⎋"
	NameHome           Name = "⇱"
	NameEnd            Name = "⇲"
	NameDeleteBackward Name = "⌫"
	NameDeleteForward  Name = "⌦"
	NamePageUp         Name = "⇞"
	NamePageDown       Name = "⇟"
	NameTab            Name = "Tab"
	NameSpace          Name = "Space"
	NameCtrl           Name = "Ctrl"
	NameShift          Name = "Shift"
	NameAlt            Name = "Alt"
	NameSuper          Name = "Super"
	NameF1             Name = "F1"
	NameF2             Name = "F2"
	NameF3             Name = "F3"
	NameF4             Name = "F4"
	NameF5             Name = "F5"
	NameF6             Name = "F6"
	NameF7             Name = "F7"
	NameF8             Name = "F8"
	NameF9             Name = "F9"
	NameF10            Name = "F10"
	NameF11            Name = "F11"
	NameF12            Name = "F12"
)

// Contain reports whether m contains all modifiers
// in m2.
func (m Modifiers) Contain(m2 Modifiers) bool {
	return m&m2 == m2
}

func (m Modifiers) String() string {
	var strs []string
	if m.Contain(ModCtrl) {
		strs = append(strs, "Ctrl")
	}
	if m.Contain(ModShift) {
		strs = append(strs, "Shift")
	}
	if m.Contain(ModAlt) {
		strs = append(strs, "Alt")
	}
	if m.Contain(ModSuper) {
		strs = append(strs, "Super")
	}
	return strings.Join(strs, "-")
}

func (s State) String() string {
	switch s {
	case Press:
		return "Press"
	case Release:
		return "Release"
	default:
		panic("invalid State")
	}
}

func (s FocusSource) String() string {
	switch s {
	case SourceSynthetic:
		return "Synthetic"
	case SourcePointer:
		return "Pointer"
	case SourceKey:
		return "Key"
	default:
		panic("invalid FocusSource")
	}
}

func (Event) ImplementsEvent()          {}
func (EditEvent) ImplementsEvent()      {}
func (FocusEvent) ImplementsEvent()     {}
func (SelectionEvent) ImplementsEvent() {}
func (NavFocusEvent) ImplementsEvent()  {}
