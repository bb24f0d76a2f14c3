// SPDX-License-Identifier: Unlicense OR MIT

package config

import (
	"fmt"
	"strings"

	"trellisui.org/io/key"
)

// Shortcuts is a two-level shortcut table: held modifiers select a
// map from key name to command. Lookups require an exact modifier
// match, so a binding under "ctrl" is not found while shift is also
// held.
//
// In TOML the outer keys are modifier sets such as "none", "ctrl"
// or "ctrl+shift"; the inner keys are key names as defined by
// package key.
type Shortcuts map[string]map[key.Name]key.Command

// Lookup resolves a key press to a command.
func (s Shortcuts) Lookup(mods key.Modifiers, name key.Name) (key.Command, bool) {
	m, ok := s[FormatModifiers(mods)]
	if !ok {
		return 0, false
	}
	cmd, ok := m[name]
	return cmd, ok
}

// Bind adds a binding, replacing any previous command for the same
// key press.
func (s Shortcuts) Bind(mods key.Modifiers, name key.Name, cmd key.Command) {
	level := FormatModifiers(mods)
	m, ok := s[level]
	if !ok {
		m = make(map[key.Name]key.Command)
		s[level] = m
	}
	m[name] = cmd
}

// FormatModifiers returns the canonical name of a modifier set:
// "none" for the empty set, otherwise the held modifiers joined
// with "+" in ctrl, shift, alt, super order.
func FormatModifiers(mods key.Modifiers) string {
	if mods == 0 {
		return "none"
	}
	var parts []string
	for _, m := range [...]struct {
		bit  key.Modifiers
		name string
	}{
		{key.ModCtrl, "ctrl"},
		{key.ModShift, "shift"},
		{key.ModAlt, "alt"},
		{key.ModSuper, "super"},
	} {
		if mods.Contain(m.bit) {
			parts = append(parts, m.name)
		}
	}
	return strings.Join(parts, "+")
}

// ParseModifiers is the inverse of FormatModifiers.
func ParseModifiers(s string) (key.Modifiers, error) {
	if s == "none" || s == "" {
		return 0, nil
	}
	var mods key.Modifiers
	for _, part := range strings.Split(s, "+") {
		switch part {
		case "ctrl":
			mods |= key.ModCtrl
		case "shift":
			mods |= key.ModShift
		case "alt":
			mods |= key.ModAlt
		case "super":
			mods |= key.ModSuper
		default:
			return 0, fmt.Errorf("config: unknown modifier %q", part)
		}
	}
	return mods, nil
}

// defaultShortcuts returns the platform shortcut table. On darwin
// the clipboard and navigation chords use super in place of ctrl.
func defaultShortcuts(goos string) Shortcuts {
	cmd := key.ModCtrl
	if goos == "darwin" {
		cmd = key.ModSuper
	}
	s := Shortcuts{}
	for _, b := range []struct {
		mods key.Modifiers
		name key.Name
		cmd  key.Command
	}{
		{0, key.NameEscape, key.CommandEscape},
		{0, key.NameReturn, key.CommandEnter},
		{0, key.NameEnter, key.CommandEnter},
		{0, key.NameSpace, key.CommandSpace},
		{0, key.NameTab, key.CommandTab},
		{key.ModShift, key.NameTab, key.CommandTab},
		{0, key.NameLeftArrow, key.CommandLeft},
		{0, key.NameRightArrow, key.CommandRight},
		{0, key.NameUpArrow, key.CommandUp},
		{0, key.NameDownArrow, key.CommandDown},
		{key.ModCtrl, key.NameLeftArrow, key.CommandWordLeft},
		{key.ModCtrl, key.NameRightArrow, key.CommandWordRight},
		{0, key.NameHome, key.CommandHome},
		{0, key.NameEnd, key.CommandEnd},
		{key.ModCtrl, key.NameHome, key.CommandDocHome},
		{key.ModCtrl, key.NameEnd, key.CommandDocEnd},
		{0, key.NamePageUp, key.CommandPageUp},
		{0, key.NamePageDown, key.CommandPageDown},
		{0, key.NameDeleteForward, key.CommandDelete},
		{0, key.NameDeleteBackward, key.CommandDelBack},
		{key.ModCtrl, key.NameDeleteForward, key.CommandDelWord},
		{key.ModCtrl, key.NameDeleteBackward, key.CommandDelWordBack},
		{cmd, "A", key.CommandSelectAll},
		{cmd, "X", key.CommandCut},
		{cmd, "C", key.CommandCopy},
		{cmd, "V", key.CommandPaste},
		{cmd, "Z", key.CommandUndo},
		{cmd | key.ModShift, "Z", key.CommandRedo},
		{cmd, "F", key.CommandFind},
		{cmd, "W", key.CommandClose},
		{cmd, "Q", key.CommandExit},
		{0, key.NameF1, key.CommandHelp},
		{0, key.NameF5, key.CommandRefresh},
		{0, key.NameF10, key.CommandMenu},
	} {
		s.Bind(b.mods, b.name, b.cmd)
	}
	return s
}
