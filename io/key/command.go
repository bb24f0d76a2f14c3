// SPDX-License-Identifier: Unlicense OR MIT

package key

import "fmt"

// Command is a semantic keyboard command, resolved from a key
// press through a shortcut table.
type Command uint8

// A CommandEvent delivers a Command to a widget.
type CommandEvent struct {
	Command Command
}

func (CommandEvent) ImplementsEvent() {}

const (
	// CommandEscape relaxes control: deselect, cancel, close.
	CommandEscape Command = iota
	// CommandActivate is synthesized to activate a widget, for
	// example on an accelerator key match.
	CommandActivate
	// CommandEnter is the return or enter key.
	CommandEnter
	// CommandSpace is the space bar.
	CommandSpace
	// CommandTab moves keyboard navigation focus.
	CommandTab
	// CommandLeft moves left.
	CommandLeft
	// CommandRight moves right.
	CommandRight
	// CommandUp moves up.
	CommandUp
	// CommandDown moves down.
	CommandDown
	// CommandWordLeft moves left one word.
	CommandWordLeft
	// CommandWordRight moves right one word.
	CommandWordRight
	// CommandHome moves to the start of the line.
	CommandHome
	// CommandEnd moves to the end of the line.
	CommandEnd
	// CommandDocHome moves to the start of the document.
	CommandDocHome
	// CommandDocEnd moves to the end of the document.
	CommandDocEnd
	// CommandPageUp moves up a page.
	CommandPageUp
	// CommandPageDown moves down a page.
	CommandPageDown
	// CommandDelete deletes forwards.
	CommandDelete
	// CommandDelBack deletes backwards.
	CommandDelBack
	// CommandDelWord deletes forwards one word.
	CommandDelWord
	// CommandDelWordBack deletes backwards one word.
	CommandDelWordBack
	// CommandDeselect clears any selection.
	CommandDeselect
	// CommandSelectAll selects all content.
	CommandSelectAll
	// CommandCut copies the selection to the clipboard and clears it.
	CommandCut
	// CommandCopy copies the selection to the clipboard.
	CommandCopy
	// CommandPaste inserts clipboard content.
	CommandPaste
	// CommandUndo undoes the last action.
	CommandUndo
	// CommandRedo redoes the last undone action.
	CommandRedo
	// CommandFind starts a search.
	CommandFind
	// CommandHelp opens help.
	CommandHelp
	// CommandMenu activates the menu bar.
	CommandMenu
	// CommandRefresh refreshes the view.
	CommandRefresh
	// CommandClose closes the window.
	CommandClose
	// CommandExit exits the application.
	CommandExit

	commandCount
)

var commandNames = [...]string{
	CommandEscape:      "escape",
	CommandActivate:    "activate",
	CommandEnter:       "enter",
	CommandSpace:       "space",
	CommandTab:         "tab",
	CommandLeft:        "left",
	CommandRight:       "right",
	CommandUp:          "up",
	CommandDown:        "down",
	CommandWordLeft:    "word-left",
	CommandWordRight:   "word-right",
	CommandHome:        "home",
	CommandEnd:         "end",
	CommandDocHome:     "doc-home",
	CommandDocEnd:      "doc-end",
	CommandPageUp:      "page-up",
	CommandPageDown:    "page-down",
	CommandDelete:      "delete",
	CommandDelBack:     "del-back",
	CommandDelWord:     "del-word",
	CommandDelWordBack: "del-word-back",
	CommandDeselect:    "deselect",
	CommandSelectAll:   "select-all",
	CommandCut:         "cut",
	CommandCopy:        "copy",
	CommandPaste:       "paste",
	CommandUndo:        "undo",
	CommandRedo:        "redo",
	CommandFind:        "find",
	CommandHelp:        "help",
	CommandMenu:        "menu",
	CommandRefresh:     "refresh",
	CommandClose:       "close",
	CommandExit:        "exit",
}

// SelectionSafe reports whether c may be routed to the selection
// focus widget when that widget does not hold navigation focus.
func (c Command) SelectionSafe() bool {
	switch c {
	case CommandEscape, CommandCut, CommandCopy, CommandDeselect:
		return true
	default:
		return false
	}
}

// IsActivate reports whether c requests widget activation.
func (c Command) IsActivate() bool {
	switch c {
	case CommandActivate, CommandEnter, CommandSpace:
		return true
	default:
		return false
	}
}

func (c Command) String() string {
	if int(c) >= len(commandNames) {
		panic("invalid Command")
	}
	return commandNames[c]
}

// ParseCommand is the inverse of String.
func ParseCommand(s string) (Command, error) {
	for c, name := range commandNames {
		if name == s {
			return Command(c), nil
		}
	}
	return 0, fmt.Errorf("key: unknown command %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Command) MarshalText() ([]byte, error) {
	if int(c) >= len(commandNames) {
		return nil, fmt.Errorf("key: invalid command %d", uint8(c))
	}
	return []byte(commandNames[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Command) UnmarshalText(text []byte) error {
	v, err := ParseCommand(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
