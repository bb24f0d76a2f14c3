// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"trellisui.org/io/event"
	"trellisui.org/io/key"
	"trellisui.org/io/pointer"
	"trellisui.org/io/system"
)

// eventKind is the closed enumeration of semantic event kinds the
// router delivers. Every kind carries its routing eligibility as
// data in kindPolicies; extend both together.
type eventKind uint8

const (
	kindPointerPress eventKind = iota
	kindPointerRelease
	kindPointerCancel
	kindPointerMove
	kindPointerDrag
	kindPointerEnter
	kindPointerLeave
	kindPointerScroll
	kindPan
	kindKey
	kindEdit
	kindCommand
	kindFocusGained
	kindFocusLost
	kindSelectionGained
	kindSelectionLost
	kindNavFocusGained
	kindNavFocusLost
	kindTimer
	kindPopupClosed
	kindMessage
	kindStage

	kindCount
)

type kindPolicy struct {
	name string
	// passWhenDisabled delivers the kind into disabled subtrees:
	// notifications that conclude state a widget already holds
	// must arrive even when it is disabled.
	passWhenDisabled bool
	// reusable kinds may be re-offered to an ancestor after an
	// unconsuming target.
	reusable bool
}

var kindPolicies = [kindCount]kindPolicy{
	kindPointerPress:    {name: "PointerPress", reusable: true},
	kindPointerRelease:  {name: "PointerRelease", passWhenDisabled: true},
	kindPointerCancel:   {name: "PointerCancel", passWhenDisabled: true},
	kindPointerMove:     {name: "PointerMove", reusable: true},
	kindPointerDrag:     {name: "PointerDrag", passWhenDisabled: true},
	kindPointerEnter:    {name: "PointerEnter"},
	kindPointerLeave:    {name: "PointerLeave", passWhenDisabled: true},
	kindPointerScroll:   {name: "PointerScroll", reusable: true},
	kindPan:             {name: "Pan", passWhenDisabled: true, reusable: true},
	kindKey:             {name: "Key"},
	kindEdit:            {name: "Edit"},
	kindCommand:         {name: "Command", reusable: true},
	kindFocusGained:     {name: "FocusGained"},
	kindFocusLost:       {name: "FocusLost", passWhenDisabled: true},
	kindSelectionGained: {name: "SelectionGained"},
	kindSelectionLost:   {name: "SelectionLost", passWhenDisabled: true},
	kindNavFocusGained:  {name: "NavFocusGained"},
	kindNavFocusLost:    {name: "NavFocusLost", passWhenDisabled: true},
	kindTimer:           {name: "Timer", passWhenDisabled: true},
	kindPopupClosed:     {name: "PopupClosed", passWhenDisabled: true},
	kindMessage:         {name: "Message", reusable: true},
	kindStage:           {name: "Stage", passWhenDisabled: true},
}

func classify(e event.Event) eventKind {
	switch e := e.(type) {
	case pointer.Event:
		switch e.Kind {
		case pointer.Press:
			return kindPointerPress
		case pointer.Release:
			return kindPointerRelease
		case pointer.Cancel:
			return kindPointerCancel
		case pointer.Move:
			return kindPointerMove
		case pointer.Drag:
			return kindPointerDrag
		case pointer.Enter:
			return kindPointerEnter
		case pointer.Leave:
			return kindPointerLeave
		case pointer.Scroll:
			return kindPointerScroll
		default:
			panic("unknown pointer.Kind")
		}
	case pointer.PanEvent:
		return kindPan
	case key.Event:
		return kindKey
	case key.EditEvent:
		return kindEdit
	case key.CommandEvent:
		return kindCommand
	case key.FocusEvent:
		if e.Focus {
			return kindFocusGained
		}
		return kindFocusLost
	case key.SelectionEvent:
		if e.Focus {
			return kindSelectionGained
		}
		return kindSelectionLost
	case key.NavFocusEvent:
		if e.Focus {
			return kindNavFocusGained
		}
		return kindNavFocusLost
	case system.TimerEvent:
		return kindTimer
	case system.PopupClosedEvent:
		return kindPopupClosed
	case MessageEvent:
		return kindMessage
	case system.StageEvent:
		return kindStage
	default:
		panic("unknown event type")
	}
}

func policyOf(e event.Event) kindPolicy {
	return kindPolicies[classify(e)]
}
