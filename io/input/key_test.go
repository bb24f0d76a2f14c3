// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"testing"

	"trellisui.org/f32"
	"trellisui.org/io/event"
	"trellisui.org/io/key"
	"trellisui.org/io/system"
)

// cmdConsumer consumes command events only.
func cmdConsumer(cx *Context, e event.Event) bool {
	_, ok := e.(key.CommandEvent)
	return ok
}

func TestRawKeyToCharFocus(t *testing.T) {
	env := newEnv(t)
	a := event.RootId().Child(0)
	env.tree.add(a, f32.Rect(0, 0, 100, 100)).navigable = true
	env.tree.widgets[a].handle = func(cx *Context, e event.Event) bool {
		ke, ok := e.(key.Event)
		return ok && ke.Name == "X"
	}
	cx := env.open()
	cx.SetSelFocus(a, true)
	env.flush()
	env.takeLog()

	// A consumed raw key never becomes a command.
	env.r.Key(env.now, "X", 0, key.Press)
	env.wantLog("Key:X->" + a.String())

	// An unconsumed one resolves through the shortcut table and,
	// with every target declining, reaches the router defaults.
	env.r.Key(env.now, key.NameTab, 0, key.Press)
	env.wantLog(
		"Key:Tab->"+a.String(),
		"Command:tab->"+a.String(),
	)
	env.flush()
	if env.r.focus.nav != a {
		t.Fatalf("nav = %v, want %v after Tab", env.r.focus.nav, a)
	}
}

func TestCommandPriorityOrder(t *testing.T) {
	env := newEnv(t)
	a := event.RootId().Child(0)
	b := event.RootId().Child(1)
	c := event.RootId().Child(2)
	env.tree.add(a, f32.Rect(0, 0, 100, 100))
	env.tree.add(b, f32.Rect(100, 0, 200, 100))
	env.tree.add(c, f32.Rect(200, 0, 300, 100)).handle = cmdConsumer

	cx := env.open()
	cx.SetSelFocus(a, true)
	cx.SetNavFocus(b, key.SourceSynthetic)
	cx.SetNavFallback(c)
	env.flush()
	env.takeLog()

	env.r.Key(env.now, key.NameSpace, 0, key.Press)
	env.wantLog(
		"Key:Space->"+a.String(),
		"Command:space->"+a.String(),
		"Command:space->"+b.String(),
		"Command:space->"+c.String(),
	)
	// An activation command depresses its consumer until release.
	if !env.r.IsDepressed(c) {
		t.Fatal("activation target not depressed")
	}
	env.r.Key(env.now, key.NameSpace, 0, key.Release)
	if env.r.IsDepressed(c) {
		t.Fatal("depressed after key release")
	}
}

func TestSelectionSafeRouting(t *testing.T) {
	env := newEnv(t)
	a := event.RootId().Child(0)
	b := event.RootId().Child(1)
	env.tree.add(a, f32.Rect(0, 0, 100, 100)).handle = cmdConsumer
	env.tree.add(b, f32.Rect(100, 0, 200, 100))
	env.r.cfg.Shortcuts.Bind(key.ModCtrl, "C", key.CommandCopy)
	env.r.cfg.Shortcuts.Bind(key.ModCtrl, "V", key.CommandPaste)

	cx := env.open()
	cx.SetSelFocus(a, false)
	cx.SetNavFocus(b, key.SourceSynthetic)
	env.flush()
	env.takeLog()

	// Copy is selection-safe: it may route to the selection holder
	// even though navigation focus is elsewhere.
	env.r.Key(env.now, "C", key.ModCtrl, key.Press)
	env.wantLog(
		"Command:copy->"+b.String(),
		"Command:copy->"+a.String(),
	)
	// Paste is not.
	env.r.Key(env.now, "V", key.ModCtrl, key.Press)
	env.wantLog("Command:paste->" + b.String())
}

func TestAltSkipsNavTarget(t *testing.T) {
	env := newEnv(t)
	b := event.RootId().Child(0)
	env.tree.add(b, f32.Rect(0, 0, 100, 100)).handle = cmdConsumer
	cx := env.open()
	cx.SetNavFocus(b, key.SourceSynthetic)
	env.flush()
	env.takeLog()

	// With Alt held the navigation target yields to accelerator
	// resolution.
	env.r.modifiers = key.ModAlt
	if env.r.dispatchCommand(cx, key.CommandActivate, "M", event.Id{}) {
		t.Fatal("command handled with Alt held and no accelerator")
	}
	env.wantLog()

	env.r.modifiers = 0
	if !env.r.dispatchCommand(cx, key.CommandActivate, "M", event.Id{}) {
		t.Fatal("command not handled by the navigation target")
	}
	env.wantLog("Command:activate->" + b.String())
}

func TestWindowCommands(t *testing.T) {
	env := newEnv(t)
	env.r.cfg.Shortcuts.Bind(key.ModCtrl, "W", key.CommandClose)
	env.r.cfg.Shortcuts.Bind(key.ModCtrl, "Q", key.CommandExit)

	env.r.Key(env.now, "W", key.ModCtrl, key.Press)
	if env.r.Actions()&system.ActionClose == 0 {
		t.Error("close command set no close action")
	}
	env.r.Key(env.now, "Q", key.ModCtrl, key.Press)
	if env.r.Actions()&system.ActionExit == 0 {
		t.Error("exit command set no exit action")
	}
}

func TestTextFiltering(t *testing.T) {
	env := newEnv(t)
	a := event.RootId().Child(0)
	env.tree.add(a, f32.Rect(0, 0, 100, 100)).handle = func(cx *Context, e event.Event) bool {
		_, ok := e.(key.EditEvent)
		return ok
	}
	cx := env.open()
	cx.SetSelFocus(a, true)
	env.flush()
	env.takeLog()

	env.r.Text(env.now, "ab\ncd\x1b")
	env.wantLog("Edit:abcd->" + a.String())
	env.r.Text(env.now, "\n\t")
	env.wantLog()

	// No character focus, no text.
	cx.SetSelFocus(event.Id{}, false)
	env.flush()
	env.takeLog()
	env.r.Text(env.now, "hello")
	env.wantLog()
}

func TestAccessKeys(t *testing.T) {
	env := newEnv(t)
	a := event.RootId().Child(0)
	env.tree.add(a, f32.Rect(0, 0, 100, 100)).handle = cmdConsumer
	cx := env.open()
	cx.NewAccessLayer(event.RootId(), false)
	cx.AddAccessKey(a, "M")

	// Without Alt an alt-gated layer stays inert.
	env.r.Key(env.now, "M", 0, key.Press)
	env.wantLog()

	env.r.Key(env.now, "M", key.ModAlt, key.Press)
	env.wantLog("Command:activate->" + a.String())
	if !env.r.IsDepressed(a) {
		t.Fatal("accelerator target not depressed")
	}
	env.r.Key(env.now, "M", key.ModAlt, key.Release)
	if env.r.IsDepressed(a) {
		t.Fatal("depressed after release")
	}
}

func TestAccessKeyAltBypass(t *testing.T) {
	env := newEnv(t)
	a := event.RootId().Child(0)
	env.tree.add(a, f32.Rect(0, 0, 100, 100)).handle = cmdConsumer
	cx := env.open()
	cx.NewAccessLayer(event.RootId(), true)
	cx.AddAccessKey(a, "M")

	env.r.Key(env.now, "M", 0, key.Press)
	env.wantLog("Command:activate->" + a.String())
}

func TestAccessKeyFirstBindingWins(t *testing.T) {
	env := newEnv(t)
	a := event.RootId().Child(0)
	b := event.RootId().Child(1)
	env.tree.add(a, f32.Rect(0, 0, 100, 100)).handle = cmdConsumer
	env.tree.add(b, f32.Rect(100, 0, 200, 100)).handle = cmdConsumer
	cx := env.open()
	cx.NewAccessLayer(event.RootId(), false)
	cx.AddAccessKey(a, "K")
	cx.AddAccessKey(b, "K")

	env.r.Key(env.now, "K", key.ModAlt, key.Press)
	env.wantLog("Command:activate->" + a.String())
}

func TestAccessKeyNearestLayer(t *testing.T) {
	env := newEnv(t)
	sub := event.RootId().Child(1)
	target := sub.Child(0)
	env.tree.add(sub, f32.Rect(0, 0, 100, 100))
	env.tree.add(target, f32.Rect(0, 0, 50, 50))
	cx := env.open()
	cx.NewAccessLayer(event.RootId(), false)
	cx.NewAccessLayer(sub, false)
	cx.AddAccessKey(target, "T")

	for i := range env.r.layers {
		l := &env.r.layers[i]
		_, bound := l.keys["T"]
		if l.root == sub && !bound {
			t.Error("binding missed the nearest layer")
		}
		if l.root == event.RootId() && bound {
			t.Error("binding landed in the outer layer")
		}
	}
}

func TestAccessKeyClosesHigherPopups(t *testing.T) {
	pe := newPopupEnv(t)
	a := pe.w
	pe.tree.widgets[a].handle = cmdConsumer
	cx := pe.open()
	cx.NewAccessLayer(event.RootId(), true)
	cx.AddAccessKey(a, "M")
	win := pe.openPopup()
	pe.takeLog()

	pe.r.Key(pe.now, "M", 0, key.Press)
	env := pe.testEnv
	env.wantLog("Command:activate->" + a.String())
	if len(pe.r.popups) != 0 {
		t.Fatal("popup survived a base-layer accelerator match")
	}
	if n := len(pe.shell.closed); n != 1 || pe.shell.closed[0] != win {
		t.Fatalf("closed windows = %v, want [%v]", pe.shell.closed, win)
	}
}

func TestAccessKeyInnermostLayerWins(t *testing.T) {
	pe := newPopupEnv(t)
	a := pe.w
	pe.tree.widgets[a].handle = cmdConsumer
	pe.tree.widgets[pe.item].handle = cmdConsumer
	cx := pe.open()
	cx.NewAccessLayer(event.RootId(), true)
	cx.AddAccessKey(a, "M")
	pe.openPopup()
	cx.NewAccessLayer(pe.p, true)
	cx.AddAccessKey(pe.item, "M")
	pe.takeLog()

	pe.r.Key(pe.now, "M", 0, key.Press)
	pe.wantLog("Command:activate->" + pe.item.String())
	if len(pe.r.popups) != 1 {
		t.Fatal("popup closed by a match at its own level")
	}
}
