// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"

	"trellisui.org/config"
	"trellisui.org/f32"
	"trellisui.org/io/event"
	"trellisui.org/io/input"
	"trellisui.org/io/pointer"
	"trellisui.org/io/system"
	"trellisui.org/unit"
	"trellisui.org/widget"
)

// errStopped ends the event loop after a close or exit action.
var errStopped = errors.New("app: stopped")

// Window owns a terminal screen, a widget tree and the input router
// wiring them together. All fields are confined to the event loop
// goroutine; Wake is the only concurrency-safe method.
type Window struct {
	screen  tcell.Screen
	tree    *widget.Tree
	router  *input.Router
	cfg     *config.Config
	palette widget.Palette

	// buttons is the previously reported button mask, for
	// synthesizing press and release transitions.
	buttons tcell.ButtonMask
	mouse   f32.Point
	dirty   bool

	cursor  pointer.Cursor
	clip    string
	nextWin system.WindowId
	popups  map[system.WindowId]event.Id
}

// New creates a window on the process terminal.
func New(root widget.Widget, cfg *config.Config) (*Window, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return nil, errors.New("app: stdin is not a terminal")
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newWindow(screen, root, cfg), nil
}

func newWindow(screen tcell.Screen, root widget.Widget, cfg *config.Config) *Window {
	if cfg == nil {
		cfg = config.Default()
	}
	w := &Window{
		screen:  screen,
		tree:    widget.NewTree(root),
		cfg:     cfg,
		palette: paletteFrom(cfg.Theme),
		popups:  make(map[system.WindowId]event.Id),
	}
	// Cells are the device unit.
	w.router = input.NewRouter(w.tree, w, unit.Metric{PxPerDp: 1, PxPerSp: 1}, cfg)
	return w
}

// Router exposes the window's input router, for programmatic event
// injection.
func (w *Window) Router() *input.Router {
	return w.router
}

// Run initializes the terminal and services events until the context
// is canceled or an exit action is raised.
func (w *Window) Run(ctx context.Context) error {
	if err := w.screen.Init(); err != nil {
		return err
	}
	defer w.screen.Fini()
	w.screen.EnableMouse(tcell.MouseButtonEvents, tcell.MouseDragEvents, tcell.MouseMotionEvents)
	w.screen.EnablePaste()
	w.screen.EnableFocus()
	w.prepare()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		w.screen.ChannelEvents(events, quit)
		return nil
	})
	g.Go(func() error {
		defer close(quit)
		return w.loop(ctx, events)
	})
	err := g.Wait()
	if errors.Is(err, errStopped) {
		err = nil
	}
	return err
}

// prepare runs the initial configure pass and lays the tree out to
// the screen size.
func (w *Window) prepare() {
	w.router.RequestConfigure(event.RootId())
	w.router.Flush(time.Now())
	cols, rows := w.screen.Size()
	w.tree.Layout(f32.Pt(float32(cols), float32(rows)))
	w.dirty = true
}

func (w *Window) loop(ctx context.Context, events <-chan tcell.Event) error {
	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	w.draw()
	w.dirty = false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		case ev, ok := <-events:
			if !ok {
				return errStopped
			}
			w.handleEvent(ev)
		}
		if err := w.afterDispatch(timer); err != nil {
			return err
		}
	}
}

// afterDispatch flushes the router and acts on the returned mask:
// layout, repaint, timer rearm, close.
func (w *Window) afterDispatch(timer *time.Timer) error {
	now := time.Now()
	a, wake, ok := w.router.Flush(now)
	if a.Contain(system.ActionExit) || a.Contain(system.ActionClose) {
		return errStopped
	}
	if a.Contain(system.ActionResize) {
		cols, rows := w.screen.Size()
		w.tree.Layout(f32.Pt(float32(cols), float32(rows)))
	}
	if a != 0 || w.dirty {
		w.draw()
		w.dirty = false
	}
	if ok {
		timer.Reset(wake.Sub(now))
	}
	return nil
}

// cellScreen adapts the terminal to the widget drawing surface.
type cellScreen struct {
	s tcell.Screen
}

func (c cellScreen) SetCell(x, y int, style tcell.Style, r rune) {
	c.s.SetContent(x, y, r, nil, style)
}

func (c cellScreen) Size() (int, int) {
	return c.s.Size()
}

func (w *Window) draw() {
	w.screen.Fill(' ', w.palette.Base)
	w.tree.Draw(&widget.DrawContext{
		Screen:  cellScreen{w.screen},
		Palette: w.palette,
		State:   w.router,
	})
	w.screen.Show()
}

// SetCursor implements the router's shell capability. Terminals have
// no pointer icon; the value is retained for inspection only.
func (w *Window) SetCursor(c pointer.Cursor) {
	w.cursor = c
}

// OpenPopup shows the popup's widget subtree as an overlay. The
// terminal has no real child windows, so popups draw above the base
// window inside the same screen.
func (w *Window) OpenPopup(desc system.PopupDescriptor) system.WindowId {
	w.nextWin++
	w.popups[w.nextWin] = desc.Id
	w.tree.ShowOverlay(desc.Id, desc.Anchor)
	w.dirty = true
	return w.nextWin
}

func (w *Window) CloseWindow(id system.WindowId) {
	root, ok := w.popups[id]
	if !ok {
		return
	}
	delete(w.popups, id)
	w.tree.HideOverlay(root)
	w.dirty = true
}

// ReadClipboard returns the in-process clipboard mirror. Terminal
// clipboard reads are asynchronous; the mirror tracks the last value
// written here or reported by the terminal.
func (w *Window) ReadClipboard() string {
	return w.clip
}

func (w *Window) WriteClipboard(s string) {
	w.clip = s
	w.screen.SetClipboard([]byte(s))
}

// Wake interrupts the event loop so deferred work flushes. Safe to
// call from any goroutine.
func (w *Window) Wake() {
	_ = w.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

var _ input.Shell = (*Window)(nil)
