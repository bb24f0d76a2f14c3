// SPDX-License-Identifier: Unlicense OR MIT

// Command demo shows the toolkit pieces working together: a menu bar
// with access keys, a text field, a scrollable list and a status
// line.
package main

import (
	"context"
	"fmt"
	"log"

	"trellisui.org/app"
	"trellisui.org/config"
	"trellisui.org/io/input"
	"trellisui.org/io/system"
	"trellisui.org/widget"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}

	status := widget.NewLabel("ready")
	var items []widget.Widget
	for i := 1; i <= 50; i++ {
		n := i
		items = append(items, widget.NewButton(fmt.Sprintf("item %d", n), func(cx *input.Context) {
			status.Text = fmt.Sprintf("item %d activated", n)
			cx.Redraw()
		}))
	}
	list := widget.NewScroll(10, widget.NewColumn(items...))

	field := widget.NewField()
	field.OnSubmit = func(cx *input.Context, text string) {
		status.Text = "submitted: " + text
		field.SetText("")
		cx.Redraw()
	}

	bar := widget.NewMenuBar(
		widget.NewMenuItem("File", "F", widget.NewMenu(
			widget.NewMenuEntry("New", "N", func(cx *input.Context) {
				status.Text = "new"
			}),
			widget.NewMenuEntry("Quit", "Q", func(cx *input.Context) {
				cx.Action(system.ActionExit)
			}),
		)),
		widget.NewMenuItem("Edit", "E", widget.NewMenu(
			widget.NewMenuEntry("Clear status", "C", func(cx *input.Context) {
				status.Text = "ready"
			}),
		)),
	)

	root := widget.NewColumn(bar, field, list, status)
	w, err := app.New(root, cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := w.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
