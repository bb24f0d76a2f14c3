// SPDX-License-Identifier: Unlicense OR MIT

/*
Package app runs a widget tree inside a terminal.

A Window wires a tcell screen to the input router: terminal events
are translated into router calls, deferred work flushes once per
dispatch, and the tree repaints when the flush demands it. Popups
have no native windows in a terminal; they draw as overlays above
the base window on the same screen.
*/
package app
