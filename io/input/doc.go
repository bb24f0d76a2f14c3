// SPDX-License-Identifier: Unlicense OR MIT

/*
Package input implements event routing and the interaction state of
a window.

Router is the long-lived state: the pointer and touch grabs, the
focus and hover tracking, the popup stack, access-key layers,
timers and queued work. The shell owns one Router per window and
feeds it platform events through the entry points; once per frame
it calls Flush, which drains deferred work in a fixed order and
returns the actions the shell must perform.

Context is the transient face of the Router handed to widgets
during a delivery. Widgets use it to claim grabs, move focus, open
popups, request timers and queue work; state changes take effect
immediately while the notifications about them are queued, so a
delivery in progress is never re-addressed mid-flight.

The router knows the widget tree only through the Tree interface
and the platform only through the Shell interface. Widget
identifiers may go stale when the tree changes; the router treats
lookup misses as "target gone", drops the delivery and still cleans
up its own state.
*/
package input
