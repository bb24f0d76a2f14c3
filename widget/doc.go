// SPDX-License-Identifier: Unlicense OR MIT

/*
Package widget provides a retained widget tree for terminal windows.

A widget embeds a Core and implements behavior methods; Tree walks
the cores for layout, drawing, hit testing, delivery and keyboard
traversal, and implements the router's tree capability. Popup content
is built into the tree as overlay subtrees, shown and hidden as their
popups open and close.
*/
package widget
