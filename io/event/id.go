// SPDX-License-Identifier: Unlicense OR MIT

package event

import (
	"strconv"
	"strings"
)

// Id identifies a widget by its path from the window root.
//
// An Id is opaque, comparable and usable as a map key. The zero Id
// identifies no widget. Ids are assigned by the widget tree during
// configuration; event routing only stores and compares them.
//
// The path is encoded as a byte string: a leading marker byte
// followed by one unsigned varint per child index. A byte-wise
// prefix of a path is always a path to an ancestor, so ancestor
// tests reduce to string prefix tests and Ids sort in tree
// pre-order.
type Id struct {
	path string
}

const idMarker = "\x01"

// RootId returns the identifier of a window's root widget.
func RootId() Id {
	return Id{path: idMarker}
}

// Valid reports whether id identifies a widget.
func (id Id) Valid() bool {
	return id.path != ""
}

// Child returns the identifier of the n'th child of id.
func (id Id) Child(n int) Id {
	if !id.Valid() {
		panic("event: Child of invalid Id")
	}
	if n < 0 {
		panic("event: negative child index")
	}
	var buf [10]byte
	i := 0
	u := uint64(n)
	for u >= 0x80 {
		buf[i] = byte(u) | 0x80
		u >>= 7
		i++
	}
	buf[i] = byte(u)
	return Id{path: id.path + string(buf[:i+1])}
}

// Parent returns the identifier of id's parent widget and false for
// the root or an invalid Id.
func (id Id) Parent() (Id, bool) {
	if len(id.path) <= len(idMarker) {
		return Id{}, false
	}
	// The last byte of a varint has its high bit clear. Trim the
	// final varint by scanning for the previous such byte.
	i := len(id.path) - 2
	for i >= len(idMarker) && id.path[i]&0x80 != 0 {
		i--
	}
	return Id{path: id.path[:i+1]}, true
}

// IsAncestorOf reports whether descendants of id include other.
// An Id is its own ancestor.
func (id Id) IsAncestorOf(other Id) bool {
	return id.Valid() && strings.HasPrefix(other.path, id.path)
}

// ChildIndexToward returns the index of the child of id on the path
// toward the descendant dst. It returns false if dst is not a strict
// descendant of id.
func (id Id) ChildIndexToward(dst Id) (int, bool) {
	if !id.IsAncestorOf(dst) || len(dst.path) <= len(id.path) {
		return 0, false
	}
	u, shift := uint64(0), uint(0)
	for i := len(id.path); i < len(dst.path); i++ {
		b := dst.path[i]
		u |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return int(u), true
		}
		shift += 7
	}
	return 0, false
}

// Depth returns the number of path segments below the root.
func (id Id) Depth() int {
	n := 0
	for i := len(idMarker); i < len(id.path); i++ {
		if id.path[i]&0x80 == 0 {
			n++
		}
	}
	return n
}

// String returns a representation such as "#0.2.1" for debugging.
func (id Id) String() string {
	if !id.Valid() {
		return "#invalid"
	}
	var b strings.Builder
	b.WriteByte('#')
	u, shift, first := uint64(0), uint(0), true
	for i := len(idMarker); i < len(id.path); i++ {
		c := id.path[i]
		u |= uint64(c&0x7f) << shift
		if c&0x80 != 0 {
			shift += 7
			continue
		}
		if !first {
			b.WriteByte('.')
		}
		b.WriteString(strconv.FormatUint(u, 10))
		u, shift, first = 0, 0, false
	}
	return b.String()
}
