// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package list implements the linked list engine behind the StructViz
// list visualizer.
//
// # Description
//
// A List is an ordered chain of nodes reached from a single head
// reference. Construction fixes the linkage mode: singly linked
// (forward links only) or doubly linked (each node also keeps a
// back-reference to its predecessor). Positions are 0-based indexes
// along the head-to-tail traversal.
//
// Out-of-range positions are deliberately forgiving: inserting past the
// end is a silent no-op and deleting past the end reports not-found
// instead of failing. The UI layer turns those results into notices;
// nothing in this package panics or errors.
//
// # Thread Safety
//
// List is not safe for concurrent use. The visualizer owns exactly one
// instance and drives it from a single event loop; every operation runs
// synchronously to completion, so no partial relink is ever observable
// between calls.
package list

import "strconv"

// Mode selects the linkage variant, fixed at construction.
type Mode int

const (
	// ModeSingly links nodes forward only.
	ModeSingly Mode = iota

	// ModeDoubly additionally maintains a prev reference on every node.
	ModeDoubly
)

// String returns "singly" or "doubly".
func (m Mode) String() string {
	if m == ModeDoubly {
		return "doubly"
	}
	return "singly"
}

// NotFound is the sentinel position returned by Search on a miss.
const NotFound = -1

// Node is a single element of the list.
//
// Value is an opaque displayable payload. Links are unexported; the
// chain is mutated only through List operations so the linkage
// invariants hold between calls.
type Node struct {
	Value string

	next *Node
	prev *Node
}

// Next returns the successor node, or nil at the tail.
func (n *Node) Next() *Node { return n.next }

// Prev returns the predecessor node in doubly mode. Always nil at the
// head and in singly mode.
func (n *Node) Prev() *Node { return n.prev }

// List is a singly or doubly linked list of string values.
type List struct {
	head *Node
	mode Mode
}

// New creates an empty list in the given linkage mode.
func New(mode Mode) *List {
	return &List{mode: mode}
}

// Mode reports the linkage mode fixed at construction.
func (l *List) Mode() Mode { return l.mode }

// Clear drops every node, keeping the linkage mode. The list pointer
// stays valid for holders such as the snapshot registry.
func (l *List) Clear() { l.head = nil }

// Head returns the first node, or nil if the list is empty.
func (l *List) Head() *Node { return l.head }

// Len counts the nodes by traversal. O(n).
func (l *List) Len() int {
	n := 0
	for cur := l.head; cur != nil; cur = cur.next {
		n++
	}
	return n
}

// NodeAt returns the node at the given 0-based position, or nil if the
// position is negative or past the tail. O(n).
func (l *List) NodeAt(pos int) *Node {
	if pos < 0 {
		return nil
	}
	cur := l.head
	for i := 0; cur != nil && i < pos; i++ {
		cur = cur.next
	}
	return cur
}

// InsertAtBeginning prepends a new node and makes it the head. O(1).
func (l *List) InsertAtBeginning(value string) {
	node := &Node{Value: value, next: l.head}
	if l.mode == ModeDoubly && l.head != nil {
		l.head.prev = node
	}
	l.head = node
}

// InsertAtEnd appends a new node after the current tail; on an empty
// list the new node becomes the head. O(n).
func (l *List) InsertAtEnd(value string) {
	node := &Node{Value: value}
	if l.head == nil {
		l.head = node
		return
	}
	last := l.head
	for last.next != nil {
		last = last.next
	}
	last.next = node
	if l.mode == ModeDoubly {
		node.prev = last
	}
}

// InsertAtPosition splices a new node in at the given 0-based position.
// Position 0 is equivalent to InsertAtBeginning. If no node exists at
// position-1 the call is a silent no-op: the list is left unchanged and
// no error is signaled. O(n).
func (l *List) InsertAtPosition(value string, pos int) {
	if pos == 0 {
		l.InsertAtBeginning(value)
		return
	}
	before := l.NodeAt(pos - 1)
	if before == nil {
		// Permissive contract: out-of-range insert does nothing.
		return
	}
	node := &Node{Value: value, next: before.next}
	before.next = node
	if l.mode == ModeDoubly {
		node.prev = before
		if node.next != nil {
			node.next.prev = node
		}
	}
}

// DeleteFromBeginning removes the head and returns its value. The
// second result is false if the list was empty. O(1).
func (l *List) DeleteFromBeginning() (string, bool) {
	if l.head == nil {
		return "", false
	}
	value := l.head.Value
	l.head = l.head.next
	if l.mode == ModeDoubly && l.head != nil {
		l.head.prev = nil
	}
	return value, true
}

// DeleteFromEnd removes the tail node and returns its value. The
// second result is false if the list was empty. O(n).
func (l *List) DeleteFromEnd() (string, bool) {
	if l.head == nil {
		return "", false
	}
	if l.head.next == nil {
		value := l.head.Value
		l.head = nil
		return value, true
	}
	secondLast := l.head
	for secondLast.next.next != nil {
		secondLast = secondLast.next
	}
	value := secondLast.next.Value
	secondLast.next = nil
	return value, true
}

// DeleteAtPosition removes the node at the given 0-based position and
// returns its value. Position 0 delegates to DeleteFromBeginning. If
// the position has no node the list is untouched and the second result
// is false. O(n).
func (l *List) DeleteAtPosition(pos int) (string, bool) {
	if pos == 0 {
		return l.DeleteFromBeginning()
	}
	before := l.NodeAt(pos - 1)
	if before == nil || before.next == nil {
		return "", false
	}
	victim := before.next
	before.next = victim.next
	if l.mode == ModeDoubly && victim.next != nil {
		victim.next.prev = before
	}
	return victim.Value, true
}

// Search returns the 0-based position of the first node whose value
// matches, or NotFound. Matching is coercive: values that both parse as
// numbers compare numerically, so "5" matches "5.0". Search never
// mutates the list, and repeated calls return the same position. O(n).
func (l *List) Search(value string) int {
	pos := 0
	for cur := l.head; cur != nil; cur = cur.next {
		if valuesEqual(cur.Value, value) {
			return pos
		}
		pos++
	}
	return NotFound
}

// ToArray returns the value sequence from head to tail. The snapshot is
// independent of the list; repeated calls re-traverse from the head.
func (l *List) ToArray() []string {
	out := make([]string, 0)
	for cur := l.head; cur != nil; cur = cur.next {
		out = append(out, cur.Value)
	}
	return out
}

// Snapshot implements structures.Snapshotter.
func (l *List) Snapshot() []string { return l.ToArray() }

// valuesEqual compares loosely: exact string match, or numeric
// equality when both sides parse as floats, so "5" finds "5.0".
func valuesEqual(a, b string) bool {
	if a == b {
		return true
	}
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	return errA == nil && errB == nil && fa == fb
}
