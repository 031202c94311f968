// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package bst implements the binary search tree shown by the tree
// visualizer. Ordering matches the heap package: numeric payloads
// compare numerically, everything else lexicographically.
package bst

import "strconv"

// Node is one tree node.
type Node struct {
	Value string
	Left  *Node
	Right *Node
}

// Tree is a binary search tree of string values. Duplicates go right.
type Tree struct {
	root *Node
}

// New creates an empty tree.
func New() *Tree { return &Tree{} }

// Root returns the root node, or nil if the tree is empty.
func (t *Tree) Root() *Node { return t.root }

// Insert adds a value at its search position.
func (t *Tree) Insert(value string) {
	node := &Node{Value: value}
	if t.root == nil {
		t.root = node
		return
	}
	cur := t.root
	for {
		if less(value, cur.Value) {
			if cur.Left == nil {
				cur.Left = node
				return
			}
			cur = cur.Left
		} else {
			if cur.Right == nil {
				cur.Right = node
				return
			}
			cur = cur.Right
		}
	}
}

// Search reports whether the value is present.
func (t *Tree) Search(value string) bool {
	cur := t.root
	for cur != nil {
		switch {
		case value == cur.Value:
			return true
		case less(value, cur.Value):
			cur = cur.Left
		default:
			cur = cur.Right
		}
	}
	return false
}

// Len counts the nodes.
func (t *Tree) Len() int {
	n := 0
	var walk func(*Node)
	walk = func(cur *Node) {
		if cur == nil {
			return
		}
		n++
		walk(cur.Left)
		walk(cur.Right)
	}
	walk(t.root)
	return n
}

// InOrder returns the values in sorted traversal order.
func (t *Tree) InOrder() []string {
	out := make([]string, 0)
	var walk func(*Node)
	walk = func(cur *Node) {
		if cur == nil {
			return
		}
		walk(cur.Left)
		out = append(out, cur.Value)
		walk(cur.Right)
	}
	walk(t.root)
	return out
}

// Snapshot implements structures.Snapshotter with the in-order sequence.
func (t *Tree) Snapshot() []string { return t.InOrder() }

func less(a, b string) bool {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	switch {
	case errA == nil && errB == nil:
		return fa < fb
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}
