// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package stack implements the LIFO stack shown by the stack visualizer.
package stack

// Stack is a slice-backed LIFO of string values. Not safe for
// concurrent use; the visualizer drives it from one event loop.
type Stack struct {
	items []string
}

// New creates an empty stack.
func New() *Stack { return &Stack{} }

// Push places a value on top of the stack.
func (s *Stack) Push(value string) {
	s.items = append(s.items, value)
}

// Pop removes and returns the top value. The second result is false if
// the stack was empty.
func (s *Stack) Pop() (string, bool) {
	if len(s.items) == 0 {
		return "", false
	}
	top := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return top, true
}

// Peek returns the top value without removing it.
func (s *Stack) Peek() (string, bool) {
	if len(s.items) == 0 {
		return "", false
	}
	return s.items[len(s.items)-1], true
}

// Len reports the number of stacked values.
func (s *Stack) Len() int { return len(s.items) }

// Snapshot returns the values top-first, matching the visual order of
// the rendered stack.
func (s *Stack) Snapshot() []string {
	out := make([]string, 0, len(s.items))
	for i := len(s.items) - 1; i >= 0; i-- {
		out = append(out, s.items[i])
	}
	return out
}
