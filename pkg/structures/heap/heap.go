// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package heap implements the binary max-heap shown by the heap
// visualizer. Values that parse as numbers order numerically; anything
// else orders lexicographically after all numbers, mirroring how the
// visual tool treats mixed payloads.
package heap

import "strconv"

// Heap is an array-backed binary max-heap of string values.
type Heap struct {
	items []string
}

// New creates an empty heap.
func New() *Heap { return &Heap{} }

// Insert adds a value and sifts it up to its heap position.
func (h *Heap) Insert(value string) {
	h.items = append(h.items, value)
	i := len(h.items) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if !less(h.items[parent], h.items[i]) {
			break
		}
		h.items[parent], h.items[i] = h.items[i], h.items[parent]
		i = parent
	}
}

// ExtractMax removes and returns the largest value. The second result
// is false if the heap was empty.
func (h *Heap) ExtractMax() (string, bool) {
	if len(h.items) == 0 {
		return "", false
	}
	max := h.items[0]
	last := len(h.items) - 1
	h.items[0] = h.items[last]
	h.items = h.items[:last]
	h.siftDown(0)
	return max, true
}

func (h *Heap) siftDown(i int) {
	n := len(h.items)
	for {
		left, right := 2*i+1, 2*i+2
		largest := i
		if left < n && less(h.items[largest], h.items[left]) {
			largest = left
		}
		if right < n && less(h.items[largest], h.items[right]) {
			largest = right
		}
		if largest == i {
			return
		}
		h.items[i], h.items[largest] = h.items[largest], h.items[i]
		i = largest
	}
}

// Len reports the number of stored values.
func (h *Heap) Len() int { return len(h.items) }

// Snapshot returns the values in level order, root first.
func (h *Heap) Snapshot() []string {
	out := make([]string, len(h.items))
	copy(out, h.items)
	return out
}

// less orders two payloads: numbers before strings, numbers by value,
// strings byte-wise.
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
