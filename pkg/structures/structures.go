// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package structures defines the common contract shared by every
// visualizable data structure in StructViz.
//
// # Description
//
// Each concrete structure (list, stack, queue, heap, bst, scheduler)
// lives in its own subpackage and implements Snapshotter so the
// visualizer and the snapshot service can project it without knowing
// its internals. Values are opaque displayable strings; ordering is
// whatever traversal order is natural for the structure (head to tail
// for lists, top to bottom for stacks, level order for heaps).
package structures

// Snapshotter yields an ordered, side-effect-free copy of a structure's
// current values. Repeated calls re-traverse from the start; callers may
// mutate the returned slice freely.
type Snapshotter interface {
	Snapshot() []string
}
