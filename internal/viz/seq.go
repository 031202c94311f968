// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package viz

import (
	"fmt"

	"github.com/AleutianAI/structviz/pkg/structures/heap"
	"github.com/AleutianAI/structviz/pkg/structures/queue"
	"github.com/AleutianAI/structviz/pkg/structures/scheduler"
	"github.com/AleutianAI/structviz/pkg/structures/stack"
	"github.com/AleutianAI/structviz/pkg/validation"
)

// Backend adapts a push/pop style structure to the sequence visualizer.
// The structures that need positional inputs (the linked list) have
// their own Model; everything else fits this shape.
type Backend interface {
	// Title names the structure for the header, e.g. "Stack".
	Title() string

	// InsertLabel and RemoveLabel name the two operation buttons in the
	// structure's own vocabulary (Push/Pop, Enqueue/Dequeue, ...).
	InsertLabel() string
	RemoveLabel() string

	// Insert adds a value. A non-nil error is shown as a notice and
	// means the structure was not modified (e.g. a full ring).
	Insert(value string) error

	// Remove takes the structure's natural "next" value out. The second
	// result is false if the structure was empty.
	Remove() (string, bool)

	// Snapshot returns the display sequence, natural order first.
	Snapshot() []string

	// Complexity describes insert and remove cost for the notice panel.
	Complexity() [2]string

	// Reset discards all contents.
	Reset()
}

// =============================================================================
// Adapters
// =============================================================================

// StackBackend adapts pkg/structures/stack.
type StackBackend struct{ s *stack.Stack }

func NewStackBackend() *StackBackend { return &StackBackend{s: stack.New()} }

func (b *StackBackend) Title() string            { return "Stack" }
func (b *StackBackend) InsertLabel() string      { return "Push" }
func (b *StackBackend) RemoveLabel() string      { return "Pop" }
func (b *StackBackend) Insert(value string) error { b.s.Push(value); return nil }
func (b *StackBackend) Remove() (string, bool)   { return b.s.Pop() }
func (b *StackBackend) Snapshot() []string       { return b.s.Snapshot() }
func (b *StackBackend) Reset()                   { b.s = stack.New() }
func (b *StackBackend) Complexity() [2]string {
	return [2]string{"push O(1)", "pop O(1)"}
}

// QueueBackend adapts the unbounded queue.
type QueueBackend struct{ q *queue.Queue }

func NewQueueBackend() *QueueBackend { return &QueueBackend{q: queue.New()} }

func (b *QueueBackend) Title() string            { return "Queue" }
func (b *QueueBackend) InsertLabel() string      { return "Enqueue" }
func (b *QueueBackend) RemoveLabel() string      { return "Dequeue" }
func (b *QueueBackend) Insert(value string) error { b.q.Enqueue(value); return nil }
func (b *QueueBackend) Remove() (string, bool)   { return b.q.Dequeue() }
func (b *QueueBackend) Snapshot() []string       { return b.q.Snapshot() }
func (b *QueueBackend) Reset()                   { b.q = queue.New() }
func (b *QueueBackend) Complexity() [2]string {
	return [2]string{"enqueue O(1)", "dequeue O(1)"}
}

// CircularBackend adapts the fixed-capacity ring queue.
type CircularBackend struct {
	c   *queue.Circular
	cap int
}

func NewCircularBackend(capacity int) *CircularBackend {
	return &CircularBackend{c: queue.NewCircular(capacity), cap: capacity}
}

func (b *CircularBackend) Title() string {
	return fmt.Sprintf("Circular Queue (cap %d)", b.c.Cap())
}
func (b *CircularBackend) InsertLabel() string { return "Enqueue" }
func (b *CircularBackend) RemoveLabel() string { return "Dequeue" }
func (b *CircularBackend) Insert(value string) error {
	if !b.c.Enqueue(value) {
		return fmt.Errorf("queue is full (capacity %d)", b.c.Cap())
	}
	return nil
}
func (b *CircularBackend) Remove() (string, bool) { return b.c.Dequeue() }
func (b *CircularBackend) Snapshot() []string     { return b.c.Snapshot() }
func (b *CircularBackend) Reset()                 { b.c = queue.NewCircular(b.cap) }
func (b *CircularBackend) Complexity() [2]string {
	return [2]string{"enqueue O(1)", "dequeue O(1)"}
}

// HeapBackend adapts the binary max-heap.
type HeapBackend struct{ h *heap.Heap }

func NewHeapBackend() *HeapBackend { return &HeapBackend{h: heap.New()} }

func (b *HeapBackend) Title() string            { return "Max-Heap" }
func (b *HeapBackend) InsertLabel() string      { return "Insert" }
func (b *HeapBackend) RemoveLabel() string      { return "Extract-Max" }
func (b *HeapBackend) Insert(value string) error { b.h.Insert(value); return nil }
func (b *HeapBackend) Remove() (string, bool)   { return b.h.ExtractMax() }
func (b *HeapBackend) Snapshot() []string       { return b.h.Snapshot() }
func (b *HeapBackend) Reset()                   { b.h = heap.New() }
func (b *HeapBackend) Complexity() [2]string {
	return [2]string{"insert O(log n)", "extract O(log n)"}
}

// SchedulerBackend adapts the priority scheduler. Values are entered as
// "name:priority"; a bare name gets priority 0.
type SchedulerBackend struct{ s *scheduler.Scheduler }

func NewSchedulerBackend() *SchedulerBackend {
	return &SchedulerBackend{s: scheduler.New()}
}

func (b *SchedulerBackend) Title() string       { return "Priority Scheduler" }
func (b *SchedulerBackend) InsertLabel() string { return "Add task" }
func (b *SchedulerBackend) RemoveLabel() string { return "Dispatch" }

func (b *SchedulerBackend) Insert(value string) error {
	name, priority, err := validation.TaskSpec(value)
	if err != nil {
		return err
	}
	b.s.Add(name, priority)
	return nil
}

func (b *SchedulerBackend) Remove() (string, bool) {
	t, ok := b.s.Next()
	if !ok {
		return "", false
	}
	return t.Name, true
}

func (b *SchedulerBackend) Snapshot() []string { return b.s.Snapshot() }
func (b *SchedulerBackend) Reset()             { b.s = scheduler.New() }
func (b *SchedulerBackend) Complexity() [2]string {
	return [2]string{"add O(n)", "dispatch O(1)"}
}
