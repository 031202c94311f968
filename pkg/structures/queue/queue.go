// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package queue implements the FIFO queues shown by the queue
// visualizers: an unbounded queue and a fixed-capacity circular variant
// that refuses enqueues when full instead of growing.
package queue

// Queue is an unbounded FIFO of string values.
type Queue struct {
	items []string
}

// New creates an empty unbounded queue.
func New() *Queue { return &Queue{} }

// Enqueue appends a value at the rear.
func (q *Queue) Enqueue(value string) {
	q.items = append(q.items, value)
}

// Dequeue removes and returns the front value. The second result is
// false if the queue was empty.
func (q *Queue) Dequeue() (string, bool) {
	if len(q.items) == 0 {
		return "", false
	}
	front := q.items[0]
	q.items = q.items[1:]
	return front, true
}

// Len reports the number of queued values.
func (q *Queue) Len() int { return len(q.items) }

// Snapshot returns the values front to rear.
func (q *Queue) Snapshot() []string {
	out := make([]string, len(q.items))
	copy(out, q.items)
	return out
}

// Circular is a fixed-capacity ring buffer queue. Enqueue fails once
// the ring is full; slots are reused as the front advances.
type Circular struct {
	buf   []string
	front int
	count int
}

// NewCircular creates a circular queue with the given capacity.
// Capacities below 1 are clamped to 1.
func NewCircular(capacity int) *Circular {
	if capacity < 1 {
		capacity = 1
	}
	return &Circular{buf: make([]string, capacity)}
}

// Enqueue places a value at the rear. Returns false if the ring is full.
func (c *Circular) Enqueue(value string) bool {
	if c.count == len(c.buf) {
		return false
	}
	c.buf[(c.front+c.count)%len(c.buf)] = value
	c.count++
	return true
}

// Dequeue removes and returns the front value. The second result is
// false if the ring was empty.
func (c *Circular) Dequeue() (string, bool) {
	if c.count == 0 {
		return "", false
	}
	front := c.buf[c.front]
	c.buf[c.front] = ""
	c.front = (c.front + 1) % len(c.buf)
	c.count--
	return front, true
}

// Len reports the number of occupied slots.
func (c *Circular) Len() int { return c.count }

// Cap reports the fixed capacity.
func (c *Circular) Cap() int { return len(c.buf) }

// Snapshot returns the occupied values in logical front-to-rear order,
// independent of where the ring is physically rotated.
func (c *Circular) Snapshot() []string {
	out := make([]string, 0, c.count)
	for i := 0; i < c.count; i++ {
		out = append(out, c.buf[(c.front+i)%len(c.buf)])
	}
	return out
}
