// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package scheduler implements the priority scheduler demo: tasks carry
// an integer priority, Next hands out the highest priority first, and
// tasks of equal priority leave in arrival order.
package scheduler

import "fmt"

// Task is one scheduled item.
type Task struct {
	Name     string
	Priority int

	seq int
}

// Scheduler holds pending tasks ordered by priority then arrival.
type Scheduler struct {
	tasks   []Task
	nextSeq int
}

// New creates an empty scheduler.
func New() *Scheduler { return &Scheduler{} }

// Add registers a task with the given priority.
func (s *Scheduler) Add(name string, priority int) {
	t := Task{Name: name, Priority: priority, seq: s.nextSeq}
	s.nextSeq++

	// Insertion keeps the slice sorted: higher priority first, earlier
	// arrival first among equals. Lists are human sized, O(n) is fine.
	pos := len(s.tasks)
	for i, existing := range s.tasks {
		if t.Priority > existing.Priority {
			pos = i
			break
		}
	}
	s.tasks = append(s.tasks, Task{})
	copy(s.tasks[pos+1:], s.tasks[pos:])
	s.tasks[pos] = t
}

// Next removes and returns the highest priority task. The second result
// is false if nothing is pending.
func (s *Scheduler) Next() (Task, bool) {
	if len(s.tasks) == 0 {
		return Task{}, false
	}
	t := s.tasks[0]
	s.tasks = s.tasks[1:]
	return t, true
}

// Pending returns a copy of the queue in dispatch order.
func (s *Scheduler) Pending() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len reports the number of pending tasks.
func (s *Scheduler) Len() int { return len(s.tasks) }

// Snapshot renders each pending task as "name (pN)" in dispatch order.
func (s *Scheduler) Snapshot() []string {
	out := make([]string, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, fmt.Sprintf("%s (p%d)", t.Name, t.Priority))
	}
	return out
}
