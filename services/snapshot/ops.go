// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package snapshot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/AleutianAI/structviz/pkg/structures/heap"
	"github.com/AleutianAI/structviz/pkg/structures/list"
	"github.com/AleutianAI/structviz/pkg/structures/queue"
	"github.com/AleutianAI/structviz/pkg/structures/scheduler"
	"github.com/AleutianAI/structviz/pkg/structures/stack"
)

var (
	// ErrUnknownStructure marks requests against unregistered names.
	ErrUnknownStructure = errors.New("unknown structure")

	// ErrReadOnly marks mutation attempts on read-only registrations.
	ErrReadOnly = errors.New("structure is read-only")

	// ErrUnsupportedOp marks operations a structure doesn't offer.
	ErrUnsupportedOp = errors.New("unsupported operation")
)

// OpRequest is the body of POST /v1/structures/:structure/ops.
type OpRequest struct {
	Op       string `json:"op" validate:"required,oneof=insert_beginning insert_end insert_at delete_beginning delete_end delete_at search insert remove"`
	Value    string `json:"value" validate:"max=64"`
	Position int    `json:"position" validate:"gte=-1"`
	Priority int    `json:"priority"`
}

// opValidate validates incoming operation requests.
var opValidate = validator.New()

// Validate checks the request against its struct tags.
func (r OpRequest) Validate() error {
	if err := opValidate.Struct(r); err != nil {
		return fmt.Errorf("invalid operation request: %w", err)
	}
	return nil
}

// OpResult reports what an operation did. Sentinel outcomes (empty
// list, not found) are normal results, not errors; OK is false and
// Detail says why.
type OpResult struct {
	OK       bool   `json:"ok"`
	Value    string `json:"value,omitempty"`
	Position int    `json:"position,omitempty"`
	Detail   string `json:"detail,omitempty"`

	// Mutated is true when the structure changed; it gates subscriber
	// notification.
	Mutated bool `json:"-"`
}

// Operator applies remote operations to one structure.
type Operator interface {
	Apply(req OpRequest) (OpResult, error)
}

// =============================================================================
// List operator
// =============================================================================

// ListOperator drives a list engine remotely with the full positional
// operation set.
type ListOperator struct {
	List *list.List
}

// Apply implements Operator, keeping the engine's permissive semantics:
// out-of-range positions come back as ok=false results, never errors.
func (o *ListOperator) Apply(req OpRequest) (OpResult, error) {
	switch req.Op {
	case "insert_beginning":
		if err := requireValue(req); err != nil {
			return OpResult{}, err
		}
		o.List.InsertAtBeginning(req.Value)
		return OpResult{OK: true, Mutated: true}, nil

	case "insert_end", "insert":
		if err := requireValue(req); err != nil {
			return OpResult{}, err
		}
		o.List.InsertAtEnd(req.Value)
		return OpResult{OK: true, Mutated: true}, nil

	case "insert_at":
		if err := requireValue(req); err != nil {
			return OpResult{}, err
		}
		before := o.List.Len()
		o.List.InsertAtPosition(req.Value, req.Position)
		if o.List.Len() == before {
			return OpResult{OK: false, Detail: "position out of range"}, nil
		}
		return OpResult{OK: true, Mutated: true}, nil

	case "delete_beginning", "remove":
		v, ok := o.List.DeleteFromBeginning()
		if !ok {
			return OpResult{OK: false, Detail: "list is empty"}, nil
		}
		return OpResult{OK: true, Value: v, Mutated: true}, nil

	case "delete_end":
		v, ok := o.List.DeleteFromEnd()
		if !ok {
			return OpResult{OK: false, Detail: "list is empty"}, nil
		}
		return OpResult{OK: true, Value: v, Mutated: true}, nil

	case "delete_at":
		v, ok := o.List.DeleteAtPosition(req.Position)
		if !ok {
			return OpResult{OK: false, Detail: "invalid position"}, nil
		}
		return OpResult{OK: true, Value: v, Mutated: true}, nil

	case "search":
		if err := requireValue(req); err != nil {
			return OpResult{}, err
		}
		pos := o.List.Search(req.Value)
		if pos == list.NotFound {
			return OpResult{OK: false, Position: list.NotFound, Detail: "not found"}, nil
		}
		return OpResult{OK: true, Position: pos}, nil

	default:
		return OpResult{}, fmt.Errorf("%w for list: %s", ErrUnsupportedOp, req.Op)
	}
}

// =============================================================================
// Sequence operators
// =============================================================================

// StackOperator drives a stack with insert/remove.
type StackOperator struct{ Stack *stack.Stack }

func (o *StackOperator) Apply(req OpRequest) (OpResult, error) {
	switch req.Op {
	case "insert":
		if err := requireValue(req); err != nil {
			return OpResult{}, err
		}
		o.Stack.Push(req.Value)
		return OpResult{OK: true, Mutated: true}, nil
	case "remove":
		v, ok := o.Stack.Pop()
		if !ok {
			return OpResult{OK: false, Detail: "stack is empty"}, nil
		}
		return OpResult{OK: true, Value: v, Mutated: true}, nil
	default:
		return OpResult{}, fmt.Errorf("%w for stack: %s", ErrUnsupportedOp, req.Op)
	}
}

// QueueOperator drives an unbounded queue.
type QueueOperator struct{ Queue *queue.Queue }

func (o *QueueOperator) Apply(req OpRequest) (OpResult, error) {
	switch req.Op {
	case "insert":
		if err := requireValue(req); err != nil {
			return OpResult{}, err
		}
		o.Queue.Enqueue(req.Value)
		return OpResult{OK: true, Mutated: true}, nil
	case "remove":
		v, ok := o.Queue.Dequeue()
		if !ok {
			return OpResult{OK: false, Detail: "queue is empty"}, nil
		}
		return OpResult{OK: true, Value: v, Mutated: true}, nil
	default:
		return OpResult{}, fmt.Errorf("%w for queue: %s", ErrUnsupportedOp, req.Op)
	}
}

// CircularOperator drives the fixed-capacity ring.
type CircularOperator struct{ Ring *queue.Circular }

func (o *CircularOperator) Apply(req OpRequest) (OpResult, error) {
	switch req.Op {
	case "insert":
		if err := requireValue(req); err != nil {
			return OpResult{}, err
		}
		if !o.Ring.Enqueue(req.Value) {
			return OpResult{OK: false, Detail: "queue is full"}, nil
		}
		return OpResult{OK: true, Mutated: true}, nil
	case "remove":
		v, ok := o.Ring.Dequeue()
		if !ok {
			return OpResult{OK: false, Detail: "queue is empty"}, nil
		}
		return OpResult{OK: true, Value: v, Mutated: true}, nil
	default:
		return OpResult{}, fmt.Errorf("%w for circular queue: %s", ErrUnsupportedOp, req.Op)
	}
}

// HeapOperator drives the max-heap.
type HeapOperator struct{ Heap *heap.Heap }

func (o *HeapOperator) Apply(req OpRequest) (OpResult, error) {
	switch req.Op {
	case "insert":
		if err := requireValue(req); err != nil {
			return OpResult{}, err
		}
		o.Heap.Insert(req.Value)
		return OpResult{OK: true, Mutated: true}, nil
	case "remove":
		v, ok := o.Heap.ExtractMax()
		if !ok {
			return OpResult{OK: false, Detail: "heap is empty"}, nil
		}
		return OpResult{OK: true, Value: v, Mutated: true}, nil
	default:
		return OpResult{}, fmt.Errorf("%w for heap: %s", ErrUnsupportedOp, req.Op)
	}
}

// SchedulerOperator drives the priority scheduler; insert uses the
// Priority field.
type SchedulerOperator struct{ Sched *scheduler.Scheduler }

func (o *SchedulerOperator) Apply(req OpRequest) (OpResult, error) {
	switch req.Op {
	case "insert":
		if err := requireValue(req); err != nil {
			return OpResult{}, err
		}
		o.Sched.Add(req.Value, req.Priority)
		return OpResult{OK: true, Mutated: true}, nil
	case "remove":
		t, ok := o.Sched.Next()
		if !ok {
			return OpResult{OK: false, Detail: "no pending tasks"}, nil
		}
		return OpResult{OK: true, Value: t.Name, Mutated: true}, nil
	default:
		return OpResult{}, fmt.Errorf("%w for scheduler: %s", ErrUnsupportedOp, req.Op)
	}
}

func requireValue(req OpRequest) error {
	if strings.TrimSpace(req.Value) == "" {
		return fmt.Errorf("operation %s requires a value", req.Op)
	}
	return nil
}
