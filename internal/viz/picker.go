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

	"github.com/charmbracelet/huh"

	"github.com/AleutianAI/structviz/pkg/structures/list"
	"github.com/AleutianAI/structviz/pkg/validation"
)

// Structure names accepted by the picker and the --structure flag.
const (
	StructList      = "linked-list"
	StructStack     = "stack"
	StructQueue     = "queue"
	StructCircular  = "circular-queue"
	StructHeap      = "heap"
	StructScheduler = "scheduler"
)

// Choice is the result of the structure picker: which demo to run and
// its parameters.
type Choice struct {
	Structure string
	ListMode  list.Mode
	Capacity  int
}

// PickStructure runs the interactive selection form. Picking a
// structure starts a fresh session, discarding whatever engine ran
// before.
func PickStructure() (Choice, error) {
	structure := StructList
	mode := "singly"
	capacity := "5"

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Structure").
				Options(
					huh.NewOption("Linked List", StructList),
					huh.NewOption("Stack", StructStack),
					huh.NewOption("Queue", StructQueue),
					huh.NewOption("Circular Queue", StructCircular),
					huh.NewOption("Max-Heap", StructHeap),
					huh.NewOption("Priority Scheduler", StructScheduler),
				).
				Value(&structure),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Linkage").
				Options(
					huh.NewOption("Singly linked", "singly"),
					huh.NewOption("Doubly linked", "doubly"),
				).
				Value(&mode),
		).WithHideFunc(func() bool { return structure != StructList }),
		huh.NewGroup(
			huh.NewInput().
				Title("Capacity").
				Validate(validateCapacity).
				Value(&capacity),
		).WithHideFunc(func() bool { return structure != StructCircular }),
	)

	if err := form.Run(); err != nil {
		return Choice{}, fmt.Errorf("structure selection aborted: %w", err)
	}

	choice := Choice{Structure: structure}
	if mode == "doubly" {
		choice.ListMode = list.ModeDoubly
	}
	if structure == StructCircular {
		// Validated by the form; cannot fail here.
		choice.Capacity, _ = validation.Capacity(capacity)
	}
	return choice, nil
}

func validateCapacity(s string) error {
	_, err := validation.Capacity(s)
	return err
}

// BackendFor builds the sequence backend for a non-list choice.
// Returns nil for StructList, which has its own model.
func BackendFor(c Choice) Backend {
	switch c.Structure {
	case StructStack:
		return NewStackBackend()
	case StructQueue:
		return NewQueueBackend()
	case StructCircular:
		return NewCircularBackend(c.Capacity)
	case StructHeap:
		return NewHeapBackend()
	case StructScheduler:
		return NewSchedulerBackend()
	default:
		return nil
	}
}
