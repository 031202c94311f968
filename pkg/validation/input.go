// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package validation provides input validation for user-provided
// values before they reach a structure engine.
//
// The TUI and the HTTP operation endpoint share these rules so a value
// accepted in one place is accepted in the other.
package validation

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxValueLen caps node values. Long values wreck the box rendering
// and have no pedagogical use.
const MaxValueLen = 64

// Capacity bounds for the circular queue.
const (
	MinCapacity = 1
	MaxCapacity = 32
)

// Value trims and validates a node value. Returns the trimmed value.
func Value(s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", fmt.Errorf("value cannot be empty")
	}
	if len(v) > MaxValueLen {
		return "", fmt.Errorf("value too long (max %d characters)", MaxValueLen)
	}
	return v, nil
}

// Position parses a 0-based position. Range checking is left to the
// engine, which treats out-of-range positions as no-ops.
func Position(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("position must be an integer")
	}
	return n, nil
}

// Capacity parses and bounds a circular queue capacity.
func Capacity(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("capacity must be an integer")
	}
	if n < MinCapacity || n > MaxCapacity {
		return 0, fmt.Errorf("capacity must be between %d and %d", MinCapacity, MaxCapacity)
	}
	return n, nil
}

// TaskSpec parses a scheduler entry of the form "name:priority". A
// bare name gets priority 0. The last colon splits, so names may
// contain colons.
func TaskSpec(s string) (name string, priority int, err error) {
	name = strings.TrimSpace(s)
	if i := strings.LastIndex(name, ":"); i >= 0 {
		p, perr := strconv.Atoi(strings.TrimSpace(name[i+1:]))
		if perr != nil {
			return "", 0, fmt.Errorf("priority must be an integer, use name:priority")
		}
		name, priority = strings.TrimSpace(name[:i]), p
	}
	if name == "" {
		return "", 0, fmt.Errorf("task name cannot be empty")
	}
	return name, priority, nil
}
