// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDescending(t *testing.T) {
	h := New()
	for _, v := range []string{"3", "10", "1", "7", "5"} {
		h.Insert(v)
	}

	want := []string{"10", "7", "5", "3", "1"}
	for _, w := range want {
		v, ok := h.ExtractMax()
		require.True(t, ok)
		assert.Equal(t, w, v)
	}
	_, ok := h.ExtractMax()
	assert.False(t, ok, "extract on empty heap must report false")
}

func TestMixedPayloadOrdering(t *testing.T) {
	h := New()
	h.Insert("apple")
	h.Insert("2")
	h.Insert("banana")

	// Strings order after numbers, byte-wise among themselves.
	v, _ := h.ExtractMax()
	assert.Equal(t, "banana", v)
	v, _ = h.ExtractMax()
	assert.Equal(t, "apple", v)
	v, _ = h.ExtractMax()
	assert.Equal(t, "2", v)
}

func TestHeapInvariantAfterInserts(t *testing.T) {
	h := New()
	for _, v := range []string{"4", "9", "2", "8", "6", "1"} {
		h.Insert(v)
	}
	snap := h.Snapshot()
	for i := range snap {
		for _, child := range []int{2*i + 1, 2*i + 2} {
			if child < len(snap) {
				assert.False(t, less(snap[i], snap[child]),
					"parent %q smaller than child %q", snap[i], snap[child])
			}
		}
	}
	assert.Equal(t, 6, h.Len())
}
