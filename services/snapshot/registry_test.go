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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/structviz/pkg/structures/list"
	"github.com/AleutianAI/structviz/pkg/structures/stack"
)

func TestRegistrySnapshot(t *testing.T) {
	reg := NewRegistry()
	l := list.New(list.ModeDoubly)
	l.InsertAtEnd("a")
	l.InsertAtEnd("b")
	reg.Register("linked-list", l.Mode().String(), l, &ListOperator{List: l})

	snap, ok := reg.Snapshot("linked-list")
	require.True(t, ok)
	assert.Equal(t, "linked-list", snap.Structure)
	assert.Equal(t, "doubly", snap.Mode)
	assert.Equal(t, []string{"a", "b"}, snap.Values)
	assert.Equal(t, 2, snap.Length)

	_, ok = reg.Snapshot("nope")
	assert.False(t, ok)
}

func TestRegistryNamesSorted(t *testing.T) {
	reg := NewRegistry()
	reg.Register("zebra", "", stack.New(), nil)
	reg.Register("alpha", "", stack.New(), nil)
	reg.Register("mango", "", stack.New(), nil)

	assert.Equal(t, []string{"alpha", "mango", "zebra"}, reg.Names())
}

func TestRegistryApply(t *testing.T) {
	reg := NewRegistry()
	l := list.New(list.ModeSingly)
	reg.Register("linked-list", l.Mode().String(), l, &ListOperator{List: l})

	result, err := reg.Apply("linked-list", OpRequest{Op: "insert_end", Value: "x"})
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, []string{"x"}, l.ToArray())
}

func TestRegistryApplyUnknown(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Apply("ghost", OpRequest{Op: "insert", Value: "x"})
	assert.ErrorIs(t, err, ErrUnknownStructure)
}

func TestRegistryApplyReadOnly(t *testing.T) {
	reg := NewRegistry()
	l := list.New(list.ModeSingly)
	reg.Register("linked-list", l.Mode().String(), l, nil)

	_, err := reg.Apply("linked-list", OpRequest{Op: "insert_end", Value: "x"})
	assert.ErrorIs(t, err, ErrReadOnly)
}

func TestRegistrySentinelDoesNotNotify(t *testing.T) {
	reg := NewRegistry()
	l := list.New(list.ModeSingly)
	reg.Register("linked-list", l.Mode().String(), l, &ListOperator{List: l})

	updates := reg.Subscribe()
	defer reg.Unsubscribe(updates)

	// Delete on empty is a sentinel result, not a mutation.
	result, err := reg.Apply("linked-list", OpRequest{Op: "delete_beginning"})
	require.NoError(t, err)
	assert.False(t, result.OK)

	select {
	case u := <-updates:
		t.Fatalf("unexpected update for sentinel result: %+v", u)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRegistrySubscribeReceivesUpdates(t *testing.T) {
	reg := NewRegistry()
	l := list.New(list.ModeSingly)
	reg.Register("linked-list", l.Mode().String(), l, &ListOperator{List: l})

	updates := reg.Subscribe()
	defer reg.Unsubscribe(updates)

	_, err := reg.Apply("linked-list", OpRequest{Op: "insert_beginning", Value: "42"})
	require.NoError(t, err)

	select {
	case u := <-updates:
		assert.Equal(t, "linked-list", u.Structure)
		assert.Equal(t, "insert_beginning", u.Op)
		assert.Equal(t, []string{"42"}, u.Values)
		assert.Equal(t, 1, u.Length)
	case <-time.After(time.Second):
		t.Fatal("no update received")
	}
}

func TestRegistryNotifyExternalMutation(t *testing.T) {
	// A TUI-owned engine is registered read-only and mutated outside
	// the registry; its mutation hook calls Notify directly.
	reg := NewRegistry()
	l := list.New(list.ModeDoubly)
	reg.Register("live", l.Mode().String(), l, nil)

	updates := reg.Subscribe()
	defer reg.Unsubscribe(updates)

	l.InsertAtEnd("seen")
	reg.Notify("live", "insert_end")

	select {
	case u := <-updates:
		assert.Equal(t, "live", u.Structure)
		assert.Equal(t, []string{"seen"}, u.Values)
	case <-time.After(time.Second):
		t.Fatal("no update received")
	}
}

// countingSnapshotter records how many times its Snapshot method is
// called so tests can prove request-path reads never touch it.
type countingSnapshotter struct {
	values []string
	calls  int
}

func (c *countingSnapshotter) Snapshot() []string {
	c.calls++
	return append([]string(nil), c.values...)
}

func TestRegistrySnapshotServesCache(t *testing.T) {
	reg := NewRegistry()
	cs := &countingSnapshotter{values: []string{"a", "b"}}
	reg.Register("live", "singly", cs, nil)
	require.Equal(t, 1, cs.calls, "Register takes the initial snapshot")

	for i := 0; i < 10; i++ {
		snap, ok := reg.Snapshot("live")
		require.True(t, ok)
		assert.Equal(t, []string{"a", "b"}, snap.Values)
	}
	assert.Equal(t, 1, cs.calls, "reads must serve the cache, not the live structure")

	cs.values = []string{"a", "b", "c"}
	reg.Notify("live", "insert_end")
	assert.Equal(t, 2, cs.calls, "Notify refreshes the cache on the owner goroutine")

	snap, ok := reg.Snapshot("live")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, snap.Values)
}

func TestRegistrySnapshotConcurrentWithOwner(t *testing.T) {
	// A read-only engine owned by another goroutine is relinked between
	// notifications; readers hitting the registry at the same time must
	// only ever see the cache. Run with -race.
	reg := NewRegistry()
	l := list.New(list.ModeSingly)
	reg.Register("live", l.Mode().String(), l, nil)

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-stop:
				return
			default:
			}
			if _, ok := reg.Snapshot("live"); !ok {
				t.Error("structure vanished")
				return
			}
			reg.Names()
		}
	}()

	for i := 0; i < 200; i++ {
		l.InsertAtBeginning("v")
		reg.Notify("live", "insert_beginning")
		if i%3 == 0 {
			l.DeleteFromEnd()
			reg.Notify("live", "delete_end")
		}
	}
	close(stop)
	<-done
}

func TestRegistrySlowSubscriberSkipped(t *testing.T) {
	reg := NewRegistry()
	l := list.New(list.ModeSingly)
	reg.Register("linked-list", l.Mode().String(), l, &ListOperator{List: l})

	updates := reg.Subscribe()
	defer reg.Unsubscribe(updates)

	// Overflow the buffer; Apply must never block.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 40; i++ {
			if _, err := reg.Apply("linked-list", OpRequest{Op: "insert_end", Value: "v"}); err != nil {
				t.Errorf("apply %d: %v", i, err)
				return
			}
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("apply blocked on slow subscriber")
	}
}
