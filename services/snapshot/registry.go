// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package snapshot exposes the data structures over HTTP for external
// consumers.
//
// # Description
//
// The AR exporter (and any other collaborator) needs exactly one thing
// from the core: the ordered value sequence of a structure, one value
// per position. This service serves that as JSON, streams change
// notifications over a websocket, and optionally accepts remote
// operations so a headless demo can be driven without the TUI.
//
// # Thread Safety
//
// Registry never calls a live Snapshotter from a request goroutine.
// Each entry carries a cached value slice taken on the goroutine that
// owns the structure: at Register and inside Notify, which Apply runs
// after every mutation and TUI-owned engines call from their event
// loop via the mutation hook. Readers only ever see the cache, under
// the registry's lock, so the owning goroutine can relink nodes
// freely between notifications.
package snapshot

import (
	"fmt"
	"sort"
	"sync"

	"github.com/AleutianAI/structviz/pkg/structures"
)

// Update describes one structure change, fanned out to websocket
// subscribers.
type Update struct {
	Structure string   `json:"structure"`
	Op        string   `json:"op"`
	Values    []string `json:"values"`
	Length    int      `json:"length"`
}

// Snapshot is the response shape of the per-structure snapshot request.
type Snapshot struct {
	Structure string   `json:"structure"`
	Mode      string   `json:"mode,omitempty"`
	Values    []string `json:"values"`
	Length    int      `json:"length"`
}

// entry pairs a registered structure with its optional remote operator.
// cached is the last value sequence taken from snap; it is refreshed
// only on the goroutine that owns the structure.
type entry struct {
	mode   string
	snap   structures.Snapshotter
	op     Operator
	cached []string
}

// Registry tracks the structures available for snapshotting.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
	subs    map[chan Update]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*entry),
		subs:    make(map[chan Update]struct{}),
	}
}

// Register adds a structure under a stable name. mode is free-form
// descriptive text ("singly", "doubly", "" for structures without
// variants). op may be nil for read-only registrations, e.g. an engine
// owned by a running TUI session. The caller must still own the
// structure at this point: registration takes the initial snapshot.
func (r *Registry) Register(name, mode string, snap structures.Snapshotter, op Operator) {
	cached := snap.Snapshot()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = &entry{mode: mode, snap: snap, op: op, cached: cached}
}

// Names returns the registered structure names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns the value sequence of a structure as of its last
// change notification. The second result is false for unknown names.
// The live Snapshotter is never touched here; request goroutines must
// not race the structure's owner.
func (r *Registry) Snapshot(name string) (Snapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return Snapshot{}, false
	}
	values := make([]string, len(e.cached))
	copy(values, e.cached)
	return Snapshot{
		Structure: name,
		Mode:      e.mode,
		Values:    values,
		Length:    len(values),
	}, true
}

// Apply runs a remote operation against a registered structure and
// notifies subscribers on success.
func (r *Registry) Apply(name string, req OpRequest) (OpResult, error) {
	r.mu.Lock()
	e, ok := r.entries[name]
	if !ok {
		r.mu.Unlock()
		return OpResult{}, fmt.Errorf("%w: %s", ErrUnknownStructure, name)
	}
	if e.op == nil {
		r.mu.Unlock()
		return OpResult{}, fmt.Errorf("%w: %s", ErrReadOnly, name)
	}
	result, err := e.op.Apply(req)
	r.mu.Unlock()
	if err != nil {
		return OpResult{}, err
	}
	if result.Mutated {
		r.Notify(name, req.Op)
	}
	return result, nil
}

// Notify refreshes the structure's cached snapshot and fans a change
// notification out to all subscribers. It must run on the goroutine
// that owns the structure: Apply calls it after registry-driven
// mutations, TUI-owned engines call it from their event loop via the
// mutation hook. Slow subscribers are skipped rather than blocking
// the mutation path.
func (r *Registry) Notify(name, op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[name]
	if !ok {
		return
	}
	e.cached = e.snap.Snapshot()

	update := Update{
		Structure: name,
		Op:        op,
		Values:    e.cached,
		Length:    len(e.cached),
	}
	for ch := range r.subs {
		select {
		case ch <- update:
		default:
		}
	}
}

// Subscribe returns a buffered channel of updates. Callers must
// Unsubscribe when done.
func (r *Registry) Subscribe() chan Update {
	ch := make(chan Update, 16)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs[ch] = struct{}{}
	return ch
}

// Unsubscribe removes and closes a subscription channel.
func (r *Registry) Unsubscribe(ch chan Update) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subs[ch]; ok {
		delete(r.subs, ch)
		close(ch)
	}
}
