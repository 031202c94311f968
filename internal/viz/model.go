// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package viz binds the data structure engines to the terminal UI.
//
// # Description
//
// This package implements the interactive visualizer using bubbletea.
// Model drives the linked list engine; SeqModel drives the simpler
// push/pop structures through the Backend adapters. Both follow the
// same loop: read the inputs, validate, call the engine, rebuild the
// whole projection from a fresh snapshot.
//
// # Thread Safety
//
// Models are designed for single-threaded use within the bubbletea
// event loop. Do not access model state from multiple goroutines;
// external updates (config reloads) arrive as messages via
// Program.Send.
package viz

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/AleutianAI/structviz/pkg/logging"
	"github.com/AleutianAI/structviz/pkg/structures/list"
	"github.com/AleutianAI/structviz/pkg/validation"
)

// =============================================================================
// Operations
// =============================================================================

// opID identifies one list operation button.
type opID int

const (
	opInsertBeginning opID = iota
	opInsertEnd
	opInsertAt
	opDeleteBeginning
	opDeleteEnd
	opDeleteAt
	opSearch
	opTraverse
	opReset
)

var opLabels = [...]string{
	opInsertBeginning: "Insert@Head",
	opInsertEnd:       "Insert@Tail",
	opInsertAt:        "Insert@Pos",
	opDeleteBeginning: "Delete@Head",
	opDeleteEnd:       "Delete@Tail",
	opDeleteAt:        "Delete@Pos",
	opSearch:          "Search",
	opTraverse:        "Traverse",
	opReset:           "Reset",
}

// needsValue reports whether the operation reads the value input.
func (o opID) needsValue() bool {
	switch o {
	case opInsertBeginning, opInsertEnd, opInsertAt, opSearch:
		return true
	default:
		return false
	}
}

// needsPosition reports whether the operation reads the position input.
func (o opID) needsPosition() bool {
	return o == opInsertAt || o == opDeleteAt
}

// =============================================================================
// Messages
// =============================================================================

// travTickMsg advances the traversal animation by one node. The
// generation stamp makes in-flight traversals cancelable: any event
// that starts a new traversal or discards the engine bumps the model's
// generation, and stale ticks are dropped on arrival instead of
// interleaving highlights.
type travTickMsg struct {
	gen int
}

// DelayMsg updates the shared animation delay. Sent from outside the
// event loop (the +/- keys use it too) so there is a single place the
// speed setting changes.
type DelayMsg struct {
	Delay time.Duration
}

// noticeKind selects the styling of the modal notice overlay.
type noticeKind int

const (
	noticeInfo noticeKind = iota
	noticeSuccess
	noticeWarn
)

// focus identifies which control owns keystrokes.
type focus int

const (
	focusValue focus = iota
	focusPosition
	focusOps
)

// =============================================================================
// Model
// =============================================================================

// Model is the bubbletea model for the linked list visualizer.
//
// It owns exactly one list engine for its lifetime. User actions are
// validated here; the engine's permissive no-op results come back as
// notices, never as errors. Every successful mutation triggers a full
// re-render from ToArray — there is no incremental diffing.
type Model struct {
	engine *list.List
	mode   list.Mode

	valueInput textinput.Model
	posInput   textinput.Model
	focused    focus
	opIndex    int

	delay time.Duration

	// Modal notice overlay; any key dismisses it.
	notice     string
	noticeKind noticeKind
	showNotice bool

	// Search highlight, -1 when nothing is highlighted.
	highlight int

	// Traversal animation state.
	traversing bool
	travIndex  int
	travGen    int

	width    int
	quitting bool

	logger *logging.Logger

	// onMutate is invoked after every successful engine mutation, used
	// by the snapshot service to push updates to subscribers. May be nil.
	onMutate func()
}

// Option customizes a Model at construction.
type Option func(*Model)

// WithMutationHook registers a callback invoked after every successful
// mutation. The snapshot service uses it to fan updates out to
// websocket subscribers.
func WithMutationHook(fn func()) Option {
	return func(m *Model) { m.onMutate = fn }
}

// NewModel creates a visualizer bound to a fresh list engine in the
// given linkage mode. The delay is the shared animation speed setting;
// it can be changed later with a DelayMsg.
func NewModel(mode list.Mode, delay time.Duration, logger *logging.Logger, opts ...Option) Model {
	vi := textinput.New()
	vi.Placeholder = "value"
	vi.CharLimit = 24
	vi.Width = 16
	vi.Focus()

	pi := textinput.New()
	pi.Placeholder = "position"
	pi.CharLimit = 6
	pi.Width = 10

	m := Model{
		engine:     list.New(mode),
		mode:       mode,
		valueInput: vi,
		posInput:   pi,
		delay:      delay,
		highlight:  -1,
		travIndex:  -1,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Engine exposes the bound list engine. The snapshot service registers
// it as a Snapshotter; nothing else should mutate it directly.
func (m *Model) Engine() *list.List { return m.engine }

// Delay returns the current animation step delay.
func (m Model) Delay() time.Duration { return m.delay }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case DelayMsg:
		m.delay = clampDelay(msg.Delay)
		return m, nil

	case travTickMsg:
		return m.advanceTraversal(msg)

	case tea.KeyMsg:
		// The notice overlay is modal, like the alert() it replaces.
		if m.showNotice {
			m.showNotice = false
			return m, nil
		}
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		// Discarding the model cancels any in-flight traversal: its
		// remaining ticks carry a stale generation.
		m.travGen++
		return m, tea.Quit

	case "tab":
		m.cycleFocus(1)
		return m, nil

	case "shift+tab":
		m.cycleFocus(-1)
		return m, nil

	case "enter":
		cmd := m.execute(opID(m.opIndex))
		return m, cmd
	}

	if m.focused == focusOps {
		switch msg.String() {
		case "left", "h":
			m.opIndex = (m.opIndex + len(opLabels) - 1) % len(opLabels)
			return m, nil
		case "right", "l":
			m.opIndex = (m.opIndex + 1) % len(opLabels)
			return m, nil
		case "+":
			m.delay = clampDelay(m.delay - 100*time.Millisecond)
			return m, nil
		case "-":
			m.delay = clampDelay(m.delay + 100*time.Millisecond)
			return m, nil
		case "q":
			m.quitting = true
			m.travGen++
			return m, tea.Quit
		}
		return m, nil
	}

	return m.updateInputs(msg)
}

func (m *Model) cycleFocus(dir int) {
	m.focused = focus((int(m.focused) + dir + 3) % 3)
	m.valueInput.Blur()
	m.posInput.Blur()
	switch m.focused {
	case focusValue:
		m.valueInput.Focus()
	case focusPosition:
		m.posInput.Focus()
	}
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focused {
	case focusValue:
		m.valueInput, cmd = m.valueInput.Update(msg)
	case focusPosition:
		m.posInput, cmd = m.posInput.Update(msg)
	}
	return m, cmd
}

// =============================================================================
// Operation execution
// =============================================================================

// execute validates the inputs for the selected operation, forwards to
// the engine, and schedules any follow-up command. Invalid input never
// reaches the engine.
func (m *Model) execute(op opID) tea.Cmd {
	var (
		value string
		pos   int
	)

	if op.needsValue() {
		v, err := validation.Value(m.valueInput.Value())
		if err != nil {
			m.warn(err.Error())
			return nil
		}
		value = v
	}
	if op.needsPosition() {
		p, err := validation.Position(m.posInput.Value())
		if err != nil {
			m.warn(err.Error())
			return nil
		}
		pos = p
	}

	// Any action invalidates the previous search highlight.
	m.highlight = -1

	switch op {
	case opInsertBeginning:
		m.engine.InsertAtBeginning(value)
		m.mutated("insert_beginning", value)

	case opInsertEnd:
		m.engine.InsertAtEnd(value)
		m.mutated("insert_end", value)

	case opInsertAt:
		before := m.engine.Len()
		m.engine.InsertAtPosition(value, pos)
		if m.engine.Len() == before {
			// Engine contract: out-of-range insert is a silent no-op.
			// The UI still tells the user nothing happened.
			m.warn(fmt.Sprintf("Position %d is out of range", pos))
			return nil
		}
		m.mutated("insert_at", value)

	case opDeleteBeginning:
		v, ok := m.engine.DeleteFromBeginning()
		if !ok {
			m.warn("List is empty")
			return nil
		}
		m.success(fmt.Sprintf("Deleted %q from the head", v))
		m.mutated("delete_beginning", v)

	case opDeleteEnd:
		v, ok := m.engine.DeleteFromEnd()
		if !ok {
			m.warn("List is empty")
			return nil
		}
		m.success(fmt.Sprintf("Deleted %q from the tail", v))
		m.mutated("delete_end", v)

	case opDeleteAt:
		v, ok := m.engine.DeleteAtPosition(pos)
		if !ok {
			if m.engine.Len() == 0 {
				m.warn("List is empty")
			} else {
				m.warn("Invalid position")
			}
			return nil
		}
		m.success(fmt.Sprintf("Deleted %q from position %d", v, pos))
		m.mutated("delete_at", v)

	case opSearch:
		found := m.engine.Search(value)
		if found == list.NotFound {
			m.info(fmt.Sprintf("%q not found", value))
		} else {
			m.highlight = found
			m.success(fmt.Sprintf("Found %q at position %d", value, found))
		}
		m.valueInput.SetValue("")

	case opTraverse:
		return m.startTraversal()

	case opReset:
		m.engine.Clear()
		m.travGen++ // cancel any in-flight traversal
		m.traversing = false
		m.travIndex = -1
		m.clearInputs()
		m.info("List reset")
		if m.onMutate != nil {
			m.onMutate()
		}
	}

	return nil
}

// mutated finishes a successful mutation: clear the inputs used and
// notify any snapshot subscriber.
func (m *Model) mutated(op, value string) {
	if m.logger != nil {
		m.logger.Debug("list operation", "op", op, "value", value, "length", m.engine.Len())
	}
	m.clearInputs()
	if m.onMutate != nil {
		m.onMutate()
	}
}

func (m *Model) clearInputs() {
	m.valueInput.SetValue("")
	m.posInput.SetValue("")
}

func (m *Model) info(text string)    { m.setNotice(text, noticeInfo) }
func (m *Model) success(text string) { m.setNotice(text, noticeSuccess) }
func (m *Model) warn(text string)    { m.setNotice(text, noticeWarn) }

func (m *Model) setNotice(text string, kind noticeKind) {
	m.notice = text
	m.noticeKind = kind
	m.showNotice = true
}

// =============================================================================
// Traversal animation
// =============================================================================

// startTraversal begins a head-to-tail highlight sequence. Starting a
// new traversal cancels any in-flight one first: the generation bump
// orphans its pending ticks.
func (m *Model) startTraversal() tea.Cmd {
	if m.engine.Len() == 0 {
		m.warn("List is empty")
		return nil
	}
	m.travGen++
	m.traversing = true
	m.travIndex = 0
	return m.travTick()
}

func (m *Model) travTick() tea.Cmd {
	gen := m.travGen
	return tea.Tick(m.delay, func(time.Time) tea.Msg {
		return travTickMsg{gen: gen}
	})
}

func (m Model) advanceTraversal(msg travTickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.travGen || !m.traversing {
		// Stale tick from a canceled traversal.
		return m, nil
	}
	m.travIndex++
	if m.travIndex >= m.engine.Len() {
		// Past the tail: clear all highlights.
		m.traversing = false
		m.travIndex = -1
		return m, nil
	}
	return m, m.travTick()
}

func clampDelay(d time.Duration) time.Duration {
	const (
		min = 50 * time.Millisecond
		max = 5 * time.Second
	)
	if d < min {
		return min
	}
	if d > max {
		return max
	}
	return d
}
