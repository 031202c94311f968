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
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/AleutianAI/structviz/pkg/logging"
	"github.com/AleutianAI/structviz/pkg/validation"
)

// seqOp indexes the operation buttons of the sequence visualizer.
type seqOp int

const (
	seqInsert seqOp = iota
	seqRemove
	seqTraverse
	seqReset
)

// SeqModel is the bubbletea model for the push/pop structures. It
// shares the list visualizer's rendering, notice overlay, and
// cancelable traversal animation, but drives a Backend instead of the
// list engine.
type SeqModel struct {
	backend Backend

	input    textinput.Model
	opIndex  int
	onInput  bool
	delay    time.Duration

	notice     string
	noticeKind noticeKind
	showNotice bool

	traversing bool
	travIndex  int
	travGen    int

	quitting bool
	logger   *logging.Logger
	onMutate func()
}

// NewSeqModel creates a visualizer for the given backend.
func NewSeqModel(backend Backend, delay time.Duration, logger *logging.Logger, opts ...SeqOption) SeqModel {
	in := textinput.New()
	in.Placeholder = "value"
	in.CharLimit = 24
	in.Width = 16
	in.Focus()

	m := SeqModel{
		backend:   backend,
		input:     in,
		onInput:   true,
		delay:     delay,
		travIndex: -1,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// SeqOption customizes a SeqModel at construction.
type SeqOption func(*SeqModel)

// WithSeqMutationHook mirrors WithMutationHook for sequence backends.
func WithSeqMutationHook(fn func()) SeqOption {
	return func(m *SeqModel) { m.onMutate = fn }
}

// Init implements tea.Model.
func (m SeqModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m SeqModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DelayMsg:
		m.delay = clampDelay(msg.Delay)
		return m, nil

	case travTickMsg:
		if msg.gen != m.travGen || !m.traversing {
			return m, nil
		}
		m.travIndex++
		if m.travIndex >= len(m.backend.Snapshot()) {
			m.traversing = false
			m.travIndex = -1
			return m, nil
		}
		return m, m.tick()

	case tea.KeyMsg:
		if m.showNotice {
			m.showNotice = false
			return m, nil
		}
		return m.handleKey(msg)
	}

	if m.onInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m SeqModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		m.travGen++
		return m, tea.Quit

	case "tab", "shift+tab":
		m.onInput = !m.onInput
		if m.onInput {
			m.input.Focus()
		} else {
			m.input.Blur()
		}
		return m, nil

	case "enter":
		cmd := m.execute(seqOp(m.opIndex))
		return m, cmd
	}

	if !m.onInput {
		switch msg.String() {
		case "left", "h":
			m.opIndex = (m.opIndex + 3) % 4
		case "right", "l":
			m.opIndex = (m.opIndex + 1) % 4
		case "+":
			m.delay = clampDelay(m.delay - 100*time.Millisecond)
		case "-":
			m.delay = clampDelay(m.delay + 100*time.Millisecond)
		case "q":
			m.quitting = true
			m.travGen++
			return m, tea.Quit
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *SeqModel) execute(op seqOp) tea.Cmd {
	switch op {
	case seqInsert:
		value, err := validation.Value(m.input.Value())
		if err != nil {
			m.setNotice(err.Error(), noticeWarn)
			return nil
		}
		if err := m.backend.Insert(value); err != nil {
			m.setNotice(err.Error(), noticeWarn)
			return nil
		}
		if m.logger != nil {
			m.logger.Debug("seq operation", "structure", m.backend.Title(), "op", "insert", "value", value)
		}
		m.input.SetValue("")
		if m.onMutate != nil {
			m.onMutate()
		}

	case seqRemove:
		v, ok := m.backend.Remove()
		if !ok {
			m.setNotice(fmt.Sprintf("%s is empty", m.backend.Title()), noticeWarn)
			return nil
		}
		m.setNotice(fmt.Sprintf("Removed %q", v), noticeSuccess)
		if m.onMutate != nil {
			m.onMutate()
		}

	case seqTraverse:
		if len(m.backend.Snapshot()) == 0 {
			m.setNotice(fmt.Sprintf("%s is empty", m.backend.Title()), noticeWarn)
			return nil
		}
		m.travGen++
		m.traversing = true
		m.travIndex = 0
		return m.tick()

	case seqReset:
		m.backend.Reset()
		m.travGen++
		m.traversing = false
		m.travIndex = -1
		m.input.SetValue("")
		m.setNotice("Structure reset", noticeInfo)
		if m.onMutate != nil {
			m.onMutate()
		}
	}
	return nil
}

func (m *SeqModel) tick() tea.Cmd {
	gen := m.travGen
	return tea.Tick(m.delay, func(time.Time) tea.Msg {
		return travTickMsg{gen: gen}
	})
}

func (m *SeqModel) setNotice(text string, kind noticeKind) {
	m.notice = text
	m.noticeKind = kind
	m.showNotice = true
}

// View implements tea.Model.
func (m SeqModel) View() string {
	if m.quitting {
		return "Bye.\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.backend.Title()))
	b.WriteString("\n\n")

	highlight := -1
	if m.traversing {
		highlight = m.travIndex
	}
	b.WriteString(renderChain(m.backend.Snapshot(), highlight, false))
	b.WriteString("\n\n")

	labels := []string{
		m.backend.InsertLabel(),
		m.backend.RemoveLabel(),
		"Traverse",
		"Reset",
	}
	ops := make([]string, 0, len(labels))
	for i, label := range labels {
		style := opStyle
		if !m.onInput && i == m.opIndex {
			style = opSelectedStyle
		} else if i == m.opIndex {
			style = opMarkedStyle
		}
		ops = append(ops, style.Render(label))
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		inputLabelStyle.Render("value "), m.input.View()))
	b.WriteString("\n")
	b.WriteString(strings.Join(ops, " "))
	b.WriteString("\n")

	cx := m.backend.Complexity()
	b.WriteString(renderComplexity([]complexityNote{
		{m.backend.InsertLabel(), cx[0]},
		{m.backend.RemoveLabel(), cx[1]},
	}))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab focus · enter run · ←/→ pick op · +/- speed · esc quit"))

	if m.showNotice {
		b.WriteString("\n\n")
		b.WriteString(renderNotice(m.notice, m.noticeKind))
	}
	b.WriteString("\n")
	return b.String()
}
