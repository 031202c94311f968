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
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/structviz/pkg/structures/list"
)

func newTestModel(mode list.Mode) Model {
	return NewModel(mode, 100*time.Millisecond, nil)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestBlankValueIsRejected(t *testing.T) {
	m := newTestModel(list.ModeSingly)
	m.valueInput.SetValue("   ")

	cmd := m.execute(opInsertBeginning)
	assert.Nil(t, cmd)
	assert.True(t, m.showNotice)
	assert.Equal(t, noticeWarn, m.noticeKind)
	assert.Empty(t, m.engine.ToArray(), "engine must stay untouched on invalid input")
}

func TestNonIntegerPositionIsRejected(t *testing.T) {
	m := newTestModel(list.ModeSingly)
	m.engine.InsertAtEnd("a")
	m.valueInput.SetValue("b")
	m.posInput.SetValue("one")

	cmd := m.execute(opInsertAt)
	assert.Nil(t, cmd)
	assert.True(t, m.showNotice)
	assert.Equal(t, []string{"a"}, m.engine.ToArray())
}

func TestInsertClearsInputs(t *testing.T) {
	m := newTestModel(list.ModeSingly)
	m.valueInput.SetValue("a")

	m.execute(opInsertBeginning)
	assert.Equal(t, []string{"a"}, m.engine.ToArray())
	assert.Empty(t, m.valueInput.Value())
	assert.False(t, m.showNotice, "successful insert needs no notice")
}

func TestInsertAtOutOfRangeNotifiesAndLeavesEngine(t *testing.T) {
	m := newTestModel(list.ModeSingly)
	m.engine.InsertAtEnd("a")
	m.engine.InsertAtEnd("b")
	m.valueInput.SetValue("x")
	m.posInput.SetValue("99")

	m.execute(opInsertAt)
	assert.True(t, m.showNotice)
	assert.Equal(t, []string{"a", "b"}, m.engine.ToArray(),
		"engine keeps its permissive no-op on out-of-range inserts")
}

func TestDeleteOnEmptyShowsListIsEmpty(t *testing.T) {
	for _, op := range []opID{opDeleteBeginning, opDeleteEnd, opDeleteAt} {
		m := newTestModel(list.ModeDoubly)
		if op.needsPosition() {
			m.posInput.SetValue("0")
		}
		m.execute(op)
		assert.True(t, m.showNotice)
		assert.Contains(t, m.notice, "empty")
	}
}

func TestDeleteAtInvalidPositionNotifies(t *testing.T) {
	m := newTestModel(list.ModeSingly)
	m.engine.InsertAtEnd("a")
	m.posInput.SetValue("7")

	m.execute(opDeleteAt)
	assert.True(t, m.showNotice)
	assert.Contains(t, m.notice, "Invalid position")
	assert.Equal(t, []string{"a"}, m.engine.ToArray())
}

func TestDeleteReportsValue(t *testing.T) {
	m := newTestModel(list.ModeSingly)
	for _, v := range []string{"x", "y", "z"} {
		m.engine.InsertAtEnd(v)
	}
	m.posInput.SetValue("1")

	m.execute(opDeleteAt)
	assert.Contains(t, m.notice, `"y"`)
	assert.Equal(t, []string{"x", "z"}, m.engine.ToArray())
}

func TestSearchHighlightsWithoutMutating(t *testing.T) {
	m := newTestModel(list.ModeSingly)
	for _, v := range []string{"a", "b", "c"} {
		m.engine.InsertAtEnd(v)
	}
	m.valueInput.SetValue("b")

	m.execute(opSearch)
	assert.Equal(t, 1, m.highlight)
	assert.Contains(t, m.notice, "position 1")
	assert.Equal(t, []string{"a", "b", "c"}, m.engine.ToArray())

	m.showNotice = false
	m.valueInput.SetValue("nope")
	m.execute(opSearch)
	assert.Equal(t, -1, m.highlight)
	assert.Contains(t, m.notice, "not found")
}

func TestTraversalStepsAndClears(t *testing.T) {
	m := newTestModel(list.ModeSingly)
	for _, v := range []string{"a", "b"} {
		m.engine.InsertAtEnd(v)
	}

	cmd := m.execute(opTraverse)
	require.NotNil(t, cmd)
	assert.True(t, m.traversing)
	assert.Equal(t, 0, m.travIndex, "first node highlighted immediately")

	next, _ := m.Update(travTickMsg{gen: m.travGen})
	m = next.(Model)
	assert.Equal(t, 1, m.travIndex)

	next, _ = m.Update(travTickMsg{gen: m.travGen})
	m = next.(Model)
	assert.False(t, m.traversing, "past the tail the traversal ends")
	assert.Equal(t, -1, m.travIndex, "all highlights cleared")
}

func TestTraversalOnEmptyListWarns(t *testing.T) {
	m := newTestModel(list.ModeSingly)
	cmd := m.execute(opTraverse)
	assert.Nil(t, cmd)
	assert.True(t, m.showNotice)
}

func TestStaleTraversalTicksAreDropped(t *testing.T) {
	m := newTestModel(list.ModeSingly)
	for _, v := range []string{"a", "b", "c"} {
		m.engine.InsertAtEnd(v)
	}

	m.execute(opTraverse)
	staleGen := m.travGen

	// Restarting cancels the in-flight traversal.
	m.execute(opTraverse)
	require.NotEqual(t, staleGen, m.travGen)
	assert.Equal(t, 0, m.travIndex)

	next, _ := m.Update(travTickMsg{gen: staleGen})
	m = next.(Model)
	assert.Equal(t, 0, m.travIndex, "stale tick must not advance the new traversal")
}

func TestResetDiscardsEngineAndAnimation(t *testing.T) {
	mutations := 0
	m := NewModel(list.ModeDoubly, time.Second, nil, WithMutationHook(func() { mutations++ }))
	m.engine.InsertAtEnd("a")
	m.execute(opTraverse)

	m.execute(opReset)
	assert.Empty(t, m.engine.ToArray())
	assert.False(t, m.traversing)
	assert.Equal(t, 1, mutations)
}

func TestMutationHookFiresOnEngineChanges(t *testing.T) {
	mutations := 0
	m := NewModel(list.ModeSingly, time.Second, nil, WithMutationHook(func() { mutations++ }))

	m.valueInput.SetValue("a")
	m.execute(opInsertEnd)
	m.execute(opDeleteBeginning)
	assert.Equal(t, 2, mutations)

	// Failed operations don't announce.
	m.execute(opDeleteBeginning)
	assert.Equal(t, 2, mutations)
}

func TestDelayMsgClamps(t *testing.T) {
	m := newTestModel(list.ModeSingly)

	next, _ := m.Update(DelayMsg{Delay: time.Millisecond})
	m = next.(Model)
	assert.Equal(t, 50*time.Millisecond, m.Delay())

	next, _ = m.Update(DelayMsg{Delay: time.Minute})
	m = next.(Model)
	assert.Equal(t, 5*time.Second, m.Delay())
}

func TestNoticeIsModal(t *testing.T) {
	m := newTestModel(list.ModeSingly)
	m.execute(opDeleteBeginning) // empty -> notice
	require.True(t, m.showNotice)

	// Any key only dismisses the notice.
	next, _ := m.Update(keyMsg("x"))
	m = next.(Model)
	assert.False(t, m.showNotice)
	assert.Empty(t, m.valueInput.Value(), "dismissing key must not reach the input")
}

func TestEnterRunsSelectedOperation(t *testing.T) {
	m := newTestModel(list.ModeSingly)

	next, _ := m.Update(keyMsg("4"))
	m = next.(Model)
	next, _ = m.Update(keyMsg("enter"))
	m = next.(Model)
	assert.Equal(t, []string{"4"}, m.engine.ToArray())
	assert.Empty(t, m.valueInput.Value(), "returned model must carry the executed state")

	m.opIndex = int(opTraverse)
	next, cmd := m.Update(keyMsg("enter"))
	m = next.(Model)
	require.NotNil(t, cmd, "traverse must schedule its first tick")
	assert.True(t, m.traversing)
	assert.Equal(t, 0, m.travIndex)
}

func TestTypingReachesFocusedInput(t *testing.T) {
	m := newTestModel(list.ModeSingly)

	next, _ := m.Update(keyMsg("a"))
	m = next.(Model)
	next, _ = m.Update(keyMsg("b"))
	m = next.(Model)
	assert.Equal(t, "ab", m.valueInput.Value())

	// Tab moves focus to the position input.
	next, _ = m.Update(keyMsg("tab"))
	m = next.(Model)
	next, _ = m.Update(keyMsg("3"))
	m = next.(Model)
	assert.Equal(t, "3", m.posInput.Value())
	assert.Equal(t, "ab", m.valueInput.Value())
}

func TestViewRendersEmptyPlaceholderAndBoxes(t *testing.T) {
	m := newTestModel(list.ModeDoubly)
	out := m.View()
	assert.Contains(t, out, "empty")

	m.engine.InsertAtEnd("a")
	m.engine.InsertAtEnd("b")
	out = m.View()
	assert.Contains(t, out, "a")
	assert.Contains(t, out, "b")
	assert.Contains(t, out, "⇄", "doubly mode uses bidirectional connectors")
	assert.True(t, strings.Contains(out, "O(1)"), "complexity notices are always rendered")
}

func TestViewSinglyUsesDirectionalConnector(t *testing.T) {
	m := newTestModel(list.ModeSingly)
	m.engine.InsertAtEnd("a")
	m.engine.InsertAtEnd("b")
	out := m.View()
	assert.Contains(t, out, "→")
	assert.NotContains(t, out, "⇄")
}
