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

	"github.com/charmbracelet/lipgloss"

	"github.com/AleutianAI/structviz/pkg/structures/list"
)

// View implements tea.Model. The projection is rebuilt from a fresh
// engine snapshot on every call; element identity never persists
// between renders.
func (m Model) View() string {
	if m.quitting {
		return "Bye.\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Linked List (%s)", m.mode)))
	b.WriteString("\n\n")

	active := m.highlight
	if m.traversing {
		active = m.travIndex
	}
	b.WriteString(renderChain(m.engine.ToArray(), active, m.mode == list.ModeDoubly))
	b.WriteString("\n\n")

	b.WriteString(m.renderControls())
	b.WriteString("\n")
	b.WriteString(renderComplexity(listComplexity))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab focus · enter run · ←/→ pick op · +/- speed · esc quit"))

	if m.showNotice {
		b.WriteString("\n\n")
		b.WriteString(renderNotice(m.notice, m.noticeKind))
	}

	b.WriteString("\n")
	return b.String()
}

func (m Model) renderControls() string {
	var ops []string
	for i, label := range opLabels {
		style := opStyle
		if m.focused == focusOps && i == m.opIndex {
			style = opSelectedStyle
		} else if i == m.opIndex {
			style = opMarkedStyle
		}
		ops = append(ops, style.Render(label))
	}

	inputs := lipgloss.JoinHorizontal(lipgloss.Top,
		inputLabelStyle.Render("value "), m.valueInput.View(),
		inputLabelStyle.Render("  pos "), m.posInput.View(),
	)

	return inputs + "\n" + strings.Join(ops, " ")
}

// renderChain draws the node boxes with directional connectors.
// highlight is the index to emphasize, -1 for none. In doubly mode
// every box shows its back/forward link indicators and the connector
// is bidirectional.
func renderChain(values []string, highlight int, doubly bool) string {
	if len(values) == 0 {
		return emptyStyle.Render("The list is empty. Run an insert to add the first node.")
	}

	connector := " → "
	if doubly {
		connector = " ⇄ "
	}

	boxes := make([]string, 0, len(values)*2)
	for i, v := range values {
		label := v
		if doubly {
			prev, next := "◦", "◦"
			if i > 0 {
				prev = "◀"
			}
			if i < len(values)-1 {
				next = "▶"
			}
			label = fmt.Sprintf("%s %s %s", prev, v, next)
		}

		style := nodeStyle
		if i == highlight {
			style = nodeHighlightStyle
		}
		boxes = append(boxes, style.Render(label))

		if i < len(values)-1 {
			boxes = append(boxes, connectorStyle.Render(connector))
		}
	}

	row := lipgloss.JoinHorizontal(lipgloss.Center, boxes...)
	positions := make([]string, len(values))
	for i := range values {
		positions[i] = fmt.Sprintf("%d", i)
	}
	return row + "\n" + posRowStyle.Render("positions: "+strings.Join(positions, " · "))
}

// complexityNote pairs an operation category with its cost text.
type complexityNote struct {
	category string
	text     string
}

var listComplexity = []complexityNote{
	{"Insert", "head O(1) · tail O(n) · position O(n)"},
	{"Delete/Search", "head O(1) · tail O(n) · position O(n) · search O(n)"},
}

func renderComplexity(notes []complexityNote) string {
	lines := make([]string, 0, len(notes))
	for _, n := range notes {
		lines = append(lines, complexityStyle.Render(fmt.Sprintf("%s: %s", n.category, n.text)))
	}
	return strings.Join(lines, "\n")
}

func renderNotice(text string, kind noticeKind) string {
	style := noticeInfoStyle
	switch kind {
	case noticeSuccess:
		style = noticeSuccessStyle
	case noticeWarn:
		style = noticeWarnStyle
	}
	return style.Render(text + "  (any key to dismiss)")
}

// =============================================================================
// Styles
// =============================================================================

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	nodeStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("75")).
			Padding(0, 1)

	nodeHighlightStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("212")).
				Foreground(lipgloss.Color("212")).
				Bold(true).
				Padding(0, 1)

	connectorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	posRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	inputLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	opStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")).
		Padding(0, 1)

	opMarkedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("75")).
			Padding(0, 1)

	opSelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Bold(true).
			Padding(0, 1)

	complexityStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	noticeInfoStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("75")).
			Padding(0, 1)

	noticeSuccessStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("42")).
				Foreground(lipgloss.Color("42")).
				Padding(0, 1)

	noticeWarnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).
			Foreground(lipgloss.Color("214")).
			Padding(0, 1)
)
