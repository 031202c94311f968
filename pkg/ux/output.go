// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ux provides rich terminal output styling for the StructViz CLI.
package ux

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// StructViz color palette - teal accents on slate
var (
	ColorTealBright = lipgloss.Color("#2CD7C7") // Bright teal - titles
	ColorSlate      = lipgloss.Color("#2C4A54") // Slate - muted text
	ColorError      = lipgloss.Color("#E74C3C")
)

// Styles provides pre-configured lipgloss styles
var Styles = struct {
	Title lipgloss.Style
	Muted lipgloss.Style
	Error lipgloss.Style
}{
	Title: lipgloss.NewStyle().Bold(true).Foreground(ColorTealBright),
	Muted: lipgloss.NewStyle().Foreground(ColorSlate),
	Error: lipgloss.NewStyle().Foreground(ColorError),
}

const iconError = "✗"

// Title prints a styled title
func Title(text string) {
	fmt.Println(Styles.Title.Render(text))
}

// Error prints an error message to stderr
func Error(text string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", Styles.Error.Render(iconError), Styles.Error.Render(text))
}

// Info prints an informational message
func Info(text string) {
	fmt.Printf("%s %s\n", Styles.Muted.Render("│"), text)
}

// Muted prints muted/secondary text
func Muted(text string) {
	fmt.Println(Styles.Muted.Render(text))
}
