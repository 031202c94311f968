// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package llm backs the chat panel with a language model so learners
// can ask questions about the structure they are manipulating.
package llm

import "context"

// GenerationParams tunes a single completion request. Nil fields use
// the backend's defaults.
type GenerationParams struct {
	Temperature *float32 `json:"temperature"`
	TopP        *float32 `json:"top_p"`
	MaxTokens   *int     `json:"max_tokens"`
	Stop        []string `json:"stop"`
}

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Client defines the standard interface for any LLM backend.
type Client interface {
	// Generate answers a single prompt with no history.
	Generate(ctx context.Context, prompt string, params GenerationParams) (string, error)

	// Chat answers the latest user turn given the full conversation.
	Chat(ctx context.Context, messages []Message, params GenerationParams) (string, error)
}
