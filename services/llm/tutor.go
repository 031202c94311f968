// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package llm

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/time/rate"
)

// tutorPersona frames every tutoring conversation.
const tutorPersona = `You are a patient data-structures tutor embedded in a terminal
visualizer. The learner is manipulating a structure interactively; answer questions
about linked lists, stacks, queues, heaps, trees, and scheduling, with short concrete
examples. Prefer plain explanations over jargon. When the current structure state is
provided, refer to its actual values.`

// maxHistoryTurns bounds how much conversation is resent per request.
const maxHistoryTurns = 20

// StateFunc reports the live structure state so the tutor can talk
// about the learner's actual data. May be nil.
type StateFunc func() (structure string, values []string)

// Tutor is a rate-limited, history-keeping chat session on top of a
// Client.
type Tutor struct {
	client  Client
	limiter *rate.Limiter
	state   StateFunc
	history []Message
}

// NewTutor creates a tutoring session. requestsPerMinute caps the
// upstream call rate; zero or negative disables limiting.
func NewTutor(client Client, requestsPerMinute int, state StateFunc) *Tutor {
	var limiter *rate.Limiter
	if requestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 1)
	}
	return &Tutor{
		client:  client,
		limiter: limiter,
		state:   state,
	}
}

// Ask sends one learner question and returns the tutor's answer,
// keeping the exchange in session history.
func (t *Tutor) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("empty question")
	}

	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}
	}

	messages := make([]Message, 0, len(t.history)+2)
	messages = append(messages, Message{Role: RoleSystem, Content: t.systemPrompt()})
	messages = append(messages, t.history...)
	messages = append(messages, Message{Role: RoleUser, Content: question})

	answer, err := t.client.Chat(ctx, messages, GenerationParams{})
	if err != nil {
		return "", err
	}

	t.history = append(t.history,
		Message{Role: RoleUser, Content: question},
		Message{Role: RoleAssistant, Content: answer},
	)
	if len(t.history) > maxHistoryTurns*2 {
		t.history = t.history[len(t.history)-maxHistoryTurns*2:]
	}
	return answer, nil
}

// Reset clears the session history.
func (t *Tutor) Reset() {
	t.history = nil
}

// History returns a copy of the session history.
func (t *Tutor) History() []Message {
	out := make([]Message, len(t.history))
	copy(out, t.history)
	return out
}

func (t *Tutor) systemPrompt() string {
	if t.state == nil {
		return tutorPersona
	}
	structure, values := t.state()
	if structure == "" {
		return tutorPersona
	}
	return fmt.Sprintf("%s\n\nCurrent structure: %s\nCurrent values (head to tail): [%s]",
		tutorPersona, structure, strings.Join(values, ", "))
}
