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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient records the conversations it was given and replies with
// canned answers.
type fakeClient struct {
	calls   [][]Message
	answers []string
}

func (f *fakeClient) Generate(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	return f.Chat(ctx, []Message{{Role: RoleUser, Content: prompt}}, params)
}

func (f *fakeClient) Chat(ctx context.Context, messages []Message, params GenerationParams) (string, error) {
	copied := make([]Message, len(messages))
	copy(copied, messages)
	f.calls = append(f.calls, copied)
	answer := "ok"
	if len(f.answers) > 0 {
		answer = f.answers[0]
		f.answers = f.answers[1:]
	}
	return answer, nil
}

func TestTutorKeepsHistory(t *testing.T) {
	fake := &fakeClient{answers: []string{"first answer", "second answer"}}
	tutor := NewTutor(fake, 0, nil)

	a1, err := tutor.Ask(context.Background(), "what is a linked list?")
	require.NoError(t, err)
	assert.Equal(t, "first answer", a1)

	_, err = tutor.Ask(context.Background(), "and a doubly linked one?")
	require.NoError(t, err)

	// Second call carries: system, Q1, A1, Q2.
	require.Len(t, fake.calls, 2)
	second := fake.calls[1]
	require.Len(t, second, 4)
	assert.Equal(t, RoleSystem, second[0].Role)
	assert.Equal(t, "what is a linked list?", second[1].Content)
	assert.Equal(t, "first answer", second[2].Content)
	assert.Equal(t, "and a doubly linked one?", second[3].Content)
}

func TestTutorInjectsStructureState(t *testing.T) {
	fake := &fakeClient{}
	tutor := NewTutor(fake, 0, func() (string, []string) {
		return "linked-list", []string{"a", "b", "c"}
	})

	_, err := tutor.Ask(context.Background(), "what is at the head?")
	require.NoError(t, err)

	require.Len(t, fake.calls, 1)
	system := fake.calls[0][0]
	assert.Equal(t, RoleSystem, system.Role)
	assert.Contains(t, system.Content, "linked-list")
	assert.Contains(t, system.Content, "[a, b, c]")
}

func TestTutorRejectsEmptyQuestion(t *testing.T) {
	tutor := NewTutor(&fakeClient{}, 0, nil)
	_, err := tutor.Ask(context.Background(), "   ")
	assert.Error(t, err)
}

func TestTutorHistoryBounded(t *testing.T) {
	fake := &fakeClient{}
	tutor := NewTutor(fake, 0, nil)

	for i := 0; i < maxHistoryTurns+10; i++ {
		_, err := tutor.Ask(context.Background(), "turn "+strings.Repeat("x", i%3+1))
		require.NoError(t, err)
	}
	assert.Len(t, tutor.History(), maxHistoryTurns*2)
}

func TestTutorReset(t *testing.T) {
	fake := &fakeClient{}
	tutor := NewTutor(fake, 0, nil)
	_, err := tutor.Ask(context.Background(), "hello")
	require.NoError(t, err)
	require.NotEmpty(t, tutor.History())

	tutor.Reset()
	assert.Empty(t, tutor.History())
}
