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
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/structviz/pkg/logging"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	log := logging.New(logging.Config{Level: logging.LevelError, Quiet: true})
	t.Cleanup(func() { log.Close() })
	return NewServer("127.0.0.1:0", DefaultRegistry(), log)
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestListStructures(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodGet, "/v1/snapshots", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Structures []string `json:"structures"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Structures, "linked-list")
	assert.Contains(t, resp.Structures, "stack")
	assert.Contains(t, resp.Structures, "heap")
}

func TestGetSnapshot(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/v1/structures/linked-list/ops",
		OpRequest{Op: "insert_end", Value: "a"})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, s, http.MethodPost, "/v1/structures/linked-list/ops",
		OpRequest{Op: "insert_end", Value: "b"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodGet, "/v1/snapshot/linked-list", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, "linked-list", snap.Structure)
	assert.Equal(t, "singly", snap.Mode)
	assert.Equal(t, []string{"a", "b"}, snap.Values)
	assert.Equal(t, 2, snap.Length)
}

func TestGetSnapshotUnknown(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodGet, "/v1/snapshot/ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestApplyOpSentinelIsOK200(t *testing.T) {
	s := newTestServer(t)

	// Delete on an empty list: HTTP 200, ok=false.
	w := doJSON(t, s, http.MethodPost, "/v1/structures/linked-list/ops",
		OpRequest{Op: "delete_end"})
	require.Equal(t, http.StatusOK, w.Code)

	var result OpResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.OK)
	assert.NotEmpty(t, result.Detail)
}

func TestApplyOpValidation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		req  OpRequest
		want int
	}{
		{"unknown op name", OpRequest{Op: "explode"}, http.StatusBadRequest},
		{"missing op", OpRequest{Value: "x"}, http.StatusBadRequest},
		{"oversized value", OpRequest{Op: "insert", Value: strings.Repeat("x", 65)}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, s, http.MethodPost, "/v1/structures/stack/ops", tt.req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestApplyOpUnknownStructure(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodPost, "/v1/structures/ghost/ops",
		OpRequest{Op: "insert", Value: "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestApplyOpReadOnly(t *testing.T) {
	s := newTestServer(t)
	// bst is registered without an operator in the default registry.
	w := doJSON(t, s, http.MethodPost, "/v1/structures/bst/ops",
		OpRequest{Op: "insert", Value: "x"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestApplyOpUnsupported(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodPost, "/v1/structures/stack/ops",
		OpRequest{Op: "insert_at", Value: "x", Position: 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSnapshotStream(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/snapshot"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var hello wsHello
	require.NoError(t, conn.ReadJSON(&hello))
	assert.Equal(t, "hello", hello.Type)
	assert.NotEmpty(t, hello.SessionID)
	assert.Contains(t, hello.Structures, "linked-list")

	w := doJSON(t, s, http.MethodPost, "/v1/structures/stack/ops",
		OpRequest{Op: "insert", Value: "pushed"})
	require.Equal(t, http.StatusOK, w.Code)

	var update wsUpdate
	require.NoError(t, conn.ReadJSON(&update))
	assert.Equal(t, "update", update.Type)
	assert.Equal(t, "stack", update.Update.Structure)
	assert.Equal(t, []string{"pushed"}, update.Update.Values)
}
