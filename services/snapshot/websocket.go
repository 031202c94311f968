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
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The snapshot stream is consumed by local AR clients and the
	// TUI's companion page; it carries no credentials.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	wsWriteTimeout = 5 * time.Second
	wsPingInterval = 30 * time.Second
)

// wsHello is the first frame sent on every connection.
type wsHello struct {
	Type       string   `json:"type"`
	SessionID  string   `json:"session_id"`
	Structures []string `json:"structures"`
}

// wsUpdate is the frame sent for every structure mutation.
type wsUpdate struct {
	Type   string `json:"type"`
	Update Update `json:"update"`
}

// HandleSnapshotWS upgrades the connection and streams structure
// mutations until the client disconnects.
func (h *Handlers) HandleSnapshotWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	sessionID := uuid.New().String()
	wsConnections.Inc()
	defer wsConnections.Dec()
	h.log.Info("snapshot stream connected", "session_id", sessionID)

	updates := h.reg.Subscribe()
	defer h.reg.Unsubscribe(updates)

	if err := sendJSON(conn, wsHello{
		Type:       "hello",
		SessionID:  sessionID,
		Structures: h.reg.Names(),
	}); err != nil {
		h.log.Warn("snapshot stream hello failed", "session_id", sessionID, "error", err)
		return
	}

	// Reader goroutine: we never expect client frames, but reading is
	// the only way to observe a close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(wsPingInterval)
	defer ping.Stop()

	for {
		select {
		case <-done:
			h.log.Info("snapshot stream disconnected", "session_id", sessionID)
			return
		case u := <-updates:
			if err := sendJSON(conn, wsUpdate{Type: "update", Update: u}); err != nil {
				h.log.Warn("snapshot stream write failed",
					"session_id", sessionID, "error", err)
				return
			}
		case <-ping.C:
			deadline := time.Now().Add(wsWriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}

func sendJSON(conn *websocket.Conn, v any) error {
	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteJSON(v)
}
