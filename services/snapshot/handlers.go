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
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AleutianAI/structviz/pkg/logging"
)

// ErrorResponse is the JSON error body for every failing endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handlers holds the request handlers for the snapshot service.
type Handlers struct {
	reg *Registry
	log *logging.Logger
}

// NewHandlers wires the handlers to a registry and logger.
func NewHandlers(reg *Registry, log *logging.Logger) *Handlers {
	return &Handlers{reg: reg, log: log}
}

// RegisterRoutes registers all snapshot endpoints.
//
// Description:
//
//	GET  /healthz                           - liveness
//	GET  /metrics                           - prometheus metrics
//	GET  /v1/snapshots                      - list registered structures
//	GET  /v1/snapshot/:structure            - ordered values of one structure
//	POST /v1/structures/:structure/ops      - apply a remote operation
//	GET  /ws/snapshot                       - change notifications stream
func (h *Handlers) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	v1.GET("/snapshots", h.ListStructures)
	v1.GET("/snapshot/:structure", h.GetSnapshot)
	v1.POST("/structures/:structure/ops", h.ApplyOp)

	r.GET("/ws/snapshot", h.HandleSnapshotWS)
}

// Healthz reports liveness.
func (h *Handlers) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListStructures returns the registered structure names.
func (h *Handlers) ListStructures(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"structures": h.reg.Names()})
}

// GetSnapshot returns the ordered value sequence of one structure.
// This is the per-position data request the AR exporter consumes.
func (h *Handlers) GetSnapshot(c *gin.Context) {
	name := c.Param("structure")
	snap, ok := h.reg.Snapshot(name)
	if !ok {
		snapshotRequests.WithLabelValues(name, "unknown").Inc()
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown structure: " + name})
		return
	}
	snapshotRequests.WithLabelValues(name, "ok").Inc()
	c.JSON(http.StatusOK, snap)
}

// ApplyOp applies one remote operation to a structure. Sentinel
// outcomes (empty, not found, out of range) return 200 with ok=false;
// they are results, not errors.
func (h *Handlers) ApplyOp(c *gin.Context) {
	name := c.Param("structure")

	var req OpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.reg.Apply(name, req)
	if err != nil {
		outcome := "error"
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, ErrUnknownStructure):
			outcome = "unknown"
			status = http.StatusNotFound
		case errors.Is(err, ErrReadOnly):
			outcome = "read_only"
			status = http.StatusConflict
		case errors.Is(err, ErrUnsupportedOp):
			outcome = "unsupported"
		}
		operationsTotal.WithLabelValues(name, req.Op, outcome).Inc()
		h.log.Warn("remote operation rejected", "structure", name, "op", req.Op, "error", err)
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}

	outcome := "ok"
	if !result.OK {
		outcome = "noop"
	}
	operationsTotal.WithLabelValues(name, req.Op, outcome).Inc()
	h.log.Debug("remote operation applied",
		"structure", name, "op", req.Op, "ok", result.OK)
	c.JSON(http.StatusOK, result)
}
