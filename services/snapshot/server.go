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
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/structviz/pkg/logging"
	"github.com/AleutianAI/structviz/pkg/structures/bst"
	"github.com/AleutianAI/structviz/pkg/structures/heap"
	"github.com/AleutianAI/structviz/pkg/structures/list"
	"github.com/AleutianAI/structviz/pkg/structures/queue"
	"github.com/AleutianAI/structviz/pkg/structures/scheduler"
	"github.com/AleutianAI/structviz/pkg/structures/stack"
)

const shutdownTimeout = 5 * time.Second

// Server is the snapshot HTTP server.
type Server struct {
	listen string
	reg    *Registry
	log    *logging.Logger
	engine *gin.Engine
}

// NewServer builds a server around a registry.
func NewServer(listen string, reg *Registry, log *logging.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	h := NewHandlers(reg, log)
	h.RegisterRoutes(engine)

	return &Server{
		listen: listen,
		reg:    reg,
		log:    log,
		engine: engine,
	}
}

// Registry returns the server's registry.
func (s *Server) Registry() *Registry { return s.reg }

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until the context is canceled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.listen,
		Handler: s.engine,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("snapshot server listening", "addr", s.listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		s.log.Info("snapshot server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// DefaultRegistry builds a registry with one writable instance of
// every supported structure, for standalone serve mode.
func DefaultRegistry() *Registry {
	reg := NewRegistry()

	singly := list.New(list.ModeSingly)
	doubly := list.New(list.ModeDoubly)
	st := stack.New()
	qu := queue.New()
	circ := queue.NewCircular(8)
	hp := heap.New()
	tree := bst.New()
	sched := scheduler.New()

	reg.Register("linked-list", singly.Mode().String(), singly, &ListOperator{List: singly})
	reg.Register("doubly-linked-list", doubly.Mode().String(), doubly, &ListOperator{List: doubly})
	reg.Register("stack", "", st, &StackOperator{Stack: st})
	reg.Register("queue", "", qu, &QueueOperator{Queue: qu})
	reg.Register("circular-queue", "", circ, &CircularOperator{Ring: circ})
	reg.Register("heap", "", hp, &HeapOperator{Heap: hp})
	reg.Register("bst", "", tree, nil)
	reg.Register("scheduler", "", sched, &SchedulerOperator{Sched: sched})

	return reg
}
