// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/structviz/internal/config"
	"github.com/AleutianAI/structviz/internal/viz"
	"github.com/AleutianAI/structviz/pkg/structures"
	"github.com/AleutianAI/structviz/pkg/structures/list"
	"github.com/AleutianAI/structviz/services/snapshot"
)

func runTUI(cmd *cobra.Command, args []string) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return fmt.Errorf("the visualizer requires an interactive terminal; use 'structviz serve' for headless mode")
	}

	choice, err := resolveChoice()
	if err != nil {
		return err
	}

	delay := cfg.Animation.Delay()
	if delayMS > 0 {
		delay = time.Duration(delayMS) * time.Millisecond
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	// The registry only exists when --serve is set; the mutation hook
	// stays nil otherwise so the TUI pays nothing for it.
	var reg *snapshot.Registry
	var hook func()
	if serveWhileTUI {
		reg = snapshot.NewRegistry()
		hook = func() { reg.Notify(choice.Structure, "tui") }
	}
	// The live structure is registered read-only: all writes stay in
	// the TUI event loop, and the hook announces them.
	registerLive := func(snap structures.Snapshotter, mode string) {
		if reg != nil {
			reg.Register(choice.Structure, mode, snap, nil)
		}
	}

	var model tea.Model
	if choice.Structure == viz.StructList {
		var opts []viz.Option
		if hook != nil {
			opts = append(opts, viz.WithMutationHook(hook))
		}
		m := viz.NewModel(choice.ListMode, delay, logger, opts...)
		registerLive(m.Engine(), choice.ListMode.String())
		model = m
	} else {
		backend := viz.BackendFor(choice)
		var opts []viz.SeqOption
		if hook != nil {
			opts = append(opts, viz.WithSeqMutationHook(hook))
		}
		registerLive(backend, "")
		model = viz.NewSeqModel(backend, delay, logger, opts...)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())

	if reg != nil {
		listen := listenAddr
		if listen == "" {
			listen = cfg.Server.Listen
		}
		server := snapshot.NewServer(listen, reg, logger)
		g.Go(func() error { return server.Run(ctx) })
	}

	// Config edits reach the running TUI as delay updates.
	watcher, err := config.NewWatcher(cfgPath, func(c config.Config) {
		p.Send(viz.DelayMsg{Delay: c.Animation.Delay()})
	})
	if err != nil {
		logger.Warn("config watcher unavailable", "error", err)
	} else {
		g.Go(func() error {
			watcher.Run(ctx)
			return nil
		})
	}

	_, err = p.Run()
	cancel()
	if werr := g.Wait(); werr != nil && err == nil {
		err = werr
	}
	return err
}

// resolveChoice turns the --structure flags into a Choice, or runs the
// interactive picker when no structure was named.
func resolveChoice() (viz.Choice, error) {
	if structureName == "" {
		return viz.PickStructure()
	}

	choice := viz.Choice{Structure: structureName, Capacity: ringCapacity}
	switch structureName {
	case viz.StructList:
		switch listMode {
		case "singly":
			choice.ListMode = list.ModeSingly
		case "doubly":
			choice.ListMode = list.ModeDoubly
		default:
			return viz.Choice{}, fmt.Errorf("unknown list mode %q: use singly or doubly", listMode)
		}
	case viz.StructStack, viz.StructQueue, viz.StructHeap, viz.StructScheduler:
	case viz.StructCircular:
		if ringCapacity < 1 || ringCapacity > 32 {
			return viz.Choice{}, fmt.Errorf("capacity must be between 1 and 32")
		}
	default:
		return viz.Choice{}, fmt.Errorf("unknown structure %q", structureName)
	}
	return choice, nil
}
