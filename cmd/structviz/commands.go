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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/structviz/internal/config"
	"github.com/AleutianAI/structviz/pkg/logging"
	"github.com/AleutianAI/structviz/pkg/ux"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// --- Global Command Variables ---
var (
	cfg      config.Config
	cfgPath  string
	logger   *logging.Logger
	logLevel string

	// tui flags
	structureName string
	listMode      string
	ringCapacity  int
	delayMS       int
	serveWhileTUI bool

	// serve / tui --serve flags
	listenAddr string

	rootCmd = &cobra.Command{
		Use:   "structviz",
		Short: "An interactive terminal visualizer for classic data structures",
		Long: `StructViz renders linked lists, stacks, queues, heaps, and a
priority scheduler in the terminal, animates traversals, and can serve
live structure state over HTTP for external renderers.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfgPath == "" {
				cfgPath, err = config.DefaultPath()
				if err != nil {
					return fmt.Errorf("resolving config path: %w", err)
				}
			}
			cfg, err = config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			level := cfg.Logging.Level
			if logLevel != "" {
				level = logLevel
			}
			logger = logging.New(logging.Config{
				Level:   logging.ParseLevel(level),
				LogDir:  cfg.Logging.Dir,
				Service: "structviz",
				// The TUI owns the terminal; logs go to file only.
				Quiet: cmd.Name() == "tui",
			})
			return nil
		},
	}

	tuiCmd = &cobra.Command{
		Use:   "tui",
		Short: "Run the interactive visualizer",
		RunE:  runTUI, // Defined in cmd_tui.go
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve structure snapshots over HTTP without a TUI",
		RunE:  runServe, // Defined in cmd_serve.go
	}

	chatCmd = &cobra.Command{
		Use:   "chat",
		Short: "Ask a data-structures tutor questions in a REPL",
		RunE:  runChat, // Defined in cmd_chat.go
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the structviz version",
		Run: func(cmd *cobra.Command, args []string) {
			ux.Info(fmt.Sprintf("structviz %s", Version))
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.structviz/structviz.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug/info/warn/error)")

	tuiCmd.Flags().StringVar(&structureName, "structure", "", "skip the picker: linked-list, stack, queue, circular-queue, heap, scheduler")
	tuiCmd.Flags().StringVar(&listMode, "mode", "singly", "list linkage: singly or doubly")
	tuiCmd.Flags().IntVar(&ringCapacity, "capacity", 5, "circular queue capacity")
	tuiCmd.Flags().IntVar(&delayMS, "delay", 0, "traversal step delay in milliseconds (overrides config)")
	tuiCmd.Flags().BoolVar(&serveWhileTUI, "serve", false, "also serve the live structure over HTTP")
	tuiCmd.Flags().StringVar(&listenAddr, "listen", "", "listen address for --serve (default from config)")

	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "listen address (default from config)")

	rootCmd.AddCommand(tuiCmd, serveCmd, chatCmd, versionCmd)
}
