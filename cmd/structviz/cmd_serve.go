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
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/structviz/pkg/ux"
	"github.com/AleutianAI/structviz/services/snapshot"
)

// runServe starts the headless snapshot server with one writable
// instance of every structure, driven entirely over HTTP.
func runServe(cmd *cobra.Command, args []string) error {
	listen := listenAddr
	if listen == "" {
		listen = cfg.Server.Listen
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := snapshot.NewServer(listen, snapshot.DefaultRegistry(), logger)
	ux.Info("Serving structure snapshots on " + listen)
	ux.Muted("GET /v1/snapshots, GET /v1/snapshot/:structure, POST /v1/structures/:structure/ops, GET /ws/snapshot")
	return server.Run(ctx)
}
