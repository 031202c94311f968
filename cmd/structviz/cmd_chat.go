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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/structviz/pkg/ux"
	"github.com/AleutianAI/structviz/services/llm"
)

// chatRequestsPerMinute caps upstream completion calls from the REPL.
const chatRequestsPerMinute = 20

// runChat starts the tutor REPL. A question may also be passed as
// arguments for a one-shot answer.
func runChat(cmd *cobra.Command, args []string) error {
	client, err := llm.NewOpenAIClient(cfg.Chat.Model, cfg.Chat.BaseURL, logger)
	if err != nil {
		return err
	}
	tutor := llm.NewTutor(client, chatRequestsPerMinute, nil)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(args) > 0 {
		answer, err := tutor.Ask(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Println(answer)
		return nil
	}

	ux.Title("Data Structures Tutor")
	ux.Muted("Ask about linked lists, stacks, queues, heaps, trees. /reset clears the session, /quit exits.")

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("\nYou> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Println()
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)

		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/reset":
			tutor.Reset()
			ux.Info("Session cleared")
			continue
		}

		answer, err := tutor.Ask(ctx, line)
		if err != nil {
			if ctx.Err() != nil {
				fmt.Println()
				return nil
			}
			ux.Error("Tutor error: " + err.Error())
			continue
		}
		fmt.Printf("\nTutor> %s\n", answer)
	}
}
