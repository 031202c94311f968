// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher re-reads the config file when it changes on disk and hands
// the new value to a callback. The TUI uses it to pick up animation
// speed edits without restarting.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func(Config)
}

// NewWatcher creates a watcher for the config at path. onChange runs on
// the watcher goroutine for every successfully reloaded config; invalid
// intermediate states (mid-save, syntax errors) are logged and skipped.
func NewWatcher(path string, onChange func(Config)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create the config watcher: %w", err)
	}
	// Watch the directory, not the file: editors replace files on save
	// and a file watch dies with the old inode.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch the config directory: %w", err)
	}
	return &Watcher{path: path, watcher: fw, onChange: onChange}, nil
}

// Run processes events until the context is canceled, then closes the
// underlying watcher.
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Config watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != filepath.Clean(w.path) {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	cfg, err := Load(w.path)
	if err != nil {
		slog.Warn("Ignoring config change that failed to load", "error", err)
		return
	}
	slog.Info("Config reloaded", "path", w.path, "delay_ms", cfg.Animation.DelayMS)
	w.onChange(cfg)
}
