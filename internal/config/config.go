// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads and watches the StructViz configuration file.
//
// The file lives at ~/.structviz/structviz.yaml and is created with
// defaults on first run. The animation delay is deliberately part of
// the config rather than ambient state: the TUI receives the value at
// construction and a file watcher feeds later edits through a single
// setter, so there is exactly one place the shared speed setting
// changes.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the root configuration for every structviz command.
type Config struct {
	Animation AnimationConfig `yaml:"animation" validate:"required"`
	Server    ServerConfig    `yaml:"server" validate:"required"`
	Chat      ChatConfig      `yaml:"chat"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// AnimationConfig controls the traversal animation.
type AnimationConfig struct {
	// DelayMS is the pause between highlight steps, shared by every
	// visualizer. Clamped to a humanly watchable range.
	DelayMS int `yaml:"delay_ms" validate:"gte=50,lte=5000"`
}

// Delay returns the step delay as a duration.
func (a AnimationConfig) Delay() time.Duration {
	return time.Duration(a.DelayMS) * time.Millisecond
}

// ServerConfig controls the snapshot service.
type ServerConfig struct {
	Listen string `yaml:"listen" validate:"required,hostname_port"`
}

// ChatConfig controls the chat panel passthrough.
type ChatConfig struct {
	// Model names the completion model, e.g. "gpt-4o-mini".
	Model string `yaml:"model"`

	// BaseURL overrides the API endpoint for self-hosted gateways.
	BaseURL string `yaml:"base_url,omitempty" validate:"omitempty,url"`
}

// LoggingConfig controls the shared logger.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Dir   string `yaml:"dir"`
}

// Default returns the configuration written on first run.
func Default() Config {
	return Config{
		Animation: AnimationConfig{DelayMS: 400},
		Server:    ServerConfig{Listen: "127.0.0.1:8390"},
		Chat:      ChatConfig{Model: "gpt-4o-mini"},
		Logging:   LoggingConfig{Level: "info", Dir: "~/.structviz/logs"},
	}
}

var validate = validator.New()

// Validate checks the configuration against its struct tags.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
