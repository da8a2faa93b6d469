// Copyright (c) 2023 Paweł Gaczyński
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fastack

import (
	"github.com/rs/zerolog"
)

const (
	// DefaultMaxAttempts is the number of compare-and-swap attempts an operation
	// makes before it gives up with ErrContentionExceeded.
	DefaultMaxAttempts = 16

	defaultReclaimThreshold = 64
)

type ConfigOption func(*Config)

type Config struct {
	// MaxAttempts bounds the compare-and-swap retries of a single Insert or Delete.
	MaxAttempts int
	// ReclaimThreshold is the number of retired nodes after which Insert and Delete
	// run an opportunistic reclamation sweep. Zero sweeps after every operation.
	ReclaimThreshold int
	LoggerLevel      zerolog.Level
	PrettyLogger     bool
}

func WithMaxAttempts(maxAttempts int) ConfigOption {
	return func(c *Config) {
		c.MaxAttempts = maxAttempts
	}
}

func WithReclaimThreshold(reclaimThreshold int) ConfigOption {
	return func(c *Config) {
		c.ReclaimThreshold = reclaimThreshold
	}
}

func WithLoggerLevel(loggerLevel zerolog.Level) ConfigOption {
	return func(c *Config) {
		c.LoggerLevel = loggerLevel
	}
}

func WithPrettyLogger(prettyLogger bool) ConfigOption {
	return func(c *Config) {
		c.PrettyLogger = prettyLogger
	}
}

func NewConfig(opts ...ConfigOption) Config {
	config := Config{
		MaxAttempts:      DefaultMaxAttempts,
		ReclaimThreshold: defaultReclaimThreshold,
		LoggerLevel:      zerolog.ErrorLevel,
		PrettyLogger:     false,
	}
	for _, opt := range opts {
		opt(&config)
	}

	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}

	if config.ReclaimThreshold < 0 {
		config.ReclaimThreshold = 0
	}

	return config
}
