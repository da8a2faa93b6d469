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
	"testing"

	"github.com/rs/zerolog"
	. "github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	opts := []ConfigOption{
		WithMaxAttempts(32),
		WithReclaimThreshold(128),
		WithLoggerLevel(zerolog.DebugLevel),
		WithPrettyLogger(true),
	}

	config := NewConfig(opts...)

	Equal(t, 32, config.MaxAttempts)
	Equal(t, 128, config.ReclaimThreshold)
	Equal(t, zerolog.DebugLevel, config.LoggerLevel)
	Equal(t, true, config.PrettyLogger)
}

func TestConfigDefaults(t *testing.T) {
	config := NewConfig()

	Equal(t, DefaultMaxAttempts, config.MaxAttempts)
	Equal(t, defaultReclaimThreshold, config.ReclaimThreshold)
	Equal(t, zerolog.ErrorLevel, config.LoggerLevel)
	Equal(t, false, config.PrettyLogger)
}

func TestConfigBounds(t *testing.T) {
	config := NewConfig(WithMaxAttempts(0), WithReclaimThreshold(-5))

	Equal(t, 1, config.MaxAttempts)
	Equal(t, 0, config.ReclaimThreshold)
}
