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

package logger

import (
	"bytes"
	"testing"

	. "github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for _, name := range Levels {
		NotEqual(t, NoLevel, ParseLevel(name), name)
	}

	Equal(t, DebugLevel, ParseLevel("debug"))
	Equal(t, Disabled, ParseLevel("disabled"))
	Equal(t, NoLevel, ParseLevel("verbose"))
}

func TestNewLoggerWithWriter(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLoggerWithWriter(&buf, "stack", InfoLevel)
	logger.Debug().Msg("hidden")
	Equal(t, 0, buf.Len())

	logger.Info().Int("attempts", 16).Msg("visible")
	Contains(t, buf.String(), `"component":"stack"`)
	Contains(t, buf.String(), `"attempts":16`)
	Contains(t, buf.String(), `"message":"visible"`)
}
