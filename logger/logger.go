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
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

const (
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
	FatalLevel = zerolog.FatalLevel
	PanicLevel = zerolog.PanicLevel
	Disabled   = zerolog.Disabled
	TraceLevel = zerolog.TraceLevel
	NoLevel    = zerolog.NoLevel
)

// Levels lists the names accepted by ParseLevel.
var Levels = []string{
	"debug", "info", "warn", "error", "fatal", "panic", "disabled", "trace",
}

func ParseLevel(name string) zerolog.Level {
	switch name {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "fatal":
		return FatalLevel
	case "panic":
		return PanicLevel
	case "disabled":
		return Disabled
	case "trace":
		return TraceLevel
	default:
		return NoLevel
	}
}

func NewLogger(component string, level zerolog.Level, pretty bool) zerolog.Logger {
	if pretty {
		return NewLoggerWithWriter(zerolog.ConsoleWriter{Out: os.Stderr}, component, level)
	}

	return NewLoggerWithWriter(os.Stdout, component, level)
}

var timeFormatOnce sync.Once

func NewLoggerWithWriter(w io.Writer, component string, level zerolog.Level) zerolog.Logger {
	timeFormatOnce.Do(func() {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	})

	return zerolog.New(w).With().Timestamp().Str("component", component).Logger().Level(level)
}
