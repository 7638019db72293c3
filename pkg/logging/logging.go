// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logging provides the leveled, structured logger used by the
// rekor-bundle CLI. The verification library itself never logs; it is pure.
package logging

import "strings"

// Level is the severity of a log message.
type Level int

const (
	// LevelDebug is the most verbose level.
	LevelDebug Level = iota
	// LevelInfo is for general informational messages.
	LevelInfo
	// LevelWarn is for potential problems.
	LevelWarn
	// LevelError is for failures.
	LevelError
	// LevelSilent disables all output.
	LevelSilent
)

// String returns the string representation of a level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelSilent:
		return "silent"
	default:
		return "unknown"
	}
}

// ParseLevel parses a level name, defaulting to LevelInfo for unknown input.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "silent", "none", "off":
		return LevelSilent
	default:
		return LevelInfo
	}
}

// Format selects the output rendering.
type Format int

const (
	// FormatText renders human-readable lines.
	FormatText Format = iota
	// FormatJSON renders one JSON object per line.
	FormatJSON
)

// ParseFormat parses a format name, defaulting to FormatText.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), "json") {
		return FormatJSON
	}
	return FormatText
}

// Logger is the leveled logging interface used across the CLI.
type Logger interface {
	// Debug logs at debug level with printf-style formatting.
	Debug(format string, args ...any)
	// Info logs at info level with printf-style formatting.
	Info(format string, args ...any)
	// Warn logs at warn level with printf-style formatting.
	Warn(format string, args ...any)
	// Error logs at error level with printf-style formatting.
	Error(format string, args ...any)

	// WithField returns a Logger that attaches key=value to every message.
	WithField(key string, value any) Logger
}
