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

package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
)

// Verify StandardLogger implements Logger at compile time.
var _ Logger = (*StandardLogger)(nil)

// Options configures a StandardLogger.
type Options struct {
	// Level is the minimum level to emit.
	Level Level
	// Format selects text or JSON output.
	Format Format
	// Output is the destination writer. Defaults to os.Stderr.
	Output io.Writer
}

// StandardLogger writes leveled text or JSON lines to a single writer.
type StandardLogger struct {
	mu     sync.Mutex
	level  Level
	format Format
	out    io.Writer
	fields map[string]any
}

// New creates a StandardLogger from options.
func New(opts Options) *StandardLogger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	return &StandardLogger{
		level:  opts.Level,
		format: opts.Format,
		out:    out,
	}
}

// Default returns an info-level text logger writing to stderr.
func Default() *StandardLogger {
	return New(Options{Level: LevelInfo, Format: FormatText})
}

// WithField returns a new Logger carrying the extra field. The receiver is
// not modified.
func (l *StandardLogger) WithField(key string, value any) Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	fields := make(map[string]any, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields[key] = value

	return &StandardLogger{
		level:  l.level,
		format: l.format,
		out:    l.out,
		fields: fields,
	}
}

// Debug logs at debug level.
func (l *StandardLogger) Debug(format string, args ...any) { l.log(LevelDebug, format, args...) }

// Info logs at info level.
func (l *StandardLogger) Info(format string, args ...any) { l.log(LevelInfo, format, args...) }

// Warn logs at warn level.
func (l *StandardLogger) Warn(format string, args ...any) { l.log(LevelWarn, format, args...) }

// Error logs at error level.
func (l *StandardLogger) Error(format string, args ...any) { l.log(LevelError, format, args...) }

func (l *StandardLogger) log(level Level, format string, args ...any) {
	if level < l.level || l.level == LevelSilent {
		return
	}
	msg := fmt.Sprintf(format, args...)

	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.format {
	case FormatJSON:
		entry := make(map[string]any, len(l.fields)+2)
		for k, v := range l.fields {
			entry[k] = v
		}
		entry["level"] = level.String()
		entry["msg"] = msg
		line, err := json.Marshal(entry)
		if err != nil {
			fmt.Fprintf(l.out, `{"level":"error","msg":"cannot marshal log entry: %v"}`+"\n", err)
			return
		}
		fmt.Fprintf(l.out, "%s\n", line)
	default:
		var b strings.Builder
		if level != LevelInfo {
			b.WriteString(strings.ToUpper(level.String()))
			b.WriteString(": ")
		}
		b.WriteString(msg)
		for _, k := range sortedKeys(l.fields) {
			fmt.Fprintf(&b, " %s=%v", k, l.fields[k])
		}
		fmt.Fprintln(l.out, b.String())
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
