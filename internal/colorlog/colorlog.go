// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package colorlog is a small fmt-based diagnostic logger for the
// optimizer and finalizer, passed explicitly instead of living as
// package-global state (the core holds no singletons, see spec §5/§9).
package colorlog

import (
	"fmt"
	"io"
)

// Logger writes optionally-prefixed diagnostic lines to a writer. A nil
// *Logger is valid and discards everything, so callers can pass one
// through unconditionally without a nil check at every call site.
type Logger struct {
	w      io.Writer
	prefix string
}

// New wraps w. If w is nil, the returned Logger discards all output.
func New(w io.Writer) *Logger {
	return &Logger{w: w}
}

// WithPrefix returns a copy of the logger that prepends prefix to every
// line, e.g. for tagging which optimizer pass emitted a message.
func (l *Logger) WithPrefix(prefix string) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{w: l.w, prefix: prefix}
}

// Logf writes one formatted, newline-terminated diagnostic line.
func (l *Logger) Logf(format string, args ...interface{}) {
	if l == nil || l.w == nil {
		return
	}
	if l.prefix != "" {
		fmt.Fprintf(l.w, "%s: ", l.prefix)
	}
	fmt.Fprintf(l.w, format+"\n", args...)
}
