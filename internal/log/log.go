// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package log provides levelled, categorized debug logging.
//
// Logging is off until Init is called (vizrender does so for
// --debug), so library packages can log freely without producing
// output for ordinary callers.
package log

import (
	"fmt"
	"io"
	stdlog "log"
	"sync"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Category groups related log messages.
type Category string

const (
	CatSpec     Category = "spec"     // document parsing and graph construction
	CatBind     Category = "bind"     // attribute bindings
	CatScale    Category = "scale"    // scale mapping and pan/zoom
	CatLayout   Category = "layout"   // area layout passes
	CatInteract Category = "interact" // gesture handling
	CatRender   Category = "render"   // surface output
	CatWatch    Category = "watch"    // document watching
)

type logger struct {
	mu       sync.Mutex
	out      *stdlog.Logger
	minLevel Level
}

var std struct {
	sync.Mutex
	l *logger
}

// Init enables logging of messages at or above min to w.
func Init(w io.Writer, min Level) {
	std.Lock()
	defer std.Unlock()
	std.l = &logger{
		out:      stdlog.New(w, "", stdlog.LstdFlags|stdlog.Lmicroseconds),
		minLevel: min,
	}
}

// Disable turns logging off.
func Disable() {
	std.Lock()
	defer std.Unlock()
	std.l = nil
}

// Debug logs at debug level. fields are alternating keys and values.
func Debug(cat Category, msg string, fields ...interface{}) {
	logf(LevelDebug, cat, msg, fields)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...interface{}) {
	logf(LevelInfo, cat, msg, fields)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...interface{}) {
	logf(LevelWarn, cat, msg, fields)
}

// Error logs err at error level.
func Error(cat Category, msg string, err error, fields ...interface{}) {
	logf(LevelError, cat, msg, append(fields, "error", err))
}

func logf(level Level, cat Category, msg string, fields []interface{}) {
	std.Lock()
	l := std.l
	std.Unlock()
	if l == nil || level < l.minLevel {
		return
	}

	// Format: [DEBUG] [scale] message key=value key2=value2
	entry := fmt.Sprintf("[%s] [%s] %s", level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		entry += fmt.Sprintf(" %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		entry += fmt.Sprintf(" %v=<missing>", fields[len(fields)-1])
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Print(entry)
}
