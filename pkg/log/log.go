// Copyright 2025 walteh LLC
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

package log

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	actionWidth = 14 // Width for action text
)

// 🎯 Action is what happened to a file
type Action string

const (
	ActionUpdated     Action = "updated"
	ActionWouldUpdate Action = "would update"
	ActionFailed      Action = "error"
)

// 🎯 FileOperation represents a per-file result for logging
type FileOperation struct {
	Path         string // File path
	Action       Action
	Replacements int   // Number of replacements made
	Err          error // Set for ActionFailed
}

// 🎯 Logger writes human progress lines to the console and mirrors them to zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔇 Discard returns a logger that prints nothing
func Discard() *Logger {
	return New(io.Discard, zerolog.Nop())
}

// Zerolog returns the structured logger.
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zlog
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol string
	var symbolColor color.Attribute
	var detail string
	switch op.Action {
	case ActionFailed:
		symbol = "✗"
		symbolColor = color.FgRed
		if op.Err != nil {
			detail = op.Err.Error()
		}
	case ActionWouldUpdate:
		symbol = "~"
		symbolColor = color.FgYellow
		detail = replacements(op.Replacements)
	default:
		symbol = "⟳"
		symbolColor = color.FgBlue
		detail = replacements(op.Replacements)
	}

	return fmt.Sprintf("%s%s %s %s %s",
		strings.Repeat(" ", fileIndent),
		color.New(symbolColor).Sprint(symbol),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		color.New(symbolColor).Sprint(fmt.Sprintf("%-*s", actionWidth, string(op.Action))),
		detail)
}

func replacements(n int) string {
	if n == 1 {
		return "1 replacement"
	}
	return fmt.Sprintf("%d replacements", n)
}

// 📝 LogFileOperation logs a file operation as a single line
func (l *Logger) LogFileOperation(op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatFileOperation(op))

	event := l.zlog.Info()
	if op.Action == ActionFailed {
		event = l.zlog.Error().Err(op.Err)
	}
	event.
		Str("file", op.Path).
		Str("action", string(op.Action)).
		Int("replacements", op.Replacements).
		Msg("file operation")
}

// 📝 Header logs a header
func (l *Logger) Header(tool, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint(tool)
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Str("tool", tool).Msg(msg)
}

// 📝 Step logs one step of a run with its own icon
func (l *Logger) Step(icon, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "%s %s\n", icon, msg)
	l.zlog.Info().Msg(msg)
}

// 📝 Stepf logs a formatted step
func (l *Logger) Stepf(icon, format string, args ...interface{}) {
	l.Step(icon, fmt.Sprintf(format, args...))
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}

// 📝 Detail prints indented text under the previous line, e.g. a diff
func (l *Logger) Detail(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		fmt.Fprintf(l.console, "%s%s\n", strings.Repeat(" ", fileIndent*2), line)
	}
}

// 📊 Summary renders a two column table of totals
func (l *Logger) Summary(title string, rows [][2]string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data := pterm.TableData{{title, ""}}
	event := l.zlog.Info()
	for _, row := range rows {
		data = append(data, []string{row[0], row[1]})
		event = event.Str(strings.ToLower(strings.ReplaceAll(row[0], " ", "_")), row[1])
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		l.zlog.Debug().Err(err).Msg("rendering summary table")
		for _, row := range rows {
			fmt.Fprintf(l.console, "%s: %s\n", row[0], row[1])
		}
	} else {
		fmt.Fprintf(l.console, "\n%s\n", table)
	}

	event.Msg(title)
}
