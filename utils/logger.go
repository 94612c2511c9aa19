/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

type Logger = logrus.Logger

const defaultTimestampFormat = "2006-01-02 15:04:05.000"

var (
	loggerRegistryMu sync.RWMutex
	loggerRegistry   = map[string]*logrus.Logger{}
	defaultLevel     = ParseLogLevel(EnvDefaultString("LOG_LEVEL", "info"))
	consoleLogFormat = normalizeFormat(EnvDefaultString("CONSOLE_LOG_FORMAT", "text"))
	logOutput        io.Writer = os.Stdout
)

// NewLogger returns the logger registered under name, creating it on first use.
func NewLogger(name string) *logrus.Logger {
	loggerRegistryMu.Lock()
	defer loggerRegistryMu.Unlock()
	if l, ok := loggerRegistry[name]; ok {
		return l
	}
	l := logrus.New()
	l.SetOutput(logOutput)
	l.SetLevel(defaultLevel)
	l.SetReportCaller(true)
	l.SetFormatter(newFormatter(name, consoleLogFormat))
	loggerRegistry[name] = l
	return l
}

func newFormatter(name, format string) logrus.Formatter {
	if format == "json" {
		return &JSONLogFormatter{LoggerName: name}
	}
	return &TextLogFormatter{LoggerName: name, NameWidth: 10}
}

func normalizeFormat(format string) string {
	if strings.ToLower(strings.TrimSpace(format)) == "json" {
		return "json"
	}
	return "text"
}

func ParseLogLevel(s string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.InfoLevel
	}
}

// SetLoggerLevel changes the level of one registered logger.
func SetLoggerLevel(name string, level string) bool {
	loggerRegistryMu.RLock()
	l, ok := loggerRegistry[name]
	loggerRegistryMu.RUnlock()
	if !ok {
		return false
	}
	l.SetLevel(ParseLogLevel(level))
	return true
}

// ConfigureLogLevel changes the level of every registered and future logger.
func ConfigureLogLevel(level string) {
	lvl := ParseLogLevel(level)
	loggerRegistryMu.Lock()
	defer loggerRegistryMu.Unlock()
	defaultLevel = lvl
	for _, l := range loggerRegistry {
		l.SetLevel(lvl)
	}
}

// ConfigureConsoleLogFormat switches every logger between "text" and "json".
func ConfigureConsoleLogFormat(format string) {
	loggerRegistryMu.Lock()
	defer loggerRegistryMu.Unlock()
	consoleLogFormat = normalizeFormat(format)
	for name, l := range loggerRegistry {
		l.SetFormatter(newFormatter(name, consoleLogFormat))
	}
}

// SetLogOutput redirects every registered and future logger to w.
func SetLogOutput(w io.Writer) {
	loggerRegistryMu.Lock()
	defer loggerRegistryMu.Unlock()
	logOutput = w
	for _, l := range loggerRegistry {
		l.SetOutput(w)
	}
}

// TextLogFormatter renders log4j-style lines:
// time level pid --- [name] file:line : message k=v ...
type TextLogFormatter struct {
	LoggerName      string
	TimestampFormat string
	NameWidth       int
}

func (f *TextLogFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	tsFormat := f.TimestampFormat
	if tsFormat == "" {
		tsFormat = defaultTimestampFormat
	}
	var b bytes.Buffer
	b.WriteString(entry.Time.Format(tsFormat))
	b.WriteByte(' ')
	b.WriteString(levelColor(entry.Level).Sprintf("%7s", strings.ToUpper(entry.Level.String())))
	fmt.Fprintf(&b, " %-6d --- ", os.Getpid())
	b.WriteString(color.CyanString("[%*s]", f.NameWidth, f.LoggerName))
	if entry.Caller != nil {
		b.WriteByte(' ')
		b.WriteString(color.New(color.Faint).Sprintf("%s:%d", filepath.Base(entry.Caller.File), entry.Caller.Line))
	}
	b.WriteString(" : ")
	b.WriteString(entry.Message)
	for _, k := range sortedKeys(entry.Data) {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// JSONLogFormatter renders one JSON object per line.
type JSONLogFormatter struct {
	LoggerName      string
	TimestampFormat string
}

func (f *JSONLogFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	tsFormat := f.TimestampFormat
	if tsFormat == "" {
		tsFormat = defaultTimestampFormat
	}
	rec := struct {
		Time    string                 `json:"time"`
		Level   string                 `json:"level"`
		Logger  string                 `json:"logger"`
		Caller  string                 `json:"caller,omitempty"`
		Message string                 `json:"message"`
		Fields  map[string]interface{} `json:"fields,omitempty"`
	}{
		Time:    entry.Time.Format(tsFormat),
		Level:   entry.Level.String(),
		Logger:  f.LoggerName,
		Message: entry.Message,
	}
	if entry.Caller != nil {
		rec.Caller = fmt.Sprintf("%s:%d", filepath.Base(entry.Caller.File), entry.Caller.Line)
	}
	if len(entry.Data) > 0 {
		rec.Fields = make(map[string]interface{}, len(entry.Data))
		for k, v := range entry.Data {
			if err, ok := v.(error); ok {
				v = err.Error()
			}
			rec.Fields[k] = v
		}
	}
	out, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func levelColor(level logrus.Level) *color.Color {
	switch level {
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return color.New(color.FgRed)
	case logrus.WarnLevel:
		return color.New(color.FgYellow)
	case logrus.InfoLevel:
		return color.New(color.FgGreen)
	case logrus.DebugLevel:
		return color.New(color.FgBlue)
	default:
		return color.New(color.FgMagenta)
	}
}

func sortedKeys(data logrus.Fields) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
