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
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerIsRegisteredByName(t *testing.T) {
	a := NewLogger("TEST_REGISTRY")
	b := NewLogger("TEST_REGISTRY")
	require.Same(t, a, b)

	require.True(t, SetLoggerLevel("TEST_REGISTRY", "debug"))
	require.Equal(t, logrus.DebugLevel, a.GetLevel())
	require.False(t, SetLoggerLevel("TEST_UNKNOWN", "debug"))
}

func TestParseLogLevel(t *testing.T) {
	require.Equal(t, logrus.WarnLevel, ParseLogLevel("WARNING"))
	require.Equal(t, logrus.TraceLevel, ParseLogLevel(" trace "))
	require.Equal(t, logrus.InfoLevel, ParseLogLevel("nonsense"))
}

func TestTextLogFormatterPrintsFields(t *testing.T) {
	color.NoColor = true
	f := &TextLogFormatter{LoggerName: "TEST", NameWidth: 6}
	entry := logrus.NewEntry(logrus.New()).WithFields(logrus.Fields{"b": 2, "a": "x"})
	entry.Level = logrus.InfoLevel
	entry.Message = "hello"

	out, err := f.Format(entry)
	require.NoError(t, err)
	line := string(out)
	require.Contains(t, line, "INFO")
	require.Contains(t, line, "[  TEST]")
	require.True(t, strings.HasSuffix(line, " : hello a=x b=2\n"), line)
}

func TestJSONLogFormatter(t *testing.T) {
	f := &JSONLogFormatter{LoggerName: "TEST"}
	entry := logrus.NewEntry(logrus.New()).WithField("error", errors.New("boom"))
	entry.Level = logrus.WarnLevel
	entry.Message = "careful"

	out, err := f.Format(entry)
	require.NoError(t, err)
	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &rec))
	require.Equal(t, "warning", rec["level"])
	require.Equal(t, "TEST", rec["logger"])
	require.Equal(t, "careful", rec["message"])
	require.Equal(t, "boom", rec["fields"].(map[string]interface{})["error"])
}

func TestConfigureConsoleLogFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("TEST_FORMAT")
	l.SetOutput(&buf)
	ConfigureConsoleLogFormat("json")
	t.Cleanup(func() { ConfigureConsoleLogFormat("text") })

	l.Info("switched")
	require.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())), buf.String())
}
