/*
Copyright © 2026 3 Leaps <info@3leaps.net>
*/
package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"testing"
	"time"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{TraceLevel, "TRACE"},
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{Level(999), "UNKNOWN"},
	}

	for _, test := range tests {
		if result := test.level.String(); result != test.expected {
			t.Errorf("Level.String() = %v, expected %v", result, test.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{"trace", TraceLevel, false},
		{"DEBUG", DebugLevel, false},
		{"", InfoLevel, false},
		{"warning", WarnLevel, false},
		{" error ", ErrorLevel, false},
		{"loud", InfoLevel, true},
	}

	for _, test := range tests {
		level, err := ParseLevel(test.input)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", test.input, err, test.wantErr)
		}
		if level != test.expected {
			t.Errorf("ParseLevel(%q) = %v, expected %v", test.input, level, test.expected)
		}
	}
}

func TestInitializeUsesOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := Initialize(Config{Level: InfoLevel, Component: "themekit", Output: &buf}); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}

	Info("theme installed", String("id", "vintage"))

	if !strings.Contains(buf.String(), "themekit: theme installed {id=vintage}") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestLoggerPrettyFormatting(t *testing.T) {
	l := &Logger{config: Config{Level: InfoLevel, Component: "themekit", NoOp: true}}

	entry := LogEntry{
		Time:      time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		Level:     "INFO",
		Message:   "would write",
		Component: "themekit",
		NoOp:      true,
		Fields:    map[string]interface{}{"path": "css/app.css", "count": 2},
	}

	result := l.formatPretty(entry)
	expected := "2026-01-01 12:00:00 [INFO] themekit: [NO-OP] would write {count=2, path=css/app.css}"
	if result != expected {
		t.Errorf("formatPretty() = %q\nexpected %q", result, expected)
	}
}

func TestLoggerJSONFormatting(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{
		config: Config{Level: InfoLevel, JSON: true, Component: "themekit"},
		logger: log.New(&buf, "", 0),
	}

	l.Log(InfoLevel, "test message", Strings("ids", []string{"rose", "ocean"}))

	var parsed LogEntry
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &parsed); err != nil {
		t.Fatalf("Log() produced invalid JSON: %v\nOutput: %s", err, buf.String())
	}
	if parsed.Message != "test message" || parsed.Level != "INFO" {
		t.Errorf("unexpected entry: %+v", parsed)
	}
	if parsed.Fields["ids"] != "rose,ocean" {
		t.Errorf("ids field = %v", parsed.Fields["ids"])
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{
		config: Config{Level: WarnLevel, Component: "test"},
		logger: log.New(&buf, "", 0),
	}

	l.Log(InfoLevel, "info message")
	l.Log(DebugLevel, "debug message")
	l.Log(WarnLevel, "warn message")
	l.Log(ErrorLevel, "error message")

	output := buf.String()
	if strings.Contains(output, "info message") || strings.Contains(output, "debug message") {
		t.Error("messages below WARN should be filtered out")
	}
	if !strings.Contains(output, "warn message") || !strings.Contains(output, "error message") {
		t.Error("WARN and ERROR messages should appear")
	}
}

func TestFieldConstructors(t *testing.T) {
	if f := String("key", "value"); f.Key != "key" || f.Value != "value" {
		t.Errorf("String() = %+v", f)
	}
	if f := Int("count", 42); f.Key != "count" || f.Value != 42 {
		t.Errorf("Int() = %+v", f)
	}
	if f := Bool("force", true); f.Key != "force" || f.Value != true {
		t.Errorf("Bool() = %+v", f)
	}
	if f := Err(errors.New("boom")); f.Key != "error" || f.Value != "boom" {
		t.Errorf("Err() = %+v", f)
	}
	if f := Err(nil); f.Value != "" {
		t.Errorf("Err(nil) = %+v", f)
	}
}

func TestSetOutput(t *testing.T) {
	if err := Initialize(Config{Level: InfoLevel}); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	SetOutput(&buf)

	Info("output test message")
	Debug("hidden")

	if !strings.Contains(buf.String(), "output test message") {
		t.Errorf("SetOutput() did not redirect output correctly: %s", buf.String())
	}
	if strings.Contains(buf.String(), "hidden") {
		t.Error("debug output should be filtered at info level")
	}
}

func TestFallbackDoesNotPanic(t *testing.T) {
	original := defaultLogger
	defaultLogger = nil
	defer func() { defaultLogger = original }()

	Info("dropped")
	Warn("fallback warning")
}
