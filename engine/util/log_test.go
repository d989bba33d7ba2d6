package util

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func captureLog(t *testing.T, level LogLevel) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previousLevel := GLOBAL_LOG_LEVEL
	SetLogOutput(&buf)
	GLOBAL_LOG_LEVEL = level
	t.Cleanup(func() {
		GLOBAL_LOG_LEVEL = previousLevel
		SetLogOutput(os.Stderr)
	})
	return &buf
}

func TestLogFiltersByLevel(t *testing.T) {
	buf := captureLog(t, LogLevelWarning)

	LogFontError("no atlas")
	LogFontInfo("loaded")
	LogTextWarning("too long")
	LogTextDebug("relayout")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	expected := []string{
		"[ERROR] font: no atlas",
		"[WARN] text: too long",
	}
	if len(lines) != len(expected) {
		t.Fatalf("expected %d lines, got %q", len(expected), lines)
	}
	for i, line := range expected {
		if lines[i] != line {
			t.Errorf("line %d: expected %q, got %q", i, line, lines[i])
		}
	}
}

func TestLogFiltersByCategory(t *testing.T) {
	buf := captureLog(t, LogLevelDebug)
	previous := GLOBAL_LOG_CATEGORIES
	GLOBAL_LOG_CATEGORIES = LogOpenGL
	defer func() { GLOBAL_LOG_CATEGORIES = previous }()

	LogFontError("hidden")
	LogGlInfo("shown")

	if got := buf.String(); got != "[INFO] gl: shown\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"error":   LogLevelError,
		"WARN":    LogLevelWarning,
		"warning": LogLevelWarning,
		"info":    LogLevelInfo,
		"Debug":   LogLevelDebug,
	}
	for name, expected := range tests {
		level, ok := ParseLogLevel(name)
		if !ok || level != expected {
			t.Errorf("%s: expected %v, got %v (%v)", name, expected, level, ok)
		}
	}
	if _, ok := ParseLogLevel("verbose"); ok {
		t.Error("expected an unknown level to be rejected")
	}
}

func TestPixelProjectionTopLeftOrigin(t *testing.T) {
	projection := Get2DPixelCoordOrthographicProjectionMatrix(640, 480)
	topLeft := projection.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	bottomRight := projection.Mul4x1(mgl32.Vec4{640, 480, 0, 1})
	if !xy(topLeft).ApproxEqual(mgl32.Vec2{-1, 1}) {
		t.Errorf("expected the top-left pixel at (-1, 1), got %v", xy(topLeft))
	}
	if !xy(bottomRight).ApproxEqual(mgl32.Vec2{1, -1}) {
		t.Errorf("expected the bottom-right pixel at (1, -1), got %v", xy(bottomRight))
	}
}

func TestDoesFileExist(t *testing.T) {
	if !DoesFileExist(os.Args[0]) {
		t.Error("expected the test binary to exist")
	}
	if DoesFileExist(t.TempDir() + "/missing") {
		t.Error("expected a missing file to be reported")
	}
}

func xy(v mgl32.Vec4) mgl32.Vec2 {
	return mgl32.Vec2{v[0], v[1]}
}
