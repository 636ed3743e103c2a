package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_TextFormat(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWithWriters(slog.LevelInfo, "text", &out, &errOut)

	l.Info("hello", "k", "v")
	l.Debug("hidden")

	if !strings.Contains(out.String(), "msg=hello") || !strings.Contains(out.String(), "k=v") {
		t.Fatalf("unexpected text output %q", out.String())
	}
	if strings.Contains(out.String(), "hidden") {
		t.Fatal("expected debug line to be filtered at info level")
	}
	if errOut.Len() != 0 {
		t.Fatalf("expected nothing on stderr, got %q", errOut.String())
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWithWriters(slog.LevelDebug, "json", &out, &errOut)

	l.Debug("visible", "n", 1)

	var line map[string]any
	if err := json.Unmarshal(out.Bytes(), &line); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", out.String(), err)
	}
	if line["msg"] != "visible" || line["level"] != "DEBUG" {
		t.Fatalf("unexpected JSON record %v", line)
	}
}

func TestNew_BothFormat(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWithWriters(slog.LevelInfo, "both", &out, &errOut)

	l.Warn("twice")

	if !strings.Contains(out.String(), "msg=twice") {
		t.Fatalf("expected text record on stdout, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), `"msg":"twice"`) {
		t.Fatalf("expected JSON record on stderr, got %q", errOut.String())
	}
}
