package logger_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/shashiranjanraj/geoinspect/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"loud":    slog.LevelInfo,
	}
	for in, want := range cases {
		if got := logger.ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewProductionIsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, "production", "info")
	log.Info("layer opened", "layer", "zipcodes")

	out := buf.String()
	if !strings.HasPrefix(out, "{") || !strings.Contains(out, `"layer":"zipcodes"`) {
		t.Errorf("expected JSON line, got %q", out)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, "local", "warn")
	log.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn level, got %q", buf.String())
	}
	log.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn should be written, got %q", buf.String())
	}
}
