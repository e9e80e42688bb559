package app

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLogHandler_Handle(t *testing.T) {
	ts := time.Date(2024, 6, 15, 14, 30, 45, 0, time.UTC)

	tests := []struct {
		name    string
		level   slog.Level
		message string
		attrs   []slog.Attr
		want    string
	}{
		{
			name:    "basic info message",
			level:   slog.LevelInfo,
			message: "signed in",
			want:    "2024-06-15T14:30:45Z\tINFO\trun-1\tsigned in\n",
		},
		{
			name:    "warn level",
			level:   slog.LevelWarn,
			message: "fetch failed",
			want:    "2024-06-15T14:30:45Z\tWARN\trun-1\tfetch failed\n",
		},
		{
			name:    "with record attrs",
			level:   slog.LevelInfo,
			message: "document uploaded",
			attrs:   []slog.Attr{slog.Int64("id", 12), slog.String("filename", "invoice.pdf")},
			want:    "2024-06-15T14:30:45Z\tINFO\trun-1\tdocument uploaded\tid=12\tfilename=invoice.pdf\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &logHandler{w: &buf, level: slog.LevelDebug, runID: "run-1"}

			r := slog.NewRecord(ts, tt.level, tt.message, 0)
			r.AddAttrs(tt.attrs...)

			if err := h.Handle(context.Background(), r); err != nil {
				t.Fatalf("Handle() error = %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("Handle() output =\n%q\nwant:\n%q", got, tt.want)
			}
		})
	}
}

func TestLogHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := &logHandler{w: &buf, level: slog.LevelInfo, runID: "run-1", attrs: []slog.Attr{slog.String("a", "1")}}

	h2 := h.WithAttrs([]slog.Attr{slog.String("command", "login")}).(*logHandler)
	if len(h.attrs) != 1 {
		t.Errorf("original handler attrs modified: got %d, want 1", len(h.attrs))
	}

	r := slog.NewRecord(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), slog.LevelInfo, "request", 0)
	r.AddAttrs(slog.String("op", "Login"))
	if err := h2.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	got := buf.String()
	for _, want := range []string{"a=1", "command=login", "op=Login"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q does not contain %q", got, want)
		}
	}
}

func TestLogHandler_Enabled(t *testing.T) {
	tests := []struct {
		config string
		level  slog.Level
		want   bool
	}{
		{config: "debug", level: slog.LevelDebug, want: true},
		{config: "info", level: slog.LevelDebug, want: false},
		{config: "", level: slog.LevelInfo, want: true},
		{config: "WARN", level: slog.LevelInfo, want: false},
		{config: "warning", level: slog.LevelWarn, want: true},
		{config: "error", level: slog.LevelWarn, want: false},
		{config: "bogus", level: slog.LevelInfo, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.config+"/"+tt.level.String(), func(t *testing.T) {
			h := &logHandler{level: parseLevel(tt.config)}
			if got := h.Enabled(context.Background(), tt.level); got != tt.want {
				t.Errorf("Enabled(%v) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "log")

	logger, f, err := newLogger(dir, "info", false, "run-7")
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}
	logger.Debug("hidden")
	logger.Info("shown", "k", "v")
	f.Close()

	data, err := os.ReadFile(filepath.Join(dir, "dms.log"))
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	got := string(data)
	if strings.Contains(got, "hidden") {
		t.Errorf("debug line written at info level: %q", got)
	}
	if !strings.Contains(got, "\trun-7\tshown\tk=v\n") {
		t.Errorf("log = %q", got)
	}
}
