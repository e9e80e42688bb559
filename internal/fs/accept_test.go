package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewAcceptMatcher(t *testing.T) {
	t.Run("skips blank lines and comments", func(t *testing.T) {
		t.Parallel()
		m := NewAcceptMatcher([]string{"", "  ", "# comment", ".PDF"})
		if len(m.patterns) != 1 {
			t.Fatalf("expected 1 pattern, got %d", len(m.patterns))
		}
		if m.patterns[0].pattern != ".pdf" {
			t.Errorf("expected .pdf, got %s", m.patterns[0].pattern)
		}
	})

	t.Run("classifies extension vs glob patterns", func(t *testing.T) {
		t.Parallel()
		m := NewAcceptMatcher([]string{".pdf", "report-*.txt"})
		if m.patterns[0].glob {
			t.Error(".pdf should not be a glob pattern")
		}
		if !m.patterns[1].glob {
			t.Error("report-*.txt should be a glob pattern")
		}
	})
}

func TestAcceptMatcher_Match(t *testing.T) {
	defaults := []string{".pdf", ".doc", ".docx", ".txt", ".png", ".jpg", ".jpeg", ".gif", ".xlsx", ".xls", ".ppt", ".pptx"}

	tests := []struct {
		name     string
		patterns []string
		file     string
		want     bool
	}{
		{name: "accepted extension", patterns: defaults, file: "invoice.pdf", want: true},
		{name: "extension is case-insensitive", patterns: defaults, file: "SCAN.JPEG", want: true},
		{name: "only the final extension counts", patterns: defaults, file: "archive.pdf.zip", want: false},
		{name: "rejected extension", patterns: defaults, file: "script.sh", want: false},
		{name: "no extension", patterns: defaults, file: "README", want: false},
		{name: "directory part ignored", patterns: defaults, file: filepath.Join("docs.pdf", "notes.md"), want: false},
		{name: "glob pattern", patterns: []string{"report-*.csv"}, file: "report-2024.csv", want: true},
		{name: "empty matcher accepts everything", patterns: nil, file: "anything.bin", want: true},
		{name: "bad pattern skipped", patterns: []string{"[", ".txt"}, file: "a.txt", want: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := NewAcceptMatcher(tt.patterns)
			if got := m.Match(tt.file); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.file, got, tt.want)
			}
		})
	}
}

func TestOSFilePicker_Resolve(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "Invoice Q1.pdf")
	if err := os.WriteFile(pdf, []byte("%PDF-1.4"), 0644); err != nil {
		t.Fatal(err)
	}
	script := filepath.Join(dir, "run.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh"), 0755); err != nil {
		t.Fatal(err)
	}

	picker := NewOSFilePicker([]string{".pdf"})

	t.Run("accepted file", func(t *testing.T) {
		p, err := picker.Resolve(pdf)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if p.Name() != "Invoice Q1.pdf" {
			t.Errorf("Name() = %q", p.Name())
		}
		if p.Size() != 8 {
			t.Errorf("Size() = %d, want 8", p.Size())
		}

		rc, err := picker.Open(p)
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		rc.Close()
	})

	t.Run("rejected extension", func(t *testing.T) {
		_, err := picker.Resolve(script)
		if err == nil || !strings.Contains(err.Error(), "not accepted") {
			t.Errorf("Resolve() error = %v, want not accepted", err)
		}
	})

	t.Run("directory", func(t *testing.T) {
		if _, err := picker.Resolve(dir); err == nil {
			t.Error("Resolve() on a directory expected error")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := picker.Resolve(filepath.Join(dir, "missing.pdf")); err == nil {
			t.Error("Resolve() on a missing file expected error")
		}
	})
}
