package main

import (
	"bytes"
	"strings"
	"testing"

	"dms-go/internal/dms"
	"dms-go/internal/model"
)

func TestResolveColor(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "green", want: "#10b981"},
		{in: "Gray", want: "#6b7280"},
		{in: "#3B82F6", want: "#3b82f6"},
		{in: "#123abc", want: "#123abc"},
		{in: "chartreuse", wantErr: true},
		{in: "#12", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := resolveColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("resolveColor(%q) expected error", tt.in)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("resolveColor(%q) = %q, %v, want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	if id, err := parseID("42"); err != nil || id != 42 {
		t.Errorf("parseID(42) = %d, %v", id, err)
	}
	for _, bad := range []string{"0", "-1", "abc"} {
		if _, err := parseID(bad); err == nil {
			t.Errorf("parseID(%q) expected error", bad)
		}
	}
}

func TestRenderDocuments(t *testing.T) {
	docs := []model.Document{
		{ID: 1, Title: "Invoice Q1", Filename: "invoice.pdf", FileSizeFormatted: "2.0 KB",
			Category: &model.CategoryRef{ID: 3, Name: "Finance"}, Tags: []string{"finance", "q1"}, Owner: "alice"},
		{ID: 2, Title: "Resume", Filename: "cv.docx", FileSize: 10},
	}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		if err := renderDocuments(&buf, dms.DocumentsView{Documents: docs, TotalFetched: 2}); err != nil {
			t.Fatal(err)
		}
		out := buf.String()
		for _, want := range []string{"TITLE", "Invoice Q1", "Finance", "finance,q1", "10 B"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("filtered to nothing", func(t *testing.T) {
		var buf bytes.Buffer
		if err := renderDocuments(&buf, dms.DocumentsView{TotalFetched: 2}); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "match the filter") {
			t.Errorf("output = %q", buf.String())
		}
	})
}

func TestRenderDashboard_LoadErrors(t *testing.T) {
	var buf bytes.Buffer
	view := dms.DashboardView{User: model.User{Username: "admin", Role: model.RoleAdmin}, LoadErrors: []string{dms.MsgLoadStatsError}}
	if err := renderDashboard(&buf, view); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Welcome, admin", "warning: " + dms.MsgLoadStatsError, "No documents yet", "dms categories"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
