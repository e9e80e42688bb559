package sink

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"dms-go/internal/config"
)

func TestFileSystemSink_Save(t *testing.T) {
	t.Run("writes file under its name", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "downloads")
		s, err := NewFileSystemSink(dir)
		if err != nil {
			t.Fatalf("NewFileSystemSink() error = %v", err)
		}

		got, err := s.Save(context.Background(), "report.pdf", strings.NewReader("%PDF"))
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if got != filepath.Join(dir, "report.pdf") {
			t.Errorf("Save() = %q, want %q", got, filepath.Join(dir, "report.pdf"))
		}
		data, err := os.ReadFile(got)
		if err != nil || string(data) != "%PDF" {
			t.Errorf("file content = %q, %v", data, err)
		}
	})

	t.Run("never overwrites", func(t *testing.T) {
		dir := t.TempDir()
		s, _ := NewFileSystemSink(dir)

		first, _ := s.Save(context.Background(), "a.txt", strings.NewReader("one"))
		second, err := s.Save(context.Background(), "a.txt", strings.NewReader("two"))
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if first == second {
			t.Fatalf("second Save() reused %q", first)
		}
		if filepath.Base(second) != "a (1).txt" {
			t.Errorf("second name = %q, want %q", filepath.Base(second), "a (1).txt")
		}
		if data, _ := os.ReadFile(first); string(data) != "one" {
			t.Errorf("first file content = %q, want %q", data, "one")
		}
	})

	t.Run("strips directories from the name", func(t *testing.T) {
		dir := t.TempDir()
		s, _ := NewFileSystemSink(dir)

		got, err := s.Save(context.Background(), "../../etc/passwd", strings.NewReader("x"))
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if filepath.Dir(got) != dir {
			t.Errorf("Save() wrote outside the sink: %q", got)
		}
	})

	t.Run("cancelled context removes partial file", func(t *testing.T) {
		dir := t.TempDir()
		s, _ := NewFileSystemSink(dir)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := s.Save(ctx, "a.txt", strings.NewReader("data")); err == nil {
			t.Fatal("Save() expected error for cancelled context")
		}
		if _, err := os.Stat(filepath.Join(dir, "a.txt")); !os.IsNotExist(err) {
			t.Errorf("partial file left behind: %v", err)
		}
	})
}

func TestSafeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"report.pdf", "report.pdf"},
		{"dir/report.pdf", "report.pdf"},
		{`C:\Users\me\report.pdf`, "report.pdf"},
		{"../..", "download"},
		{"", "download"},
	}
	for _, tt := range tests {
		if got := safeName(tt.in); got != tt.want {
			t.Errorf("safeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMemorySink_Save(t *testing.T) {
	s := NewMemorySink()
	loc, err := s.Save(context.Background(), "notes.txt", strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if loc != "memory://notes.txt" {
		t.Errorf("Save() = %q, want memory://notes.txt", loc)
	}
	if data, ok := s.Get("notes.txt"); !ok || string(data) != "hello" {
		t.Errorf("Get() = %q, %v", data, ok)
	}
}

type fakeUploader struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakeUploader) Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = input
	data, _ := io.ReadAll(input.Body)
	f.body = string(data)
	return &manager.UploadOutput{}, nil
}

func TestS3Sink_Save(t *testing.T) {
	t.Run("uploads under the prefix", func(t *testing.T) {
		up := &fakeUploader{}
		s := NewS3Sink("docs", "incoming", up)

		loc, err := s.Save(context.Background(), "report.pdf", strings.NewReader("%PDF"))
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if loc != "s3://docs/incoming/report.pdf" {
			t.Errorf("Save() = %q", loc)
		}
		if aws.ToString(up.input.Bucket) != "docs" || aws.ToString(up.input.Key) != "incoming/report.pdf" {
			t.Errorf("PutObjectInput = %s/%s", aws.ToString(up.input.Bucket), aws.ToString(up.input.Key))
		}
		if up.body != "%PDF" {
			t.Errorf("uploaded body = %q", up.body)
		}
	})

	t.Run("wraps upload errors", func(t *testing.T) {
		boom := errors.New("access denied")
		s := NewS3Sink("docs", "", &fakeUploader{err: boom})
		_, err := s.Save(context.Background(), "a.txt", strings.NewReader("x"))
		if !errors.Is(err, boom) {
			t.Errorf("Save() error = %v, want wrapping %v", err, boom)
		}
	})
}

func TestNewSinkFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.DownloadsConfig
		wantErr bool
	}{
		{name: "memory", cfg: config.DownloadsConfig{Type: "memory"}},
		{name: "filesystem", cfg: config.DownloadsConfig{Type: "filesystem", Dir: t.TempDir()}},
		{name: "filesystem without dir", cfg: config.DownloadsConfig{Type: "filesystem"}, wantErr: true},
		{name: "s3 without bucket", cfg: config.DownloadsConfig{Type: "s3"}, wantErr: true},
		{name: "unknown", cfg: config.DownloadsConfig{Type: "ftp"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewSinkFromConfig(context.Background(), tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("NewSinkFromConfig() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSinkFromConfig() error = %v", err)
			}
			if got == nil {
				t.Fatal("NewSinkFromConfig() returned nil")
			}
		})
	}
}
