package storage

import (
	"path/filepath"
	"testing"

	"dms-go/internal/config"
	"dms-go/internal/dms"
	"dms-go/internal/encryption"
)

// exerciseStorage runs the behaviour every backend must share.
func exerciseStorage(t *testing.T, s dms.Storage) {
	t.Helper()

	if _, ok, err := s.GetItem("access_token"); err != nil || ok {
		t.Fatalf("GetItem() on empty storage = ok %v, err %v; want absent", ok, err)
	}

	if err := s.SetItem("access_token", "tok-1"); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}
	if err := s.SetItem("user", `{"username":"alice"}`); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}
	if err := s.SetItem("access_token", "tok-2"); err != nil {
		t.Fatalf("SetItem() overwrite error = %v", err)
	}

	got, ok, err := s.GetItem("access_token")
	if err != nil || !ok || got != "tok-2" {
		t.Errorf("GetItem(access_token) = %q, %v, %v; want tok-2, true, nil", got, ok, err)
	}
	got, ok, err = s.GetItem("user")
	if err != nil || !ok || got != `{"username":"alice"}` {
		t.Errorf("GetItem(user) = %q, %v, %v", got, ok, err)
	}

	if err := s.RemoveItem("access_token"); err != nil {
		t.Fatalf("RemoveItem() error = %v", err)
	}
	if err := s.RemoveItem("access_token"); err != nil {
		t.Errorf("RemoveItem() of missing key error = %v", err)
	}
	if _, ok, _ := s.GetItem("access_token"); ok {
		t.Error("GetItem() after RemoveItem still present")
	}
	if _, ok, _ := s.GetItem("user"); !ok {
		t.Error("RemoveItem() removed an unrelated key")
	}
}

func TestMemoryStorage(t *testing.T) {
	exerciseStorage(t, NewMemoryStorage())
}

func TestFileStorage(t *testing.T) {
	t.Run("plaintext", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "session.toml")
		exerciseStorage(t, NewFileStorage(path, encryption.NewNoneEncryptor()))
	})

	t.Run("sealed with age", func(t *testing.T) {
		dir := t.TempDir()
		enc := encryption.NewAgeEncryptor(config.EncryptionConfig{IdentityPath: filepath.Join(dir, "dms.key")})
		if err := enc.Setup(); err != nil {
			t.Fatalf("Setup() error = %v", err)
		}
		exerciseStorage(t, NewFileStorage(filepath.Join(dir, "session.age"), enc))
	})

	t.Run("changes by another instance are visible", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.toml")
		a := NewFileStorage(path, encryption.NewNoneEncryptor())
		b := NewFileStorage(path, encryption.NewNoneEncryptor())

		if err := a.SetItem("access_token", "tok"); err != nil {
			t.Fatalf("SetItem() error = %v", err)
		}
		if v, ok, err := b.GetItem("access_token"); err != nil || !ok || v != "tok" {
			t.Fatalf("GetItem() from second instance = %q, %v, %v", v, ok, err)
		}
		if err := b.RemoveItem("access_token"); err != nil {
			t.Fatalf("RemoveItem() error = %v", err)
		}
		if _, ok, _ := a.GetItem("access_token"); ok {
			t.Error("first instance still sees the removed key")
		}
	})

	t.Run("unreadable with the wrong key", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "session.age")
		enc := encryption.NewAgeEncryptor(config.EncryptionConfig{IdentityPath: filepath.Join(dir, "a.key")})
		other := encryption.NewAgeEncryptor(config.EncryptionConfig{IdentityPath: filepath.Join(dir, "b.key")})
		for _, e := range []*encryption.AgeEncryptor{enc, other} {
			if err := e.Setup(); err != nil {
				t.Fatalf("Setup() error = %v", err)
			}
		}
		if err := NewFileStorage(path, enc).SetItem("access_token", "tok"); err != nil {
			t.Fatalf("SetItem() error = %v", err)
		}
		if _, _, err := NewFileStorage(path, other).GetItem("access_token"); err == nil {
			t.Error("GetItem() with a different identity expected error")
		}
	})
}

func TestSQLiteStorage(t *testing.T) {
	t.Run("in memory", func(t *testing.T) {
		s, err := NewSQLiteStorage(":memory:")
		if err != nil {
			t.Fatalf("NewSQLiteStorage() error = %v", err)
		}
		defer s.Close()

		if err := s.CheckMigrations(); err != nil {
			t.Errorf("CheckMigrations() error = %v", err)
		}
		exerciseStorage(t, s)
	})

	t.Run("persists across connections", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dms.db")
		s, err := NewSQLiteStorage(path)
		if err != nil {
			t.Fatalf("NewSQLiteStorage() error = %v", err)
		}
		if err := s.SetItem("access_token", "tok"); err != nil {
			t.Fatalf("SetItem() error = %v", err)
		}
		s.Close()

		s2, err := NewSQLiteStorage(path)
		if err != nil {
			t.Fatalf("reopen error = %v", err)
		}
		defer s2.Close()
		if v, ok, err := s2.GetItem("access_token"); err != nil || !ok || v != "tok" {
			t.Errorf("GetItem() after reopen = %q, %v, %v", v, ok, err)
		}
	})
}

func TestNewStorageFromConfig(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		cfg     config.StorageConfig
		wantErr bool
	}{
		{name: "memory", cfg: config.StorageConfig{Type: "memory"}},
		{name: "file", cfg: config.StorageConfig{Type: "file", Path: filepath.Join(dir, "s.toml")}},
		{name: "sqlite", cfg: config.StorageConfig{Type: "sqlite", Path: filepath.Join(dir, "s.db")}},
		{name: "file without path", cfg: config.StorageConfig{Type: "file"}, wantErr: true},
		{name: "sqlite without path", cfg: config.StorageConfig{Type: "sqlite"}, wantErr: true},
		{name: "unknown", cfg: config.StorageConfig{Type: "cookie"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewStorageFromConfig(tt.cfg, encryption.NewNoneEncryptor())
			if tt.wantErr {
				if err == nil {
					t.Error("NewStorageFromConfig() expected error, got nil")
				}
				if got != nil {
					t.Error("NewStorageFromConfig() should return nil on error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewStorageFromConfig() error = %v", err)
			}
			if got == nil {
				t.Fatal("NewStorageFromConfig() returned nil")
			}
			got.Close()
		})
	}
}
