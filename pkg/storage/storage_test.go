package storage_test

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/JaimeStill/moodai/pkg/storage"
)

// Well-known Azurite development account key.
const devConnString = "DefaultEndpointsProtocol=http;AccountName=devstoreaccount1;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/devstoreaccount1;"

func TestConfigFinalize(t *testing.T) {
	tests := []struct {
		name    string
		cfg     storage.Config
		env     map[string]string
		want    storage.Config
		wantErr string
	}{
		{
			name: "disabled needs nothing",
			cfg:  storage.Config{},
			want: storage.Config{ContainerName: "reports"},
		},
		{
			name:    "enabled without connection string",
			cfg:     storage.Config{Enabled: true},
			wantErr: "connection_string required",
		},
		{
			name: "enabled from env",
			cfg:  storage.Config{},
			env: map[string]string{
				"MOODAI_STORAGE_ENABLED":           "true",
				"MOODAI_STORAGE_CONNECTION_STRING": devConnString,
				"MOODAI_STORAGE_CONTAINER_NAME":    "archives",
			},
			want: storage.Config{Enabled: true, ContainerName: "archives", ConnectionString: devConnString},
		},
	}

	env := &storage.Env{
		Enabled:          "MOODAI_STORAGE_ENABLED",
		ContainerName:    "MOODAI_STORAGE_CONTAINER_NAME",
		ConnectionString: "MOODAI_STORAGE_CONNECTION_STRING",
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg := tt.cfg
			err := cfg.Finalize(env)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if cfg != tt.want {
				t.Errorf("got %+v, want %+v", cfg, tt.want)
			}
		})
	}
}

func TestConfigMergeAlwaysAppliesEnabled(t *testing.T) {
	cfg := storage.Config{Enabled: true, ContainerName: "reports", ConnectionString: devConnString}
	cfg.Merge(&storage.Config{ContainerName: "staging-reports"})

	if cfg.Enabled {
		t.Error("overlay without enabled should disable storage")
	}
	if cfg.ContainerName != "staging-reports" || cfg.ConnectionString != devConnString {
		t.Errorf("merge: %+v", cfg)
	}
}

func TestNew(t *testing.T) {
	if _, err := storage.New(&storage.Config{ContainerName: "reports", ConnectionString: devConnString}, slog.Default()); err != nil {
		t.Errorf("valid connection string: %v", err)
	}
	if _, err := storage.New(&storage.Config{ContainerName: "reports", ConnectionString: "nope"}, slog.Default()); err == nil {
		t.Error("expected error for malformed connection string")
	}
}

func TestCheckKey(t *testing.T) {
	tests := map[string]error{
		"reports/7f1c/2026-10-12.json": nil,
		"weekly..json":                 nil,
		"":                             storage.ErrEmptyKey,
		"/reports/a.json":              storage.ErrInvalidKey,
		"../secrets":                   storage.ErrInvalidKey,
		"reports/../../x":              storage.ErrInvalidKey,
		"reports/..":                   storage.ErrInvalidKey,
	}
	for key, want := range tests {
		if got := storage.CheckKey(key); !errors.Is(got, want) {
			t.Errorf("CheckKey(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestDisabled(t *testing.T) {
	sys := storage.Disabled()
	ctx := context.Background()

	if err := sys.Start(nil); err != nil {
		t.Errorf("Start: %v", err)
	}
	if err := sys.Upload(ctx, "k", strings.NewReader("{}"), "application/json"); !errors.Is(err, storage.ErrDisabled) {
		t.Errorf("Upload: %v", err)
	}
	if _, err := sys.Download(ctx, "k"); !errors.Is(err, storage.ErrDisabled) {
		t.Errorf("Download: %v", err)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{storage.ErrNotFound, http.StatusNotFound},
		{storage.ErrEmptyKey, http.StatusBadRequest},
		{storage.ErrInvalidKey, http.StatusBadRequest},
		{storage.ErrDisabled, http.StatusServiceUnavailable},
		{fs.ErrClosed, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := storage.MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
