package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/clipnamer/internal/config"
	"github.com/nguyentantai21042004/clipnamer/internal/httpapi"
	"github.com/nguyentantai21042004/clipnamer/internal/logger"
	"github.com/nguyentantai21042004/clipnamer/internal/processor"
	"github.com/nguyentantai21042004/clipnamer/internal/storage"
)

func loadTestConfig(t *testing.T, body string) *config.Config {
	t.Helper()
	base := t.TempDir()
	path := filepath.Join(base, "config.yaml")
	body += "paths:\n  temp: " + filepath.Join(base, "temp") + "\nlogging:\n  level: error\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return cfg
}

func TestSessionProvidersIgnoreConfiguredToken(t *testing.T) {
	cfg := loadTestConfig(t, "storage:\n  backend: drive\n  drive_token: operator-token\n")

	if _, err := sessionProviders(cfg)(context.Background(), ""); !errors.Is(err, storage.ErrUnauthenticated) {
		t.Fatalf("factory error = %v, want ErrUnauthenticated", err)
	}

	handler := httpapi.NewHandler(processor.New(processor.Deps{}), sessionProviders(cfg), cfg.Naming, logger.Discard())
	srv := httptest.NewServer(httpapi.NewRouter(handler))
	defer srv.Close()

	tests := []struct {
		name string
		path string
		body string
	}{
		{"proposals", "/api/v1/proposals", `{"reference":"abc"}`},
		{"recompose", "/api/v1/proposals/recompose", `{"reference":"abc","proposals":[]}`},
		{"renames", "/api/v1/renames", `{"renames":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+tt.path, "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
			}
		})
	}
}

func TestSessionProvidersLocalBackend(t *testing.T) {
	cfg := loadTestConfig(t, "storage:\n  backend: local\n  local_root: "+t.TempDir()+"\n")
	p, err := sessionProviders(cfg)(context.Background(), "")
	if err != nil {
		t.Fatalf("factory error = %v", err)
	}
	if p == nil {
		t.Fatal("factory returned nil provider")
	}
}
