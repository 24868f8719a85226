package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"rendiconto/internal/config"
)

func TestBuildMemoryBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.json")
	fixture := `[{"body": "purchased $10,00 at SHOP with debit card", "received_at": "2025-09-05T12:00:00Z"}]`
	if err := os.WriteFile(path, []byte(fixture), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg := &config.Config{Backend: "memory", MessagesFile: path}
	res, err := Build(context.Background(), cfg)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if res.Source == nil || res.Sink == nil || res.Renderer == nil || res.Mailer == nil {
		t.Fatalf("incomplete result: %+v", res)
	}
	if res.MemorySink == nil {
		t.Fatal("memory backend must expose the in-memory sink")
	}
}

func TestBuildMemoryBackendWithoutFixture(t *testing.T) {
	res, err := Build(context.Background(), &config.Config{Backend: "memory"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if res.Source == nil {
		t.Fatal("expected empty source")
	}
}

func TestBuildRejectsUnknownBackend(t *testing.T) {
	if _, err := Build(context.Background(), &config.Config{Backend: "oracle"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestBuildMemoryBackendBadFixture(t *testing.T) {
	cfg := &config.Config{Backend: "memory", MessagesFile: filepath.Join(t.TempDir(), "missing.json")}
	if _, err := Build(context.Background(), cfg); err == nil {
		t.Fatal("expected error for missing fixture")
	}
}
