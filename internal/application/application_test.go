package application

import (
	"net/http"
	"os"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/Vilis322/roomsizer/internal/config"
	"github.com/Vilis322/roomsizer/internal/storage"
)

func baseTestConfig() config.Config {
	return config.Config{
		Port:                 "0",
		RollPreset:           storage.DefaultRollPreset(),
		ShutdownGracePeriod:  time.Second,
		ReadHeaderTimeout:    time.Second,
		WriteTimeout:         5 * time.Second,
		IdleTimeout:          10 * time.Second,
		EnableRequestLogging: false,
		RateLimitRPS:         0,
		RateLimitBurst:       0,
	}
}

func TestNewInitializesDependencies(t *testing.T) {
	logger := zaptest.NewLogger(t)

	app, err := New(baseTestConfig(), logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if app.storage == nil {
		t.Fatalf("expected storage to be initialized")
	}
	if app.handler == nil {
		t.Fatalf("expected handler to be initialized")
	}
	if app.Server() == nil {
		t.Fatalf("expected server to be initialized")
	}

	preset, err := app.storage.GetRollPreset()
	if err != nil {
		t.Fatalf("unexpected error reading preset: %v", err)
	}
	want := storage.DefaultRollPreset()
	if preset != want {
		t.Fatalf("expected configured preset %+v, got %+v", want, preset)
	}
}

func TestNewRejectsInvalidRollPreset(t *testing.T) {
	logger := zaptest.NewLogger(t)

	cfg := baseTestConfig()
	cfg.RollPreset.RollWidth = 0

	if _, err := New(cfg, logger); err == nil {
		t.Fatalf("expected error for invalid roll preset")
	}
}

func TestNewServerAppliesConfig(t *testing.T) {
	cfg := baseTestConfig()
	cfg.Port = "9090"
	cfg.ReadHeaderTimeout = 2 * time.Second
	cfg.WriteTimeout = 3 * time.Second
	cfg.IdleTimeout = 4 * time.Second

	server := NewServer(cfg, http.NewServeMux())

	if server.Addr != ":9090" {
		t.Fatalf("expected addr :9090, got %s", server.Addr)
	}
	if server.ReadHeaderTimeout != 2*time.Second {
		t.Fatalf("unexpected read header timeout: %s", server.ReadHeaderTimeout)
	}
	if server.WriteTimeout != 3*time.Second {
		t.Fatalf("unexpected write timeout: %s", server.WriteTimeout)
	}
	if server.IdleTimeout != 4*time.Second {
		t.Fatalf("unexpected idle timeout: %s", server.IdleTimeout)
	}
}

func TestNewServerKeepsExplicitAddr(t *testing.T) {
	cfg := baseTestConfig()
	cfg.Port = "127.0.0.1:8081"

	server := NewServer(cfg, http.NewServeMux())
	if server.Addr != "127.0.0.1:8081" {
		t.Fatalf("expected addr to be kept verbatim, got %s", server.Addr)
	}
}

func TestResolveProjectPathFindsGoMod(t *testing.T) {
	path, err := resolveProjectPath("go.mod")
	if err != nil {
		t.Fatalf("resolveProjectPath returned error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected go.mod to exist at %s: %v", path, err)
	}
}

func TestResolveProjectPathUnknownTarget(t *testing.T) {
	if _, err := resolveProjectPath("definitely-not-a-real-file"); err == nil {
		t.Fatalf("expected error for missing resource")
	}
}
