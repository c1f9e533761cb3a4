package server

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/socialnet/api/internal/common/logger"
)

func TestRun_StopsOnContextCancelAndRunsHooks(t *testing.T) {
	cfg := ConfigForPort("0", 0)
	cfg.Addr = "127.0.0.1:0"
	cfg.ShutdownTimeout = time.Second
	cfg.DrainTimeout = time.Second

	srv := NewServer(cfg, http.NotFoundHandler())
	log := logger.NewWithWriter(&bytes.Buffer{}, "test", "ERROR")

	ctx, cancel := context.WithCancel(context.Background())
	hookRan := make(chan struct{}, 1)

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, srv, cfg, log, "test", func(context.Context) error {
			hookRan <- struct{}{}
			return nil
		})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}

	select {
	case <-hookRan:
	default:
		t.Error("expected shutdown hook to run")
	}
}

func TestConfigForPort(t *testing.T) {
	cfg := ConfigForPort("8080", 0)
	if cfg.Addr != ":8080" {
		t.Errorf("expected :8080, got %q", cfg.Addr)
	}
	if cfg.ReadHeaderTimeout == 0 || cfg.ShutdownTimeout == 0 || cfg.MaxHeaderBytes == 0 {
		t.Error("expected non-zero limits")
	}

	long := ConfigForPort("8080", time.Minute)
	if long.WriteTimeout <= time.Minute {
		t.Errorf("expected write timeout above request timeout, got %s", long.WriteTimeout)
	}
}
