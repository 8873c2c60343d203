package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/BloggingApp/comment-service/internal/config"
)

func TestShutdownBeforeRun(t *testing.T) {
	srv := New(config.ServerConfig{
		Port:    "0",
		Handler: http.NotFoundHandler(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() = err %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- srv.Run() }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() after Shutdown() = err %v, want nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run() kept serving after Shutdown()")
	}
}
