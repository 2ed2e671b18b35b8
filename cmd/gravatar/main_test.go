package main

import (
	"context"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestServeShutsDownOnCancel(t *testing.T) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, e, "127.0.0.1:0")
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("serve did not return after cancel")
	}
}

func TestServeReturnsStartError(t *testing.T) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	err := serve(context.Background(), e, "127.0.0.1:-1")
	if err == nil {
		t.Fatalf("expected listen error")
	}
}
