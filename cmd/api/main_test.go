package main

import (
	"context"
	"errors"
	"net/http"
	"syscall"
	"testing"
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/logging"
)

func TestServeUntilDone_ListenFailureIsReturned(t *testing.T) {
	err := serveUntilDone(context.Background(), func() error {
		return syscall.EADDRINUSE
	}, logging.Discard())
	if !errors.Is(err, syscall.EADDRINUSE) {
		t.Fatalf("err = %v, want address in use", err)
	}
}

func TestServeUntilDone_SignalIsCleanExit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})
	defer close(release)

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := serveUntilDone(ctx, func() error {
		<-release
		return http.ErrServerClosed
	}, logging.Discard())
	if err != nil {
		t.Fatalf("err = %v, want nil", err)
	}
}

func TestServeUntilDone_ServerClosedIsCleanExit(t *testing.T) {
	err := serveUntilDone(context.Background(), func() error {
		return http.ErrServerClosed
	}, logging.Discard())
	if err != nil {
		t.Fatalf("err = %v, want nil", err)
	}
}
