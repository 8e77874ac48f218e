// Showlens - TV Show Popularity & Viewer Demographics Analytics
// Copyright 2026 Dana V. (showlens)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showlens/showlens

package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

// mockServer implements HTTPServer with controllable behavior.
type mockServer struct {
	serveErr   error
	release    chan struct{}
	shutdownCh chan struct{}
}

func newMockServer() *mockServer {
	return &mockServer{
		release:    make(chan struct{}),
		shutdownCh: make(chan struct{}, 1),
	}
}

func (m *mockServer) ListenAndServe() error {
	<-m.release
	if m.serveErr != nil {
		return m.serveErr
	}
	return http.ErrServerClosed
}

func (m *mockServer) Shutdown(ctx context.Context) error {
	m.shutdownCh <- struct{}{}
	close(m.release)
	return nil
}

func TestServeGracefulShutdown(t *testing.T) {
	srv := newMockServer()
	svc := NewHTTPServerService(srv, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	select {
	case <-srv.shutdownCh:
	default:
		t.Error("Shutdown was never called")
	}
}

func TestServeListenFailure(t *testing.T) {
	srv := newMockServer()
	srv.serveErr = errors.New("listen tcp: address already in use")
	close(srv.release)
	svc := NewHTTPServerService(srv, time.Second)

	err := svc.Serve(context.Background())
	if err == nil {
		t.Fatal("Serve should propagate listen errors")
	}
	if !errors.Is(err, srv.serveErr) {
		t.Errorf("Serve = %v, want wrapped %v", err, srv.serveErr)
	}
}

func TestServerClosedIsNotAnError(t *testing.T) {
	srv := newMockServer()
	close(srv.release) // ListenAndServe returns ErrServerClosed immediately
	svc := NewHTTPServerService(srv, time.Second)

	if err := svc.Serve(context.Background()); err != nil {
		t.Errorf("Serve = %v, want nil for ErrServerClosed", err)
	}
}

func TestString(t *testing.T) {
	svc := NewHTTPServerService(newMockServer(), 0)
	if svc.String() != "http-server" {
		t.Errorf("String() = %q", svc.String())
	}
}
