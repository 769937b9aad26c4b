package lifecycle_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/fieldline/triage/pkg/lifecycle"
)

func TestStartupReadiness(t *testing.T) {
	lc := lifecycle.New()

	if lc.Ready() {
		t.Error("ready before startup")
	}

	var ran atomic.Bool
	lc.OnStartup(func() {
		ran.Store(true)
	})

	lc.WaitForStartup()

	if !ran.Load() {
		t.Error("startup hook did not run")
	}
	if !lc.Ready() {
		t.Error("not ready after startup completed")
	}
}

func TestShutdownCancelsContext(t *testing.T) {
	lc := lifecycle.New()

	done := make(chan struct{})
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		close(done)
	})

	if err := lc.Shutdown(time.Second); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}

	select {
	case <-done:
	default:
		t.Error("shutdown hook did not complete")
	}

	select {
	case <-lc.Context().Done():
	default:
		t.Error("context not cancelled after shutdown")
	}
}

func TestShutdownTimeout(t *testing.T) {
	lc := lifecycle.New()

	release := make(chan struct{})
	lc.OnShutdown(func() {
		<-release
	})

	if err := lc.Shutdown(10 * time.Millisecond); err == nil {
		t.Error("shutdown did not report timeout for a stuck hook")
	}
	close(release)
}
