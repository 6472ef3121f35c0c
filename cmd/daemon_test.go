package cmd

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestReloadDebouncerCoalescesBursts(t *testing.T) {
	var reloads atomic.Int32
	d := newReloadDebouncer(20*time.Millisecond, func() {
		reloads.Add(1)
	})

	// A burst of events inside the window must produce one reload.
	for i := 0; i < 5; i++ {
		d.Trigger()
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	if got := reloads.Load(); got != 1 {
		t.Fatalf("reloads = %d, want 1 for a coalesced burst", got)
	}

	// A later event starts a fresh window.
	d.Trigger()
	time.Sleep(100 * time.Millisecond)
	if got := reloads.Load(); got != 2 {
		t.Errorf("reloads = %d, want 2 after a second burst", got)
	}
}

func TestReloadDebouncerConcurrentTriggers(t *testing.T) {
	var reloads atomic.Int32
	d := newReloadDebouncer(10*time.Millisecond, func() {
		reloads.Add(1)
	})

	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			for j := 0; j < 25; j++ {
				d.Trigger()
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}

	time.Sleep(100 * time.Millisecond)
	if got := reloads.Load(); got < 1 {
		t.Errorf("reloads = %d, want at least one after concurrent triggers", got)
	}
}
