package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/guroosh/ledger/internal/ledger"
)

type fakeGenerator struct {
	mu    sync.Mutex
	calls []time.Time
	err   error
}

func (f *fakeGenerator) Generate(_ context.Context, _ string, date time.Time) (ledger.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, date)
	if f.err != nil {
		return ledger.Report{}, f.err
	}
	return ledger.Report{Currency: "SAR"}, nil
}

func (f *fakeGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeHook struct {
	mu      sync.Mutex
	reports []ledger.Report
}

func (f *fakeHook) Export(_ context.Context, report ledger.Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports = append(f.reports, report)
	return nil
}

func (f *fakeHook) exportCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reports)
}

func TestRunGeneratesOnStartup(t *testing.T) {
	gen := &fakeGenerator{}
	hook := &fakeHook{}
	w := NewSnapshotWorker(gen, "default", time.Hour, hook)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	waitFor(t, func() bool { return gen.callCount() == 1 })
	waitFor(t, func() bool { return hook.exportCount() == 1 })
	cancel()
	<-done

	gen.mu.Lock()
	date := gen.calls[0]
	gen.mu.Unlock()
	if date.Hour() != 0 || date.Minute() != 0 || date.Location() != time.UTC {
		t.Errorf("snapshot date = %v, want midnight UTC", date)
	}
}

func TestRunSkipsHookOnGenerationFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("db down")}
	hook := &fakeHook{}
	w := NewSnapshotWorker(gen, "default", time.Hour, hook)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	waitFor(t, func() bool { return gen.callCount() == 1 })
	cancel()
	<-done

	if hook.exportCount() != 0 {
		t.Errorf("hook called %d times after failed generation, want 0", hook.exportCount())
	}
}

func TestRunWithoutHook(t *testing.T) {
	gen := &fakeGenerator{}
	w := NewSnapshotWorker(gen, "default", time.Hour, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	waitFor(t, func() bool { return gen.callCount() == 1 })
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}
