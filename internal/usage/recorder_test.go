package usage

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/park285/exam-gen-server-go/internal/config"
)

type fakeStore struct {
	mu      sync.Mutex
	input   int64
	output  int64
	count   int64
	flushes int
	err     error
}

func (f *fakeStore) RecordUsage(_ context.Context, inputTokens, outputTokens, requestCount int64, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.input += inputTokens
	f.output += outputTokens
	f.count += requestCount
	f.flushes++
	return nil
}

func (f *fakeStore) GetDailyUsage(context.Context, time.Time) (*DailyUsage, error) { return nil, nil }
func (f *fakeStore) GetRecentUsage(context.Context, int) ([]DailyUsage, error)    { return nil, nil }
func (f *fakeStore) GetTotalUsage(context.Context, int) (DailyUsage, error)       { return DailyUsage{}, nil }
func (f *fakeStore) Close()                                                       {}

func TestNewRecorderDisabled(t *testing.T) {
	recorder := NewRecorder(config.DatabaseConfig{UsageEnabled: false}, &fakeStore{}, nil)
	if recorder != nil {
		t.Fatalf("expected nil recorder when disabled")
	}

	// nil Recorder 호출은 안전해야 한다.
	recorder.Record(t.Context(), 10, 20)
	recorder.Close()
}

func TestRecorderFlushOnClose(t *testing.T) {
	store := &fakeStore{}
	cfg := config.DatabaseConfig{UsageEnabled: true, UsageFlushIntervalSeconds: 3600}
	recorder := NewRecorder(cfg, store, nil)
	if recorder == nil {
		t.Fatalf("expected recorder")
	}

	recorder.Record(t.Context(), 10, 20)
	recorder.Record(t.Context(), 5, 5)
	recorder.Record(t.Context(), 0, 0) // 무시되어야 한다
	recorder.Close()

	store.mu.Lock()
	defer store.mu.Unlock()
	if store.input != 15 || store.output != 25 || store.count != 2 {
		t.Fatalf("unexpected totals: input=%d output=%d count=%d", store.input, store.output, store.count)
	}
}

func TestRecorderPeriodicFlush(t *testing.T) {
	store := &fakeStore{}
	cfg := config.DatabaseConfig{UsageEnabled: true, UsageFlushIntervalSeconds: 1}
	recorder := NewRecorder(cfg, store, nil)
	recorder.Record(t.Context(), 1, 1)

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		store.mu.Lock()
		flushed := store.flushes > 0
		store.mu.Unlock()
		if flushed {
			recorder.Close()
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("expected a periodic flush")
}

func TestDailyUsageTotals(t *testing.T) {
	daily := DailyUsage{InputTokens: 100, OutputTokens: 50}
	if daily.TotalTokens() != 150 {
		t.Fatalf("expected 150, got %d", daily.TotalTokens())
	}
}
