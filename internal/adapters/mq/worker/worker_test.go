package worker

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/mirzakhani/gamerank/internal/domain/model"
	"github.com/mirzakhani/gamerank/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeQueue struct {
	jobs chan Job
}

func (q *fakeQueue) Dequeue(ctx context.Context) <-chan Job { return q.jobs }

type fakePredictor struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (p *fakePredictor) setErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func (p *fakePredictor) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func (p *fakePredictor) PredictBatch(ctx context.Context, ownerID string, itemIDs []string) ([]model.ItemPrediction, error) {
	p.mu.Lock()
	p.calls++
	err := p.err
	p.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := make([]model.ItemPrediction, 0, len(itemIDs))
	for _, id := range itemIDs {
		out = append(out, model.ItemPrediction{ItemID: id, Predicted: true, Percentile: 75.0, Confidence: 3})
	}
	return out, nil
}

type fakeSink struct {
	mu      sync.Mutex
	batches map[string][]model.ItemPrediction
}

func newFakeSink() *fakeSink {
	return &fakeSink{batches: make(map[string][]model.ItemPrediction)}
}

func (s *fakeSink) StoreBatch(ctx context.Context, jobID string, results []model.ItemPrediction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches[jobID] = results
	return nil
}

func (s *fakeSink) get(jobID string) ([]model.ItemPrediction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.batches[jobID]
	return r, ok
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
	t.Fatal("condition not met before deadline")
}

func TestWorkerProcessesJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := &fakeQueue{jobs: make(chan Job, 4)}
	sink := newFakeSink()
	w := NewInMemoryWorker(q, &fakePredictor{}, sink, WithName("test-worker"))

	go w.Run(ctx)

	q.jobs <- Job{JobID: "job-1", OwnerID: "alice", ItemIDs: []string{"hades", "celeste"}}

	waitFor(t, func() bool {
		_, ok := sink.get("job-1")
		return ok
	})

	results, _ := sink.get("job-1")
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ItemID != "hades" || results[1].ItemID != "celeste" {
		t.Errorf("unexpected result order: %v", results)
	}

	if err := w.Shutdown(ctx); err != nil {
		t.Errorf("shutdown failed: %v", err)
	}
}

func TestWorkerContinuesAfterPredictorError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := &fakeQueue{jobs: make(chan Job, 4)}
	sink := newFakeSink()
	pred := &fakePredictor{err: errors.New("owner has too few ranked items")}
	w := NewInMemoryWorker(q, pred, sink)

	go w.Run(ctx)

	q.jobs <- Job{JobID: "bad", OwnerID: "alice", ItemIDs: []string{"hades"}}

	// Wait for the failing job to be attempted, then clear the error and
	// verify the worker still serves the next job.
	waitFor(t, func() bool { return pred.callCount() >= 1 })
	pred.setErr(nil)
	q.jobs <- Job{JobID: "good", OwnerID: "alice", ItemIDs: []string{"hades"}}

	waitFor(t, func() bool {
		_, ok := sink.get("good")
		return ok
	})

	if _, ok := sink.get("bad"); ok {
		t.Error("failed job should not reach the sink")
	}

	if err := w.Shutdown(ctx); err != nil {
		t.Errorf("shutdown failed: %v", err)
	}
}

func TestWorkerStopsWhenQueueCloses(t *testing.T) {
	ctx := context.Background()

	q := &fakeQueue{jobs: make(chan Job)}
	w := NewInMemoryWorker(q, &fakePredictor{}, newFakeSink())

	go w.Run(ctx)
	close(q.jobs)

	select {
	case <-w.done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after queue close")
	}
}

func TestPoolProcessesManyJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := &fakeQueue{jobs: make(chan Job, 64)}
	sink := newFakeSink()
	pool := NewPool(4, q, &fakePredictor{}, sink)

	pool.Start(ctx)

	for i := 0; i < 32; i++ {
		q.jobs <- Job{JobID: "job-" + string(rune('a'+i%26)) + string(rune('0'+i/26)), OwnerID: "alice", ItemIDs: []string{"hades"}}
	}

	waitFor(t, func() bool {
		sink.mu.Lock()
		defer sink.mu.Unlock()
		return len(sink.batches) == 32
	})

	close(q.jobs)
	if err := pool.Shutdown(ctx); err != nil {
		t.Errorf("pool shutdown failed: %v", err)
	}
}

func TestPoolCountsProcessedJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := &fakeQueue{jobs: make(chan Job, 16)}
	sink := newFakeSink()
	pool := NewPool(2, q, &fakePredictor{}, sink)

	pool.Start(ctx)

	const jobs = 8
	for i := 0; i < jobs; i++ {
		q.jobs <- Job{JobID: "job-" + string(rune('a'+i)), OwnerID: "alice", ItemIDs: []string{"hades"}}
	}

	waitFor(t, func() bool {
		sink.mu.Lock()
		defer sink.mu.Unlock()
		return len(sink.batches) == jobs
	})

	// The metrics ticker fires every 5s; run an update by hand and check
	// the pool saw every completed job.
	pool.updateMetrics()
	if pool.processedCount != jobs {
		t.Errorf("expected %d processed jobs, got %d", jobs, pool.processedCount)
	}

	close(q.jobs)
	if err := pool.Shutdown(ctx); err != nil {
		t.Errorf("pool shutdown failed: %v", err)
	}
}
