package collect

import (
	"context"
	"errors"
	"sync"
	"time"

	"knews/internal/logger"
	"knews/internal/metrics"
	"knews/internal/pacing"
)

// ErrNoKeywords is the only error a whole batch can fail with: there was
// nothing to do.
var ErrNoKeywords = errors.New("no keywords to collect")

// TaskState tracks one keyword task through its lifecycle.
type TaskState int

const (
	TaskQueued TaskState = iota
	TaskRunning
	TaskSucceeded
	TaskFailed
	TaskTimedOut
)

func (s TaskState) String() string {
	switch s {
	case TaskQueued:
		return "queued"
	case TaskRunning:
		return "running"
	case TaskSucceeded:
		return "succeeded"
	case TaskFailed:
		return "failed"
	case TaskTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// KeywordResult is the outcome of one keyword task.
type KeywordResult struct {
	Keyword  string
	Articles []Article
	State    TaskState
	Err      error
}

// Runner executes keyword collections on a bounded worker pool. Workers
// share one pacing gate, so pool size bounds concurrency while the gate
// bounds request rate; per-task timeouts keep one slow keyword from
// stalling the batch.
type Runner struct {
	Orchestrator *Orchestrator
	Workers      int
	Timeout      time.Duration
	Gate         pacing.Gate
}

func NewRunner(o *Orchestrator, workers int, timeout time.Duration, gate pacing.Gate) *Runner {
	if workers < 1 {
		workers = 1
	}
	if gate == nil {
		gate = pacing.NopGate{}
	}
	return &Runner{
		Orchestrator: o,
		Workers:      workers,
		Timeout:      timeout,
		Gate:         gate,
	}
}

// CollectAll runs every keyword through the pool and returns one result per
// keyword, in input order. Individual failures and timeouts land in their
// result; only an empty keyword list fails the batch.
func (r *Runner) CollectAll(ctx context.Context, keywords []string) ([]KeywordResult, error) {
	if len(keywords) == 0 {
		return nil, ErrNoKeywords
	}

	results := make([]KeywordResult, len(keywords))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < r.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = r.runOne(ctx, keywords[idx])
			}
		}()
	}

	for idx := range keywords {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	return results, nil
}

func (r *Runner) runOne(ctx context.Context, keyword string) KeywordResult {
	result := KeywordResult{Keyword: keyword, State: TaskRunning}

	taskCtx := ctx
	cancel := context.CancelFunc(func() {})
	if r.Timeout > 0 {
		taskCtx, cancel = context.WithTimeout(ctx, r.Timeout)
	}
	defer cancel()

	if err := r.Gate.Wait(taskCtx); err != nil {
		return r.finish(result, nil, err)
	}

	start := time.Now()
	articles, err := r.Orchestrator.Collect(taskCtx, keyword)
	metrics.Global.RecordCollectionTime(time.Since(start))

	return r.finish(result, articles, err)
}

func (r *Runner) finish(result KeywordResult, articles []Article, err error) KeywordResult {
	switch {
	case err == nil:
		result.State = TaskSucceeded
		result.Articles = articles
	case errors.Is(err, context.DeadlineExceeded):
		result.State = TaskTimedOut
		result.Err = err
		metrics.Global.IncrementTaskTimeouts()
		logger.Warn("keyword task timed out", "keyword", result.Keyword)
	default:
		result.State = TaskFailed
		result.Err = err
		logger.Warn("keyword task failed", "keyword", result.Keyword, "error", err)
	}
	return result
}
