package taskqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/linvex-software/lvx-ecommerce/internal/pkg/cache"
)

const (
	// Redis key prefix for persisted job records
	JobKeyPrefix = "task:"

	// Jobs records expire after 24 hours
	JobTTL = 24 * time.Hour

	queueBuffer = 1024
)

// Processor executes one job. Implementations are registered per job type.
type Processor interface {
	Process(ctx context.Context, job *Job) error
}

// ProcessorFunc adapts a function to the Processor interface.
type ProcessorFunc func(ctx context.Context, job *Job) error

func (f ProcessorFunc) Process(ctx context.Context, job *Job) error {
	return f(ctx, job)
}

// Handle tracks one enqueued job. Done closes when the job reaches a
// terminal status, which lets callers (and tests) wait on completion
// instead of sleeping.
type Handle struct {
	job  *Job
	err  error
	done chan struct{}
}

// Job returns the tracked job record.
func (h *Handle) Job() *Job {
	return h.job
}

// Done returns a channel closed once the job is completed or failed.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Err returns the processing error, if any. Only valid after Done closes.
func (h *Handle) Err() error {
	return h.err
}

// Queue runs background jobs on a fixed worker pool. Job records are
// persisted to Redis best-effort for operator triage; delivery itself is
// in-process, one pickup per enqueued job.
type Queue struct {
	workers    int
	jobs       chan *Handle
	processors map[JobType]Processor
	persist    bool
	stopCh     chan struct{}
	wg         sync.WaitGroup
	pending    sync.WaitGroup
	mu         sync.Mutex
	running    bool
}

// NewQueue creates a new job queue
func NewQueue(workers int) *Queue {
	if workers <= 0 {
		workers = 3 // Default number of workers
	}

	return &Queue{
		workers:    workers,
		jobs:       make(chan *Handle, queueBuffer),
		processors: make(map[JobType]Processor),
		persist:    true,
		stopCh:     make(chan struct{}),
	}
}

// Register binds a processor to a job type. Must be called before Start.
func (q *Queue) Register(jobType JobType, processor Processor) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.processors[jobType] = processor
}

// DisablePersistence turns off Redis job records (in-memory only mode).
func (q *Queue) DisablePersistence() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.persist = false
}

// Start starts the job queue workers
func (q *Queue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.running {
		return
	}

	q.running = true
	q.stopCh = make(chan struct{})
	log.Infof("[TaskQueue] Starting %d workers", q.workers)

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}
}

// Stop stops the job queue workers after in-flight jobs finish
func (q *Queue) Stop() {
	q.mu.Lock()
	if !q.running {
		q.mu.Unlock()
		return
	}
	q.running = false
	close(q.stopCh)
	q.mu.Unlock()

	log.Info("[TaskQueue] Stopping workers...")
	q.wg.Wait()
	log.Info("[TaskQueue] All workers stopped")
}

// Enqueue adds a job and returns its handle. The job is picked up exactly
// once by one worker.
func (q *Queue) Enqueue(jobType JobType, payload map[string]interface{}) (*Handle, error) {
	now := time.Now()
	job := &Job{
		ID:        uuid.NewString(),
		Type:      jobType,
		Status:    JobStatusPending,
		Payload:   payload,
		CreatedAt: now,
		UpdatedAt: now,
	}
	handle := &Handle{job: job, done: make(chan struct{})}

	q.persistJob(job)

	q.pending.Add(1)
	select {
	case q.jobs <- handle:
		return handle, nil
	default:
		q.pending.Done()
		return nil, fmt.Errorf("task queue full (%d jobs buffered)", queueBuffer)
	}
}

// Wait blocks until every job enqueued so far reached a terminal status.
func (q *Queue) Wait() {
	q.pending.Wait()
}

func (q *Queue) worker(id int) {
	defer q.wg.Done()

	for {
		select {
		case <-q.stopCh:
			return
		case handle := <-q.jobs:
			q.process(id, handle)
		}
	}
}

func (q *Queue) process(workerID int, handle *Handle) {
	defer q.pending.Done()
	defer close(handle.done)

	job := handle.job
	now := time.Now()
	job.Status = JobStatusProcessing
	job.ProcessedAt = &now
	job.UpdatedAt = now
	q.persistJob(job)

	q.mu.Lock()
	processor, ok := q.processors[job.Type]
	q.mu.Unlock()

	var err error
	if !ok {
		err = fmt.Errorf("no processor registered for job type %q", job.Type)
	} else {
		err = processor.Process(context.Background(), job)
	}

	done := time.Now()
	job.CompletedAt = &done
	job.UpdatedAt = done
	if err != nil {
		job.Status = JobStatusFailed
		job.ErrorMsg = err.Error()
		handle.err = err
		log.Errorf("[TaskQueue] Worker %d: job %s (%s) failed: %v", workerID, job.ID, job.Type, err)
	} else {
		job.Status = JobStatusCompleted
	}
	q.persistJob(job)
}

// persistJob writes the job record to Redis for operator triage. Failures
// are logged, never propagated: the queue still delivers in-process.
func (q *Queue) persistJob(job *Job) {
	q.mu.Lock()
	persist := q.persist
	q.mu.Unlock()
	if !persist {
		return
	}

	data, err := json.Marshal(job)
	if err != nil {
		log.Errorf("[TaskQueue] Failed to marshal job %s: %v", job.ID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := cache.GetClient().Set(ctx, JobKeyPrefix+job.ID, data, JobTTL).Err(); err != nil {
		log.Warnf("[TaskQueue] Failed to persist job %s: %v", job.ID, err)
	}
}
