// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package scheduler

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Aljon0/AI-RB-API/internal/ai"
	"github.com/Aljon0/AI-RB-API/internal/skills"
)

// Result is the terminal outcome delivered once per submitted job.
// Skills is always populated: real suggestions on success, the deterministic
// fallback list when Err is set.
type Result struct {
	Skills []string
	Err    error
}

// Job is one admitted skill lookup travelling through the queue.
type Job struct {
	ID         string
	Title      string
	Retries    int
	EnqueuedAt time.Time

	result chan Result
}

// deliver sends the terminal outcome and closes the result channel.
// It is called exactly once per job.
func (j *Job) deliver(res Result) {
	j.result <- res
	close(j.result)
}

// Config holds the scheduler tunables. The zero Config selects the
// production defaults; tests inject millisecond intervals.
type Config struct {
	// MinInterval is the minimum spacing between the start times of any two
	// upstream attempts, regardless of which job they belong to.
	MinInterval time.Duration

	// BaseDelay is the unit for exponential retry backoff:
	// delay = BaseDelay * 2^retries.
	BaseDelay time.Duration

	// RetryCeiling is the maximum number of rate-limit retries per job.
	RetryCeiling int
}

// DefaultConfig returns the production tunables.
func DefaultConfig() Config {
	return Config{
		MinInterval:  1 * time.Second,
		BaseDelay:    1 * time.Second,
		RetryCeiling: 3,
	}
}

// Scheduler serializes all calls into the Completer. Jobs are held in a
// FIFO queue and drained by a single run loop, so at most one upstream
// attempt is ever in flight; mutual exclusion is structural rather than a
// shared flag. Retried jobs are re-appended to the tail, which means a job
// submitted later can be delivered before an earlier job that is retrying.
type Scheduler struct {
	completer ai.Completer
	cfg       Config

	mu    sync.Mutex
	queue []*Job

	// wake nudges the run loop after an append; capacity 1 so Submit
	// never blocks.
	wake chan struct{}

	// lastAttempt is owned by the run loop and needs no locking.
	lastAttempt time.Time
}

// New creates a scheduler draining into the given completer.
// The zero Config selects the production defaults; a populated Config is
// taken as given, so RetryCeiling 0 disables retries and MinInterval 0
// disables spacing.
func New(completer ai.Completer, cfg Config) *Scheduler {
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}

	return &Scheduler{
		completer: completer,
		cfg:       cfg,
		wake:      make(chan struct{}, 1),
	}
}

// Submit admits a job and returns the channel its terminal Result will be
// delivered on. Submit never blocks; the queue append is not gated by an
// in-flight attempt.
func (s *Scheduler) Submit(title string) <-chan Result {
	job := &Job{
		ID:         uuid.NewString(),
		Title:      title,
		EnqueuedAt: time.Now(),
		result:     make(chan Result, 1),
	}

	s.mu.Lock()
	s.queue = append(s.queue, job)
	depth := len(s.queue)
	s.mu.Unlock()

	log.Printf("Submit: job=%s title=%q queueDepth=%d", job.ID, title, depth)

	s.signal()
	return job.result
}

// Run drains the queue until ctx is cancelled. It blocks; callers start it
// in a goroutine. On shutdown every job still queued is delivered a failure
// result with fallback skills so no waiter hangs.
func (s *Scheduler) Run(ctx context.Context) {
	log.Printf("Run: scheduler started minInterval=%v baseDelay=%v retryCeiling=%d",
		s.cfg.MinInterval, s.cfg.BaseDelay, s.cfg.RetryCeiling)

	for {
		job := s.pop()
		if job == nil {
			select {
			case <-ctx.Done():
				s.drainOnShutdown(ctx.Err())
				return
			case <-s.wake:
			}
			continue
		}

		if !s.process(ctx, job) {
			s.drainOnShutdown(ctx.Err())
			return
		}
	}
}

// process runs one attempt for the head job. Returns false when ctx was
// cancelled and the loop should stop.
func (s *Scheduler) process(ctx context.Context, job *Job) bool {
	// Spacing applies to every attempt, retried or not.
	if wait := s.cfg.MinInterval - time.Since(s.lastAttempt); wait > 0 {
		if !sleep(ctx, wait) {
			job.deliver(Result{Skills: skills.Fallback(job.Title), Err: ctx.Err()})
			return false
		}
	}

	s.lastAttempt = time.Now()
	attempt := job.Retries + 1
	log.Printf("process: job=%s title=%q attempt=%d", job.ID, job.Title, attempt)

	list, err := s.completer.Complete(ctx, job.Title)

	switch {
	case err == nil:
		log.Printf("process: job=%s delivered skills=%d", job.ID, len(list))
		job.deliver(Result{Skills: list})

	case errors.Is(err, ai.ErrRateLimited) && job.Retries < s.cfg.RetryCeiling:
		delay := s.cfg.BaseDelay << job.Retries
		log.Printf("process: job=%s rate limited, retry %d/%d in %v",
			job.ID, job.Retries+1, s.cfg.RetryCeiling, delay)
		if !sleep(ctx, delay) {
			job.deliver(Result{Skills: skills.Fallback(job.Title), Err: ctx.Err()})
			return false
		}
		job.Retries++
		s.requeue(job)

	default:
		if errors.Is(err, ai.ErrRateLimited) {
			log.Printf("process: job=%s retries exhausted after %d attempts", job.ID, attempt)
		} else {
			log.Printf("process: job=%s upstream error: %v", job.ID, err)
		}
		job.deliver(Result{Skills: skills.Fallback(job.Title), Err: err})
	}

	return true
}

// pop removes and returns the head job, or nil when the queue is empty.
func (s *Scheduler) pop() *Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		return nil
	}
	job := s.queue[0]
	s.queue = s.queue[1:]
	return job
}

// requeue appends a retrying job to the tail. Arrival order among queued
// jobs is preserved, original submission order is not.
func (s *Scheduler) requeue(job *Job) {
	s.mu.Lock()
	s.queue = append(s.queue, job)
	s.mu.Unlock()
	s.signal()
}

// signal is a non-blocking wake of the run loop.
func (s *Scheduler) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// drainOnShutdown fails every still-queued job so its waiter is released.
func (s *Scheduler) drainOnShutdown(cause error) {
	for {
		job := s.pop()
		if job == nil {
			return
		}
		log.Printf("drainOnShutdown: job=%s delivered fallback", job.ID)
		job.deliver(Result{Skills: skills.Fallback(job.Title), Err: cause})
	}
}

// sleep waits for d or until ctx is cancelled. Returns false on cancellation.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
