package middleware

import (
	"log/slog"
	"runtime/debug"
	"sync"
)

// Dispatcher runs jobs per user in submission order. Each user with queued
// work gets one goroutine that drains the queue and exits when it is empty,
// so users never wait on each other's queues. At most maxActive jobs run at
// once across all users.
type Dispatcher struct {
	mu     sync.Mutex
	queues map[int64][]func()
	sem    chan struct{}
	wg     sync.WaitGroup
}

func NewDispatcher(maxActive int) *Dispatcher {
	if maxActive < 1 {
		maxActive = 1
	}
	return &Dispatcher{
		queues: make(map[int64][]func()),
		sem:    make(chan struct{}, maxActive),
	}
}

// Submit queues job behind the user's earlier jobs. It never blocks.
func (d *Dispatcher) Submit(userID int64, job func()) {
	d.mu.Lock()
	if q, running := d.queues[userID]; running {
		d.queues[userID] = append(q, job)
		d.mu.Unlock()
		return
	}
	d.queues[userID] = []func(){job}
	d.wg.Add(1)
	d.mu.Unlock()

	go d.drain(userID)
}

func (d *Dispatcher) drain(userID int64) {
	defer d.wg.Done()

	for {
		d.mu.Lock()
		q := d.queues[userID]
		if len(q) == 0 {
			delete(d.queues, userID)
			d.mu.Unlock()
			return
		}
		job := q[0]
		q[0] = nil
		d.queues[userID] = q[1:]
		d.mu.Unlock()

		d.run(userID, job)
	}
}

func (d *Dispatcher) run(userID int64, job func()) {
	d.sem <- struct{}{}
	defer func() { <-d.sem }()

	// A panicking job must not strand the rest of the user's queue.
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic recovered in dispatcher",
				"panic", r,
				"user_id", userID,
				"stack", string(debug.Stack()),
			)
		}
	}()

	job()
}

// Active returns the number of users with queued or running jobs.
func (d *Dispatcher) Active() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queues)
}

// Wait blocks until every queue has drained.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
