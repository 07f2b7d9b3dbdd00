// Package parallel runs independent jobs on a fixed set of goroutines.
//
// Every worker owns a state value created once when the pool starts, so
// jobs can reuse per-worker resources that are not safe for concurrent use,
// such as a warp engine and its field.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Job is a unit of work. It receives the state of the worker that runs it.
type Job[S any] func(state S)

// Stats counts jobs run since the pool started.
type Stats struct {
	// Jobs is the number of jobs that finished.
	Jobs int64

	// Stolen is how many of them ran on a worker other than the one they
	// were queued on.
	Stolen int64
}

// workerStats is written only by its worker; the padding keeps neighbouring
// workers off the same cache line.
type workerStats struct {
	_      cpu.CacheLinePad
	jobs   atomic.Int64
	stolen atomic.Int64
	_      cpu.CacheLinePad
}

// Pool is a pool of goroutines, each with its own queue and state.
//
// Jobs are distributed round-robin; idle workers steal from other queues so
// slow jobs do not hold up the batch.
//
// Pool is safe for concurrent use. A job never runs on two workers at once,
// so it has exclusive use of the state it is given.
type Pool[S any] struct {
	workers int
	states  []S
	queues  []chan func(S)
	stats   []workerStats

	// mu is held shared while Run queues jobs and exclusively by Close, so
	// no job is queued after the workers begin to exit.
	mu      sync.RWMutex
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewPool starts workers goroutines. newState is called once per worker,
// in order, before any job runs. If workers is 0 or negative, GOMAXPROCS
// is used.
func NewPool[S any](workers int, newState func(worker int) S) *Pool[S] {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := max(workers*4, 8)

	p := &Pool[S]{
		workers: workers,
		states:  make([]S, workers),
		queues:  make([]chan func(S), workers),
		stats:   make([]workerStats, workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.states[i] = newState(i)
		p.queues[i] = make(chan func(S), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *Pool[S]) worker(id int) {
	defer p.wg.Done()

	state := p.states[id]
	mine := p.queues[id]
	st := &p.stats[id]
	for {
		select {
		case <-p.done:
			p.drain(mine, state, st)
			return
		case job := <-mine:
			job(state)
			st.jobs.Add(1)
		default:
			if job := p.steal(id); job != nil {
				job(state)
				st.jobs.Add(1)
				st.stolen.Add(1)
				continue
			}
			select {
			case <-p.done:
				p.drain(mine, state, st)
				return
			case job := <-mine:
				job(state)
				st.jobs.Add(1)
			}
		}
	}
}

func (p *Pool[S]) drain(queue chan func(S), state S, st *workerStats) {
	for {
		select {
		case job := <-queue:
			job(state)
			st.jobs.Add(1)
		default:
			return
		}
	}
}

// steal takes one job from another worker's queue, or returns nil.
func (p *Pool[S]) steal(id int) func(S) {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case job := <-p.queues[i]:
			return job
		default:
		}
	}
	return nil
}

// Run executes jobs and waits for all of them to finish.
// It returns false without running anything if the pool is closed.
func (p *Pool[S]) Run(jobs []Job[S]) bool {
	p.mu.RLock()
	if !p.running.Load() {
		p.mu.RUnlock()
		return false
	}

	var pending sync.WaitGroup
	pending.Add(len(jobs))
	for i, job := range jobs {
		p.queues[i%p.workers] <- func(s S) {
			defer pending.Done()
			job(s)
		}
	}
	p.mu.RUnlock()

	pending.Wait()
	return true
}

// Close stops accepting work, lets queued jobs finish and stops the workers.
// Close is safe to call multiple times.
func (p *Pool[S]) Close() {
	p.mu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.mu.Unlock()
		return
	}
	close(p.done)
	p.mu.Unlock()
	p.wg.Wait()
}

// Stats returns the job counters summed over all workers. A job is counted
// after it returns, so the counters may lag Run; they are exact once Close
// returns.
func (p *Pool[S]) Stats() Stats {
	var total Stats
	for i := range p.stats {
		total.Jobs += p.stats[i].jobs.Load()
		total.Stolen += p.stats[i].stolen.Load()
	}
	return total
}

// Workers returns the number of workers in the pool.
func (p *Pool[S]) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts work.
func (p *Pool[S]) IsRunning() bool {
	return p.running.Load()
}
