package worker

import (
	"context"
	"sync"
)

// Task is one unit of work. Key identifies it in the result stream.
type Task struct {
	Key string
	Run func(ctx context.Context) error
}

type Result struct {
	Key string
	Err error
}

// Pool runs tasks on a fixed number of goroutines. Start Run before
// submitting, then Close once every task has been submitted.
type Pool struct {
	workers int
	tasks   chan Task
	wg      sync.WaitGroup
}

func NewPool(workers, buffer int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &Pool{
		workers: workers,
		tasks:   make(chan Task, buffer),
	}
}

// Submit enqueues t, giving up when ctx is done.
func (p *Pool) Submit(ctx context.Context, t Task) bool {
	if p == nil || t.Run == nil {
		return false
	}
	select {
	case <-ctx.Done():
		return false
	case p.tasks <- t:
		return true
	}
}

func (p *Pool) Close() {
	if p == nil {
		return
	}
	close(p.tasks)
}

func (p *Pool) Run(ctx context.Context) <-chan Result {
	out := make(chan Result, p.workers)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					err := t.Run(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- Result{Key: t.Key, Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		close(out)
	}()

	return out
}

// RunAll submits tasks and collects every result. Results arrive in
// completion order.
func RunAll(ctx context.Context, workers int, tasks []Task) []Result {
	p := NewPool(workers, len(tasks))
	results := p.Run(ctx)

	go func() {
		defer p.Close()
		for _, t := range tasks {
			if !p.Submit(ctx, t) {
				return
			}
		}
	}()

	out := make([]Result, 0, len(tasks))
	for r := range results {
		out = append(out, r)
	}
	return out
}
