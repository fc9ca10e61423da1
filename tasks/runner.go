// Package tasks runs fire-and-forget side effects. Failures are logged and
// never reach the caller; Wait lets shutdown and tests drain in-flight work.
package tasks

import (
	"log"
	"sync"
)

type Runner struct {
	wg sync.WaitGroup
}

func NewRunner() *Runner {
	return &Runner{}
}

// Go runs fn on its own goroutine. Panics and errors are logged under name.
func (r *Runner) Go(name string, fn func() error) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("task %s panicked: %v", name, rec)
			}
		}()
		if err := fn(); err != nil {
			log.Printf("task %s: %v", name, err)
		}
	}()
}

// Wait blocks until every started task has finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}
