package scraper

import "sync"

// Gate is a fixed-size admission gate bounding how many detail-page
// fetches are in flight at once for a single site.
type Gate struct {
	sem chan struct{}
	wg  sync.WaitGroup
}

// NewGate creates a gate admitting at most size concurrent jobs.
func NewGate(size int) *Gate {
	if size < 1 {
		size = 1
	}
	return &Gate{sem: make(chan struct{}, size)}
}

// Go runs job in its own goroutine once a slot is free.
func (g *Gate) Go(job func()) {
	g.wg.Add(1)
	g.sem <- struct{}{}

	go func() {
		defer g.wg.Done()
		defer func() { <-g.sem }()
		job()
	}()
}

// Wait blocks until every admitted job has finished.
func (g *Gate) Wait() {
	g.wg.Wait()
}
