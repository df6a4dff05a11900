package queue

import (
	"sync"

	"github.com/go-scripts/shortlist/internal/types"
)

// Task is one entity waiting to be scraped, addressed by its discovery index
type Task struct {
	Index int
	Link  types.EntityLink
}

// Queue is a thread-safe FIFO of scrape tasks. Each identifier is accepted once.
type Queue struct {
	tasks     []Task
	seen      map[string]bool
	total     int
	processed int
	mu        sync.Mutex
}

// New creates a new Queue holding links in discovery order
func New(links []types.EntityLink) *Queue {
	q := &Queue{
		tasks: make([]Task, 0, len(links)),
		seen:  make(map[string]bool, len(links)),
	}
	for _, link := range links {
		q.Add(link)
	}
	return q
}

// Add appends a link if its identifier hasn't been queued before
func (q *Queue) Add(link types.EntityLink) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.seen[link.Identifier] {
		return false
	}
	q.seen[link.Identifier] = true
	q.tasks = append(q.tasks, Task{Index: q.total, Link: link})
	q.total++
	return true
}

// Next returns the next task to process
func (q *Queue) Next() (Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.tasks) == 0 {
		return Task{}, false
	}

	task := q.tasks[0]
	q.tasks = q.tasks[1:]
	q.processed++

	return task, true
}

// Len returns the number of tasks still waiting
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Total returns the number of tasks ever accepted
func (q *Queue) Total() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.total
}

// Processed returns the number of tasks handed out by Next
func (q *Queue) Processed() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.processed
}
