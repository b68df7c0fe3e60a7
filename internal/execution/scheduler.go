package execution

// Scheduler groups specs into batches, one engine process per batch
type Scheduler interface {
	Schedule(specs []string, workerCount int) [][]string
}

// RoundRobinScheduler distributes specs evenly over one batch per worker
type RoundRobinScheduler struct{}

// NewRoundRobinScheduler creates a new RoundRobinScheduler
func NewRoundRobinScheduler() *RoundRobinScheduler {
	return &RoundRobinScheduler{}
}

// Schedule distributes specs using round-robin. Empty batches are dropped,
// so a single worker yields a single batch holding every spec.
func (s *RoundRobinScheduler) Schedule(specs []string, workerCount int) [][]string {
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > len(specs) {
		workerCount = len(specs)
	}

	batches := make([][]string, workerCount)
	for i, spec := range specs {
		batches[i%workerCount] = append(batches[i%workerCount], spec)
	}
	return batches
}

// IsolatedScheduler runs every spec in its own engine process
type IsolatedScheduler struct{}

// NewIsolatedScheduler creates a new IsolatedScheduler
func NewIsolatedScheduler() *IsolatedScheduler {
	return &IsolatedScheduler{}
}

// Schedule returns one batch per spec.
func (s *IsolatedScheduler) Schedule(specs []string, _ int) [][]string {
	batches := make([][]string, 0, len(specs))
	for _, spec := range specs {
		batches = append(batches, []string{spec})
	}
	return batches
}
