package run

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// errQuotaReached stops late commits once the run already holds its quota
// of clips. The job that hits it counts as failed and cleans up normally.
var errQuotaReached = errors.New("clip quota reached")

// allocator serialises commits so committed ordinals form a contiguous
// 1-based run with no gaps and no duplicates, regardless of which jobs
// fail. Reservation and rename happen under one lock, so concurrent
// workers cannot interleave commits.
type allocator struct {
	mu     sync.Mutex
	outDir string
	quota  int
	next   int
}

func newAllocator(outDir string, quota int) *allocator {
	return &allocator{outDir: outDir, quota: quota, next: 1}
}

// commit moves a staged clip to the next numbered output path. A rename
// failure releases the ordinal: nothing was committed.
func (a *allocator) commit(staged string) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.next > a.quota {
		return 0, errQuotaReached
	}

	final := filepath.Join(a.outDir, fmt.Sprintf("clip_%d.mp4", a.next))
	if err := os.Rename(staged, final); err != nil {
		return 0, fmt.Errorf("cannot place clip %d: %w", a.next, err)
	}

	n := a.next
	a.next++
	return n, nil
}

// committed returns the number of clips committed so far.
func (a *allocator) committed() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.next - 1
}

// full reports whether the quota is exhausted.
func (a *allocator) full() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.next > a.quota
}
