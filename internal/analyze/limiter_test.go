package analyze

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/semaphore"
)

// The analyzer relies on the weighted semaphore's FIFO waiter queue for slot
// admission: when the limiter is saturated, the oldest queued request is
// admitted as soon as a slot frees up.
func TestSlotAdmission_FIFO(t *testing.T) {
	ctx := context.Background()
	sem := semaphore.NewWeighted(2)
	require.NoError(t, sem.Acquire(ctx, 2))

	var mu sync.Mutex
	var admitted []int
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			require.NoError(t, sem.Acquire(ctx, 1))
			mu.Lock()
			admitted = append(admitted, i)
			mu.Unlock()
		}(i)
		// Space out launches so queue order matches launch order.
		time.Sleep(30 * time.Millisecond)
	}

	for i := 0; i < 3; i++ {
		sem.Release(1)
		time.Sleep(30 * time.Millisecond)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []int{0, 1, 2}, admitted)
}
