package handlers

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockStoreSerializes(t *testing.T) {
	t.Parallel()

	deps := HandlerDeps{StoreMu: &sync.Mutex{}}

	// The counter increment is not atomic, so the race detector flags any
	// overlap between the critical sections.
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 250; j++ {
				unlock := deps.lockStore()
				counter++
				unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1000, counter)
}

func TestLockStoreWithoutMutex(t *testing.T) {
	t.Parallel()

	deps := HandlerDeps{}
	assert.NotPanics(t, func() { deps.lockStore()() })
}
