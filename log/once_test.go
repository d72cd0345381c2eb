package log

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnceRunsFirstCallOnly(t *testing.T) {
	once := NewOnce()
	calls := 0

	assert.True(t, once.Do("tasks", func() { calls++ }))
	assert.False(t, once.Do("tasks", func() { calls++ }))
	assert.True(t, once.Do("users", func() { calls++ }))

	assert.Equal(t, 2, calls)
	assert.True(t, once.Seen("tasks"))
	assert.False(t, once.Seen("projects"))
}

func TestOnceConcurrent(t *testing.T) {
	once := NewOnce()
	var mu sync.Mutex
	calls := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			once.Do("key", func() {
				mu.Lock()
				calls++
				mu.Unlock()
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, calls)
}
