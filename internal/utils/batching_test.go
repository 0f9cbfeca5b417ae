package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchBufferAddAndDrain(t *testing.T) {
	buf := NewBatchBuffer[int]()
	assert.False(t, buf.HasData())

	buf.Add(1, 2, 3)
	assert.Equal(t, 3, buf.Size())

	batch := buf.GetAndClear()
	assert.Equal(t, []int{1, 2, 3}, batch)
	assert.False(t, buf.HasData())
	assert.Nil(t, buf.GetAndClear())
}

func TestBatchBufferConcurrentAdds(t *testing.T) {
	buf := NewBatchBuffer[int]()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				buf.Add(n)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1000, buf.Size())
}
