package parallel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWorkerPool(t *testing.T) {
	wp := NewWorkerPool(0)
	defer wp.Close()

	assert.Positive(t, wp.numWorkers)
}

func TestProcessIndexed(t *testing.T) {
	t.Run("Preserves order", func(t *testing.T) {
		wp := NewWorkerPool(4)
		defer wp.Close()

		items := make([]int, 100)
		for i := range items {
			items[i] = i
		}

		results := ProcessIndexed(wp, items, func(_ int, v int) int {
			return v * 2
		})

		assert.Len(t, results, 100)
		for i, r := range results {
			assert.Equal(t, i*2, r)
		}
	})

	t.Run("Empty input", func(t *testing.T) {
		wp := NewWorkerPool(2)
		defer wp.Close()

		results := ProcessIndexed(wp, nil, func(_ int, v int) int { return v })
		assert.Nil(t, results)
	})

	t.Run("Worker receives its index", func(t *testing.T) {
		wp := NewWorkerPool(3)
		defer wp.Close()

		results := ProcessIndexed(wp, []string{"a", "b", "c"}, func(i int, s string) string {
			return s + "-" + string(rune('0'+i))
		})

		assert.Equal(t, []string{"a-0", "b-1", "c-2"}, results)
	})
}
