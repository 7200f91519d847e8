package astar

import (
	"sort"
	"testing"

	"github.com/brianvoe/gofakeit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityQueueOrder(t *testing.T) {
	gofakeit.Seed(7)
	pq := NewPriorityQueue[int, float64]()
	priorities := make([]float64, 0, 100)
	for i := 0; i < 100; i++ {
		p := float64(gofakeit.Number(0, 1000))
		priorities = append(priorities, p)
		pq.Enqueue(i, p)
	}
	require.Equal(t, 100, pq.Len())
	sort.Float64s(priorities)

	for i, want := range priorities {
		_, got, err := pq.Dequeue()
		require.NoError(t, err)
		assert.Equal(t, want, got, "dequeue %d", i)
	}
	assert.Equal(t, 0, pq.Len())
}

func TestPriorityQueueEmpty(t *testing.T) {
	pq := NewPriorityQueue[Cell, float64]()

	_, _, err := pq.Dequeue()
	assert.ErrorIs(t, err, ErrEmptyQueue)
	_, _, err = pq.Peek()
	assert.ErrorIs(t, err, ErrEmptyQueue)

	pq.Enqueue(Cell{1, 1}, 2)
	_, _, err = pq.Dequeue()
	require.NoError(t, err)
	_, _, err = pq.Dequeue()
	assert.ErrorIs(t, err, ErrEmptyQueue)
}

func TestPriorityQueueDuplicates(t *testing.T) {
	pq := NewPriorityQueue[Cell, float64]()
	pq.Enqueue(Cell{2, 3}, 5)
	pq.Enqueue(Cell{2, 3}, 1)
	pq.Enqueue(Cell{0, 0}, 3)
	assert.Equal(t, 3, pq.Len())

	item, priority, err := pq.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, Cell{2, 3}, item)
	assert.Equal(t, 1.0, priority)
	assert.True(t, pq.Contains(Cell{2, 3}), "stale duplicate stays queued")

	_, _, _ = pq.Dequeue()
	_, _, _ = pq.Dequeue()
	assert.False(t, pq.Contains(Cell{2, 3}))
}

func TestPriorityQueueContainsUsesValueEquality(t *testing.T) {
	pq := NewPriorityQueue[Cell, float64]()
	pq.Enqueue(Cell{Row: 4, Col: 5}, 1)

	assert.True(t, pq.Contains(Cell{Row: 4, Col: 5}))
	assert.False(t, pq.Contains(Cell{Row: 5, Col: 4}))
}

func TestPriorityQueueUpdate(t *testing.T) {
	pq := NewPriorityQueue[string, int]()
	pq.Enqueue("a", 10)
	pq.Enqueue("b", 20)
	pq.Enqueue("c", 30)

	assert.True(t, pq.Update("c", 5))
	assert.False(t, pq.Update("missing", 1))

	item, priority, err := pq.Peek()
	require.NoError(t, err)
	assert.Equal(t, "c", item)
	assert.Equal(t, 5, priority)

	assert.True(t, pq.Update("c", 25))
	var order []string
	for pq.Len() > 0 {
		item, _, err := pq.Dequeue()
		require.NoError(t, err)
		order = append(order, item)
	}
	assert.Equal(t, []string{"a", "b", "c"}, order)
}
