package player

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	assert.Equal(t, 0, q.Len())
	assert.Nil(t, q.Pop())

	a := &Track{Title: "a"}
	b := &Track{Title: "b"}
	c := &Track{Title: "c"}
	q.Push(a)
	q.Push(b)
	q.Push(c)

	require.Equal(t, 3, q.Len())
	assert.Same(t, a, q.Pop())
	assert.Same(t, b, q.Pop())
	assert.Same(t, c, q.Pop())
	assert.Nil(t, q.Pop())
}

func TestQueueListPreservesInsertionOrder(t *testing.T) {
	q := NewQueue()
	for i := 0; i < 100; i++ {
		q.Push(&Track{Title: fmt.Sprintf("track-%03d", i)})
	}

	listed := q.List(0)
	require.Len(t, listed, 100)
	for i, tr := range listed {
		assert.Equal(t, fmt.Sprintf("track-%03d", i), tr.Title)
	}
}

func TestQueueListLimit(t *testing.T) {
	q := NewQueue()
	for i := 0; i < 10; i++ {
		q.Push(&Track{Title: fmt.Sprintf("t%d", i)})
	}

	listed := q.List(3)
	require.Len(t, listed, 3)
	assert.Equal(t, "t0", listed[0].Title)
	assert.Equal(t, "t2", listed[2].Title)

	// listing does not mutate
	assert.Equal(t, 10, q.Len())

	assert.Len(t, q.List(50), 10)
}

func TestQueueClear(t *testing.T) {
	q := NewQueue()
	q.Push(&Track{Title: "a"})
	q.Push(&Track{Title: "b"})

	q.Clear()
	assert.Equal(t, 0, q.Len())
	assert.Nil(t, q.Pop())
}
