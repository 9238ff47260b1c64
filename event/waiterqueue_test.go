package event

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWaiterQueueFIFOOrder(t *testing.T) {
	q := newWaiterQueue()
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		q.enqueue(waiterFunc(func() { order = append(order, i) }))
	}
	for i := 0; i < 5; i++ {
		q.dequeue().Wake()
	}
	require.Equal(t, []int{0, 1, 2, 3, 4}, order)
	require.Nil(t, q.dequeue())
}

func TestWaiterQueueConcurrentEnqueue(t *testing.T) {
	q := newWaiterQueue()
	const n = 200
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			q.enqueue(waiterFunc(func() {}))
		}()
	}
	wg.Wait()

	count := 0
	for q.dequeue() != nil {
		count++
	}
	require.Equal(t, n, count)
}

type waiterFunc func()

func (f waiterFunc) Wake() { f() }
