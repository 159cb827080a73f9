// Implements the WaitQueue, which holds processes parked on a Resource or Container.

package sim

import (
	"fmt"
	"strings"
)

// WaitQueue is a FIFO queue of waiters. Resources and containers serve it
// strictly from the front, which is what makes grants arrival-ordered.
type WaitQueue[T any] struct {
	queue []T // FIFO queue of waiters
}

// Enqueue adds a waiter to the back of the queue.
func (wq *WaitQueue[T]) Enqueue(w T) {
	wq.queue = append(wq.queue, w)
}

func (wq *WaitQueue[T]) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range wq.queue {
		sb.WriteString(fmt.Sprint(val))
		if i < len(wq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of waiters in the queue.
func (wq *WaitQueue[T]) Len() int {
	return len(wq.queue)
}

// Peek returns the waiter at the front of the queue without removing it.
// ok is false if the queue is empty.
func (wq *WaitQueue[T]) Peek() (w T, ok bool) {
	if len(wq.queue) == 0 {
		return w, false
	}
	return wq.queue[0], true
}

// Dequeue removes and returns the waiter at the front of the queue.
// ok is false if the queue is empty.
func (wq *WaitQueue[T]) Dequeue() (w T, ok bool) {
	if len(wq.queue) == 0 {
		return w, false
	}
	w = wq.queue[0]
	var zero T
	wq.queue[0] = zero
	wq.queue = wq.queue[1:]
	return w, true
}

// RemoveFunc removes the first waiter for which match returns true, keeping
// the order of the others. It reports whether a waiter was removed.
func (wq *WaitQueue[T]) RemoveFunc(match func(T) bool) bool {
	for i, w := range wq.queue {
		if match(w) {
			wq.queue = append(wq.queue[:i], wq.queue[i+1:]...)
			return true
		}
	}
	return false
}
