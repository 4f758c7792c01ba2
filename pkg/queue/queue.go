// Package queue implements a thread-safe request queue built on top of a
// growable ring buffer. Items are taken from the front, and a batch that
// could not be handled yet can be put back in front of everything else in
// a single step.
//
// Under single-threaded use the queue is strictly FIFO. When Add races a
// drain-and-requeue cycle, ordering is best-effort: requeued items always
// come before items added after RequeueFront returns, but items added
// during the drain may end up behind or ahead of them.
package queue

import "sync"

const minCapacity = 2

// Queue is a FIFO of values of type T. The zero value is an empty queue
// ready for use. A Queue must not be copied after first use.
type Queue[T any] struct {
	mu       sync.Mutex
	rep      []T
	first    int
	length   int
	canceled bool
}

// New returns an empty queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{rep: make([]T, minCapacity)}
}

// Add appends item to the back of the queue.
func (q *Queue[T]) Add(item T) {
	q.mu.Lock()
	q.lazyGrow(1)
	q.rep[q.index(q.length)] = item
	q.length++
	q.mu.Unlock()
}

// Next removes and returns the front item. ok is false if the queue is
// empty.
func (q *Queue[T]) Next() (item T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.length == 0 {
		return item, false
	}
	item = q.rep[q.first]
	var zero T
	q.rep[q.first] = zero
	q.first = q.index(1)
	q.length--
	return item, true
}

// RequeueFront puts items back at the front of the queue, keeping their
// relative order, so that items[0] is the next one returned by Next.
func (q *Queue[T]) RequeueFront(items []T) {
	if len(items) == 0 {
		return
	}
	q.mu.Lock()
	q.lazyGrow(len(items))
	for i := len(items) - 1; i >= 0; i-- {
		q.first = q.index(len(q.rep) - 1)
		q.rep[q.first] = items[i]
	}
	q.length += len(items)
	q.mu.Unlock()
}

// Snapshot returns a copy of all queued items from front to back without
// removing them.
func (q *Queue[T]) Snapshot() []T {
	q.mu.Lock()
	defer q.mu.Unlock()

	items := make([]T, q.length)
	q.copyTo(items)
	return items
}

func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.length
}

func (q *Queue[T]) Empty() bool {
	return q.Len() == 0
}

// Cancel marks the queue as cancelled. It does not touch the contents.
func (q *Queue[T]) Cancel() {
	q.mu.Lock()
	q.canceled = true
	q.mu.Unlock()
}

// Cancelled reports whether Cancel has been called.
func (q *Queue[T]) Cancelled() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.canceled
}

// Clear drops every item and releases the backing storage.
func (q *Queue[T]) Clear() {
	q.mu.Lock()
	q.rep = nil
	q.first = 0
	q.length = 0
	q.mu.Unlock()
}

// index returns the position in rep of the i'th item counted from first.
func (q *Queue[T]) index(i int) int {
	return (q.first + i) % len(q.rep)
}

// copyTo copies the queued items in order into dst, which must have room
// for q.length items.
func (q *Queue[T]) copyTo(dst []T) {
	if q.length == 0 {
		return
	}
	if q.first+q.length <= len(q.rep) {
		// no wrap-around
		copy(dst, q.rep[q.first:q.first+q.length])
		return
	}
	n := copy(dst, q.rep[q.first:])
	copy(dst[n:], q.rep[:q.length-n])
}

// lazyGrow makes room for n more items. The slice is only reallocated when
// it is full.
func (q *Queue[T]) lazyGrow(n int) {
	if q.length+n <= len(q.rep) {
		return
	}
	size := 2 * len(q.rep)
	if size < minCapacity {
		size = minCapacity
	}
	for size < q.length+n {
		size *= 2
	}
	rep := make([]T, size)
	q.copyTo(rep)
	q.first = 0
	q.rep = rep
}
