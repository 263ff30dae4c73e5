// Package tasktable provides the time-indexed table polled by the
// self-contained timer scheduler.
//
// A Table maps an absolute fire time, in whole Unix seconds, to the ordered
// bucket of values due at that second. Buckets are created on first Add and
// removed as soon as they are popped; an empty bucket never stays in the
// table. Values inside a bucket keep their insertion order.
//
// A Table is not safe for concurrent use. The owning scheduler serializes
// access.
package tasktable

import "sort"

// Table is a time-indexed task table.
type Table[T any] struct {
	buckets map[int64][]T
	size    int
}

// New returns an empty table.
func New[T any]() *Table[T] {
	return &Table[T]{buckets: make(map[int64][]T)}
}

// Add appends v to the bucket for the given second.
func (t *Table[T]) Add(at int64, v T) {
	t.buckets[at] = append(t.buckets[at], v)
	t.size++
}

// PopDue removes every bucket whose key is <= now and returns them in
// ascending key order. Values keep their insertion order within a bucket.
func (t *Table[T]) PopDue(now int64) [][]T {
	keys := make([]int64, 0, len(t.buckets))
	for at := range t.buckets {
		if at <= now {
			keys = append(keys, at)
		}
	}
	if len(keys) == 0 {
		return nil
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	due := make([][]T, 0, len(keys))
	for _, at := range keys {
		bucket := t.buckets[at]
		delete(t.buckets, at)
		t.size -= len(bucket)
		due = append(due, bucket)
	}
	return due
}

// Next returns the earliest fire time in the table.
func (t *Table[T]) Next() (int64, bool) {
	var (
		next  int64
		found bool
	)
	for at := range t.buckets {
		if !found || at < next {
			next, found = at, true
		}
	}
	return next, found
}

// Len returns the number of values across all buckets.
func (t *Table[T]) Len() int {
	return t.size
}

// Buckets returns the number of distinct fire times.
func (t *Table[T]) Buckets() int {
	return len(t.buckets)
}

// Empty reports whether the table holds no values.
func (t *Table[T]) Empty() bool {
	return t.size == 0
}

// Clear drops every bucket.
func (t *Table[T]) Clear() {
	t.buckets = make(map[int64][]T)
	t.size = 0
}
