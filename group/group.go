// Package group collects values into insertion-ordered, never-empty groups.
package group

import (
	"errors"
	"iter"

	json "github.com/goccy/go-json"

	"github.com/quickwritereader/nonempty/nonempty"
	"github.com/quickwritereader/nonempty/smallvec"
)

// ErrKeyNotFound is returned when an operation names a key with no group.
var ErrKeyNotFound = errors.New("group: key not found")

// node holds one group and its place in key order
type node[K comparable, T any, A smallvec.Array[T]] struct {
	key   K
	items *nonempty.SmallVec1[T, A]
	prev  *node[K, T, A]
	next  *node[K, T, A]
}

// Map is a set of groups keyed by K, iterated in the order keys were first
// added. Every group holds at least one value; a group whose last value is
// taken away is removed from the map. The zero value is an empty Map ready
// to use.
type Map[K comparable, T any, A smallvec.Array[T]] struct {
	data map[K]*node[K, T, A]
	head *node[K, T, A]
	tail *node[K, T, A]
}

// New returns an empty Map.
func New[K comparable, T any, A smallvec.Array[T]]() *Map[K, T, A] {
	return &Map[K, T, A]{
		data: make(map[K]*node[K, T, A]),
	}
}

// By groups the values of seq by key, keeping first-seen key order and the
// order of values within each group.
func By[K comparable, T any, A smallvec.Array[T]](seq iter.Seq[T], key func(T) K) *Map[K, T, A] {
	m := New[K, T, A]()
	for x := range seq {
		m.Add(key(x), x)
	}
	return m
}

// Length
func (m *Map[K, T, A]) Len() int {
	return len(m.data)
}

// Add appends value to the group for key, creating the group at the end of
// the key order if needed.
func (m *Map[K, T, A]) Add(key K, value T) {
	if n, ok := m.data[key]; ok {
		n.items.Push(value)
		return
	}
	if m.data == nil {
		m.data = make(map[K]*node[K, T, A])
	}
	n := &node[K, T, A]{key: key, items: nonempty.New[T, A](value)}
	m.data[key] = n
	if m.tail == nil {
		m.head, m.tail = n, n
	} else {
		n.prev = m.tail
		m.tail.next = n
		m.tail = n
	}
}

// Get returns the group for key.
func (m *Map[K, T, A]) Get(key K) (*nonempty.SmallVec1[T, A], bool) {
	n, ok := m.data[key]
	if !ok {
		return nil, false
	}
	return n.items, true
}

// First returns the first value added under key.
func (m *Map[K, T, A]) First(key K) (T, bool) {
	n, ok := m.data[key]
	if !ok {
		var zero T
		return zero, false
	}
	return n.items.First(), true
}

// Pop removes and returns the last value of the group for key, dropping the
// group when it held only that value.
func (m *Map[K, T, A]) Pop(key K) (T, error) {
	n, ok := m.data[key]
	if !ok {
		var zero T
		return zero, ErrKeyNotFound
	}
	x, err := n.items.TryPop()
	if errors.Is(err, nonempty.ErrEmpty) {
		x = n.items.First()
		m.unlink(n)
	}
	return x, nil
}

// Delete removes the group for key.
func (m *Map[K, T, A]) Delete(key K) {
	n, ok := m.data[key]
	if !ok {
		return
	}
	m.unlink(n)
}

func (m *Map[K, T, A]) unlink(n *node[K, T, A]) {
	delete(m.data, n.key)
	m.detach(n)
}

func (m *Map[K, T, A]) detach(n *node[K, T, A]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		m.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		m.tail = n.prev
	}
}

// Keys returns keys in insertion order
func (m *Map[K, T, A]) Keys() []K {
	keys := make([]K, 0, len(m.data))
	for n := m.head; n != nil; n = n.next {
		keys = append(keys, n.key)
	}
	return keys
}

// Groups returns the groups in key order.
func (m *Map[K, T, A]) Groups() []*nonempty.SmallVec1[T, A] {
	groups := make([]*nonempty.SmallVec1[T, A], 0, len(m.data))
	for n := m.head; n != nil; n = n.next {
		groups = append(groups, n.items)
	}
	return groups
}

// MoveToEnd moves a key to the back of the order, or to the front if last is false.
func (m *Map[K, T, A]) MoveToEnd(key K, last bool) error {
	n, ok := m.data[key]
	if !ok {
		return ErrKeyNotFound
	}
	m.detach(n)
	if last {
		n.prev, n.next = m.tail, nil
		if m.tail != nil {
			m.tail.next = n
		}
		m.tail = n
		if m.head == nil {
			m.head = n
		}
	} else {
		n.prev, n.next = nil, m.head
		if m.head != nil {
			m.head.prev = n
		}
		m.head = n
		if m.tail == nil {
			m.tail = n
		}
	}
	return nil
}

// Equal reports whether a and b hold the same keys in the same order with
// equal groups.
func Equal[K comparable, T comparable, A smallvec.Array[T]](a, b *Map[K, T, A]) bool {
	if a.Len() != b.Len() {
		return false
	}
	n1, n2 := a.head, b.head
	for n1 != nil && n2 != nil {
		if n1.key != n2.key || !nonempty.Equal(n1.items, n2.items) {
			return false
		}
		n1, n2 = n1.next, n2.next
	}
	return true
}

// KeysIter returns an iterator over keys
func (m *Map[K, T, A]) KeysIter() iter.Seq[K] {
	return func(yield func(K) bool) {
		for n := m.head; n != nil; n = n.next {
			if !yield(n.key) {
				return
			}
		}
	}
}

// All returns an iterator over key/group pairs in key order.
func (m *Map[K, T, A]) All() iter.Seq2[K, *nonempty.SmallVec1[T, A]] {
	return func(yield func(K, *nonempty.SmallVec1[T, A]) bool) {
		for n := m.head; n != nil; n = n.next {
			if !yield(n.key, n.items) {
				return
			}
		}
	}
}

// Firsts returns an iterator over each key and the first value of its group.
func (m *Map[K, T, A]) Firsts() iter.Seq2[K, T] {
	return func(yield func(K, T) bool) {
		for n := m.head; n != nil; n = n.next {
			if !yield(n.key, n.items.First()) {
				return
			}
		}
	}
}

type entry[K comparable, T any, A smallvec.Array[T]] struct {
	Key   K                         `json:"key"`
	Items *nonempty.SmallVec1[T, A] `json:"items"`
}

// MarshalJSON encodes the groups as an array of {"key", "items"} objects in
// key order.
func (m *Map[K, T, A]) MarshalJSON() ([]byte, error) {
	entries := make([]entry[K, T, A], 0, len(m.data))
	for n := m.head; n != nil; n = n.next {
		entries = append(entries, entry[K, T, A]{Key: n.key, Items: n.items})
	}
	return json.Marshal(entries)
}

// UnmarshalJSON decodes the form written by MarshalJSON, preserving order.
// Entries with missing or empty items are rejected, and a repeated key
// extends the earlier group.
func (m *Map[K, T, A]) UnmarshalJSON(data []byte) error {
	var entries []entry[K, T, A]
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	out := New[K, T, A]()
	for _, e := range entries {
		if e.Items == nil {
			return nonempty.ErrEmpty
		}
		for x := range e.Items.Values() {
			out.Add(e.Key, x)
		}
	}
	*m = *out
	return nil
}
