// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package resource

import (
	"sync"

	"github.com/ypservice/yp/yperrors"
)

// Entry is a live resource held by a provider.
type Entry[R Resource] struct {
	ID       ID
	Backend  Backend[R]
	Resource R
}

// Table maps resource IDs to live resources.
//
// The table never calls into backends. Callers remove an entry before
// closing or destroying its resource, so lookups never return a released
// resource.
type Table[R Resource] struct {
	mu      sync.RWMutex
	entries map[ID]*Entry[R]
}

// NewTable builds an empty Table.
func NewTable[R Resource]() *Table[R] {
	return &Table[R]{entries: make(map[ID]*Entry[R])}
}

// Insert adds an entry to the table.
func (t *Table[R]) Insert(e *Entry[R]) error {
	if e == nil || e.Backend == nil {
		return yperrors.InvalidArgsErrorf("cannot insert a resource without a backend")
	}
	if e.ID.IsNil() {
		return yperrors.InvalidArgsErrorf("cannot insert a resource with a nil id")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.entries[e.ID]; ok {
		return yperrors.InvalidResourceErrorf("resource %v already exists", e.ID)
	}
	t.entries[e.ID] = e
	return nil
}

// Get returns the entry for id.
func (t *Table[R]) Get(id ID) (*Entry[R], error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.entries[id]
	if !ok {
		return nil, yperrors.InvalidResourceErrorf("unknown resource %v", id)
	}
	return e, nil
}

// Remove removes the entry for id from the table and returns it.
func (t *Table[R]) Remove(id ID) (*Entry[R], error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[id]
	if !ok {
		return nil, yperrors.InvalidResourceErrorf("unknown resource %v", id)
	}
	delete(t.entries, id)
	return e, nil
}

// IDs returns up to max IDs from the table, in no particular order.
// Successive calls may return different subsets.
func (t *Table[R]) IDs(max uint64) []ID {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := uint64(len(t.entries))
	if max < n {
		n = max
	}
	ids := make([]ID, 0, n)
	for id := range t.entries {
		if uint64(len(ids)) == n {
			break
		}
		ids = append(ids, id)
	}
	return ids
}

// Len returns the number of entries in the table.
func (t *Table[R]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Entries returns a snapshot of the entries in the table.
func (t *Table[R]) Entries() []*Entry[R] {
	t.mu.RLock()
	defer t.mu.RUnlock()

	entries := make([]*Entry[R], 0, len(t.entries))
	for _, e := range t.entries {
		entries = append(entries, e)
	}
	return entries
}

// Drain empties the table and returns everything it held.
func (t *Table[R]) Drain() []*Entry[R] {
	t.mu.Lock()
	defer t.mu.Unlock()

	entries := make([]*Entry[R], 0, len(t.entries))
	for _, e := range t.entries {
		entries = append(entries, e)
	}
	t.entries = make(map[ID]*Entry[R])
	return entries
}
