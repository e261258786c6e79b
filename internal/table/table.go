// Package table provides an insertion-ordered term to count mapping.
package table

import "github.com/rcliao/wordfreq/internal/model"

// Table maps terms to counts and remembers the order terms were first added.
// Keys compare by exact string equality.
type Table struct {
	keys   []string
	counts map[string]int
}

// New returns an empty table.
func New() *Table {
	return &Table{counts: map[string]int{}}
}

// FromEntries builds a table from rows, in row order.
func FromEntries(entries []model.Entry) *Table {
	t := New()
	for _, e := range entries {
		t.Set(e.Term, e.Count)
	}
	return t
}

// Add increases the count of term by n, appending term if it is new.
func (t *Table) Add(term string, n int) {
	if _, ok := t.counts[term]; !ok {
		t.keys = append(t.keys, term)
	}
	t.counts[term] += n
}

// Set overwrites the count of term. A new term is appended; an existing term
// keeps its position.
func (t *Table) Set(term string, n int) {
	if _, ok := t.counts[term]; !ok {
		t.keys = append(t.keys, term)
	}
	t.counts[term] = n
}

// Get returns the count of term and whether it is present.
func (t *Table) Get(term string) (int, bool) {
	n, ok := t.counts[term]
	return n, ok
}

// Len returns the number of terms.
func (t *Table) Len() int { return len(t.keys) }

// Keys returns the terms in insertion order.
func (t *Table) Keys() []string {
	return append([]string(nil), t.keys...)
}

// Entries returns the rows in insertion order.
func (t *Table) Entries() []model.Entry {
	entries := make([]model.Entry, 0, len(t.keys))
	for _, k := range t.keys {
		entries = append(entries, model.Entry{Term: k, Count: t.counts[k]})
	}
	return entries
}

// Clone returns an independent copy.
func (t *Table) Clone() *Table {
	c := &Table{
		keys:   append([]string(nil), t.keys...),
		counts: make(map[string]int, len(t.counts)),
	}
	for k, v := range t.counts {
		c.counts[k] = v
	}
	return c
}

// Total returns the sum of all counts.
func (t *Table) Total() int {
	n := 0
	for _, v := range t.counts {
		n += v
	}
	return n
}
