package models

import "sort"

// Counter is a counted mapping over string keys that remembers the order in
// which keys were first inserted. The insertion order is the tie-break when
// sorting by count, which keeps report output byte-identical across runs.
type Counter struct {
	counts map[string]int
	order  []string
}

// KeyCount is one (key, count) entry of a Counter in a chosen order.
type KeyCount struct {
	Key   string
	Count int
}

// NewCounter creates an empty Counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Ensure registers key with a count of 0 if it is not present yet.
func (c *Counter) Ensure(key string) {
	if _, ok := c.counts[key]; !ok {
		c.counts[key] = 0
		c.order = append(c.order, key)
	}
}

// Add increments the count for key, registering it if needed.
func (c *Counter) Add(key string) {
	c.Ensure(key)
	c.counts[key]++
}

// Get returns the count for key, or 0 if the key was never registered.
func (c *Counter) Get(key string) int {
	return c.counts[key]
}

// Len returns the number of distinct keys.
func (c *Counter) Len() int {
	return len(c.order)
}

// Sum returns the total of all counts.
func (c *Counter) Sum() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Keys returns the keys in first-insertion order.
func (c *Counter) Keys() []string {
	keys := make([]string, len(c.order))
	copy(keys, c.order)
	return keys
}

// SortedDesc returns all entries sorted by descending count, with ties
// broken by first-insertion order.
func (c *Counter) SortedDesc() []KeyCount {
	entries := make([]KeyCount, 0, len(c.order))
	for _, key := range c.order {
		entries = append(entries, KeyCount{Key: key, Count: c.counts[key]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}
