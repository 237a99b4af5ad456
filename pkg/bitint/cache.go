// SPDX-License-Identifier: MIT
package bitint

import (
	"sync"
	"sync/atomic"
)

type cacheKey struct {
	width   uint
	spacing uint
}

// Cache memoizes schedules for arbitrary (width, spacing) pairs, including
// widths that are not native integer sizes. The first schedule stored for a
// key is the one every caller receives; a schedule is fully built before it
// is published. The zero value is ready to use. A Cache must not be copied.
type Cache struct {
	entries sync.Map // cacheKey -> *Schedule
	size    atomic.Int64
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{}
}

// Schedule returns the schedule for width and spacing, building it on first
// use. Invalid widths fail with ErrWidth and are not cached.
func (c *Cache) Schedule(width, spacing uint) (*Schedule, error) {
	key := cacheKey{width: width, spacing: spacing}
	if v, ok := c.entries.Load(key); ok {
		return v.(*Schedule), nil
	}

	s, err := NewSchedule(width, spacing)
	if err != nil {
		return nil, err
	}
	v, loaded := c.entries.LoadOrStore(key, s)
	if !loaded {
		c.size.Add(1)
	}
	return v.(*Schedule), nil
}

// Dilute dilutes x into width bits using the cached schedule.
func (c *Cache) Dilute(width, spacing uint, x uint64) (uint64, error) {
	s, err := c.Schedule(width, spacing)
	if err != nil {
		return 0, err
	}
	return s.Apply(x), nil
}

// Len returns the number of cached schedules.
func (c *Cache) Len() int {
	return int(c.size.Load())
}
