package state

import "sync/atomic"

// revisionClock counts document mutations. Readers such as the live share
// compare revisions instead of diffing element lists.
type revisionClock struct {
	n atomic.Uint64
}

func (c *revisionClock) tick() uint64 { return c.n.Add(1) }
func (c *revisionClock) now() uint64  { return c.n.Load() }
