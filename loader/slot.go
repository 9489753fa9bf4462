// SPDX-License-Identifier: EPL-2.0

package loader

import "sync"

// Slot holds at most one AudioSource and releases whatever it displaces.
type Slot struct {
	mtx sync.Mutex
	cur *AudioSource
}

// Replace stores src and releases the previously held source, if any.
// Storing the source already held is a no-op.
func (s *Slot) Replace(src *AudioSource) {
	s.mtx.Lock()
	prev := s.cur
	s.cur = src
	s.mtx.Unlock()

	if prev != nil && prev != src {
		prev.Release()
	}
}

// Current returns the held source, or nil.
func (s *Slot) Current() *AudioSource {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.cur
}

// Reset releases and forgets the held source.
func (s *Slot) Reset() {
	s.Replace(nil)
}
