// SPDX-License-Identifier: EPL-2.0

package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ik5/audtrim/trim"
)

var errTooManySessions = errors.New("too many open sessions")

type sessionEntry struct {
	sess     *trim.Session
	lastUsed time.Time
}

// sessions holds the open trim sessions by id. Every lookup refreshes the
// session's idle clock.
type sessions struct {
	mtx sync.Mutex
	m   map[string]*sessionEntry
	max int
	now func() time.Time
}

// newSessions caps the registry at limit open sessions; 0 means no cap.
func newSessions(limit int) *sessions {
	return &sessions{
		m:   make(map[string]*sessionEntry),
		max: limit,
		now: time.Now,
	}
}

func (s *sessions) add(sess *trim.Session) (string, error) {
	id := uuid.NewString()

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.max > 0 && len(s.m) >= s.max {
		return "", errTooManySessions
	}
	s.m[id] = &sessionEntry{sess: sess, lastUsed: s.now()}
	return id, nil
}

func (s *sessions) get(id string) (*trim.Session, bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	e, ok := s.m[id]
	if !ok {
		return nil, false
	}
	e.lastUsed = s.now()
	return e.sess, true
}

// remove forgets id and returns the session so the caller can close it.
func (s *sessions) remove(id string) (*trim.Session, bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	e, ok := s.m[id]
	if !ok {
		return nil, false
	}
	delete(s.m, id)
	return e.sess, true
}

func (s *sessions) len() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return len(s.m)
}

// expire closes and forgets every session not used within ttl and
// returns their ids.
func (s *sessions) expire(ctx context.Context, ttl time.Duration) []string {
	cutoff := s.now().Add(-ttl)

	s.mtx.Lock()
	idle := make(map[string]*trim.Session)
	for id, e := range s.m {
		if e.lastUsed.Before(cutoff) {
			idle[id] = e.sess
			delete(s.m, id)
		}
	}
	s.mtx.Unlock()

	closeSessions(ctx, idle)

	ids := make([]string, 0, len(idle))
	for id := range idle {
		ids = append(ids, id)
	}
	return ids
}

// closeAll closes and forgets every session.
func (s *sessions) closeAll(ctx context.Context) {
	s.mtx.Lock()
	all := make(map[string]*trim.Session, len(s.m))
	for id, e := range s.m {
		all[id] = e.sess
	}
	s.m = make(map[string]*sessionEntry)
	s.mtx.Unlock()

	closeSessions(ctx, all)
}

func closeSessions(ctx context.Context, m map[string]*trim.Session) {
	var wg sync.WaitGroup
	for _, sess := range m {
		wg.Go(func() { _ = sess.Close(ctx) })
	}
	wg.Wait()
}
