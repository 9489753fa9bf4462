// SPDX-License-Identifier: EPL-2.0

package trim

import (
	"context"
	"strconv"
	"sync"
)

// Artifact is a published WAV the user can download or play.
type Artifact struct {
	Key  string `json:"key"`
	URL  string `json:"url"`
	Name string `json:"name"`
	Size int    `json:"size"`
}

// Publisher exposes finished WAV files and withdraws them again. Every
// artifact a Session publishes is deleted exactly once.
type Publisher interface {
	Put(ctx context.Context, name string, data []byte) (Artifact, error)
	Delete(ctx context.Context, key string) error
}

// MemoryPublisher keeps artifacts in memory. It serves sessions that hand
// the bytes back directly and need no external store.
type MemoryPublisher struct {
	mtx     sync.Mutex
	seq     int
	objects map[string][]byte
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{objects: make(map[string][]byte)}
}

func (p *MemoryPublisher) Put(_ context.Context, name string, data []byte) (Artifact, error) {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	p.seq++
	key := name + "#" + strconv.Itoa(p.seq)
	p.objects[key] = data

	return Artifact{Key: key, URL: "mem://" + key, Name: name, Size: len(data)}, nil
}

func (p *MemoryPublisher) Delete(_ context.Context, key string) error {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	delete(p.objects, key)
	return nil
}

// Get returns the bytes stored under key.
func (p *MemoryPublisher) Get(key string) ([]byte, bool) {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	data, ok := p.objects[key]
	return data, ok
}

// Len is the number of artifacts currently held.
func (p *MemoryPublisher) Len() int {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	return len(p.objects)
}
