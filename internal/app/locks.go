package app

import (
	"sync"

	"talentdesk/internal/common"
)

// keyedMutex serializes mutations per application so concurrent actors
// cannot interleave history appends on the same aggregate. Different
// applications proceed in parallel.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[common.UUID]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[common.UUID]*sync.Mutex)}
}

func (k *keyedMutex) lock(id common.UUID) func() {
	k.mu.Lock()
	m, ok := k.locks[id]
	if !ok {
		m = &sync.Mutex{}
		k.locks[id] = m
	}
	k.mu.Unlock()
	m.Lock()
	return m.Unlock
}
