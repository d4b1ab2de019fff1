package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersCreated    uint64
	UsersUpdated    uint64
	UsersDeleted    uint64
	UserCacheHits   uint64
	UserCacheMisses uint64
	DogsCreated     uint64
}

// InMemoryRecorder stores counters in memory. It backs the /metrics endpoint.
type InMemoryRecorder struct {
	usersCreated    atomic.Uint64
	usersUpdated    atomic.Uint64
	usersDeleted    atomic.Uint64
	userCacheHits   atomic.Uint64
	userCacheMisses atomic.Uint64
	dogsCreated     atomic.Uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersCreated:    m.usersCreated.Load(),
		UsersUpdated:    m.usersUpdated.Load(),
		UsersDeleted:    m.usersDeleted.Load(),
		UserCacheHits:   m.userCacheHits.Load(),
		UserCacheMisses: m.userCacheMisses.Load(),
		DogsCreated:     m.dogsCreated.Load(),
	}
}

// IncUserCreated increments the user created counter.
func (m *InMemoryRecorder) IncUserCreated() {
	m.usersCreated.Add(1)
}

// IncUserUpdated increments the user updated counter.
func (m *InMemoryRecorder) IncUserUpdated() {
	m.usersUpdated.Add(1)
}

// IncUserDeleted increments the user deleted counter.
func (m *InMemoryRecorder) IncUserDeleted() {
	m.usersDeleted.Add(1)
}

// IncUserCacheHit increments the cache hit counter.
func (m *InMemoryRecorder) IncUserCacheHit() {
	m.userCacheHits.Add(1)
}

// IncUserCacheMiss increments the cache miss counter.
func (m *InMemoryRecorder) IncUserCacheMiss() {
	m.userCacheMisses.Add(1)
}

// IncDogCreated increments the dog created counter.
func (m *InMemoryRecorder) IncDogCreated() {
	m.dogsCreated.Add(1)
}
