package metrics

import (
	"sync"
	"testing"
)

func TestInMemoryRecorder_Counts(t *testing.T) {
	t.Parallel()

	m := NewInMemory()
	m.IncUserCreated()
	m.IncUserCreated()
	m.IncUserUpdated()
	m.IncUserDeleted()
	m.IncUserCacheHit()
	m.IncUserCacheMiss()
	m.IncUserCacheMiss()
	m.IncDogCreated()

	snap := m.Snapshot()
	want := Snapshot{
		UsersCreated:    2,
		UsersUpdated:    1,
		UsersDeleted:    1,
		UserCacheHits:   1,
		UserCacheMisses: 2,
		DogsCreated:     1,
	}
	if snap != want {
		t.Errorf("Snapshot() = %+v, want %+v", snap, want)
	}
}

func TestInMemoryRecorder_Concurrent(t *testing.T) {
	t.Parallel()

	m := NewInMemory()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncDogCreated()
		}()
	}
	wg.Wait()

	if got := m.Snapshot().DogsCreated; got != 50 {
		t.Errorf("DogsCreated = %d, want 50", got)
	}
}

func TestNoopRecorder_ImplementsRecorder(t *testing.T) {
	t.Parallel()

	var r Recorder = NewNoop()
	r.IncUserCreated()
	r.IncDogCreated()
}
