package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestState(t *testing.T) {
	var s State
	if _, ok := s.LastTranslation(); ok {
		t.Fatal("new state should have no translation")
	}

	s2 := s.WithTranslation("I am a student.")
	if _, ok := s.LastTranslation(); ok {
		t.Error("WithTranslation must not modify the receiver")
	}
	got, ok := s2.LastTranslation()
	if !ok || got != "I am a student." {
		t.Errorf("LastTranslation() = %q, %v", got, ok)
	}

	s3 := s2.WithTranslation("Hello.")
	if got, _ := s3.LastTranslation(); got != "Hello." {
		t.Errorf("expected latest translation to win, got %q", got)
	}
}

func TestMemoryStore_LoadSave(t *testing.T) {
	m := NewMemoryStore(time.Minute, nil)

	if _, err := m.Load("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	id := NewID()
	m.Save(id, State{}.WithTranslation("Good morning."))
	st, err := m.Load(id)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got, _ := st.LastTranslation(); got != "Good morning." {
		t.Errorf("unexpected translation %q", got)
	}

	m.Delete(id)
	if _, err := m.Load(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after Delete, got %v", err)
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	m := NewMemoryStore(time.Minute, nil)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	m.Save("a", State{})
	m.Save("b", State{})

	now = now.Add(45 * time.Second)
	if _, err := m.Load("a"); err != nil {
		t.Fatalf("session a should still be live: %v", err)
	}

	now = now.Add(30 * time.Second)
	if n := m.Sweep(); n != 1 {
		t.Errorf("expected 1 expired session, got %d", n)
	}
	if _, err := m.Load("a"); err != nil {
		t.Errorf("Load refreshed a, it should survive: %v", err)
	}
	if _, err := m.Load("b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected b to be gone, got %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := m.Load("a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected a to expire on Load, got %v", err)
	}
	if m.Len() != 0 {
		t.Errorf("expected empty store, got %d", m.Len())
	}
}

func TestMemoryStore_Concurrent(t *testing.T) {
	m := NewMemoryStore(time.Minute, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", i)
			m.Save(id, State{}.WithTranslation(id))
			st, err := m.Load(id)
			if err != nil {
				t.Errorf("Load(%s): %v", id, err)
				return
			}
			if got, _ := st.LastTranslation(); got != id {
				t.Errorf("session %s saw %q", id, got)
			}
		}(i)
	}
	wg.Wait()

	if m.Len() != 20 {
		t.Errorf("expected 20 sessions, got %d", m.Len())
	}
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	if a == "" || a == b {
		t.Errorf("expected distinct non-empty IDs, got %q and %q", a, b)
	}
}

func TestMemoryStore_StartSweeps(t *testing.T) {
	m := NewMemoryStore(time.Minute, nil)
	stale := time.Now().Add(-2 * time.Minute)
	m.now = func() time.Time { return stale }
	m.Save("old", State{})
	m.now = time.Now

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx, 5*time.Millisecond)

	deadline := time.After(2 * time.Second)
	for m.Len() != 0 {
		select {
		case <-deadline:
			t.Fatal("janitor did not remove the expired session")
		case <-time.After(5 * time.Millisecond):
		}
	}
}
