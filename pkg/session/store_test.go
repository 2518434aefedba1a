package session

import (
	"testing"
	"time"
)

func TestSnapshotTracksChanges(t *testing.T) {
	s := NewStore()

	s.SetAccount("0xabc")
	s.SetHandle("user_1a2b3c4d")
	s.SetToken("tok")

	got := s.Snapshot()
	if got.Address != "0xabc" || got.Handle != "user_1a2b3c4d" {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
	if !got.Authenticated {
		t.Fatal("token set but session not authenticated")
	}

	s.SetToken("")
	if s.Snapshot().Authenticated {
		t.Fatal("empty token should mark session unauthenticated")
	}
}

func TestSetProfile(t *testing.T) {
	s := NewStore()
	s.SetProfile("Alice", "https://example.com/a.png")

	got := s.Snapshot()
	if got.Name != "Alice" || got.Avatar != "https://example.com/a.png" {
		t.Fatalf("unexpected profile: %+v", got)
	}
}

func TestClearResetsEverything(t *testing.T) {
	s := NewStore()
	s.SetAccount("0xabc")
	s.SetHandle("user_1a2b3c4d")
	s.SetToken("tok")

	s.Clear()

	if got := s.Snapshot(); got != (State{}) {
		t.Fatalf("expected zero state after clear, got %+v", got)
	}
}

func TestSubscribeReceivesUpdates(t *testing.T) {
	s := NewStore()
	ch, cancel := s.Subscribe()
	defer cancel()

	s.SetAccount("0xabc")

	select {
	case got := <-ch:
		if got.Address != "0xabc" {
			t.Fatalf("unexpected update: %+v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("no update received")
	}
}

func TestSubscribeCancelStopsDelivery(t *testing.T) {
	s := NewStore()
	ch, cancel := s.Subscribe()
	cancel()

	// Channel is closed on cancel
	if _, ok := <-ch; ok {
		t.Fatal("expected closed channel after cancel")
	}

	// Further writes must not panic
	s.SetAccount("0xabc")
}

func TestSlowSubscriberDoesNotBlockWriters(t *testing.T) {
	s := NewStore()
	_, cancel := s.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		// More updates than the subscriber buffer holds
		for i := 0; i < 100; i++ {
			s.SetToken("tok")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("writer blocked on slow subscriber")
	}
}
