package session

import "sync"

// State is the viewer's session: connected account, resolved handle
// and backend auth status.
type State struct {
	Address       string
	Handle        string
	Name          string
	Avatar        string
	Token         string
	Authenticated bool
}

// Store holds session state and fans out change notifications.
// All methods are safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	state State
	subs  map[int]chan State
	next  int
}

func NewStore() *Store {
	return &Store{subs: make(map[int]chan State)}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SetAccount records the connected account address.
func (s *Store) SetAccount(address string) {
	s.mu.Lock()
	s.state.Address = address
	state := s.state
	s.mu.Unlock()
	s.publish(state)
}

// SetHandle records the resolved viewer handle.
func (s *Store) SetHandle(handle string) {
	s.mu.Lock()
	s.state.Handle = handle
	state := s.state
	s.mu.Unlock()
	s.publish(state)
}

// SetProfile records the viewer's display name and avatar.
func (s *Store) SetProfile(name, avatar string) {
	s.mu.Lock()
	s.state.Name = name
	s.state.Avatar = avatar
	state := s.state
	s.mu.Unlock()
	s.publish(state)
}

// SetToken records the backend auth token. An empty token marks the
// session unauthenticated.
func (s *Store) SetToken(token string) {
	s.mu.Lock()
	s.state.Token = token
	s.state.Authenticated = token != ""
	state := s.state
	s.mu.Unlock()
	s.publish(state)
}

// Clear resets the session to its zero state.
func (s *Store) Clear() {
	s.mu.Lock()
	s.state = State{}
	state := s.state
	s.mu.Unlock()
	s.publish(state)
}

// Subscribe returns a channel receiving state snapshots after each
// change, plus a cancel func. Slow subscribers drop updates rather
// than block writers.
func (s *Store) Subscribe() (<-chan State, func()) {
	s.mu.Lock()
	id := s.next
	s.next++
	ch := make(chan State, 8)
	s.subs[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *Store) publish(state State) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- state:
		default:
		}
	}
}
