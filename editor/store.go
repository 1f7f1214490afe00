package editor

import (
	"maps"
	"slices"
	"sync"

	"github.com/vsariola/scriptline"
)

type (
	// Store holds the current timeline and is the only way to change it. It is
	// created once per editing session and handed explicitly to everything
	// that needs to read or change the timeline.
	//
	// Dispatches are serialized: exactly one action is reduced at a time.
	// Listeners are called without the store lock held, so they may read the
	// state or dispatch further actions. Notifications are delivered one
	// update at a time, in the order the updates were reduced: an action
	// dispatched from a listener is notified after every listener has seen
	// the current update, so the last notification a listener gets always
	// carries the current state.
	Store struct {
		mu        sync.Mutex
		reducer   *Reducer
		state     *scriptline.Timeline
		listeners map[int]Listener
		channels  map[int]chan Update
		nextID    int
		pending   []Update
		notifying bool
	}

	// Listener is called after every successful dispatch with the state before
	// and after the action.
	Listener func(prev, next *scriptline.Timeline)

	// Dispatcher is the write side of the Store, accepted by collaborators
	// that only submit actions.
	Dispatcher interface {
		Dispatch(a Action) error
	}
)

// NewStore returns a store starting from initial. A nil initial timeline
// starts from an empty one, a nil reducer is a zero Reducer.
func NewStore(r *Reducer, initial *scriptline.Timeline) *Store {
	if initial == nil {
		initial = scriptline.NewTimeline()
	}
	if r == nil {
		r = &Reducer{}
	}
	return &Store{
		reducer:   r,
		state:     initial,
		listeners: map[int]Listener{},
		channels:  map[int]chan Update{},
	}
}

// State returns the current timeline. The returned value must not be
// modified.
func (s *Store) State() *scriptline.Timeline {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch reduces the action against the current state and publishes the
// result. An error (always wrapping ErrUnknownAction) leaves the state
// untouched and notifies nobody.
//
// If another call is already notifying listeners, Dispatch only queues the
// update and that call delivers it; otherwise listeners have been notified
// of this and every queued update when Dispatch returns.
func (s *Store) Dispatch(a Action) error {
	deliver, err := s.reduce(a)
	if err != nil {
		return err
	}
	if deliver {
		s.notify()
	}
	return nil
}

// reduce applies a under the lock and queues the resulting update. deliver
// reports whether the caller became responsible for notifying listeners.
func (s *Store) reduce(a Action) (deliver bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.state
	next, err := s.reducer.Reduce(prev, a)
	if err != nil {
		return false, err
	}
	s.state = next
	u := Update{Action: a, Prev: prev, Next: next}
	for _, c := range s.channels {
		TrySend(c, u)
	}
	s.pending = append(s.pending, u)
	if s.notifying {
		return false, nil
	}
	s.notifying = true
	return true, nil
}

// notify delivers queued updates until none are left. A panicking listener
// hands delivery over to the next Dispatch.
func (s *Store) notify() {
	done := false
	defer func() {
		if !done {
			s.mu.Lock()
			s.notifying = false
			s.mu.Unlock()
		}
	}()
	for {
		u, listeners, ok := s.nextPending()
		if !ok {
			done = true
			return
		}
		for _, l := range listeners {
			l(u.Prev, u.Next)
		}
	}
}

func (s *Store) nextPending() (u Update, listeners []Listener, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		s.notifying = false
		return Update{}, nil, false
	}
	u = s.pending[0]
	s.pending = s.pending[1:]
	listeners = make([]Listener, 0, len(s.listeners))
	for _, id := range slices.Sorted(maps.Keys(s.listeners)) {
		listeners = append(listeners, s.listeners[id])
	}
	return u, listeners, true
}

// Subscribe registers a listener, called in subscription order. The returned
// function removes it; calling it more than once is harmless.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Updates returns a channel receiving an Update after every successful
// dispatch. The dispatcher never blocks on the channel: when the buffer is
// full, updates are dropped, so a receiver that falls behind should re-read
// State(). cancel unsubscribes and closes the channel.
func (s *Store) Updates(buffer int) (updates <-chan Update, cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	c := make(chan Update, buffer)
	s.channels[id] = c
	return c, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.channels[id]; ok {
			delete(s.channels, id)
			close(c)
		}
	}
}
