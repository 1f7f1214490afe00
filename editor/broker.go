package editor

import (
	"time"

	"github.com/vsariola/scriptline"
)

// Update is sent to channel subscribers after every successful dispatch.
// Prev and Next are the same pointer when the action changed nothing.
type Update struct {
	Action Action
	Prev   *scriptline.Timeline
	Next   *scriptline.Timeline
}

// Changed reports whether the dispatch produced a new timeline.
func (u Update) Changed() bool { return u.Prev != u.Next }

// TrySend sends v unless c is full and reports whether it was sent. The store
// feeds update channels with it, so a slow subscriber never holds up a
// dispatch.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}

// TimeoutReceive waits at most t for the next value on c. ok is false when the
// wait timed out or c was closed.
func TimeoutReceive[T any](c <-chan T, t time.Duration) (v T, ok bool) {
	select {
	case v, ok = <-c:
		return v, ok
	case <-time.After(t):
		return v, false
	}
}
