package log

import "sync"

// Once is a set of notice keys that have already been emitted. It replaces
// process-wide "already warned" flags: callers share one Once per process (or
// per test) and pass it to whatever needs to warn a single time.
type Once struct {
	seen sync.Map
}

func NewOnce() *Once {
	return &Once{}
}

// Do runs fn the first time key is seen and reports whether it did so.
// Concurrent callers racing on the same key run fn exactly once between them.
func (o *Once) Do(key string, fn func()) bool {
	if _, loaded := o.seen.LoadOrStore(key, struct{}{}); loaded {
		return false
	}
	fn()
	return true
}

// Seen reports whether key has been recorded.
func (o *Once) Seen(key string) bool {
	_, ok := o.seen.Load(key)
	return ok
}
