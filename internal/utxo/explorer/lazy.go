package explorer

import (
	"sync"
	"sync/atomic"
)

type resolveState uint32

const (
	unresolved resolveState = iota
	resolving
	resolved
)

func (s resolveState) String() string {
	switch s {
	case unresolved:
		return "unresolved"
	case resolving:
		return "resolving"
	case resolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// lazy holds one group of fields filled by a single remote call. The first
// successful fetch wins; concurrent readers wait for it and see its value.
// A failed fetch leaves the group unresolved.
type lazy[T any] struct {
	mu    sync.Mutex
	state atomic.Uint32
	value T
}

// seed marks the group resolved with a known value. Only valid before the
// owning proxy is shared.
func (l *lazy[T]) seed(v T) {
	l.value = v
	l.state.Store(uint32(resolved))
}

func (l *lazy[T]) current() resolveState {
	return resolveState(l.state.Load())
}

func (l *lazy[T]) peek() (T, bool) {
	if l.current() == resolved {
		return l.value, true
	}
	var zero T
	return zero, false
}

func (l *lazy[T]) get(fetch func() (T, error)) (T, error) {
	if v, ok := l.peek(); ok {
		return v, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if v, ok := l.peek(); ok {
		return v, nil
	}

	l.state.Store(uint32(resolving))
	v, err := fetch()
	if err != nil {
		l.state.Store(uint32(unresolved))
		var zero T
		return zero, err
	}
	l.value = v
	l.state.Store(uint32(resolved))
	return v, nil
}

// getOrInit is get for groups whose value is built locally and cannot fail.
func (l *lazy[T]) getOrInit(build func() T) T {
	if v, ok := l.peek(); ok {
		return v
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if v, ok := l.peek(); ok {
		return v
	}
	l.value = build()
	l.state.Store(uint32(resolved))
	return l.value
}
