package relay

import "sync"

// Mailbox holds at most one value. Put replaces any pending value and Take
// empties the box.
type Mailbox[T any] struct {
	mu    sync.Mutex
	value *T
}

func (m *Mailbox[T]) Put(value T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = &value
}

func (m *Mailbox[T]) Take() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero T
	if m.value == nil {
		return zero, false
	}
	v := *m.value
	m.value = nil
	return v, true
}

func (m *Mailbox[T]) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value != nil
}
