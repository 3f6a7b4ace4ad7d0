package collector

// Frontier is the queue of users pending a visit.
//
// It is a plain FIFO deque with one extra operation, Rotate, used to
// randomize traversal order. Duplicate IDs may be enqueued freely;
// deduplication happens at dequeue time against the visited set, which
// keeps enqueueing cheap during league processing.
type Frontier struct {
	items []string
}

// NewFrontier creates a Frontier holding the given IDs in order.
func NewFrontier(ids ...string) *Frontier {
	return &Frontier{items: append([]string(nil), ids...)}
}

// Len returns the number of pending IDs.
func (f *Frontier) Len() int {
	return len(f.items)
}

// PushBack appends an ID to the back of the queue.
func (f *Frontier) PushBack(id string) {
	f.items = append(f.items, id)
}

// PopFront removes and returns the front ID.
// ok is false when the frontier is empty.
func (f *Frontier) PopFront() (id string, ok bool) {
	if len(f.items) == 0 {
		return "", false
	}
	id = f.items[0]
	f.items = f.items[1:]
	return id, true
}

// Rotate moves the first n elements to the back of the queue. n is
// taken modulo the length, so any value is safe. Rotation changes only
// pop order, never membership.
func (f *Frontier) Rotate(n int) {
	if len(f.items) < 2 {
		return
	}
	n %= len(f.items)
	if n < 0 {
		n += len(f.items)
	}
	if n == 0 {
		return
	}
	rotated := make([]string, 0, len(f.items))
	rotated = append(rotated, f.items[n:]...)
	rotated = append(rotated, f.items[:n]...)
	f.items = rotated
}

// Snapshot returns a copy of the pending IDs in pop order.
func (f *Frontier) Snapshot() []string {
	return append([]string(nil), f.items...)
}
