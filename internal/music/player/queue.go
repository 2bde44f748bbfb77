package player

// Queue is a strict FIFO of pending tracks. It does no locking of its own;
// the owning Session serializes all access.
type Queue struct {
	tracks []*Track
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{tracks: make([]*Track, 0)}
}

// Push appends a track to the tail.
func (q *Queue) Push(t *Track) {
	q.tracks = append(q.tracks, t)
}

// Pop removes and returns the head track, or nil if the queue is empty.
func (q *Queue) Pop() *Track {
	if len(q.tracks) == 0 {
		return nil
	}
	t := q.tracks[0]
	q.tracks[0] = nil
	q.tracks = q.tracks[1:]
	return t
}

// Len returns the number of pending tracks.
func (q *Queue) Len() int {
	return len(q.tracks)
}

// Clear drops all pending tracks.
func (q *Queue) Clear() {
	q.tracks = q.tracks[:0]
}

// List returns a copy of up to limit tracks from the head, in queue order.
// A limit <= 0 returns all tracks.
func (q *Queue) List(limit int) []*Track {
	if limit <= 0 || limit > len(q.tracks) {
		limit = len(q.tracks)
	}
	out := make([]*Track, limit)
	copy(out, q.tracks[:limit])
	return out
}
