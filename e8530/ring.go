package e8530

// bufSize is the capacity of each channel queue. One slot is kept free so
// a full ring can be told apart from an empty one.
const bufSize = 256

// ring is a fixed size byte queue between a channel and its transport.
type ring struct {
	buf  [bufSize]byte
	i, j int // i is the write index, j the read index
}

func (r *ring) empty() bool { return r.i == r.j }
func (r *ring) full() bool  { return (r.i+1)%bufSize == r.j }

// len returns the number of queued bytes.
func (r *ring) len() int { return (r.i - r.j + bufSize) % bufSize }

// put queues b. It reports false, leaving the ring untouched, if the ring is full.
func (r *ring) put(b byte) bool {
	if r.full() {
		return false
	}
	r.buf[r.i] = b
	r.i = (r.i + 1) % bufSize
	return true
}

// get dequeues the oldest byte, or returns 0, false if the ring is empty.
func (r *ring) get() (byte, bool) {
	if r.empty() {
		return 0, false
	}
	b := r.buf[r.j]
	r.j = (r.j + 1) % bufSize
	return b, true
}

func (r *ring) reset() {
	r.i = 0
	r.j = 0
}
