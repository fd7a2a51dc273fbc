package sim

import "sync"

// SerialPipe returns the two ends of a cross-connected serial link:
// bytes written to one end become readable on the other. Both ends
// satisfy the stream interface the xbee adapter consumes.
func SerialPipe() (*PipeEnd, *PipeEnd) {
	a := &PipeEnd{}
	b := &PipeEnd{}
	a.peer = b
	b.peer = a
	return a, b
}

// SerialLoopback returns a single pipe end wired to itself: everything
// written becomes readable on the same end.
func SerialLoopback() *PipeEnd {
	e := &PipeEnd{}
	e.peer = e
	return e
}

// PipeEnd is one side of a SerialPipe.
type PipeEnd struct {
	mu      sync.Mutex
	rx      []byte
	flushes int
	peer    *PipeEnd
}

// Write moves p to the peer's receive buffer.
func (e *PipeEnd) Write(p []byte) (int, error) {
	e.peer.mu.Lock()
	defer e.peer.mu.Unlock()
	e.peer.rx = append(e.peer.rx, p...)
	return len(p), nil
}

// Flush is instantaneous on a pipe; it only counts invocations so
// tests can assert it ran.
func (e *PipeEnd) Flush() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.flushes++
	return nil
}

// Flushes reports how many times Flush ran.
func (e *PipeEnd) Flushes() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.flushes
}

// Available reports the bytes waiting on this end.
func (e *PipeEnd) Available() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.rx)
}

// Read drains up to len(p) waiting bytes.
func (e *PipeEnd) Read(p []byte) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := copy(p, e.rx)
	e.rx = e.rx[n:]
	return n, nil
}

// Inject makes p appear on this end as received bytes without going
// through the peer.
func (e *PipeEnd) Inject(p []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rx = append(e.rx, p...)
}
