package radio

import "errors"

// Sentinel errors shared by all adapters. Adapters wrap these with
// fmt.Errorf("...: %w", ...) and add their own context; callers match
// with errors.Is.
var (
	// ErrBusy means a transmission could not start because the channel
	// or the transmitter was occupied.
	ErrBusy = errors.New("radio busy")

	// ErrNoAck means the frame left the radio but the peer never
	// acknowledged it. Only acknowledged links produce it.
	ErrNoAck = errors.New("no acknowledgement")

	// ErrShortWrite means the underlying stream accepted fewer bytes
	// than the frame contained.
	ErrShortWrite = errors.New("short write")

	// ErrTimeout means a bounded hardware wait elapsed, such as a
	// sleep-status pin that never reached the expected level.
	ErrTimeout = errors.New("timeout")
)
