package radio

// Radio is the uniform contract over a wireless link.
//
// A Radio is not safe for concurrent use; the caller owns it from a
// single goroutine. None of the operations retry internally: a failed
// Send reports a transient condition and retry policy stays with the
// caller.
type Radio interface {
	// Init brings the hardware up and applies the adapter's configured
	// parameters. It must be called once before any other operation.
	// Whether a repeated call re-runs bring-up is adapter-defined; the
	// adapters in this module all tolerate it.
	Init() error

	// Send transmits p as one frame. It returns nil only when the
	// adapter accepted the frame for the air (for acknowledged links,
	// when the peer confirmed reception).
	Send(p []byte) error

	// Available reports how many bytes of received data the next Read
	// can return. Zero means nothing is pending. Some adapters poll
	// the hardware here; see the adapter documentation.
	Available() int

	// Read copies up to len(p) pending bytes into p and returns the
	// count. It never blocks waiting for data: with nothing pending it
	// returns 0 immediately.
	Read(p []byte) (int, error)
}

// SignalStrengther is implemented by adapters that can report the
// received signal strength, in dBm, of the last received packet.
type SignalStrengther interface {
	SignalStrength() int
}

// PowerManager is implemented by adapters whose hardware has a
// low-power mode. Sleep and Wake come as a pair: after a successful
// Wake the radio is usable again without re-running Init.
type PowerManager interface {
	Sleep() error
	Wake() error
}
