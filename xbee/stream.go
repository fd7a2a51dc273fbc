package xbee

// Stream is the serial link the modem sits behind. The adapter never
// opens or closes it; ownership stays with the caller.
type Stream interface {
	// Write sends p toward the modem and reports how many bytes the
	// stream accepted.
	Write(p []byte) (int, error)

	// Flush blocks until the transmit buffer has drained onto the
	// wire.
	Flush() error

	// Available reports how many received bytes are buffered.
	Available() int

	// Read copies up to len(p) buffered bytes into p without waiting
	// for more to arrive.
	Read(p []byte) (int, error)
}
