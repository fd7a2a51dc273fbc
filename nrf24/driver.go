package nrf24

import "fmt"

// DataRate is the chip's air data rate enumeration, in vendor ordinal
// order.
type DataRate uint8

const (
	DataRate1Mbps DataRate = iota
	DataRate2Mbps
	DataRate250Kbps
)

func (r DataRate) String() string {
	switch r {
	case DataRate250Kbps:
		return "250kbps"
	case DataRate2Mbps:
		return "2Mbps"
	default:
		return "1Mbps"
	}
}

// PALevel is the power-amplifier tier, in vendor ordinal order.
type PALevel uint8

const (
	PAMin PALevel = iota
	PALow
	PAHigh
	PAMax
)

// Address is a physical pipe address. The chips use fixed five-byte
// addresses.
type Address [5]byte

// AddressFromString converts a five-character string, the usual way
// pipe addresses are written in configuration.
func AddressFromString(s string) (Address, error) {
	var a Address
	if len(s) != len(a) {
		return a, fmt.Errorf("nrf24: address %q: need exactly %d bytes", s, len(a))
	}
	copy(a[:], s)
	return a, nil
}

func (a Address) String() string { return string(a[:]) }

// Driver is the chip-level interface the adapter drives, shaped after
// the common NRF24L01 driver libraries. Implementations are
// constructed with their chip-enable and chip-select wiring; sim
// provides a software one.
type Driver interface {
	// Begin powers the chip up and probes it on the bus.
	Begin() error

	// Radio setup. Valid only after Begin.
	SetChannel(ch uint8)
	SetDataRate(r DataRate)
	SetPALevel(l PALevel)
	EnableDynamicPayloads()
	OpenWritingPipe(addr Address)
	OpenReadingPipe(pipe uint8, addr Address)

	// StartListening enters receive mode; StopListening leaves it so
	// the chip can transmit.
	StartListening()
	StopListening()

	// Write transmits p and blocks until the peer acknowledges or the
	// chip exhausts its retries. True means acknowledged.
	Write(p []byte) bool

	// Available reports whether a received frame is waiting in the RX
	// FIFO; DynamicPayloadSize is the length of the frame at its
	// head, 0 when the FIFO is empty.
	Available() bool
	DynamicPayloadSize() int

	// Read pops the head frame, copying len(p) bytes into p and
	// discarding the rest of the frame.
	Read(p []byte)

	// PowerDown enters the chip's low-power state; PowerUp leaves it.
	// After PowerUp the oscillator needs a moment to settle.
	PowerDown()
	PowerUp()
}
