package lora

// Driver is the chip-level interface the adapter drives. Implementations
// wrap a concrete transceiver library; sim provides a software one.
type Driver interface {
	// SetPins declares the wiring before Begin. A value of -1 means
	// the line is not wired and passes through to the driver as such.
	SetPins(cs, reset, irq int)

	// Begin powers the transceiver up on the given carrier frequency.
	// Every other method requires a successful Begin first.
	Begin(frequencyHz int64) error

	// Tuning setters. Valid only after Begin.
	SetTxPower(dB int)
	SetSpreadingFactor(sf int)
	SetSignalBandwidth(hz int64)
	SetCodingRate4(denominator int)
	SetSyncWord(sw byte)

	// BeginPacket opens an outgoing frame. It fails when the
	// transmitter cannot start, typically because it is mid-transmit.
	BeginPacket() error

	// Write appends payload bytes to the open frame and reports how
	// many the frame buffer accepted.
	Write(p []byte) int

	// EndPacket closes the frame and transmits it. The transmit step
	// has no separate failure signal.
	EndPacket()

	// ParsePacket polls for a received packet. When a new one has
	// arrived it becomes the latched packet and its size is returned;
	// otherwise 0. Latching a packet discards the unread remainder of
	// the previous one.
	ParsePacket() int

	// Available reports the unread bytes of the latched packet.
	Available() int

	// Read pops the next byte of the latched packet, or -1 when it is
	// exhausted.
	Read() int

	// PacketRSSI reports the signal strength of the last received
	// packet, in dBm.
	PacketRSSI() int

	// Sleep enters the chip's low-power mode; Idle returns it to
	// standby, ready to transmit and receive.
	Sleep()
	Idle()
}
