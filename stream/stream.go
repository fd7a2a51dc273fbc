// Package stream opens serial ports as non-blocking byte streams for
// the stream-radio adapter: writes flush through to the wire, reads
// only ever return what the port already buffered.
package stream

import (
	"fmt"

	"go.bug.st/serial"
)

// Port is an open serial device. Received bytes accumulate in a
// read-ahead buffer filled by opportunistic non-blocking polls, so
// Available and Read return immediately regardless of traffic.
//
// A Port is not safe for concurrent use.
type Port struct {
	name string
	p    serial.Port
	buf  []byte
}

// Open opens the serial device at 8N1 with the given baud rate and
// switches it to non-blocking reads. The caller owns the returned Port
// and must Close it.
func Open(device string, baud int) (*Port, error) {
	sp, err := serial.Open(device, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("stream: open %s: %w", device, err)
	}
	p, err := newPort(device, sp)
	if err != nil {
		sp.Close()
		return nil, err
	}
	return p, nil
}

func newPort(name string, sp serial.Port) (*Port, error) {
	// Zero timeout: Read returns immediately with whatever the kernel
	// has, possibly nothing.
	if err := sp.SetReadTimeout(0); err != nil {
		return nil, fmt.Errorf("stream: %s: set read timeout: %w", name, err)
	}
	return &Port{name: name, p: sp}, nil
}

// Name returns the device path the port was opened with.
func (p *Port) Name() string { return p.name }

// fill drains the kernel buffer into the read-ahead buffer.
func (p *Port) fill() error {
	var tmp [512]byte
	for {
		n, err := p.p.Read(tmp[:])
		if n > 0 {
			p.buf = append(p.buf, tmp[:n]...)
		}
		if err != nil {
			return err
		}
		if n < len(tmp) {
			return nil
		}
	}
}

// Write sends p to the device.
func (p *Port) Write(b []byte) (int, error) {
	n, err := p.p.Write(b)
	if err != nil {
		return n, fmt.Errorf("stream: write %s: %w", p.name, err)
	}
	return n, nil
}

// Flush blocks until the transmit buffer has drained onto the wire.
func (p *Port) Flush() error {
	if err := p.p.Drain(); err != nil {
		return fmt.Errorf("stream: drain %s: %w", p.name, err)
	}
	return nil
}

// Available reports how many received bytes are buffered.
func (p *Port) Available() int {
	p.fill() // best effort; a port error surfaces on the next Read
	return len(p.buf)
}

// Read copies up to len(dst) buffered bytes into dst without waiting
// for more to arrive.
func (p *Port) Read(dst []byte) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	err := p.fill()
	if len(p.buf) == 0 {
		if err != nil {
			return 0, fmt.Errorf("stream: read %s: %w", p.name, err)
		}
		return 0, nil
	}
	n := copy(dst, p.buf)
	rest := copy(p.buf, p.buf[n:])
	p.buf = p.buf[:rest]
	return n, nil
}

// Close releases the device.
func (p *Port) Close() error {
	return p.p.Close()
}
