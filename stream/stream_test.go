package stream

import (
	"bytes"
	"testing"
	"time"

	"go.bug.st/serial"
)

// fakeDevice implements serial.Port over in-memory buffers.
type fakeDevice struct {
	rx      bytes.Buffer // bytes the device "received" from the wire
	tx      bytes.Buffer // bytes written out
	drains  int
	timeout time.Duration
	closed  bool
}

var _ serial.Port = (*fakeDevice)(nil)

func (f *fakeDevice) Read(p []byte) (int, error) {
	// Timeout zero: return immediately. A polled serial read reports
	// (0, nil) when nothing is buffered, never io.EOF.
	if f.rx.Len() == 0 {
		return 0, nil
	}
	return f.rx.Read(p)
}

func (f *fakeDevice) Write(p []byte) (int, error) { return f.tx.Write(p) }
func (f *fakeDevice) Drain() error                { f.drains++; return nil }

func (f *fakeDevice) SetMode(mode *serial.Mode) error { return nil }
func (f *fakeDevice) ResetInputBuffer() error         { f.rx.Reset(); return nil }
func (f *fakeDevice) ResetOutputBuffer() error        { f.tx.Reset(); return nil }
func (f *fakeDevice) SetDTR(dtr bool) error           { return nil }
func (f *fakeDevice) SetRTS(rts bool) error           { return nil }
func (f *fakeDevice) GetModemStatusBits() (*serial.ModemStatusBits, error) {
	return &serial.ModemStatusBits{}, nil
}
func (f *fakeDevice) SetReadTimeout(t time.Duration) error { f.timeout = t; return nil }
func (f *fakeDevice) Close() error                         { f.closed = true; return nil }
func (f *fakeDevice) Break(d time.Duration) error          { return nil }

func newTestPort(t *testing.T, dev *fakeDevice) *Port {
	t.Helper()
	p, err := newPort("fake0", dev)
	if err != nil {
		t.Fatalf("newPort: %v", err)
	}
	return p
}

func TestOpenSetsNonBlockingReads(t *testing.T) {
	dev := &fakeDevice{timeout: time.Second}
	newTestPort(t, dev)
	if dev.timeout != 0 {
		t.Errorf("read timeout = %v, want 0 (non-blocking)", dev.timeout)
	}
}

func TestAvailableBuffersWithoutConsuming(t *testing.T) {
	dev := &fakeDevice{}
	p := newTestPort(t, dev)

	dev.rx.WriteString("sensor-1")
	if got := p.Available(); got != 8 {
		t.Fatalf("Available = %d, want 8", got)
	}
	// A second poll with no new bytes must not lose the buffered ones.
	if got := p.Available(); got != 8 {
		t.Errorf("Available after re-poll = %d, want 8", got)
	}
}

func TestReadDrainsUpToLen(t *testing.T) {
	dev := &fakeDevice{}
	p := newTestPort(t, dev)
	dev.rx.WriteString("abcdef")

	var small [4]byte
	n, err := p.Read(small[:])
	if err != nil || n != 4 || string(small[:n]) != "abcd" {
		t.Fatalf("Read = %d %q %v, want 4 \"abcd\" nil", n, small[:n], err)
	}

	var rest [16]byte
	n, err = p.Read(rest[:])
	if err != nil || n != 2 || string(rest[:n]) != "ef" {
		t.Fatalf("second Read = %d %q %v, want 2 \"ef\" nil", n, rest[:n], err)
	}
}

func TestReadNothingPending(t *testing.T) {
	p := newTestPort(t, &fakeDevice{})

	var buf [8]byte
	n, err := p.Read(buf[:])
	if n != 0 || err != nil {
		t.Errorf("Read on idle port = %d %v, want 0 nil", n, err)
	}
	n, err = p.Read(nil)
	if n != 0 || err != nil {
		t.Errorf("zero-length Read = %d %v, want 0 nil", n, err)
	}
}

func TestWriteAndFlush(t *testing.T) {
	dev := &fakeDevice{}
	p := newTestPort(t, dev)

	n, err := p.Write([]byte("ping"))
	if err != nil || n != 4 {
		t.Fatalf("Write = %d %v, want 4 nil", n, err)
	}
	if err := p.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if dev.tx.String() != "ping" || dev.drains != 1 {
		t.Errorf("device saw %q with %d drains, want \"ping\" with 1", dev.tx.String(), dev.drains)
	}
}

func TestClose(t *testing.T) {
	dev := &fakeDevice{}
	p := newTestPort(t, dev)
	if err := p.Close(); err != nil || !dev.closed {
		t.Errorf("Close = %v, closed = %v; want nil, true", err, dev.closed)
	}
}
