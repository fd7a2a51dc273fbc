package sim

import (
	"sync"

	"github.com/wsn-lab/uniradio/pin"
)

// Pin is a software GPIO line. The level can be set from the outside,
// standing in for the device on the other end of the wire, and every
// write is recorded for inspection.
type Pin struct {
	mu      sync.Mutex
	level   pin.Level
	writes  []pin.Level
	onWrite func(pin.Level)
}

var _ pin.Pin = (*Pin)(nil)

// NewPin returns a pin resting at the given level.
func NewPin(level pin.Level) *Pin {
	return &Pin{level: level}
}

func (p *Pin) SetInput() error { return nil }

// SetOutput drives the line low, like a hardware line entering output
// mode. Configuration is not recorded as a write.
func (p *Pin) SetOutput() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = pin.Low
	return nil
}

func (p *Pin) Read() (pin.Level, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level, nil
}

func (p *Pin) Write(l pin.Level) error {
	p.mu.Lock()
	p.level = l
	p.writes = append(p.writes, l)
	hook := p.onWrite
	p.mu.Unlock()
	if hook != nil {
		hook(l)
	}
	return nil
}

// Set changes the level from the device side, without recording a
// write.
func (p *Pin) Set(l pin.Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = l
}

// Writes returns the history of levels driven onto the pin.
func (p *Pin) Writes() []pin.Level {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]pin.Level, len(p.writes))
	copy(out, p.writes)
	return out
}

// OnWrite installs a hook invoked after each write, useful for wiring
// one pin's behavior to another, such as a sleep-status pin that
// follows the request pin of a perfectly compliant modem.
func (p *Pin) OnWrite(fn func(pin.Level)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onWrite = fn
}

// LinkSleepPins wires status to follow every level driven onto
// request, emulating a modem that honors sleep requests immediately.
func LinkSleepPins(request, status *Pin) {
	request.OnWrite(func(l pin.Level) { status.Set(l) })
}
