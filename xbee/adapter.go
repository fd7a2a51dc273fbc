package xbee

import (
	"fmt"
	"time"

	"github.com/wsn-lab/uniradio/clock"
	"github.com/wsn-lab/uniradio/pin"
	"github.com/wsn-lab/uniradio/radio"
)

const (
	// statusTimeout bounds the wait for the sleep-status pin to
	// confirm a sleep or wake request.
	statusTimeout = 200 * time.Millisecond

	// pollInterval is the pin sampling period during that wait.
	pollInterval = time.Millisecond
)

// Levels of the modem's pin-sleep protocol. The request pin held low
// asks for sleep; the status pin reads low while the modem sleeps.
const (
	levelAsleep = pin.Low
	levelAwake  = pin.High
)

// Config carries the optional sleep-control wiring. A nil pin means
// the line is not wired and the matching behavior is disabled.
type Config struct {
	SleepRequestPin pin.Pin
	SleepStatusPin  pin.Pin
}

// Adapter implements the radio contract over a serial modem.
type Adapter struct {
	port Stream
	cfg  Config
	clk  clock.Clock
}

var (
	_ radio.Radio        = (*Adapter)(nil)
	_ radio.PowerManager = (*Adapter)(nil)
)

// New returns an adapter over an already configured stream. Call Init
// before use.
func New(port Stream, cfg Config) *Adapter {
	return &Adapter{port: port, cfg: cfg, clk: clock.System()}
}

// Init configures whichever sleep-control pins are wired and wakes
// the modem so it starts in the awake state. The wake confirmation is
// deliberately not checked: the modem has no bring-up of its own to
// fail, so only a pin that cannot be configured makes Init fail.
func (a *Adapter) Init() error {
	if p := a.cfg.SleepRequestPin; p != nil {
		if err := p.SetOutput(); err != nil {
			return fmt.Errorf("xbee: sleep request pin: %w", err)
		}
	}
	if p := a.cfg.SleepStatusPin; p != nil {
		if err := p.SetInput(); err != nil {
			return fmt.Errorf("xbee: sleep status pin: %w", err)
		}
	}
	_ = a.Wake()
	return nil
}

// Send writes p to the stream and flushes it through to the modem.
// It succeeds only when the stream accepted every byte.
func (a *Adapter) Send(p []byte) error {
	n, err := a.port.Write(p)
	if err != nil {
		return fmt.Errorf("xbee: write: %w", err)
	}
	if err := a.port.Flush(); err != nil {
		return fmt.Errorf("xbee: flush: %w", err)
	}
	if n != len(p) {
		return fmt.Errorf("xbee: wrote %d of %d bytes: %w", n, len(p), radio.ErrShortWrite)
	}
	return nil
}

// Available reports the bytes buffered on the stream.
func (a *Adapter) Available() int {
	return a.port.Available()
}

// Read drains up to len(p) buffered bytes. It never waits for more:
// with an empty buffer, or an empty p, it returns 0 immediately.
func (a *Adapter) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n := a.port.Available()
	if n == 0 {
		return 0, nil
	}
	if n > len(p) {
		n = len(p)
	}
	got, err := a.port.Read(p[:n])
	if err != nil {
		return got, fmt.Errorf("xbee: read: %w", err)
	}
	return got, nil
}

// Sleep asks the modem to sleep and, when the status pin is wired,
// waits for it to confirm.
func (a *Adapter) Sleep() error {
	return a.requestState(levelAsleep, "sleep")
}

// Wake asks the modem to wake and, when the status pin is wired,
// waits for it to confirm.
func (a *Adapter) Wake() error {
	return a.requestState(levelAwake, "wake")
}

func (a *Adapter) requestState(want pin.Level, what string) error {
	req := a.cfg.SleepRequestPin
	if req == nil {
		return nil // no sleep wiring; the modem just stays awake
	}
	if err := req.Write(want); err != nil {
		return fmt.Errorf("xbee: request %s: %w", what, err)
	}
	status := a.cfg.SleepStatusPin
	if status == nil {
		return nil // requested, but there is nothing to confirm with
	}
	if !a.waitForLevel(status, want, statusTimeout) {
		return fmt.Errorf("xbee: %s confirmation: %w", what, radio.ErrTimeout)
	}
	return nil
}

// waitForLevel busy-polls p every pollInterval until it reads want,
// or reports false once timeout has elapsed. A pin read error counts
// as a non-match and the poll keeps going.
func (a *Adapter) waitForLevel(p pin.Pin, want pin.Level, timeout time.Duration) bool {
	start := a.clk.Now()
	for a.clk.Now().Sub(start) < timeout {
		if lvl, err := p.Read(); err == nil && lvl == want {
			return true
		}
		a.clk.Sleep(pollInterval)
	}
	return false
}

func (a *Adapter) String() string {
	if a.cfg.SleepRequestPin != nil {
		return "xbee +pinsleep"
	}
	return "xbee"
}
