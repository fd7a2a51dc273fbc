package pin

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

var (
	hostOnce sync.Once
	hostErr  error
)

// ByNumber resolves a hardware GPIO line by its broadcom-style number,
// initializing the periph.io host drivers on first use.
func ByNumber(n int) (Pin, error) {
	hostOnce.Do(func() {
		_, hostErr = host.Init()
	})
	if hostErr != nil {
		return nil, fmt.Errorf("pin: periph host init: %w", hostErr)
	}

	name := pinName(n)
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("pin: %s not present on this host", name)
	}
	return &hostPin{p: p}, nil
}

func pinName(n int) string {
	return fmt.Sprintf("GPIO%d", n)
}

// hostPin adapts a periph.io line to the Pin interface.
type hostPin struct {
	p gpio.PinIO
}

func (h *hostPin) SetInput() error {
	if err := h.p.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
		return fmt.Errorf("pin: %s as input: %w", h.p.Name(), err)
	}
	return nil
}

func (h *hostPin) SetOutput() error {
	// Out establishes the direction; start low, the usual reset state.
	if err := h.p.Out(gpio.Low); err != nil {
		return fmt.Errorf("pin: %s as output: %w", h.p.Name(), err)
	}
	return nil
}

func (h *hostPin) Read() (Level, error) {
	return Level(h.p.Read() == gpio.High), nil
}

func (h *hostPin) Write(l Level) error {
	lvl := gpio.Low
	if l == High {
		lvl = gpio.High
	}
	if err := h.p.Out(lvl); err != nil {
		return fmt.Errorf("pin: drive %s %s: %w", h.p.Name(), l, err)
	}
	return nil
}
