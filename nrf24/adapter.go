package nrf24

import (
	"fmt"
	"time"

	"github.com/wsn-lab/uniradio/clock"
	"github.com/wsn-lab/uniradio/radio"
)

// settleDelay is how long the oscillator gets to stabilize after
// PowerUp before the chip is trusted again.
const settleDelay = 5 * time.Millisecond

// Config carries the radio setup applied during Init.
type Config struct {
	// Wiring declaration, consumed when the chip driver is
	// constructed. Recorded here so one Config block describes the
	// whole link.
	CEPin  int
	CSNPin int

	Channel uint8 // RF channel, 0..125

	// DataRateKbps selects the air data rate by tier: 250, 1000 or
	// 2000. Unrecognized values fall back to the middle tier (1 Mbps).
	DataRateKbps int

	// PALevelTier maps directly onto the driver's amplifier
	// enumeration, 0 (min) .. 3 (max).
	PALevelTier int

	WriteAddress Address
	ReadAddress  Address
}

// Adapter implements the radio contract over an NRF24L01 chip driver.
type Adapter struct {
	drv Driver
	cfg Config
	clk clock.Clock
}

var (
	_ radio.Radio        = (*Adapter)(nil)
	_ radio.PowerManager = (*Adapter)(nil)
)

// New returns an adapter over drv. Call Init before use.
func New(drv Driver, cfg Config) *Adapter {
	return &Adapter{drv: drv, cfg: cfg, clk: clock.System()}
}

// dataRateFor translates a kbps tier into the driver enumeration.
// Anything but the outer tiers lands on 1 Mbps.
func dataRateFor(kbps int) DataRate {
	switch kbps {
	case 250:
		return DataRate250Kbps
	case 2000:
		return DataRate2Mbps
	default:
		return DataRate1Mbps
	}
}

// Init probes the chip and applies channel, data rate, amplifier
// level, dynamic payloads and the two pipe addresses, then enters
// receive mode. A Begin failure aborts immediately; after a
// successful Begin bring-up always succeeds.
func (a *Adapter) Init() error {
	if err := a.drv.Begin(); err != nil {
		return fmt.Errorf("nrf24: begin: %w", err)
	}
	a.drv.SetChannel(a.cfg.Channel)
	a.drv.SetDataRate(dataRateFor(a.cfg.DataRateKbps))
	a.drv.SetPALevel(PALevel(a.cfg.PALevelTier))
	a.drv.EnableDynamicPayloads()
	a.drv.OpenWritingPipe(a.cfg.WriteAddress)
	a.drv.OpenReadingPipe(1, a.cfg.ReadAddress)
	a.drv.StartListening()
	return nil
}

// Send leaves receive mode for the duration of one acknowledged
// write. Receive mode is restored whether or not the peer
// acknowledged; only the acknowledgement decides the result.
func (a *Adapter) Send(p []byte) error {
	a.drv.StopListening()
	defer a.drv.StartListening()
	if !a.drv.Write(p) {
		return fmt.Errorf("nrf24: send %d bytes: %w", len(p), radio.ErrNoAck)
	}
	return nil
}

// Available reports the size of the frame at the head of the RX FIFO.
func (a *Adapter) Available() int {
	if !a.drv.Available() {
		return 0
	}
	return a.drv.DynamicPayloadSize()
}

// Read pops the head frame. It re-queries the frame size itself, so
// it works without a prior Available call; whatever does not fit in p
// is discarded with the frame.
func (a *Adapter) Read(p []byte) (int, error) {
	size := a.drv.DynamicPayloadSize()
	if size == 0 {
		return 0, nil
	}
	n := size
	if n > len(p) {
		n = len(p)
	}
	a.drv.Read(p[:n])
	return n, nil
}

// Sleep powers the chip down.
func (a *Adapter) Sleep() error {
	a.drv.PowerDown()
	return nil
}

// Wake powers the chip up and waits out the oscillator settling
// delay.
func (a *Adapter) Wake() error {
	a.drv.PowerUp()
	a.clk.Sleep(settleDelay)
	return nil
}

func (a *Adapter) String() string {
	return fmt.Sprintf("nrf24 ch%d %s", a.cfg.Channel, dataRateFor(a.cfg.DataRateKbps))
}
