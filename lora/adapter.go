package lora

import (
	"fmt"

	"github.com/wsn-lab/uniradio/radio"
)

// Config carries the tuning applied during Init.
type Config struct {
	FrequencyHz     int64 // carrier, e.g. 433e6 / 868e6 / 915e6
	TxPowerDB       int
	SpreadingFactor int   // 6..12
	BandwidthHz     int64 // e.g. 125000
	CodingRate      int   // denominator of 4/x, 5..8
	SyncWord        byte

	// Wiring, forwarded verbatim to the driver. -1 = not wired.
	CSPin    int
	ResetPin int
	IRQPin   int
}

// Adapter implements the radio contract over a LoRa chip driver.
type Adapter struct {
	drv Driver
	cfg Config
}

var (
	_ radio.Radio            = (*Adapter)(nil)
	_ radio.SignalStrengther = (*Adapter)(nil)
	_ radio.PowerManager     = (*Adapter)(nil)
)

// New returns an adapter over drv. Call Init before use.
func New(drv Driver, cfg Config) *Adapter {
	return &Adapter{drv: drv, cfg: cfg}
}

// Init wires the pins, brings the chip up on the configured frequency
// and applies the tuning parameters. A Begin failure aborts
// immediately: no tuning setter runs against a chip that never came
// up.
func (a *Adapter) Init() error {
	a.drv.SetPins(a.cfg.CSPin, a.cfg.ResetPin, a.cfg.IRQPin)
	if err := a.drv.Begin(a.cfg.FrequencyHz); err != nil {
		return fmt.Errorf("lora: begin at %d Hz: %w", a.cfg.FrequencyHz, err)
	}
	a.drv.SetTxPower(a.cfg.TxPowerDB)
	a.drv.SetSpreadingFactor(a.cfg.SpreadingFactor)
	a.drv.SetSignalBandwidth(a.cfg.BandwidthHz)
	a.drv.SetCodingRate4(a.cfg.CodingRate)
	a.drv.SetSyncWord(a.cfg.SyncWord)
	return nil
}

// Send transmits p as one packet. The only failure is the frame not
// starting: once the driver opens the frame, the write and the
// closing transmit carry no failure signal of their own.
func (a *Adapter) Send(p []byte) error {
	if err := a.drv.BeginPacket(); err != nil {
		return fmt.Errorf("lora: start frame (%v): %w", err, radio.ErrBusy)
	}
	a.drv.Write(p)
	a.drv.EndPacket()
	return nil
}

// Available polls the driver for a received packet and reports its
// size. The poll latches the packet; see the package documentation
// for the consequences for partially read packets.
func (a *Adapter) Available() int {
	return a.drv.ParsePacket()
}

// Read drains up to len(p) bytes of the latched packet.
func (a *Adapter) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) && a.drv.Available() > 0 {
		b := a.drv.Read()
		if b < 0 {
			break
		}
		p[n] = byte(b)
		n++
	}
	return n, nil
}

// SignalStrength reports the RSSI of the last received packet, in dBm.
func (a *Adapter) SignalStrength() int {
	return a.drv.PacketRSSI()
}

// Sleep puts the chip into its low-power mode.
func (a *Adapter) Sleep() error {
	a.drv.Sleep()
	return nil
}

// Wake returns the chip to standby.
func (a *Adapter) Wake() error {
	a.drv.Idle()
	return nil
}

func (a *Adapter) String() string {
	return fmt.Sprintf("lora %.1fMHz sf%d", float64(a.cfg.FrequencyHz)/1e6, a.cfg.SpreadingFactor)
}
