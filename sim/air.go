package sim

import (
	"errors"
	"sync"
)

// defaultRSSI is the signal strength receivers report for delivered
// frames until the test changes it.
const defaultRSSI = -60

// Air is the shared medium simulated chips transmit into.
type Air struct {
	mu       sync.Mutex
	lora     []*LoRaChip
	nrf      []*NRF24Chip
	rssi     int
	loopback bool
}

// NewAir returns an empty medium.
func NewAir() *Air {
	return &Air{rssi: defaultRSSI}
}

// SetRSSI fixes the signal strength reported with every delivery.
func (a *Air) SetRSSI(rssi int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rssi = rssi
}

// SetLoopback makes transmissions reach their own sender too, which
// lets a single-ended demo hear itself.
func (a *Air) SetLoopback(on bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.loopback = on
}

func (a *Air) snapshotLoRa() ([]*LoRaChip, int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	chips := make([]*LoRaChip, len(a.lora))
	copy(chips, a.lora)
	return chips, a.rssi, a.loopback
}

func (a *Air) snapshotNRF() ([]*NRF24Chip, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	chips := make([]*NRF24Chip, len(a.nrf))
	copy(chips, a.nrf)
	return chips, a.loopback
}

// LoRa attaches a new simulated LoRa chip to the air.
func (a *Air) LoRa() *LoRaChip {
	c := &LoRaChip{air: a}
	a.mu.Lock()
	a.lora = append(a.lora, c)
	a.mu.Unlock()
	return c
}

// loraFrame is a delivered frame with the signal strength it arrived
// at.
type loraFrame struct {
	data []byte
	rssi int
}

// LoRaChip is a software LoRa transceiver. It implements the lora
// driver interface.
type LoRaChip struct {
	air *Air

	mu      sync.Mutex
	began   bool
	asleep  bool
	freqHz  int64
	sync    byte
	frame   []byte      // open outgoing frame
	inbox   []loraFrame // frames awaiting a parse poll
	latched []byte      // unread remainder of the latched frame
	rssi    int         // of the last latched frame

	// Tuning kept for inspection; the simulation does not act on it.
	txPower   int
	spreading int
	bwHz      int64
	coding    int
	csPin     int
	resetPin  int
	irqPin    int
}

func (c *LoRaChip) SetPins(cs, reset, irq int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.csPin, c.resetPin, c.irqPin = cs, reset, irq
}

func (c *LoRaChip) Begin(frequencyHz int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.began = true
	c.asleep = false
	c.freqHz = frequencyHz
	return nil
}

func (c *LoRaChip) SetTxPower(dB int)           { c.mu.Lock(); c.txPower = dB; c.mu.Unlock() }
func (c *LoRaChip) SetSpreadingFactor(sf int)   { c.mu.Lock(); c.spreading = sf; c.mu.Unlock() }
func (c *LoRaChip) SetSignalBandwidth(hz int64) { c.mu.Lock(); c.bwHz = hz; c.mu.Unlock() }
func (c *LoRaChip) SetCodingRate4(d int)        { c.mu.Lock(); c.coding = d; c.mu.Unlock() }
func (c *LoRaChip) SetSyncWord(sw byte)         { c.mu.Lock(); c.sync = sw; c.mu.Unlock() }

func (c *LoRaChip) BeginPacket() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.began {
		return errors.New("sim: lora chip not started")
	}
	if c.asleep {
		return errors.New("sim: lora chip sleeping")
	}
	c.frame = nil
	return nil
}

func (c *LoRaChip) Write(p []byte) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frame = append(c.frame, p...)
	return len(p)
}

// EndPacket transmits the open frame to every attached chip tuned to
// the same frequency and sync word.
func (c *LoRaChip) EndPacket() {
	c.mu.Lock()
	frame := c.frame
	c.frame = nil
	freq, sw := c.freqHz, c.sync
	c.mu.Unlock()

	chips, rssi, loopback := c.air.snapshotLoRa()
	for _, rx := range chips {
		if rx == c && !loopback {
			continue
		}
		rx.receive(frame, freq, sw, rssi)
	}
}

func (c *LoRaChip) receive(frame []byte, freqHz int64, sw byte, rssi int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.began || c.asleep || c.freqHz != freqHz || c.sync != sw {
		return // off the air or tuned elsewhere
	}
	c.inbox = append(c.inbox, loraFrame{data: append([]byte(nil), frame...), rssi: rssi})
}

func (c *LoRaChip) ParsePacket() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.inbox) == 0 {
		return 0
	}
	f := c.inbox[0]
	c.inbox = c.inbox[1:]
	c.latched = f.data
	c.rssi = f.rssi
	return len(c.latched)
}

func (c *LoRaChip) Available() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.latched)
}

func (c *LoRaChip) Read() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.latched) == 0 {
		return -1
	}
	b := c.latched[0]
	c.latched = c.latched[1:]
	return int(b)
}

func (c *LoRaChip) PacketRSSI() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rssi
}

func (c *LoRaChip) Sleep() { c.mu.Lock(); c.asleep = true; c.mu.Unlock() }
func (c *LoRaChip) Idle()  { c.mu.Lock(); c.asleep = false; c.mu.Unlock() }
