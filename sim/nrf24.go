package sim

import (
	"sync"

	"github.com/wsn-lab/uniradio/nrf24"
)

const (
	// nrfMaxPayload mirrors the hardware payload limit.
	nrfMaxPayload = 32

	// nrfFIFODepth mirrors the three-deep RX FIFO.
	nrfFIFODepth = 3
)

// NRF24 attaches a new simulated NRF24L01 chip to the air.
func (a *Air) NRF24() *NRF24Chip {
	c := &NRF24Chip{air: a}
	a.mu.Lock()
	a.nrf = append(a.nrf, c)
	a.mu.Unlock()
	return c
}

// NRF24Chip is a software NRF24L01. It implements the nrf24 driver
// interface. Data rate and amplifier level are stored but assumed
// matched between peers.
type NRF24Chip struct {
	air *Air

	mu        sync.Mutex
	began     bool
	powered   bool
	listening bool
	channel   uint8
	rate      nrf24.DataRate
	pa        nrf24.PALevel
	dynamic   bool
	writeAddr nrf24.Address
	readAddr  nrf24.Address
	fifo      [][]byte
}

func (c *NRF24Chip) Begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.began = true
	c.powered = true
	return nil
}

func (c *NRF24Chip) SetChannel(ch uint8)        { c.mu.Lock(); c.channel = ch; c.mu.Unlock() }
func (c *NRF24Chip) SetDataRate(r nrf24.DataRate) { c.mu.Lock(); c.rate = r; c.mu.Unlock() }
func (c *NRF24Chip) SetPALevel(l nrf24.PALevel) { c.mu.Lock(); c.pa = l; c.mu.Unlock() }
func (c *NRF24Chip) EnableDynamicPayloads()     { c.mu.Lock(); c.dynamic = true; c.mu.Unlock() }

func (c *NRF24Chip) OpenWritingPipe(addr nrf24.Address) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writeAddr = addr
}

func (c *NRF24Chip) OpenReadingPipe(pipe uint8, addr nrf24.Address) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.readAddr = addr
}

func (c *NRF24Chip) StartListening() { c.mu.Lock(); c.listening = true; c.mu.Unlock() }
func (c *NRF24Chip) StopListening()  { c.mu.Lock(); c.listening = false; c.mu.Unlock() }

// Write transmits p and reports whether any reachable peer took it.
// Reachable means powered, listening, on the same channel, reading
// the address this chip writes to, with FIFO room. Payloads clamp to
// the hardware limit.
func (c *NRF24Chip) Write(p []byte) bool {
	if len(p) > nrfMaxPayload {
		p = p[:nrfMaxPayload]
	}

	c.mu.Lock()
	if !c.began || !c.powered {
		c.mu.Unlock()
		return false
	}
	ch, addr := c.channel, c.writeAddr
	c.mu.Unlock()

	chips, loopback := c.air.snapshotNRF()
	acked := false
	for _, rx := range chips {
		if rx == c && !loopback {
			continue
		}
		if rx.receive(p, ch, addr) {
			acked = true
		}
	}
	return acked
}

func (c *NRF24Chip) receive(p []byte, ch uint8, addr nrf24.Address) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.began || !c.powered || !c.listening {
		return false
	}
	if c.channel != ch || c.readAddr != addr {
		return false
	}
	if len(c.fifo) >= nrfFIFODepth {
		return false // full FIFO, no acknowledgement
	}
	c.fifo = append(c.fifo, append([]byte(nil), p...))
	return true
}

func (c *NRF24Chip) Available() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.fifo) > 0
}

func (c *NRF24Chip) DynamicPayloadSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.fifo) == 0 {
		return 0
	}
	return len(c.fifo[0])
}

func (c *NRF24Chip) Read(p []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.fifo) == 0 {
		return
	}
	copy(p, c.fifo[0])
	c.fifo = c.fifo[1:]
}

func (c *NRF24Chip) PowerDown() { c.mu.Lock(); c.powered = false; c.mu.Unlock() }
func (c *NRF24Chip) PowerUp()   { c.mu.Lock(); c.powered = true; c.mu.Unlock() }
