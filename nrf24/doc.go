// Package nrf24 adapts an NRF24L01-style 2.4 GHz transceiver to the
// radio contract.
//
// The link is acknowledged: Send blocks until the peer confirms the
// frame or the chip gives up, and reports the outcome. The adapter
// keeps the chip in receive mode at all times except for the send
// window itself; transmissions toggle listening off, write, and
// toggle it back on whether or not the peer acknowledged.
//
// Received frames carry their own length (dynamic payloads). Read
// pops one frame from the chip's FIFO: bytes beyond the caller's
// buffer are discarded with the frame, which is a property of the
// hardware pop, not of this adapter.
package nrf24
