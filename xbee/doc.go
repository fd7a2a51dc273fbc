// Package xbee adapts an XBee-style serial modem to the radio
// contract.
//
// The modem does all radio work on its own; this adapter only moves
// bytes over an externally owned serial stream and, when the two
// optional control pins are wired, drives the modem's pin-sleep
// protocol. The stream must be opened and configured before the
// adapter sees it — package stream does that for real hardware.
//
// Pin sleep works on levels: holding the sleep-request pin low asks
// the modem to sleep, and the sleep-status pin follows, low while
// asleep. Sleep and Wake drive the request level and then wait up to
// a fixed 200 ms for the status pin to confirm; without a status pin
// the request is fire-and-forget.
package xbee
