// Package sim provides software implementations of the chip driver
// interfaces, connected through a shared Air, plus a serial pipe and
// software pins.
//
// The simulated chips keep just enough physics to be honest test
// doubles: LoRa frames only reach chips tuned to the same frequency
// and sync word, NRF24 writes are acknowledged only when a powered,
// listening peer with a matching pipe address had FIFO room, sleeping
// chips miss traffic. The demo binaries run the real adapters over
// these chips in their sim mode; the package also backs integration
// style tests that need a full link without hardware.
package sim
