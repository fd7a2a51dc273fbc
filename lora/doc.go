// Package lora adapts a LoRa transceiver to the radio contract.
//
// The chip itself sits behind the Driver interface, shaped after the
// common LoRa driver libraries: explicit packet framing (begin, write,
// end), a parse poll that latches one received packet at a time, and
// byte-wise reads of the latched packet.
//
// Two behaviors follow from that shape and are part of this adapter's
// contract:
//
//   - Available performs the parse poll, so it has a side effect: it
//     latches a newly arrived packet for reading and drops whatever
//     was left unread of the previous one.
//   - Read drains the latched packet. Bytes beyond the caller's buffer
//     stay latched and can be picked up by further Reads until the
//     next Available poll replaces the packet.
package lora
