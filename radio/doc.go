// Package radio defines the uniform contract implemented by every radio
// adapter in this module.
//
// Application code holds a single Radio value and stays ignorant of the
// link technology behind it. The mandatory operations are bring-up,
// frame transmission and non-blocking reception; everything else —
// signal strength, power management — is an optional capability probed
// through a type assertion, with a defined default for adapters that
// cannot support it.
//
// All failures are reported as errors, never panics. Adapters wrap the
// package sentinels (ErrBusy, ErrNoAck, ErrShortWrite, ErrTimeout) so
// callers can classify a failure with errors.Is without knowing which
// adapter produced it.
package radio
