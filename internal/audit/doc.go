// Package audit implements the append-only frame log for the coordinator.
//
// Every frame that crosses the radio is recorded as one JSON line with
// timestamp, direction, size, hex payload, signal strength, and outcome, so
// a field deployment can be replayed and lossy links diagnosed offline.
package audit
