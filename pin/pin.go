// Package pin is a minimal GPIO abstraction: a digital line that can
// be configured as input or output, read and written. Adapters depend
// on the Pin interface so tests can substitute software pins; real
// hardware lines come from ByNumber, backed by periph.io.
package pin

// Level is the state of a digital line.
type Level bool

const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l == High {
		return "high"
	}
	return "low"
}

// Pin is a single GPIO line. Implementations report hardware faults
// through the error returns; software pins never fail.
type Pin interface {
	// SetInput configures the line as an input.
	SetInput() error

	// SetOutput configures the line as an output, driven low.
	SetOutput() error

	// Read samples the current level.
	Read() (Level, error)

	// Write drives the line to the given level. The line must be an
	// output.
	Write(l Level) error
}
