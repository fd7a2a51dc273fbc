// Package radiotest provides an adapter-agnostic conformance suite
// for the radio contract. Each adapter package runs it over a mock or
// simulated driver; passing it means the adapter honors the
// contract-level behaviors every caller relies on.
package radiotest

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/wsn-lab/uniradio/radio"
)

// Link couples a freshly constructed, un-initialized Radio with a hook
// that makes bytes arrive on it as one received frame.
//
// The factory must wire the link so that Send succeeds, Deliver
// delivers a frame of any length unfragmented, and power management —
// if the adapter has it — succeeds without external help (for pin
// driven adapters that means leaving the pins unwired).
type Link struct {
	Radio   radio.Radio
	Deliver func(p []byte)
}

// Factory builds a fresh Link. Run calls it once per check so state
// cannot leak between checks.
type Factory func(t *testing.T) Link

// Result records the outcome of one conformance check.
type Result struct {
	Name     string
	Passed   bool
	Error    string
	Duration time.Duration
}

// Report is the complete conformance run.
type Report struct {
	Total    int
	Passed   int
	Failed   int
	Results  []Result
	AllGreen bool
	Duration time.Duration
}

// Run executes the conformance suite against links built by newLink
// and fails the test if any check fails.
func Run(t *testing.T, newLink Factory) {
	start := time.Now()
	report := &Report{AllGreen: true}

	checks := []struct {
		name string
		fn   func(t *testing.T, l Link) error
	}{
		{"Init_Succeeds", checkInit},
		{"Init_Repeatable", checkInitRepeatable},
		{"Idle_NothingToRead", checkIdle},
		{"RoundTrip_DeliveredFrame", checkRoundTrip},
		{"Read_RespectsBufferBound", checkReadBound},
		{"ReadString_Truncates", checkReadStringTruncates},
		{"Send_Accepted", checkSend},
		{"Optional_HelpersSafe", checkOptionalHelpers},
	}

	for _, c := range checks {
		l := newLink(t)
		res := Result{Name: c.name}
		s := time.Now()
		if err := c.fn(t, l); err != nil {
			res.Error = err.Error()
		} else {
			res.Passed = true
		}
		res.Duration = time.Since(s)
		report.add(res)
	}

	report.Duration = time.Since(start)
	printReport(t, report)

	if !report.AllGreen {
		t.Fatalf("radio conformance: %d/%d checks passed", report.Passed, report.Total)
	}
}

func checkInit(t *testing.T, l Link) error {
	if err := l.Radio.Init(); err != nil {
		return fmt.Errorf("Init: %v", err)
	}
	return nil
}

func checkInitRepeatable(t *testing.T, l Link) error {
	if err := l.Radio.Init(); err != nil {
		return fmt.Errorf("first Init: %v", err)
	}
	if err := l.Radio.Init(); err != nil {
		return fmt.Errorf("second Init: %v", err)
	}
	return nil
}

// checkIdle verifies the zero-available / zero-read coupling on a
// radio that has seen no traffic.
func checkIdle(t *testing.T, l Link) error {
	if err := l.Radio.Init(); err != nil {
		return fmt.Errorf("Init: %v", err)
	}
	if n := l.Radio.Available(); n != 0 {
		return fmt.Errorf("Available on idle link = %d, want 0", n)
	}
	var buf [32]byte
	n, err := l.Radio.Read(buf[:])
	if err != nil {
		return fmt.Errorf("Read on idle link: %v", err)
	}
	if n != 0 {
		return fmt.Errorf("Read on idle link = %d bytes, want 0", n)
	}
	s, err := radio.ReadString(l.Radio)
	if err != nil {
		return fmt.Errorf("ReadString on idle link: %v", err)
	}
	if s != "" {
		return fmt.Errorf("ReadString on idle link = %q, want empty", s)
	}
	return nil
}

func checkRoundTrip(t *testing.T, l Link) error {
	if err := l.Radio.Init(); err != nil {
		return fmt.Errorf("Init: %v", err)
	}
	frame := []byte("node-7 seq=19 t=21.5")
	l.Deliver(frame)

	if n := l.Radio.Available(); n != len(frame) {
		return fmt.Errorf("Available = %d, want %d", n, len(frame))
	}
	buf := make([]byte, len(frame)+8)
	n, err := l.Radio.Read(buf)
	if err != nil {
		return fmt.Errorf("Read: %v", err)
	}
	if !bytes.Equal(buf[:n], frame) {
		return fmt.Errorf("Read = %q, want %q", buf[:n], frame)
	}
	return nil
}

// checkReadBound delivers more than the caller's buffer holds and
// verifies Read never writes past it.
func checkReadBound(t *testing.T, l Link) error {
	if err := l.Radio.Init(); err != nil {
		return fmt.Errorf("Init: %v", err)
	}
	l.Deliver([]byte("0123456789"))
	if l.Radio.Available() == 0 {
		return fmt.Errorf("delivered frame never became available")
	}

	canary := bytes.Repeat([]byte{0xAA}, 16)
	n, err := l.Radio.Read(canary[:4])
	if err != nil {
		return fmt.Errorf("Read: %v", err)
	}
	if n > 4 {
		return fmt.Errorf("Read reported %d bytes into a 4-byte buffer", n)
	}
	for i := 4; i < len(canary); i++ {
		if canary[i] != 0xAA {
			return fmt.Errorf("Read wrote past its buffer at offset %d", i)
		}
	}
	return nil
}

func checkReadStringTruncates(t *testing.T, l Link) error {
	if err := l.Radio.Init(); err != nil {
		return fmt.Errorf("Init: %v", err)
	}
	l.Deliver(bytes.Repeat([]byte("a"), 300))

	if l.Radio.Available() == 0 {
		return fmt.Errorf("delivered frame never became available")
	}
	s, err := radio.ReadString(l.Radio)
	if err != nil {
		return fmt.Errorf("ReadString: %v", err)
	}
	if len(s) != 255 {
		return fmt.Errorf("ReadString length = %d, want 255", len(s))
	}
	return nil
}

func checkSend(t *testing.T, l Link) error {
	if err := l.Radio.Init(); err != nil {
		return fmt.Errorf("Init: %v", err)
	}
	if err := l.Radio.Send([]byte("ping")); err != nil {
		return fmt.Errorf("Send: %v", err)
	}
	if err := radio.SendString(l.Radio, "ping"); err != nil {
		return fmt.Errorf("SendString: %v", err)
	}
	return nil
}

// checkOptionalHelpers exercises the capability helpers; under the
// factory's precondition they must succeed whether or not the adapter
// implements the capability.
func checkOptionalHelpers(t *testing.T, l Link) error {
	if err := l.Radio.Init(); err != nil {
		return fmt.Errorf("Init: %v", err)
	}
	_ = radio.SignalStrength(l.Radio)
	if err := radio.Sleep(l.Radio); err != nil {
		return fmt.Errorf("Sleep: %v", err)
	}
	if err := radio.Wake(l.Radio); err != nil {
		return fmt.Errorf("Wake: %v", err)
	}
	return nil
}

func (r *Report) add(res Result) {
	r.Total++
	if res.Passed {
		r.Passed++
	} else {
		r.Failed++
		r.AllGreen = false
	}
	r.Results = append(r.Results, res)
}

func printReport(t *testing.T, report *Report) {
	t.Logf("%s", strings.Repeat("-", 64))
	t.Logf("%-32s %-6s %s", "CHECK", "RESULT", "DETAIL")
	t.Logf("%s", strings.Repeat("-", 64))
	for _, res := range report.Results {
		status := "PASS"
		if !res.Passed {
			status = "FAIL"
		}
		t.Logf("%-32s %-6s %s", res.Name, status, res.Error)
	}
	t.Logf("%s", strings.Repeat("-", 64))
	t.Logf("conformance: %d/%d passed in %v", report.Passed, report.Total, report.Duration)
}
