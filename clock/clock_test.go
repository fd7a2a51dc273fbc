package clock

import (
	"testing"
	"time"
)

func TestManualSleepAdvances(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewManual(start)

	m.Sleep(5 * time.Millisecond)
	m.Sleep(time.Millisecond)

	if got, want := m.Now(), start.Add(6*time.Millisecond); !got.Equal(want) {
		t.Errorf("Now = %v, want %v", got, want)
	}

	slept := m.Slept()
	if len(slept) != 2 || slept[0] != 5*time.Millisecond || slept[1] != time.Millisecond {
		t.Errorf("Slept = %v, want [5ms 1ms]", slept)
	}
}

func TestManualAdvanceDoesNotRecord(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	m.Advance(time.Second)

	if got := m.Now(); !got.Equal(time.Unix(1, 0)) {
		t.Errorf("Now = %v, want 1s past epoch", got)
	}
	if len(m.Slept()) != 0 {
		t.Errorf("Advance recorded a sleep: %v", m.Slept())
	}
}

func TestSystemClock(t *testing.T) {
	c := System()
	before := time.Now()
	if c.Now().Before(before.Add(-time.Second)) {
		t.Error("System clock far behind time.Now")
	}
	c.Sleep(time.Millisecond) // must return
}
