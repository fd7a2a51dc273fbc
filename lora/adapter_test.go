package lora

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/wsn-lab/uniradio/radio"
	"github.com/wsn-lab/uniradio/radio/radiotest"
)

// mockDriver records the order-significant calls and simulates the
// packet latch of a real LoRa driver.
type mockDriver struct {
	calls []string

	beginErr       error
	beginPacketErr error

	frame      []byte   // open outgoing frame
	sentFrames [][]byte // frames transmitted by EndPacket
	inbox      [][]byte // packets waiting for a ParsePacket poll
	latched    []byte   // unread remainder of the latched packet
	rssi       int
}

var _ Driver = (*mockDriver)(nil)

func (m *mockDriver) call(format string, args ...interface{}) {
	m.calls = append(m.calls, fmt.Sprintf(format, args...))
}

func (m *mockDriver) SetPins(cs, reset, irq int) { m.call("setPins(%d,%d,%d)", cs, reset, irq) }

func (m *mockDriver) Begin(frequencyHz int64) error {
	m.call("begin(%d)", frequencyHz)
	return m.beginErr
}

func (m *mockDriver) SetTxPower(dB int)            { m.call("txPower(%d)", dB) }
func (m *mockDriver) SetSpreadingFactor(sf int)    { m.call("sf(%d)", sf) }
func (m *mockDriver) SetSignalBandwidth(hz int64)  { m.call("bw(%d)", hz) }
func (m *mockDriver) SetCodingRate4(d int)         { m.call("cr(%d)", d) }
func (m *mockDriver) SetSyncWord(sw byte)          { m.call("sync(%#x)", sw) }

func (m *mockDriver) BeginPacket() error {
	m.call("beginPacket")
	if m.beginPacketErr != nil {
		return m.beginPacketErr
	}
	m.frame = nil
	return nil
}

func (m *mockDriver) Write(p []byte) int {
	m.call("write(%d)", len(p))
	m.frame = append(m.frame, p...)
	return len(p)
}

func (m *mockDriver) EndPacket() {
	m.call("endPacket")
	m.sentFrames = append(m.sentFrames, m.frame)
	m.frame = nil
}

func (m *mockDriver) ParsePacket() int {
	if len(m.inbox) == 0 {
		return 0
	}
	// A new packet replaces whatever was left of the old one.
	m.latched = m.inbox[0]
	m.inbox = m.inbox[1:]
	return len(m.latched)
}

func (m *mockDriver) Available() int { return len(m.latched) }

func (m *mockDriver) Read() int {
	if len(m.latched) == 0 {
		return -1
	}
	b := m.latched[0]
	m.latched = m.latched[1:]
	return int(b)
}

func (m *mockDriver) PacketRSSI() int { return m.rssi }
func (m *mockDriver) Sleep()          { m.call("sleep") }
func (m *mockDriver) Idle()           { m.call("idle") }

func (m *mockDriver) deliver(p []byte) {
	m.inbox = append(m.inbox, append([]byte(nil), p...))
}

var testConfig = Config{
	FrequencyHz:     915000000,
	TxPowerDB:       17,
	SpreadingFactor: 7,
	BandwidthHz:     125000,
	CodingRate:      5,
	SyncWord:        0x12,
	CSPin:           8,
	ResetPin:        4,
	IRQPin:          7,
}

func joined(m *mockDriver) string { return strings.Join(m.calls, " ") }

func TestInitAppliesTuningInOrder(t *testing.T) {
	drv := &mockDriver{}
	a := New(drv, testConfig)

	if err := a.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	want := "setPins(8,4,7) begin(915000000) txPower(17) sf(7) bw(125000) cr(5) sync(0x12)"
	if got := joined(drv); got != want {
		t.Errorf("call order\n got: %s\nwant: %s", got, want)
	}
}

func TestInitBeginFailureStopsTuning(t *testing.T) {
	drv := &mockDriver{beginErr: errors.New("no chip on the bus")}
	a := New(drv, testConfig)

	if err := a.Init(); err == nil {
		t.Fatal("Init succeeded with a failing Begin")
	}

	// Fail fast: nothing may be applied to a chip that never came up.
	want := "setPins(8,4,7) begin(915000000)"
	if got := joined(drv); got != want {
		t.Errorf("calls after failed begin\n got: %s\nwant: %s", got, want)
	}
}

func TestInitReRunsBringUp(t *testing.T) {
	drv := &mockDriver{}
	a := New(drv, testConfig)

	if err := a.Init(); err != nil {
		t.Fatalf("first Init: %v", err)
	}
	if err := a.Init(); err != nil {
		t.Fatalf("second Init: %v", err)
	}

	if got := strings.Count(joined(drv), "begin("); got != 2 {
		t.Errorf("begin ran %d times across two Inits, want 2", got)
	}
}

func TestSendTransmitsOneFrame(t *testing.T) {
	drv := &mockDriver{}
	a := New(drv, testConfig)

	if err := a.Send([]byte("reading 42")); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if want := "beginPacket write(10) endPacket"; joined(drv) != want {
		t.Errorf("calls = %s, want %s", joined(drv), want)
	}
	if len(drv.sentFrames) != 1 || string(drv.sentFrames[0]) != "reading 42" {
		t.Errorf("transmitted frames = %q", drv.sentFrames)
	}
}

func TestSendBusy(t *testing.T) {
	drv := &mockDriver{beginPacketErr: errors.New("tx in progress")}
	a := New(drv, testConfig)

	err := a.Send([]byte("x"))
	if !errors.Is(err, radio.ErrBusy) {
		t.Fatalf("Send error = %v, want ErrBusy", err)
	}
	if got := joined(drv); got != "beginPacket" {
		t.Errorf("calls = %s, want beginPacket only", got)
	}
}

func TestAvailablePolls(t *testing.T) {
	drv := &mockDriver{}
	a := New(drv, testConfig)

	if got := a.Available(); got != 0 {
		t.Fatalf("Available on idle air = %d, want 0", got)
	}

	drv.deliver([]byte("hello"))
	if got := a.Available(); got != 5 {
		t.Fatalf("Available = %d, want 5", got)
	}
	// The poll latched the packet; no new one has arrived since.
	if got := a.Available(); got != 0 {
		t.Errorf("re-poll = %d, want 0", got)
	}
}

func TestReadDrainsLatchedPacket(t *testing.T) {
	drv := &mockDriver{}
	a := New(drv, testConfig)
	drv.deliver([]byte("hello"))

	if a.Available() != 5 {
		t.Fatal("packet not latched")
	}

	var buf [4]byte
	n, err := a.Read(buf[:])
	if err != nil || n != 4 || string(buf[:n]) != "hell" {
		t.Fatalf("Read = %d %q %v, want 4 \"hell\" nil", n, buf[:n], err)
	}

	// The remainder stays readable until the next poll replaces it.
	n, err = a.Read(buf[:])
	if err != nil || n != 1 || buf[0] != 'o' {
		t.Fatalf("second Read = %d %q %v, want the trailing byte", n, buf[:n], err)
	}
}

func TestUnreadRemainderLostOnNextPoll(t *testing.T) {
	drv := &mockDriver{}
	a := New(drv, testConfig)

	drv.deliver([]byte("abcdef"))
	if a.Available() != 6 {
		t.Fatal("first packet not latched")
	}
	var buf [3]byte
	if n, _ := a.Read(buf[:]); n != 3 {
		t.Fatalf("partial read = %d, want 3", n)
	}

	drv.deliver([]byte("xy"))
	if got := a.Available(); got != 2 {
		t.Fatalf("Available = %d, want 2 (new packet)", got)
	}
	n, _ := a.Read(buf[:])
	if n != 2 || string(buf[:n]) != "xy" {
		t.Errorf("Read after re-poll = %q, want \"xy\" (old remainder dropped)", buf[:n])
	}
}

func TestSignalStrength(t *testing.T) {
	drv := &mockDriver{rssi: -42}
	a := New(drv, testConfig)
	if got := a.SignalStrength(); got != -42 {
		t.Errorf("SignalStrength = %d, want -42", got)
	}
	if got := radio.SignalStrength(a); got != -42 {
		t.Errorf("helper dispatch = %d, want -42", got)
	}
}

func TestSleepWake(t *testing.T) {
	drv := &mockDriver{}
	a := New(drv, testConfig)

	if err := a.Sleep(); err != nil {
		t.Fatalf("Sleep: %v", err)
	}
	if err := a.Wake(); err != nil {
		t.Fatalf("Wake: %v", err)
	}
	if want := "sleep idle"; joined(drv) != want {
		t.Errorf("calls = %s, want %s", joined(drv), want)
	}
}

func TestConformance(t *testing.T) {
	radiotest.Run(t, func(t *testing.T) radiotest.Link {
		drv := &mockDriver{}
		return radiotest.Link{
			Radio:   New(drv, testConfig),
			Deliver: drv.deliver,
		}
	})
}
