package config

import "time"

// Config is the complete runtime configuration for a uniradio deployment.
type Config struct {
	Radio       RadioConfig       `yaml:"radio"`
	Node        NodeConfig        `yaml:"node"`
	Coordinator CoordinatorConfig `yaml:"coordinator"`
	Log         LogConfig         `yaml:"log"`
}

// RadioConfig selects the transceiver kind and holds per-chip tuning.
type RadioConfig struct {
	Kind  string      `yaml:"kind"` // lora | nrf24 | xbee | sim
	LoRa  LoRaConfig  `yaml:"lora"`
	NRF24 NRF24Config `yaml:"nrf24"`
	XBee  XBeeConfig  `yaml:"xbee"`
	Sim   SimConfig   `yaml:"sim"`
}

// LoRaConfig holds the LoRa modem tuning applied during bring-up.
type LoRaConfig struct {
	FrequencyHz     int64 `yaml:"frequency_hz"`
	TxPowerDB       int   `yaml:"tx_power_db"`
	SpreadingFactor int   `yaml:"spreading_factor"`
	BandwidthHz     int64 `yaml:"bandwidth_hz"`
	CodingRate      int   `yaml:"coding_rate"`
	SyncWord        int   `yaml:"sync_word"`
	CSPin           int   `yaml:"cs_pin"`
	ResetPin        int   `yaml:"reset_pin"`
	IRQPin          int   `yaml:"irq_pin"` // -1 = not wired
}

// NRF24Config holds the NRF24L01 link settings. Addresses are exactly five
// bytes on the wire; they are kept as strings here and converted at setup.
type NRF24Config struct {
	CEPin        int    `yaml:"ce_pin"`
	CSNPin       int    `yaml:"csn_pin"`
	Channel      int    `yaml:"channel"`
	DataRateKbps int    `yaml:"data_rate_kbps"`
	PALevel      int    `yaml:"pa_level"`
	WriteAddress string `yaml:"write_address"`
	ReadAddress  string `yaml:"read_address"`
}

// XBeeConfig holds the serial device and optional sleep wiring for an XBee
// style modem. Pin value -1 means the line is not wired.
type XBeeConfig struct {
	Device          string `yaml:"device"`
	Baud            int    `yaml:"baud"`
	SleepRequestPin int    `yaml:"sleep_request_pin"`
	SleepStatusPin  int    `yaml:"sleep_status_pin"`
}

// SimConfig selects which simulated chip backs the radio when kind is "sim".
type SimConfig struct {
	Chip     string `yaml:"chip"` // lora | nrf24 | serial
	Loopback bool   `yaml:"loopback"`
}

// NodeConfig drives the wsn-node sender loop.
type NodeConfig struct {
	SendIntervalMs    int    `yaml:"send_interval_ms"`
	PayloadPrefix     string `yaml:"payload_prefix"`
	SleepBetweenSends bool   `yaml:"sleep_between_sends"`
}

// SendInterval returns the delay between transmissions.
func (c NodeConfig) SendInterval() time.Duration {
	return time.Duration(c.SendIntervalMs) * time.Millisecond
}

// CoordinatorConfig drives the wsn-coordinator receive loop.
type CoordinatorConfig struct {
	PollIntervalMs int        `yaml:"poll_interval_ms"`
	MetricsAddr    string     `yaml:"metrics_addr"` // empty = metrics server disabled
	AuditDir       string     `yaml:"audit_dir"`    // empty = frame audit disabled
	NATS           NATSConfig `yaml:"nats"`
}

// PollInterval returns the idle delay between Available polls.
func (c CoordinatorConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// NATSConfig holds the optional uplink publication target. An empty URL
// disables publishing.
type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// LogConfig holds the structured logging settings shared by both binaries.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
	File   string `yaml:"file"`   // empty = stderr only, otherwise rotating file
}

// Default returns the built-in configuration: a simulated LoRa radio with
// conservative regional defaults, suitable for running both binaries with no
// file at all.
func Default() *Config {
	return &Config{
		Radio: RadioConfig{
			Kind: "sim",
			LoRa: LoRaConfig{
				FrequencyHz:     915000000,
				TxPowerDB:       17,
				SpreadingFactor: 7,
				BandwidthHz:     125000,
				CodingRate:      5,
				SyncWord:        0x12,
				CSPin:           8,
				ResetPin:        4,
				IRQPin:          7,
			},
			NRF24: NRF24Config{
				CEPin:        22,
				CSNPin:       8,
				Channel:      76,
				DataRateKbps: 1000,
				PALevel:      3,
				WriteAddress: "node1",
				ReadAddress:  "coord",
			},
			XBee: XBeeConfig{
				Device:          "/dev/ttyUSB0",
				Baud:            9600,
				SleepRequestPin: -1,
				SleepStatusPin:  -1,
			},
			Sim: SimConfig{
				Chip:     "lora",
				Loopback: false,
			},
		},
		Node: NodeConfig{
			SendIntervalMs:    5000,
			PayloadPrefix:     "node",
			SleepBetweenSends: false,
		},
		Coordinator: CoordinatorConfig{
			PollIntervalMs: 20,
			MetricsAddr:    ":9100",
			AuditDir:       "audit",
			NATS: NATSConfig{
				URL:     "",
				Subject: "wsn.uplink",
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   "",
		},
	}
}
