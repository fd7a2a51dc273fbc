package config

import "fmt"

// Validate enforces the hardware invariants of every radio section, not just
// the selected kind, so a config file is either fully sane or rejected.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := validateKind(cfg); err != nil {
		return err
	}
	if err := validateLoRa(&cfg.Radio.LoRa); err != nil {
		return fmt.Errorf("lora: %w", err)
	}
	if err := validateNRF24(&cfg.Radio.NRF24); err != nil {
		return fmt.Errorf("nrf24: %w", err)
	}
	if err := validateXBee(&cfg.Radio.XBee); err != nil {
		return fmt.Errorf("xbee: %w", err)
	}
	if err := validateNode(&cfg.Node); err != nil {
		return fmt.Errorf("node: %w", err)
	}
	if err := validateCoordinator(&cfg.Coordinator); err != nil {
		return fmt.Errorf("coordinator: %w", err)
	}
	if err := validateLog(&cfg.Log); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	return nil
}

func validateKind(cfg *Config) error {
	switch cfg.Radio.Kind {
	case "lora", "nrf24", "xbee", "sim":
	default:
		return fmt.Errorf("radio kind %q must be one of: lora, nrf24, xbee, sim", cfg.Radio.Kind)
	}

	if cfg.Radio.Kind == "sim" {
		switch cfg.Radio.Sim.Chip {
		case "lora", "nrf24", "serial":
		default:
			return fmt.Errorf("sim chip %q must be one of: lora, nrf24, serial", cfg.Radio.Sim.Chip)
		}
	}

	return nil
}

func validateLoRa(c *LoRaConfig) error {
	if c.FrequencyHz <= 0 {
		return fmt.Errorf("frequency must be positive, got %d", c.FrequencyHz)
	}
	if c.SpreadingFactor < 6 || c.SpreadingFactor > 12 {
		return fmt.Errorf("spreading factor %d is outside [6, 12]", c.SpreadingFactor)
	}
	if c.BandwidthHz <= 0 {
		return fmt.Errorf("bandwidth must be positive, got %d", c.BandwidthHz)
	}
	if c.CodingRate < 5 || c.CodingRate > 8 {
		return fmt.Errorf("coding rate denominator %d is outside [5, 8]", c.CodingRate)
	}
	if c.SyncWord < 0 || c.SyncWord > 0xFF {
		return fmt.Errorf("sync word 0x%X does not fit one byte", c.SyncWord)
	}
	return nil
}

func validateNRF24(c *NRF24Config) error {
	// 2.400-2.525 GHz band: channel is an offset in MHz above 2400.
	if c.Channel < 0 || c.Channel > 125 {
		return fmt.Errorf("channel %d is outside [0, 125]", c.Channel)
	}
	if c.PALevel < 0 || c.PALevel > 3 {
		return fmt.Errorf("pa level %d is outside [0, 3]", c.PALevel)
	}
	if len(c.WriteAddress) != 5 {
		return fmt.Errorf("write address %q must be exactly 5 bytes", c.WriteAddress)
	}
	if len(c.ReadAddress) != 5 {
		return fmt.Errorf("read address %q must be exactly 5 bytes", c.ReadAddress)
	}
	// Data rate is deliberately not checked: the adapter maps unrecognized
	// tiers to 1 Mbps.
	return nil
}

func validateXBee(c *XBeeConfig) error {
	if c.Device == "" {
		return fmt.Errorf("serial device must be set")
	}
	if c.Baud <= 0 {
		return fmt.Errorf("baud rate must be positive, got %d", c.Baud)
	}
	if c.SleepRequestPin < -1 {
		return fmt.Errorf("sleep request pin %d is invalid (-1 = not wired)", c.SleepRequestPin)
	}
	if c.SleepStatusPin < -1 {
		return fmt.Errorf("sleep status pin %d is invalid (-1 = not wired)", c.SleepStatusPin)
	}
	return nil
}

func validateNode(c *NodeConfig) error {
	if c.SendIntervalMs <= 0 {
		return fmt.Errorf("send interval must be positive, got %dms", c.SendIntervalMs)
	}
	return nil
}

func validateCoordinator(c *CoordinatorConfig) error {
	if c.PollIntervalMs <= 0 {
		return fmt.Errorf("poll interval must be positive, got %dms", c.PollIntervalMs)
	}
	if c.NATS.URL != "" && c.NATS.Subject == "" {
		return fmt.Errorf("nats subject must be set when a nats url is configured")
	}
	return nil
}

func validateLog(c *LogConfig) error {
	switch c.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("level %q must be one of: debug, info, warn, error", c.Level)
	}
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("format %q must be one of: text, json", c.Format)
	}
	return nil
}
