package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

// Load assembles the configuration from defaults, an optional YAML file, and
// UNIRADIO_* environment overrides, then validates the result.
//
// When path is empty the UNIRADIO_CONFIG environment variable is consulted;
// if that is empty too, the built-in defaults are used as-is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("UNIRADIO_CONFIG")
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile unmarshals a YAML file over the current configuration, so
// omitted keys keep their defaults.
func loadFromFile(cfg *Config, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides applies UNIRADIO_* environment variables on top of the
// file configuration. Unparseable values are ignored in favor of the value
// already present.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("UNIRADIO_RADIO_KIND"); val != "" {
		cfg.Radio.Kind = val
	}

	if val := os.Getenv("UNIRADIO_SIM_CHIP"); val != "" {
		cfg.Radio.Sim.Chip = val
	}

	if val := os.Getenv("UNIRADIO_LORA_FREQUENCY_HZ"); val != "" {
		if hz, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Radio.LoRa.FrequencyHz = hz
		}
	}

	if val := os.Getenv("UNIRADIO_NRF24_CHANNEL"); val != "" {
		if ch, err := strconv.Atoi(val); err == nil {
			cfg.Radio.NRF24.Channel = ch
		}
	}

	if val := os.Getenv("UNIRADIO_XBEE_DEVICE"); val != "" {
		cfg.Radio.XBee.Device = val
	}

	if val := os.Getenv("UNIRADIO_XBEE_BAUD"); val != "" {
		if baud, err := strconv.Atoi(val); err == nil {
			cfg.Radio.XBee.Baud = baud
		}
	}

	if val := os.Getenv("UNIRADIO_NODE_SEND_INTERVAL_MS"); val != "" {
		if ms, err := strconv.Atoi(val); err == nil {
			cfg.Node.SendIntervalMs = ms
		}
	}

	if val := os.Getenv("UNIRADIO_COORDINATOR_POLL_INTERVAL_MS"); val != "" {
		if ms, err := strconv.Atoi(val); err == nil {
			cfg.Coordinator.PollIntervalMs = ms
		}
	}

	if val := os.Getenv("UNIRADIO_COORDINATOR_METRICS_ADDR"); val != "" {
		cfg.Coordinator.MetricsAddr = val
	}

	if val := os.Getenv("UNIRADIO_NATS_URL"); val != "" {
		cfg.Coordinator.NATS.URL = val
	}

	if val := os.Getenv("UNIRADIO_NATS_SUBJECT"); val != "" {
		cfg.Coordinator.NATS.Subject = val
	}

	if val := os.Getenv("UNIRADIO_LOG_LEVEL"); val != "" {
		cfg.Log.Level = val
	}

	if val := os.Getenv("UNIRADIO_LOG_FORMAT"); val != "" {
		cfg.Log.Format = val
	}
}
