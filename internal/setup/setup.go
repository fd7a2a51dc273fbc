package setup

import (
	"fmt"
	"io"

	"github.com/wsn-lab/uniradio/config"
	"github.com/wsn-lab/uniradio/lora"
	"github.com/wsn-lab/uniradio/nrf24"
	"github.com/wsn-lab/uniradio/pin"
	"github.com/wsn-lab/uniradio/radio"
	"github.com/wsn-lab/uniradio/sim"
	"github.com/wsn-lab/uniradio/stream"
	"github.com/wsn-lab/uniradio/xbee"
)

// Radio builds the transceiver selected by rc.Kind. The returned closer, when
// non-nil, releases the underlying device and must be closed after the radio
// is no longer used.
//
// The lora and nrf24 kinds need a chip-level SPI driver that this module does
// not ship; library users construct those adapters directly with their
// driver. The config sections still exist so one file can describe a whole
// deployment.
func Radio(rc *config.RadioConfig) (radio.Radio, io.Closer, error) {
	switch rc.Kind {
	case "sim":
		return simRadio(rc)
	case "xbee":
		return xbeeRadio(&rc.XBee)
	case "lora":
		return nil, nil, fmt.Errorf("radio kind \"lora\" needs an SX127x driver: call lora.New with yours, or run kind \"sim\" with chip \"lora\"")
	case "nrf24":
		return nil, nil, fmt.Errorf("radio kind \"nrf24\" needs an NRF24L01 driver: call nrf24.New with yours, or run kind \"sim\" with chip \"nrf24\"")
	default:
		return nil, nil, fmt.Errorf("unknown radio kind %q", rc.Kind)
	}
}

// simRadio wires the configured adapter to a simulated chip so both binaries
// run without hardware.
func simRadio(rc *config.RadioConfig) (radio.Radio, io.Closer, error) {
	air := sim.NewAir()
	air.SetLoopback(rc.Sim.Loopback)

	switch rc.Sim.Chip {
	case "lora":
		return lora.New(air.LoRa(), loraAdapterConfig(&rc.LoRa)), nil, nil
	case "nrf24":
		cfg, err := nrfAdapterConfig(&rc.NRF24)
		if err != nil {
			return nil, nil, err
		}
		return nrf24.New(air.NRF24(), cfg), nil, nil
	case "serial":
		var port *sim.PipeEnd
		if rc.Sim.Loopback {
			port = sim.SerialLoopback()
		} else {
			port, _ = sim.SerialPipe()
		}
		return xbee.New(port, xbee.Config{}), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown sim chip %q", rc.Sim.Chip)
	}
}

// xbeeRadio opens the serial device and resolves the optional sleep pins
// through the host GPIO registry.
func xbeeRadio(xc *config.XBeeConfig) (radio.Radio, io.Closer, error) {
	port, err := stream.Open(xc.Device, xc.Baud)
	if err != nil {
		return nil, nil, fmt.Errorf("open serial device %s: %w", xc.Device, err)
	}

	var cfg xbee.Config
	if xc.SleepRequestPin >= 0 {
		p, err := pin.ByNumber(xc.SleepRequestPin)
		if err != nil {
			_ = port.Close()
			return nil, nil, fmt.Errorf("sleep request pin %d: %w", xc.SleepRequestPin, err)
		}
		cfg.SleepRequestPin = p
	}
	if xc.SleepStatusPin >= 0 {
		p, err := pin.ByNumber(xc.SleepStatusPin)
		if err != nil {
			_ = port.Close()
			return nil, nil, fmt.Errorf("sleep status pin %d: %w", xc.SleepStatusPin, err)
		}
		cfg.SleepStatusPin = p
	}

	return xbee.New(port, cfg), port, nil
}

func loraAdapterConfig(c *config.LoRaConfig) lora.Config {
	return lora.Config{
		FrequencyHz:     c.FrequencyHz,
		TxPowerDB:       c.TxPowerDB,
		SpreadingFactor: c.SpreadingFactor,
		BandwidthHz:     c.BandwidthHz,
		CodingRate:      c.CodingRate,
		SyncWord:        byte(c.SyncWord),
		CSPin:           c.CSPin,
		ResetPin:        c.ResetPin,
		IRQPin:          c.IRQPin,
	}
}

func nrfAdapterConfig(c *config.NRF24Config) (nrf24.Config, error) {
	writeAddr, err := nrf24.AddressFromString(c.WriteAddress)
	if err != nil {
		return nrf24.Config{}, fmt.Errorf("write address: %w", err)
	}
	readAddr, err := nrf24.AddressFromString(c.ReadAddress)
	if err != nil {
		return nrf24.Config{}, fmt.Errorf("read address: %w", err)
	}

	return nrf24.Config{
		CEPin:        c.CEPin,
		CSNPin:       c.CSNPin,
		Channel:      uint8(c.Channel),
		DataRateKbps: c.DataRateKbps,
		PALevelTier:  c.PALevel,
		WriteAddress: writeAddr,
		ReadAddress:  readAddr,
	}, nil
}
