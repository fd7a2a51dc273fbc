// Package main implements the wsn-node demo binary: a sensor node that
// periodically transmits a sequence-numbered reading over the configured
// radio, optionally sleeping the transceiver between sends.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wsn-lab/uniradio/config"
	"github.com/wsn-lab/uniradio/internal/setup"
	"github.com/wsn-lab/uniradio/radio"
)

const Version = "1.0.0"

func main() {
	configPath := flag.String("config", "", "path to YAML config (default: $UNIRADIO_CONFIG, then built-ins)")
	flag.Parse()

	// Step 1: Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wsn-node: %v\n", err)
		os.Exit(1)
	}

	// Step 2: Build the shared logger
	logger := setup.Logger(cfg.Log)
	logger.Info("starting wsn-node", "version", Version, "kind", cfg.Radio.Kind)

	// Step 3: Build and bring up the radio
	r, closer, err := setup.Radio(&cfg.Radio)
	if err != nil {
		logger.Error("radio setup failed", "err", err)
		os.Exit(1)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	if err := r.Init(); err != nil {
		logger.Error("radio bring-up failed", "err", err)
		os.Exit(1)
	}
	logger.Info("radio ready", "radio", fmt.Sprint(r))

	// Step 4: Transmit until told to stop
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Node.SendInterval())
	defer ticker.Stop()

	start := time.Now()
	asleep := false
	seq := 0

	for {
		select {
		case sig := <-stop:
			logger.Info("received signal, shutting down", "signal", sig.String())
			if asleep {
				if err := radio.Wake(r); err != nil {
					logger.Warn("final wake failed", "err", err)
				}
			}
			logger.Info("wsn-node shutdown complete", "sent", seq)
			return

		case <-ticker.C:
			if asleep {
				if err := radio.Wake(r); err != nil {
					logger.Warn("wake failed, skipping send", "err", err)
					continue
				}
				asleep = false
			}

			seq++
			payload := fmt.Sprintf("%s seq=%d up=%s", cfg.Node.PayloadPrefix, seq,
				time.Since(start).Truncate(time.Second))
			if err := radio.SendString(r, payload); err != nil {
				logger.Warn("send failed", "seq", seq, "err", err)
			} else {
				logger.Info("sent", "seq", seq, "bytes", len(payload))
			}

			drainDownlink(r, logger)

			if cfg.Node.SleepBetweenSends {
				if err := radio.Sleep(r); err != nil {
					logger.Warn("sleep failed", "err", err)
				} else {
					asleep = true
				}
			}
		}
	}
}

// drainDownlink reads and logs any frames that arrived since the last send.
// Nodes mostly transmit, but a coordinator can push commands downlink.
func drainDownlink(r radio.Radio, logger *slog.Logger) {
	for r.Available() > 0 {
		text, err := radio.ReadString(r)
		if err != nil {
			logger.Warn("downlink read failed", "err", err)
			return
		}
		if text == "" {
			return
		}
		logger.Info("downlink", "text", text, "rssi", radio.SignalStrength(r))
	}
}
