// Package main implements the wsn-coordinator demo binary: it polls the
// configured radio for sensor frames, logs and audits each one, exposes link
// metrics over HTTP, and optionally republishes frames to NATS.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/wsn-lab/uniradio/config"
	"github.com/wsn-lab/uniradio/internal/audit"
	"github.com/wsn-lab/uniradio/internal/metrics"
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
		fmt.Fprintf(os.Stderr, "wsn-coordinator: %v\n", err)
		os.Exit(1)
	}

	// Step 2: Build the shared logger
	logger := setup.Logger(cfg.Log)
	logger.Info("starting wsn-coordinator", "version", Version, "kind", cfg.Radio.Kind)

	// Step 3: Frame audit log
	var frameLog *audit.Logger
	if cfg.Coordinator.AuditDir != "" {
		frameLog, err = audit.NewLogger(cfg.Coordinator.AuditDir)
		if err != nil {
			logger.Error("audit log setup failed", "err", err)
			os.Exit(1)
		}
		logger.Info("frame audit enabled", "path", frameLog.Path())
	}

	// Step 4: Link metrics and the /metrics endpoint
	var collector *metrics.LinkCollector
	var metricsSrv *http.Server
	serverErr := make(chan error, 1)
	if cfg.Coordinator.MetricsAddr != "" {
		collector, err = metrics.NewLinkCollector(nil)
		if err != nil {
			logger.Error("metrics setup failed", "err", err)
			os.Exit(1)
		}

		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		metricsSrv = &http.Server{Addr: cfg.Coordinator.MetricsAddr, Handler: mux}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				serverErr <- fmt.Errorf("metrics server failed: %w", err)
			}
		}()
		logger.Info("metrics server listening", "addr", cfg.Coordinator.MetricsAddr)
	}

	// Step 5: Optional NATS uplink
	var nc *nats.Conn
	if cfg.Coordinator.NATS.URL != "" {
		nc, err = nats.Connect(cfg.Coordinator.NATS.URL)
		if err != nil {
			logger.Error("nats connect failed", "url", cfg.Coordinator.NATS.URL, "err", err)
			os.Exit(1)
		}
		logger.Info("publishing frames to nats", "subject", cfg.Coordinator.NATS.Subject)
	}

	// Step 6: Build and bring up the radio
	r, closer, err := setup.Radio(&cfg.Radio)
	if err != nil {
		logger.Error("radio setup failed", "err", err)
		os.Exit(1)
	}
	if err := r.Init(); err != nil {
		logger.Error("radio bring-up failed", "err", err)
		os.Exit(1)
	}
	logger.Info("radio ready", "radio", fmt.Sprint(r))

	// Step 7: Poll for frames until told to stop
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Coordinator.PollInterval())
	defer ticker.Stop()

	buf := make([]byte, 256)
	frames := 0

poll:
	for {
		select {
		case sig := <-stop:
			logger.Info("received signal, initiating shutdown", "signal", sig.String())
			break poll
		case err := <-serverErr:
			logger.Error("shutting down", "err", err)
			break poll
		case <-ticker.C:
			for r.Available() > 0 {
				n, err := r.Read(buf)
				if err != nil {
					logger.Warn("read failed", "err", err)
					collector.ObserveReadError()
					break
				}
				if n == 0 {
					break
				}

				frames++
				rssi := radio.SignalStrength(r)
				logger.Info("frame", "bytes", n, "rssi", rssi, "text", string(buf[:n]))
				collector.ObserveRx(n, rssi)
				if frameLog != nil {
					frameLog.LogRx(buf[:n], rssi)
				}
				if nc != nil {
					if err := nc.Publish(cfg.Coordinator.NATS.Subject, buf[:n]); err != nil {
						logger.Warn("nats publish failed", "err", err)
					}
				}
			}
		}
	}

	// Graceful shutdown: drain the HTTP server, then release the rest.
	if metricsSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logger.Warn("metrics server shutdown", "err", err)
		}
		cancel()
	}
	if nc != nil {
		nc.Close()
		logger.Info("nats connection closed")
	}
	if frameLog != nil {
		if err := frameLog.Close(); err != nil {
			logger.Warn("audit log close", "err", err)
		}
	}
	if closer != nil {
		if err := closer.Close(); err != nil {
			logger.Warn("radio close", "err", err)
		}
	}
	logger.Info("wsn-coordinator shutdown complete", "frames", frames)
}
