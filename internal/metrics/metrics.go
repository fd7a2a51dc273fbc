package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LinkCollector bundles Prometheus metrics for one radio link.
type LinkCollector struct {
	gatherer prometheus.Gatherer

	FramesReceived prometheus.Counter
	BytesReceived  prometheus.Counter
	FramesSent     prometheus.Counter
	SendFailures   prometheus.Counter
	ReadErrors     prometheus.Counter
	LastRSSI       prometheus.Gauge
}

// NewLinkCollector registers the link metrics against the provided registerer,
// defaulting to the global Prometheus registry when nil.
func NewLinkCollector(reg prometheus.Registerer) (*LinkCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	framesReceived, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "link_frames_received_total",
		Help: "Total number of frames read off the radio.",
	}), "link_frames_received_total")
	if err != nil {
		return nil, err
	}
	bytesReceived, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "link_bytes_received_total",
		Help: "Total payload bytes read off the radio.",
	}), "link_bytes_received_total")
	if err != nil {
		return nil, err
	}
	framesSent, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "link_frames_sent_total",
		Help: "Total number of frames handed to the radio for transmission.",
	}), "link_frames_sent_total")
	if err != nil {
		return nil, err
	}
	sendFailures, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "link_send_failures_total",
		Help: "Total number of sends the radio rejected or could not complete.",
	}), "link_send_failures_total")
	if err != nil {
		return nil, err
	}
	readErrors, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "link_read_errors_total",
		Help: "Total number of failed radio reads.",
	}), "link_read_errors_total")
	if err != nil {
		return nil, err
	}
	lastRSSI, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "link_last_rssi_dbm",
		Help: "Signal strength of the most recent frame, in dBm. Stays at zero for radios without an RSSI reading.",
	}), "link_last_rssi_dbm")
	if err != nil {
		return nil, err
	}

	return &LinkCollector{
		gatherer:       gatherer,
		FramesReceived: framesReceived,
		BytesReceived:  bytesReceived,
		FramesSent:     framesSent,
		SendFailures:   sendFailures,
		ReadErrors:     readErrors,
		LastRSSI:       lastRSSI,
	}, nil
}

// ObserveRx records one received frame of n bytes and its RSSI reading.
func (c *LinkCollector) ObserveRx(n, rssi int) {
	if c == nil {
		return
	}
	if c.FramesReceived != nil {
		c.FramesReceived.Inc()
	}
	if c.BytesReceived != nil {
		c.BytesReceived.Add(float64(n))
	}
	if c.LastRSSI != nil && rssi != 0 {
		c.LastRSSI.Set(float64(rssi))
	}
}

// ObserveTx records the outcome of one send.
func (c *LinkCollector) ObserveTx(err error) {
	if c == nil {
		return
	}
	if c.FramesSent != nil {
		c.FramesSent.Inc()
	}
	if err != nil && c.SendFailures != nil {
		c.SendFailures.Inc()
	}
}

// ObserveReadError records a failed radio read.
func (c *LinkCollector) ObserveReadError() {
	if c == nil || c.ReadErrors == nil {
		return
	}
	c.ReadErrors.Inc()
}

// Handler exposes a ready-to-use /metrics handler.
func (c *LinkCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
