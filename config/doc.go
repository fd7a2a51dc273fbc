// Package config loads and validates the uniradio runtime configuration.
//
// Configuration is assembled in layers: built-in defaults, an optional YAML
// file, then UNIRADIO_* environment overrides. The merged result is validated
// before anything touches hardware, so a node fails at startup rather than
// mid-deployment with a half-tuned transceiver.
package config
