// Package setup composes validated configuration into live components: the
// radio selected by kind, and the shared structured logger. Both binaries
// bootstrap through here so sim and hardware deployments stay symmetric.
package setup
