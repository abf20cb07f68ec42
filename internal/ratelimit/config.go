// Package ratelimit implements the fixed-window admission controller that
// fronts the public endpoints. Window counts reset at fixed boundaries, so
// bursts at a window edge can admit up to twice the configured rate in a
// short span. That is a known property of the algorithm, accepted for these
// low-stakes endpoints.
package ratelimit

import "time"

// Config describes one named limit.
type Config struct {
	Interval    time.Duration
	MaxRequests int
}

// Named limits for the public endpoints. Unknown names fall back to
// LimitDefault.
const (
	LimitTrackFolio    = "trackFolio"
	LimitCreateTicket  = "createTicket"
	LimitCoverageCheck = "coverageCheck"
	LimitLogin         = "login"
	LimitDefault       = "default"
)

var presets = map[string]Config{
	LimitTrackFolio:    {Interval: time.Minute, MaxRequests: 5},
	LimitCreateTicket:  {Interval: time.Minute, MaxRequests: 3},
	LimitCoverageCheck: {Interval: time.Minute, MaxRequests: 20},
	LimitLogin:         {Interval: 5 * time.Minute, MaxRequests: 5},
	LimitDefault:       {Interval: time.Minute, MaxRequests: 60},
}

// Preset returns the configuration for a named limit, falling back to the
// default preset for unknown names.
func Preset(name string) Config {
	if cfg, ok := presets[name]; ok {
		return cfg
	}
	return presets[LimitDefault]
}

// Valid reports whether the configuration is usable. Invalid configs are a
// programmer error; call sites should reject them at startup, not per
// request.
func (c Config) Valid() bool {
	return c.Interval > 0 && c.MaxRequests > 0
}
