package gauge

import (
	"time"

	"github.com/fdupeyron/go-dstdsv/transport"
)

// Config holds the session configuration.
type Config struct {
	// Link holds the serial link parameters used when opening a port
	Link transport.Config

	// GraceTimeout bounds the optional reply wait after PowerOff.
	// Zero skips the wait entirely.
	GraceTimeout time.Duration

	// Logger is used for logging operations (optional)
	Logger Logger
}

// defaultConfig returns the default configuration: a USB-attached gauge
// with a short power-off grace wait.
func defaultConfig() Config {
	return Config{
		Link:         transport.USBConfig(),
		GraceTimeout: 50 * time.Millisecond,
	}
}

// Option is a functional option for configuring a Session.
type Option func(*Config)

// WithLink sets the serial link parameters.
//
// Example:
//
//	s, err := gauge.Open(path, gauge.WithLink(transport.RS232Config()))
func WithLink(link transport.Config) Option {
	return func(c *Config) {
		c.Link = link
	}
}

// WithReadTimeout sets how long each operation waits for a reply line.
//
// Example:
//
//	s, err := gauge.Open(path, gauge.WithReadTimeout(time.Second))
func WithReadTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.Link.ReadTimeout = timeout
		}
	}
}

// WithGraceTimeout sets how long PowerOff waits for the device's
// optional reply before declaring success without one.
//
// Example:
//
//	s, err := gauge.Open(path, gauge.WithGraceTimeout(20*time.Millisecond))
func WithGraceTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout >= 0 {
			c.GraceTimeout = timeout
		}
	}
}

// WithLogger sets a logger for session operations.
//
// Example:
//
//	s, err := gauge.Open(path, gauge.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
