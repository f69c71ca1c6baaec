package config

import "time"

type Config struct {
	Resolver          string        `yaml:"resolver"`            // upstream resolver as host:port
	UseSystemResolver bool          `yaml:"use_system_resolver"` // discover the host's configured resolver
	Timeout           time.Duration `yaml:"timeout"`             // per-exchange timeout
	Network           string        `yaml:"network"`             // udp or tcp
	Verbose           bool          `yaml:"verbose"`             // debug logging
}

// DefaultConfig returns the configuration used when no file is given:
// the host's own resolver over UDP with a 5 second timeout.
func DefaultConfig() *Config {
	return &Config{
		UseSystemResolver: true,
		Timeout:           5 * time.Second,
		Network:           "udp",
	}
}
