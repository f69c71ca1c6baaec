package config

import (
	"fmt"
	"net"
	"strings"
)

// ValidationErrors is a custom error type that holds a slice of validation errors (allows for 1+)
type ValidationErrors []error

// Error implements the error interface for ValidationErrors.
// It joins all the underlying errors into a single string.
func (v ValidationErrors) Error() string {
	var b strings.Builder

	b.WriteString("validation failed with the following errors:\n")
	for _, err := range v {
		b.WriteString(fmt.Sprintf("- %s\n", err))
	}
	return b.String()
}

// Validate checks the configuration, collecting every problem rather than
// stopping at the first.
func (c *Config) Validate() error {
	var validateErrs ValidationErrors

	if c.Network != "udp" && c.Network != "tcp" {
		validateErrs = append(validateErrs, fmt.Errorf("network must be udp or tcp, got %q", c.Network))
	}

	if c.Timeout <= 0 {
		validateErrs = append(validateErrs, fmt.Errorf("timeout must be positive"))
	}

	if c.Resolver == "" && !c.UseSystemResolver {
		validateErrs = append(validateErrs, fmt.Errorf("resolver address required when use_system_resolver is false"))
	}

	if c.Resolver != "" {
		if _, _, err := net.SplitHostPort(c.Resolver); err != nil {
			validateErrs = append(validateErrs, fmt.Errorf("resolver must be host:port: %v", err))
		}
	}

	if len(validateErrs) > 0 {
		return validateErrs
	}

	return nil
}
