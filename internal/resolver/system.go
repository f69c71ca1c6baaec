package resolver

import (
	"fmt"
	"net"
	"os/exec"
	"regexp"
	"runtime"
	"strings"

	"github.com/miekg/dns"
)

// SystemResolver determines the default DNS resolver configured for the
// current host, independent of the exact OS, and returns it as host:port.
func SystemResolver() (string, error) {
	var dnsConfig *dns.ClientConfig
	var err error

	switch runtime.GOOS {
	case "windows":
		dnsConfig, err = windowsClientConfig()
	default:
		// Linux, macOS, BSD, etc.
		dnsConfig, err = dns.ClientConfigFromFile("/etc/resolv.conf")
	}

	if err != nil {
		return "", fmt.Errorf("reading system resolver config: %w", err)
	}

	if len(dnsConfig.Servers) == 0 {
		return "", fmt.Errorf("no system DNS servers found")
	}

	port := dnsConfig.Port
	if port == "" {
		port = "53"
	}

	// JoinHostPort brackets IPv6 addresses for us
	return net.JoinHostPort(dnsConfig.Servers[0], port), nil
}

var nslookupServerRE = regexp.MustCompile(`(?:Default Server|Server):[^\n]*\n(?:Address|Addresses?):\s*([^\n]+)`)

// windowsClientConfig retrieves the resolver address on Windows, which has
// no resolv.conf, by parsing nslookup output.
func windowsClientConfig() (*dns.ClientConfig, error) {
	cmd := exec.Command("nslookup", "localhost")
	output, err := cmd.Output()
	if err != nil && output == nil {
		// nslookup may fail but still print its server banner
		return nil, fmt.Errorf("nslookup failed: %w", err)
	}

	matches := nslookupServerRE.FindStringSubmatch(string(output))
	if len(matches) < 2 {
		return nil, fmt.Errorf("could not parse nslookup output")
	}

	server := strings.TrimSpace(matches[1])
	// strip a trailing "#53" style port qualifier
	if idx := strings.LastIndex(server, "#"); idx != -1 {
		server = server[:idx]
	}

	return &dns.ClientConfig{
		Servers: []string{server},
		Port:    "53",
	}, nil
}
