package resolver

import (
	"fmt"
	"strings"

	"github.com/faanross/dnspeek/internal/config"
	"github.com/miekg/dns"
)

// RecordType represents a DNS record type supported by the lookup pipeline.
type RecordType string

const (
	// RecordTypeA represents IPv4 address records.
	RecordTypeA RecordType = "A"
	// RecordTypeAAAA represents IPv6 address records.
	RecordTypeAAAA RecordType = "AAAA"
	// RecordTypeCNAME represents canonical name records.
	RecordTypeCNAME RecordType = "CNAME"
	// RecordTypeMX represents mail exchange records.
	RecordTypeMX RecordType = "MX"
	// RecordTypeNS represents name server records.
	RecordTypeNS RecordType = "NS"
	// RecordTypeTXT represents text records.
	RecordTypeTXT RecordType = "TXT"
	// RecordTypeSOA represents start of authority records.
	RecordTypeSOA RecordType = "SOA"
	// RecordTypeCAA represents certification authority authorization records.
	RecordTypeCAA RecordType = "CAA"
	// RecordTypeSRV represents service locator records.
	RecordTypeSRV RecordType = "SRV"
)

// AllTypes is the default query set, in the order results are reported.
var AllTypes = []RecordType{
	RecordTypeA,
	RecordTypeAAAA,
	RecordTypeCNAME,
	RecordTypeMX,
	RecordTypeNS,
	RecordTypeTXT,
	RecordTypeSOA,
	RecordTypeCAA,
	RecordTypeSRV,
}

// QTypeMap converts our RecordType values to the wire-level
// query types found in the miekg/dns package.
var QTypeMap = map[RecordType]uint16{
	RecordTypeA:     dns.TypeA,
	RecordTypeAAAA:  dns.TypeAAAA,
	RecordTypeCNAME: dns.TypeCNAME,
	RecordTypeMX:    dns.TypeMX,
	RecordTypeNS:    dns.TypeNS,
	RecordTypeTXT:   dns.TypeTXT,
	RecordTypeSOA:   dns.TypeSOA,
	RecordTypeCAA:   dns.TypeCAA,
	RecordTypeSRV:   dns.TypeSRV,
}

// ParseTypes converts a comma-separated list of record type names into
// RecordType values. Names are case-insensitive, surrounding whitespace is
// ignored. All unknown names are collected and reported together, and no
// lookup is attempted when any name is invalid.
func ParseTypes(csv string) ([]RecordType, error) {
	var types []RecordType
	var validateErrs config.ValidationErrors

	for _, part := range strings.Split(csv, ",") {
		name := strings.ToUpper(strings.TrimSpace(part))
		if name == "" {
			continue
		}

		rt := RecordType(name)
		if _, ok := QTypeMap[rt]; !ok {
			validateErrs = append(validateErrs, fmt.Errorf("unknown record type: %s", name))
			continue
		}
		types = append(types, rt)
	}

	if len(validateErrs) > 0 {
		return nil, validateErrs
	}

	return types, nil
}

// ValidateDomain checks domain syntax before any query is issued.
// The wire-format rules (total length, label length) come from miekg/dns.
func ValidateDomain(domain string) error {
	if domain == "" {
		return fmt.Errorf("domain cannot be empty")
	}

	if _, ok := dns.IsDomainName(domain); !ok {
		return fmt.Errorf("invalid domain name: %s", domain)
	}

	return nil
}
