package resolver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/miekg/dns"
)

// nullMX is the annotation for an RFC 7505 null MX record (priority 0,
// exchange "."), which signals the domain accepts no mail.
const nullMX = "0 . (null MX — domain does not accept mail)"

// normalize converts the answer section of a response into the textual
// record form for the queried type. Answers of other types (CNAMEs pulled
// into an A answer chain, for instance) are skipped.
func normalize(rt RecordType, answers []dns.RR) []string {
	switch rt {
	case RecordTypeA:
		return normalizeA(answers)
	case RecordTypeAAAA:
		return normalizeAAAA(answers)
	case RecordTypeCNAME:
		return normalizeCNAME(answers)
	case RecordTypeMX:
		return normalizeMX(answers)
	case RecordTypeNS:
		return normalizeNS(answers)
	case RecordTypeTXT:
		return normalizeTXT(answers)
	case RecordTypeSOA:
		return normalizeSOA(answers)
	case RecordTypeCAA:
		return normalizeCAA(answers)
	case RecordTypeSRV:
		return normalizeSRV(answers)
	default:
		return nil
	}
}

func normalizeA(answers []dns.RR) []string {
	var records []string
	for _, rr := range answers {
		if a, ok := rr.(*dns.A); ok {
			records = append(records, a.A.String())
		}
	}
	return records
}

func normalizeAAAA(answers []dns.RR) []string {
	var records []string
	for _, rr := range answers {
		if aaaa, ok := rr.(*dns.AAAA); ok {
			records = append(records, aaaa.AAAA.String())
		}
	}
	return records
}

func normalizeCNAME(answers []dns.RR) []string {
	var records []string
	for _, rr := range answers {
		if cname, ok := rr.(*dns.CNAME); ok {
			records = append(records, trimDot(cname.Target))
		}
	}
	return records
}

// normalizeMX sorts ascending by preference (stable on ties) and renders
// each exchanger as "<priority> <exchange>". A null MX gets its annotation.
func normalizeMX(answers []dns.RR) []string {
	var mxs []*dns.MX
	for _, rr := range answers {
		if mx, ok := rr.(*dns.MX); ok {
			mxs = append(mxs, mx)
		}
	}

	sort.SliceStable(mxs, func(i, j int) bool {
		return mxs[i].Preference < mxs[j].Preference
	})

	var records []string
	for _, mx := range mxs {
		exchange := trimDot(mx.Mx)
		if mx.Preference == 0 && exchange == "." {
			records = append(records, nullMX)
			continue
		}
		records = append(records, fmt.Sprintf("%d %s", mx.Preference, exchange))
	}
	return records
}

func normalizeNS(answers []dns.RR) []string {
	var records []string
	for _, rr := range answers {
		if ns, ok := rr.(*dns.NS); ok {
			records = append(records, trimDot(ns.Ns))
		}
	}
	return records
}

// normalizeTXT joins each answer's character-string chunks with no
// separator, one string per answer.
func normalizeTXT(answers []dns.RR) []string {
	var records []string
	for _, rr := range answers {
		if txt, ok := rr.(*dns.TXT); ok {
			records = append(records, strings.Join(txt.Txt, ""))
		}
	}
	return records
}

// normalizeSOA renders the single SOA record as seven labeled lines,
// in a fixed order.
func normalizeSOA(answers []dns.RR) []string {
	for _, rr := range answers {
		soa, ok := rr.(*dns.SOA)
		if !ok {
			continue
		}
		return []string{
			fmt.Sprintf("Primary NS: %s", trimDot(soa.Ns)),
			fmt.Sprintf("Hostmaster: %s", trimDot(soa.Mbox)),
			fmt.Sprintf("Serial: %d", soa.Serial),
			fmt.Sprintf("Refresh: %ds", soa.Refresh),
			fmt.Sprintf("Retry: %ds", soa.Retry),
			fmt.Sprintf("Expire: %ds", soa.Expire),
			fmt.Sprintf("Min TTL: %ds", soa.Minttl),
		}
	}
	return nil
}

// normalizeCAA renders each record as "<flags> <tag> <value>", where flags
// is 128 when the critical bit is set and 0 otherwise.
func normalizeCAA(answers []dns.RR) []string {
	var records []string
	for _, rr := range answers {
		caa, ok := rr.(*dns.CAA)
		if !ok {
			continue
		}
		flags := "0"
		if caa.Flag&0x80 != 0 {
			flags = "128"
		}
		records = append(records, fmt.Sprintf("%s %s %s", flags, caa.Tag, caa.Value))
	}
	return records
}

// normalizeSRV renders each record as "<priority> <weight> <port> <target>",
// preserving answer order.
func normalizeSRV(answers []dns.RR) []string {
	var records []string
	for _, rr := range answers {
		if srv, ok := rr.(*dns.SRV); ok {
			records = append(records, fmt.Sprintf("%d %d %d %s",
				srv.Priority, srv.Weight, srv.Port, trimDot(srv.Target)))
		}
	}
	return records
}

// trimDot strips the FQDN trailing dot, leaving the root name alone.
func trimDot(name string) string {
	if name == "." {
		return name
	}
	return strings.TrimSuffix(name, ".")
}
