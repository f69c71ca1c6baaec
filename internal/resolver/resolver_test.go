package resolver

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExchanger answers queries from canned data keyed by query type.
type fakeExchanger struct {
	answers map[uint16][]dns.RR
	rcodes  map[uint16]int
	errs    map[uint16]error
	delays  map[uint16]time.Duration
	calls   atomic.Int32
}

func (f *fakeExchanger) ExchangeContext(ctx context.Context, m *dns.Msg, addr string) (*dns.Msg, time.Duration, error) {
	f.calls.Add(1)
	qtype := m.Question[0].Qtype

	if d, ok := f.delays[qtype]; ok {
		time.Sleep(d)
	}
	if err, ok := f.errs[qtype]; ok {
		return nil, 0, err
	}

	resp := new(dns.Msg)
	resp.SetReply(m)
	if rcode, ok := f.rcodes[qtype]; ok {
		resp.Rcode = rcode
	}
	resp.Answer = f.answers[qtype]
	return resp, time.Millisecond, nil
}

func mustRR(t *testing.T, s string) dns.RR {
	t.Helper()
	rr, err := dns.NewRR(s)
	require.NoError(t, err)
	return rr
}

func TestResolvePreservesRequestOrder(t *testing.T) {
	// A is the slowest and MX in between, so completion order is the
	// reverse of request order.
	fake := &fakeExchanger{
		answers: map[uint16][]dns.RR{
			dns.TypeA: {mustRR(t, "example.com. 300 IN A 93.184.216.34")},
			dns.TypeMX: {
				mustRR(t, "example.com. 300 IN MX 20 mx2.example.com."),
				mustRR(t, "example.com. 300 IN MX 10 mx1.example.com."),
			},
			dns.TypeNS: {mustRR(t, "example.com. 300 IN NS ns1.example.com.")},
		},
		delays: map[uint16]time.Duration{
			dns.TypeA:  30 * time.Millisecond,
			dns.TypeMX: 10 * time.Millisecond,
		},
	}

	r := NewWithExchanger(fake, "127.0.0.1:53", nil)
	rs, err := r.Resolve(context.Background(), "example.com",
		[]RecordType{RecordTypeA, RecordTypeMX, RecordTypeNS})
	require.NoError(t, err)

	require.Len(t, rs.Results, 3)
	assert.Equal(t, "example.com", rs.Domain)

	assert.Equal(t, RecordTypeA, rs.Results[0].Type)
	assert.Equal(t, []string{"93.184.216.34"}, rs.Results[0].Records)

	assert.Equal(t, RecordTypeMX, rs.Results[1].Type)
	assert.Equal(t, []string{"10 mx1.example.com", "20 mx2.example.com"}, rs.Results[1].Records)

	assert.Equal(t, RecordTypeNS, rs.Results[2].Type)
	assert.Equal(t, []string{"ns1.example.com"}, rs.Results[2].Records)
}

func TestResolveBenignAbsence(t *testing.T) {
	tests := []struct {
		name string
		fake *fakeExchanger
	}{
		{
			name: "nxdomain",
			fake: &fakeExchanger{
				rcodes: map[uint16]int{dns.TypeA: dns.RcodeNameError},
			},
		},
		{
			name: "noerror with no answers",
			fake: &fakeExchanger{},
		},
		{
			name: "noerror with only foreign answer types",
			fake: &fakeExchanger{
				answers: map[uint16][]dns.RR{
					dns.TypeA: {mustRR(t, "example.com. 300 IN CNAME other.example.com.")},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewWithExchanger(tt.fake, "127.0.0.1:53", nil)
			rs, err := r.Resolve(context.Background(), "example.com", []RecordType{RecordTypeA})
			require.NoError(t, err)

			require.Len(t, rs.Results, 1)
			assert.Empty(t, rs.Results[0].Records)
			assert.NotNil(t, rs.Results[0].Records)
			assert.Empty(t, rs.Results[0].Error)
		})
	}
}

func TestResolveFailureDoesNotAffectSiblings(t *testing.T) {
	fake := &fakeExchanger{
		answers: map[uint16][]dns.RR{
			dns.TypeA: {mustRR(t, "example.com. 300 IN A 93.184.216.34")},
		},
		errs: map[uint16]error{
			dns.TypeMX: errors.New("read udp 127.0.0.1:53: i/o timeout"),
		},
		rcodes: map[uint16]int{
			dns.TypeNS: dns.RcodeServerFailure,
		},
	}

	r := NewWithExchanger(fake, "127.0.0.1:53", nil)
	rs, err := r.Resolve(context.Background(), "example.com",
		[]RecordType{RecordTypeA, RecordTypeMX, RecordTypeNS})
	require.NoError(t, err)

	assert.Equal(t, []string{"93.184.216.34"}, rs.Results[0].Records)
	assert.Empty(t, rs.Results[0].Error)

	assert.Empty(t, rs.Results[1].Records)
	assert.Equal(t, "read udp 127.0.0.1:53: i/o timeout", rs.Results[1].Error)

	assert.Empty(t, rs.Results[2].Records)
	assert.Equal(t, "server returned SERVFAIL for NS lookup", rs.Results[2].Error)
}

func TestResolveFallbackErrorMessage(t *testing.T) {
	fake := &fakeExchanger{
		errs: map[uint16]error{dns.TypeMX: errors.New("")},
	}

	r := NewWithExchanger(fake, "127.0.0.1:53", nil)
	rs, err := r.Resolve(context.Background(), "example.com", []RecordType{RecordTypeMX})
	require.NoError(t, err)

	assert.Equal(t, "Failed to resolve MX records", rs.Results[0].Error)
}

func TestResolveEmptyTypeList(t *testing.T) {
	fake := &fakeExchanger{}

	r := NewWithExchanger(fake, "127.0.0.1:53", nil)
	rs, err := r.Resolve(context.Background(), "example.com", nil)
	require.NoError(t, err)

	assert.Empty(t, rs.Results)
	assert.Zero(t, fake.calls.Load(), "no query should be issued for an empty type list")
}

func TestResolveRejectsInvalidDomain(t *testing.T) {
	fake := &fakeExchanger{}
	r := NewWithExchanger(fake, "127.0.0.1:53", nil)

	longLabel := strings.Repeat("a", 64) + ".com"

	for _, domain := range []string{"", longLabel} {
		_, err := r.Resolve(context.Background(), domain, []RecordType{RecordTypeA})
		assert.Error(t, err)
	}
	assert.Zero(t, fake.calls.Load(), "validation failure must reject before any query")
}

func TestResolveAllTypes(t *testing.T) {
	fake := &fakeExchanger{
		answers: map[uint16][]dns.RR{
			dns.TypeA:   {mustRR(t, "example.com. 300 IN A 93.184.216.34")},
			dns.TypeTXT: {mustRR(t, `example.com. 300 IN TXT "v=spf1 -all"`)},
		},
	}

	r := NewWithExchanger(fake, "127.0.0.1:53", nil)
	rs, err := r.Resolve(context.Background(), "example.com", AllTypes)
	require.NoError(t, err)

	require.Len(t, rs.Results, len(AllTypes))
	for i, rt := range AllTypes {
		assert.Equal(t, rt, rs.Results[i].Type)
	}
	assert.EqualValues(t, len(AllTypes), fake.calls.Load())
}
