package resolver

import (
	"context"
	"fmt"
	"time"

	"github.com/faanross/dnspeek/internal/config"
	"github.com/miekg/dns"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Exchanger performs a single DNS exchange against a resolver address.
// *dns.Client from miekg/dns satisfies it.
type Exchanger interface {
	ExchangeContext(ctx context.Context, m *dns.Msg, addr string) (*dns.Msg, time.Duration, error)
}

// Resolver issues record-type queries against a single upstream resolver
// and converts the raw answers into QueryResult values.
type Resolver struct {
	exchanger  Exchanger
	serverAddr string
	logger     *zap.Logger
}

// New creates a Resolver from configuration.
//
// When cfg.UseSystemResolver is set the upstream address is discovered from
// the host's resolver configuration; a configured address serves as fallback
// if discovery fails, mirroring how the rest of the config layer degrades.
func New(cfg *config.Config, logger *zap.Logger) (*Resolver, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	// (1) determine whether to use configured address, or local resolver
	finalAddr := cfg.Resolver

	if cfg.UseSystemResolver || finalAddr == "" {
		sysAddr, err := SystemResolver()
		if err != nil {
			if finalAddr == "" {
				return nil, fmt.Errorf("determining system resolver: %w", err)
			}
			// if we fail, revert to using the configured address
			logger.Warn("could not determine system resolver, using configured address",
				zap.String("address", finalAddr), zap.Error(err))
		} else {
			finalAddr = sysAddr
		}
	}

	// (2) the miekg client owns transport, timeout and truncation policy
	client := &dns.Client{
		Net:     cfg.Network,
		Timeout: cfg.Timeout,
	}

	return &Resolver{
		exchanger:  client,
		serverAddr: finalAddr,
		logger:     logger,
	}, nil
}

// NewWithExchanger creates a Resolver around an explicit Exchanger.
func NewWithExchanger(ex Exchanger, serverAddr string, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{exchanger: ex, serverAddr: serverAddr, logger: logger}
}

// Resolve queries every requested record type concurrently and returns one
// QueryResult per type, in the order the types were requested.
//
// Individual query failures are captured as data on the matching result and
// never abort sibling queries; all goroutines run to completion. The returned
// error covers only domain validation and batch dispatch itself.
func (r *Resolver) Resolve(ctx context.Context, domain string, types []RecordType) (*ResultSet, error) {
	if err := ValidateDomain(domain); err != nil {
		return nil, err
	}

	results := make([]QueryResult, len(types))

	// A plain errgroup, not WithContext: one type failing must not
	// cancel the others. Each goroutine writes only its own index.
	g := new(errgroup.Group)

	for i, rt := range types {
		i, rt := i, rt
		g.Go(func() error {
			results[i] = r.query(ctx, domain, rt)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		// Unreachable while every task returns nil; kept so a future
		// scheduling failure still surfaces instead of vanishing.
		return nil, fmt.Errorf("dispatching lookups for %s: %w", domain, err)
	}

	return &ResultSet{Domain: domain, Results: results}, nil
}

// query issues exactly one exchange for the given type and classifies the
// outcome: records on success, an empty result on benign absence (NXDOMAIN
// or NOERROR with no matching answers), an error message on anything else.
func (r *Resolver) query(ctx context.Context, domain string, rt RecordType) QueryResult {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(domain), QTypeMap[rt])
	msg.RecursionDesired = true

	resp, rtt, err := r.exchanger.ExchangeContext(ctx, msg, r.serverAddr)
	if err != nil {
		r.logger.Debug("query failed",
			zap.String("type", string(rt)), zap.Error(err))
		return newErrorResult(rt, err.Error())
	}

	switch resp.Rcode {
	case dns.RcodeSuccess:
		// fall through to normalization
	case dns.RcodeNameError:
		// NXDOMAIN: the name not existing is not an error to the caller
		r.logger.Debug("name does not exist",
			zap.String("type", string(rt)), zap.Duration("rtt", rtt))
		return newResult(rt, nil)
	default:
		return newErrorResult(rt, fmt.Sprintf("server returned %s for %s lookup",
			dns.RcodeToString[resp.Rcode], rt))
	}

	records := normalize(rt, resp.Answer)

	r.logger.Debug("query complete",
		zap.String("type", string(rt)),
		zap.Duration("rtt", rtt),
		zap.Int("answers", len(records)))

	return newResult(rt, records)
}
