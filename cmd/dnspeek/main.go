package main

import (
	"fmt"
	"os"

	"github.com/faanross/dnspeek/internal/config"
	"github.com/faanross/dnspeek/internal/format"
	"github.com/faanross/dnspeek/internal/resolver"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	app := &cli.App{
		Name:      "dnspeek",
		Usage:     "look up DNS records for a domain",
		ArgsUsage: "DOMAIN",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "comma-separated record types to query (default: all)",
			},
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "output results as JSON",
			},
			&cli.BoolFlag{
				Name:    "compact",
				Aliases: []string{"c"},
				Usage:   "omit record types with no records from the table",
			},
			&cli.StringFlag{
				Name:    "resolver",
				Aliases: []string{"r"},
				Usage:   "upstream resolver address (host:port)",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to configuration file",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "per-query timeout",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	domain := c.Args().First()
	if domain == "" {
		return fmt.Errorf("domain argument is required")
	}

	// (1) load configuration, then apply flag overrides
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	// (2) determine which record types to query
	types := resolver.AllTypes
	if csv := c.String("type"); csv != "" {
		types, err = resolver.ParseTypes(csv)
		if err != nil {
			return err
		}
	}

	// (3) set up logging
	logger := zap.NewNop()
	if cfg.Verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		defer logger.Sync()
	}

	// (4) resolve all requested types concurrently
	r, err := resolver.New(cfg, logger)
	if err != nil {
		return err
	}

	rs, err := r.Resolve(c.Context, domain, types)
	if err != nil {
		return err
	}

	// (5) render
	outputFormat := "table"
	if c.Bool("json") {
		outputFormat = "json"
	}

	renderer, err := format.NewRenderer(outputFormat, c.Bool("compact"))
	if err != nil {
		return err
	}

	out, err := renderer.Render(rs)
	if err != nil {
		return err
	}

	fmt.Print(out)
	return nil
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if addr := c.String("resolver"); addr != "" {
		cfg.Resolver = addr
		cfg.UseSystemResolver = false
	}
	if timeout := c.Duration("timeout"); timeout > 0 {
		cfg.Timeout = timeout
	}
	if c.Bool("verbose") {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
