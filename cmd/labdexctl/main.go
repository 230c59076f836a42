package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/labdex/internal/version"
	labdex "github.com/kailas-cloud/labdex/pkg/sdk"
)

// ctl carries the flags and API client shared by all subcommands.
type ctl struct {
	addr     string
	basePath string
	apiKey   string
	timeout  time.Duration
	verbose  bool

	logger *slog.Logger
	client *labdex.Client
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &ctl{}
	root := &cobra.Command{
		Use:               "labdexctl",
		Short:             "Query the labdex sample search API",
		SilenceUsage:      true,
		Version:           version.String(),
		PersistentPreRunE: c.init,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.addr, "addr", "", "server address (env LABDEX_ADDR, default http://localhost:8080)")
	flags.StringVar(&c.basePath, "base-path", labdex.DefaultBasePath, "API path prefix")
	flags.StringVar(&c.apiKey, "api-key", "", "bearer API key (env LABDEX_API_KEY)")
	flags.DurationVar(&c.timeout, "timeout", 10*time.Second, "per-request timeout")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "log API calls to stderr")

	root.AddCommand(newOrgsCmd(c), newSamplesCmd(c), newBrowseCmd(c), newHealthCmd(c))

	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func (c *ctl) init(_ *cobra.Command, _ []string) error {
	// .env is optional; flags win over the environment.
	_ = godotenv.Load()

	if c.addr == "" {
		c.addr = envOr("LABDEX_ADDR", "http://localhost:8080")
	}
	if c.apiKey == "" {
		c.apiKey = os.Getenv("LABDEX_API_KEY")
	}

	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}
	c.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	client, err := labdex.New(c.addr,
		labdex.WithBasePath(c.basePath),
		labdex.WithAPIKey(c.apiKey),
		labdex.WithHTTPTimeout(c.timeout),
		labdex.WithLogger(c.logger),
	)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	c.client = client
	return nil
}

// organisation resolves an organisation by id or exact name.
func (c *ctl) organisation(ctx context.Context, ref string) (labdex.Organisation, error) {
	orgs, err := c.client.Organisations(ctx)
	if err != nil {
		return labdex.Organisation{}, err
	}
	for _, o := range orgs {
		if o.ID == ref || o.Name() == ref {
			return o, nil
		}
	}
	return labdex.Organisation{}, fmt.Errorf("%w: %s", labdex.ErrUnknownOrganisation, ref)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
