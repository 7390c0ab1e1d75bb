package app

import (
	"context"
	"fmt"
	"time"

	"github.com/finsight-hq/vantage-fetcher/internal/config"
	"github.com/finsight-hq/vantage-fetcher/internal/domain"
	"github.com/finsight-hq/vantage-fetcher/internal/logger"
	"github.com/finsight-hq/vantage-fetcher/pkg/alphavantage"
	"github.com/finsight-hq/vantage-fetcher/pkg/httpclient"
	"github.com/finsight-hq/vantage-fetcher/pkg/publishers"
)

// Fetcher wires together the AlphaVantage client and publisher sinks and
// executes one fetch-and-publish pass per invocation. One symbol per run.
type Fetcher struct {
	cfg    *config.Config
	client *alphavantage.Client
	fanout *publishers.Fanout
	log    logger.Logger
}

// NewFetcher builds a fetcher runtime from config.
func NewFetcher(ctx context.Context, cfg *config.Config, log logger.Logger) (*Fetcher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	opts := []alphavantage.Option{
		alphavantage.WithBaseURL(cfg.BaseURL),
		alphavantage.WithHTTPClient(httpclient.NewRestyClient(cfg.HTTPTimeout)),
	}
	if cfg.ValidateInputs {
		opts = append(opts, alphavantage.WithInputValidation())
	}
	client := alphavantage.New(cfg.APIKey, opts...)

	pubCfgs, err := publisherConfigs(cfg)
	if err != nil {
		return nil, err
	}

	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), pubCfgs, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients)

	publisherSummaries := make([]map[string]string, 0, len(pubCfgs))
	for _, pubCfg := range pubCfgs {
		publisherSummaries = append(publisherSummaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers ready", "publishers_meta", map[string]any{
		"count":      len(publisherSummaries),
		"publishers": publisherSummaries,
	})

	return &Fetcher{
		cfg:    cfg,
		client: client,
		fanout: fanout,
		log:    log,
	}, nil
}

// publisherConfigs resolves the sink declarations. An empty publishers file
// setting means log-only output.
func publisherConfigs(cfg *config.Config) ([]publishers.PublisherConfig, error) {
	if cfg.PublishersFile == "" {
		return []publishers.PublisherConfig{{ID: "console", Type: publishers.TypeLog}}, nil
	}

	reg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabled := reg.Enabled()
	if len(enabled) == 0 {
		return nil, fmt.Errorf("no publishers enabled in %s", cfg.PublishersFile)
	}
	return enabled, nil
}

// Run fetches the income statement for symbol and fans the payload out to the
// configured publishers.
func (f *Fetcher) Run(ctx context.Context, symbol string) error {
	if f == nil || f.client == nil {
		return fmt.Errorf("fetcher is not initialized")
	}

	start := time.Now()
	data, err := f.client.IncomeStatement(ctx, symbol)
	if err != nil {
		return fmt.Errorf("fetch income statement for %q: %w", symbol, err)
	}

	stmt := domain.Statement{
		Symbol:   symbol,
		Function: alphavantage.FunctionIncomeStatement,
		Data:     data,
	}

	delivered, err := f.fanout.Publish(ctx, publishers.NewEvent(stmt))
	if err != nil {
		f.log.ErrorObj("statement publish failed", "publish_error", map[string]any{
			"symbol":    symbol,
			"delivered": delivered,
			"error":     err.Error(),
		})
		return fmt.Errorf("publish statement for %q: %w", symbol, err)
	}

	f.log.InfoObj("statement fetched", "fetch_meta", map[string]any{
		"symbol":     symbol,
		"delivered":  delivered,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return nil
}
