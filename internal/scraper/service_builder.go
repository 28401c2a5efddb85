package scraper

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/aleister1102/pagewatch/internal/config"
	"github.com/aleister1102/pagewatch/internal/datastore"
	"github.com/aleister1102/pagewatch/internal/differ"
	"github.com/aleister1102/pagewatch/internal/extractor"
	"github.com/aleister1102/pagewatch/internal/httpclient"
	"github.com/aleister1102/pagewatch/internal/limiter"
)

// ScrapeServiceBuilder assembles a ScrapeService from configuration.
type ScrapeServiceBuilder struct {
	scraperCfg config.ScraperConfig
	httpCfg    config.HTTPConfig
	logger     zerolog.Logger
	store      *datastore.StateStore
	archiver   *datastore.HistoryArchiver
	limiter    *limiter.ResourceLimiter
}

// NewScrapeServiceBuilder creates a new builder from the scraper and HTTP
// configuration sections.
func NewScrapeServiceBuilder(scraperCfg config.ScraperConfig, httpCfg config.HTTPConfig, logger zerolog.Logger) *ScrapeServiceBuilder {
	return &ScrapeServiceBuilder{
		scraperCfg: scraperCfg,
		httpCfg:    httpCfg,
		logger:     logger,
	}
}

// WithStateStore attaches a durable state sink. Without one the loop runs
// purely in memory.
func (b *ScrapeServiceBuilder) WithStateStore(store *datastore.StateStore) *ScrapeServiceBuilder {
	b.store = store
	return b
}

// WithArchiver attaches the shutdown history archiver.
func (b *ScrapeServiceBuilder) WithArchiver(archiver *datastore.HistoryArchiver) *ScrapeServiceBuilder {
	b.archiver = archiver
	return b
}

// WithResourceLimiter attaches the per-cycle resource guard.
func (b *ScrapeServiceBuilder) WithResourceLimiter(rl *limiter.ResourceLimiter) *ScrapeServiceBuilder {
	b.limiter = rl
	return b
}

// Build constructs the ScrapeService, wiring the HTTP client and its retry
// policy from the HTTP configuration section.
func (b *ScrapeServiceBuilder) Build() (*ScrapeService, error) {
	serviceLogger := b.logger.With().Str("component", "ScrapeService").Logger()

	client, err := httpclient.NewHTTPClientBuilder(b.logger).
		WithTimeout(time.Duration(b.httpCfg.TimeoutSeconds) * time.Second).
		WithDialTimeout(time.Duration(b.httpCfg.DialTimeoutSeconds) * time.Second).
		WithInsecureSkipVerify(b.httpCfg.InsecureSkipVerify).
		WithFollowRedirects(b.httpCfg.FollowRedirects).
		WithUserAgent(b.httpCfg.UserAgent).
		WithCustomHeaders(b.httpCfg.CustomHeaders).
		WithMaxContentSize(b.httpCfg.MaxContentSize).
		WithConnectionPooling(b.httpCfg.MaxIdleConns, b.httpCfg.MaxIdleConnsPerHost, b.httpCfg.MaxConnsPerHost).
		WithHTTP2(b.httpCfg.EnableHTTP2).
		Build()
	if err != nil {
		return nil, err
	}

	retryCfg := httpclient.DefaultRetryHandlerConfig()
	if b.httpCfg.RetryConfig.MaxAttempts > 0 {
		retryCfg.MaxAttempts = b.httpCfg.RetryConfig.MaxAttempts
	}
	if b.httpCfg.RetryConfig.BaseDelaySecs > 0 {
		retryCfg.BaseDelay = time.Duration(b.httpCfg.RetryConfig.BaseDelaySecs) * time.Second
	}
	if b.httpCfg.RetryConfig.MaxDelaySecs > 0 {
		retryCfg.MaxDelay = time.Duration(b.httpCfg.RetryConfig.MaxDelaySecs) * time.Second
	}
	retryCfg.EnableJitter = b.httpCfg.RetryConfig.EnableJitter
	client.WithRetryHandler(httpclient.NewRetryHandler(retryCfg, b.logger))

	capacity := b.scraperCfg.BufferCapacity
	if capacity <= 0 {
		capacity = config.DefaultBufferCapacity
	}
	if b.scraperCfg.PersistedTailSize <= 0 {
		b.scraperCfg.PersistedTailSize = config.DefaultPersistedTailSize
	}

	return &ScrapeService{
		cfg:      b.scraperCfg,
		logger:   serviceLogger,
		client:   client,
		pageExt:  extractor.NewPageExtractor(b.logger),
		detector: differ.NewChangeDetector(b.logger),
		differ:   differ.NewContentDiffer(b.httpCfg.MaxContentSize),
		store:    b.store,
		archiver: b.archiver,
		limiter:  b.limiter,
		buffer:   NewRollingBuffer(capacity),
	}, nil
}
