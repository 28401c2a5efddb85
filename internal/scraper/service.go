package scraper

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/aleister1102/pagewatch/internal/config"
	"github.com/aleister1102/pagewatch/internal/datastore"
	"github.com/aleister1102/pagewatch/internal/differ"
	"github.com/aleister1102/pagewatch/internal/extractor"
	"github.com/aleister1102/pagewatch/internal/httpclient"
	"github.com/aleister1102/pagewatch/internal/limiter"
	"github.com/aleister1102/pagewatch/internal/models"
)

// ScrapeService runs the poll loop for a single target URL: fetch, extract,
// compare against the previous snapshot, buffer, and persist. The loop never
// exits on a cycle error; failures trigger a cooldown and the next cycle.
type ScrapeService struct {
	cfg      config.ScraperConfig
	logger   zerolog.Logger
	client   *httpclient.HTTPClient
	pageExt  *extractor.PageExtractor
	detector *differ.ChangeDetector
	differ   *differ.ContentDiffer
	store    *datastore.StateStore
	archiver *datastore.HistoryArchiver
	limiter  *limiter.ResourceLimiter
	buffer   *RollingBuffer

	stopRequested atomic.Bool
	totalScrapes  int

	// lastSuccessBody backs the character-level diff stats; only the most
	// recent successful body is retained.
	lastSuccessBody []byte
}

// Stop requests a graceful stop. The loop observes the flag at the head of
// the next cycle; a cycle already in flight runs to completion.
func (s *ScrapeService) Stop() {
	s.stopRequested.Store(true)
	s.logger.Info().Msg("Stop requested, loop will exit at the next cycle boundary")
}

// TotalScrapes returns the number of cycles executed so far.
func (s *ScrapeService) TotalScrapes() int {
	return s.totalScrapes
}

// Run executes the poll loop until stopped, cancelled, or the configured
// cycle limit is reached. It always performs the terminal flush before
// returning, and its summary reflects how the loop ended.
func (s *ScrapeService) Run(ctx context.Context) models.WatchSummary {
	s.logger.Info().
		Str("target_url", s.cfg.TargetURL).
		Dur("interval", s.cfg.Interval()).
		Int("buffer_capacity", s.cfg.BufferCapacity).
		Msg("Starting watch loop")

	status := models.WatchStatusStopped

loop:
	for {
		// The stop flag and context are only consulted here, never
		// mid-cycle: a cycle that has started always completes.
		if s.stopRequested.Load() {
			break
		}
		select {
		case <-ctx.Done():
			status = models.WatchStatusInterrupted
			break loop
		default:
		}

		failed := s.runCycle(ctx)

		if s.limiter != nil {
			s.limiter.CheckCycle()
		}

		if s.cfg.MaxCycles > 0 && s.totalScrapes >= s.cfg.MaxCycles {
			status = models.WatchStatusCompleted
			break
		}

		delay := s.cfg.Interval()
		if failed {
			delay = s.cfg.CycleCooldown()
			s.logger.Warn().Dur("cooldown", delay).Msg("Cycle failed, backing off before next cycle")
		}
		if !s.wait(ctx, delay) {
			status = models.WatchStatusInterrupted
			break
		}
	}

	s.shutdown()

	summary := models.WatchSummary{
		Status:       status,
		TargetURL:    s.cfg.TargetURL,
		TotalScrapes: s.totalScrapes,
	}
	s.logger.Info().
		Str("status", string(summary.Status)).
		Int("total_scrapes", summary.TotalScrapes).
		Msg("Watch loop finished")
	return summary
}

// runCycle executes one fetch-extract-compare-persist pass. Any panic is
// recovered at this boundary and recorded as a failed cycle; the loop
// itself must survive everything.
func (s *ScrapeService) runCycle(ctx context.Context) (failed bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Msg("Cycle panicked, recording failure")
			s.recordResult(models.FetchResult{
				URL:       s.cfg.TargetURL,
				FetchedAt: time.Now(),
				Error:     fmt.Sprintf("cycle panic: %v", r),
			}, nil)
			failed = true
		}
	}()

	s.totalScrapes++
	cycleLogger := s.logger.With().Int("cycle", s.totalScrapes).Logger()
	cycleLogger.Debug().Str("url", s.cfg.TargetURL).Msg("Starting scrape cycle")

	previous := s.buffer.Last()
	result, body := s.scrapeOnce(ctx, cycleLogger)

	var report *models.ChangeReport
	if result.IsSuccess() {
		report = s.detector.Compare(previous, &result)
		if report != nil && s.lastSuccessBody != nil {
			report.ContentDiff = s.differ.DiffStats(s.lastSuccessBody, body)
		}
		s.lastSuccessBody = body
	} else {
		failed = true
	}

	s.recordResult(result, report)
	return failed
}

// scrapeOnce fetches the page and extracts everything from it, returning
// the snapshot and the raw body. A failed fetch yields an error snapshot.
func (s *ScrapeService) scrapeOnce(ctx context.Context, logger zerolog.Logger) (models.FetchResult, []byte) {
	fetchedAt := time.Now()

	page, err := s.client.FetchPage(httpclient.FetchPageInput{
		URL:     s.cfg.TargetURL,
		Context: ctx,
	})
	if err != nil {
		logger.Error().Err(err).Str("url", s.cfg.TargetURL).Msg("Fetch failed after retries")
		return models.FetchResult{
			URL:       s.cfg.TargetURL,
			FetchedAt: fetchedAt,
			Error:     err.Error(),
		}, nil
	}

	result := models.FetchResult{
		URL:         s.cfg.TargetURL,
		FetchedAt:   fetchedAt,
		ByteLength:  len(page.Body),
		ContentType: page.ContentType,
		StatusCode:  page.StatusCode,
	}

	if page.StatusCode < 200 || page.StatusCode >= 300 {
		logger.Error().Int("status_code", page.StatusCode).Msg("Target returned non-success status")
		result.Error = fmt.Sprintf("unexpected status code %d", page.StatusCode)
		return result, nil
	}

	// Non-HTML is a warning, not a failure: the body is still processed.
	if !page.IsHTML() {
		result.Warning = fmt.Sprintf("unexpected content type %q, expected HTML", page.ContentType)
		logger.Warn().Str("content_type", page.ContentType).Msg("Target returned non-HTML content")
	}

	extracted, err := s.pageExt.Extract(extractor.ExtractInput{
		Body:      page.Body,
		PageURL:   s.cfg.TargetURL,
		Selectors: s.cfg.Selectors,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to parse page body")
		result.Error = fmt.Sprintf("parse failed: %v", err)
		return result, nil
	}

	result.Title = extracted.Title
	result.MetaDescription = extracted.MetaDescription
	result.ExtractedFields = extracted.Fields
	result.Links = extracted.Links
	result.Images = extracted.Images
	result.Stats = extracted.Stats

	logger.Info().
		Int("byte_length", result.ByteLength).
		Int("status_code", result.StatusCode).
		Int("fields", len(result.ExtractedFields)).
		Msg("Scrape cycle completed")

	return result, page.Body
}

// recordResult appends the snapshot to the buffer and persists the tail.
// Persistence errors are logged and otherwise ignored; durable state is a
// best effort, the in-memory buffer is authoritative while running.
func (s *ScrapeService) recordResult(result models.FetchResult, report *models.ChangeReport) {
	s.buffer.Append(result)

	if report != nil && report.HasChanges() {
		s.logger.Info().
			Bool("title_changed", report.TitleChanged).
			Bool("description_changed", report.DescriptionChanged).
			Bool("byte_length_changed", report.ByteLengthChanged).
			Int("field_changes", len(report.FieldChanges)).
			Msg("Page changed since previous snapshot")
	}

	if s.store == nil {
		return
	}
	snapshot := &models.StateSnapshot{
		TargetURL:    s.cfg.TargetURL,
		Results:      s.buffer.Tail(s.cfg.PersistedTailSize),
		LastScrapeAt: result.FetchedAt,
		TotalScrapes: s.totalScrapes,
	}
	if err := s.store.SaveTail(snapshot); err != nil {
		s.logger.Error().Err(err).Msg("Failed to persist state tail")
	}
}

// shutdown performs the terminal flush: the full buffer goes to the durable
// store and, when configured, to a Parquet archive file.
func (s *ScrapeService) shutdown() {
	all := s.buffer.All()

	if s.store != nil {
		snapshot := &models.StateSnapshot{
			TargetURL:    s.cfg.TargetURL,
			Results:      all,
			TotalScrapes: s.totalScrapes,
		}
		if len(all) > 0 {
			snapshot.LastScrapeAt = all[len(all)-1].FetchedAt
		}
		if err := s.store.SaveTerminal(snapshot); err != nil {
			s.logger.Error().Err(err).Msg("Failed to persist terminal snapshot")
		}
	}

	if s.archiver != nil && len(all) > 0 {
		path, err := s.archiver.Archive(all)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to write history archive")
		} else {
			s.logger.Info().Str("path", path).Int("records", len(all)).Msg("History archive written")
		}
	}
}

// wait sleeps for the given duration, returning false when the context was
// cancelled before the timer fired.
func (s *ScrapeService) wait(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
