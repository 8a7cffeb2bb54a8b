// Package ingestion runs the sequential fetch-and-persist loop over the
// resolved address list.
package ingestion

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"mobula-token-fetch/internal/domain"
	"mobula-token-fetch/internal/mobula"
	"mobula-token-fetch/internal/reporting"
	"mobula-token-fetch/internal/storage"
)

// DefaultDelay is the pause between successful requests.
const DefaultDelay = 250 * time.Millisecond

// DetailFetcher fetches one token detail payload.
type DetailFetcher interface {
	TokenDetails(ctx context.Context, address string) (json.RawMessage, error)
}

// Runner processes addresses strictly in order, one fetch and at most one
// insert per address. Per-address failures are recorded and never abort the
// run.
type Runner struct {
	fetcher    DetailFetcher
	store      storage.TokenDetailStore
	detailsDir string
	delay      time.Duration
	logger     *log.Logger
	sleep      func(time.Duration)
	now        func() time.Time
}

// RunnerOptions contains configuration for creating a Runner.
type RunnerOptions struct {
	Fetcher    DetailFetcher
	Store      storage.TokenDetailStore
	DetailsDir string        // if set, write <address>.json per successful fetch
	Delay      time.Duration // inter-request delay, floored at zero
	Logger     *log.Logger
	Sleep      func(time.Duration) // injectable for tests
	Now        func() time.Time    // injectable clock
}

// NewRunner creates a new runner.
func NewRunner(opts RunnerOptions) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	sleep := opts.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	now := opts.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	delay := opts.Delay
	if delay < 0 {
		delay = 0
	}

	return &Runner{
		fetcher:    opts.Fetcher,
		store:      opts.Store,
		detailsDir: opts.DetailsDir,
		delay:      delay,
		logger:     logger,
		sleep:      sleep,
		now:        now,
	}
}

// Run fetches every address in order and returns the per-address outcomes.
// The fetch timestamp is sampled once and shared by every document of the
// run, so persisted documents group by run rather than by individual fetch
// time. Cancelling ctx stops the loop between addresses; the results
// gathered so far are still returned.
func (r *Runner) Run(ctx context.Context, addrs []string) domain.RunResults {
	results := make(domain.RunResults, len(addrs))
	runTS := r.now()

	for i, addr := range addrs {
		if ctx.Err() != nil {
			r.logger.Printf("run cancelled after %d/%d addresses", i, len(addrs))
			break
		}

		r.logger.Printf("[%d/%d] querying %s ...", i+1, len(addrs), addr)

		data, err := r.fetcher.TokenDetails(ctx, addr)
		if err != nil {
			results[addr] = fetchFailure(addr, err, r.logger)
			// Failed fetches skip persistence, the per-address file,
			// and the inter-request delay.
			continue
		}

		results[addr] = domain.OKRecord()

		doc := &domain.TokenDetailDocument{Address: addr, FetchedAt: runTS, Data: data}
		if err := r.store.Insert(ctx, doc); err != nil {
			r.logger.Printf("insert failed for %s: %v", addr, err)
			results[addr] = domain.StoreErrorRecord(err.Error())
		}

		if r.detailsDir != "" {
			if err := reporting.WriteDetails(r.detailsDir, addr, data); err != nil {
				r.logger.Printf("write details file for %s: %v", addr, err)
			}
		}

		if r.delay > 0 {
			r.sleep(r.delay)
		}
	}

	return results
}

func fetchFailure(addr string, err error, logger *log.Logger) domain.ResultRecord {
	var httpErr *mobula.HTTPError
	if errors.As(err, &httpErr) {
		logger.Printf("HTTP error for %s: %v", addr, err)
		code := httpErr.StatusCode
		return domain.FetchErrorRecord(err.Error(), &code)
	}
	logger.Printf("request failed for %s: %v", addr, err)
	return domain.FetchErrorRecord(err.Error(), nil)
}
