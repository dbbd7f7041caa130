// Package engine implements the search routing and resilience facade:
// strategy-driven cache-through search (C5), parallel hybrid search
// (C6), and the optional governance-wrapped SecureSearch entry point
// (C8), all composed from provider, healthcache, resilience, strategy,
// merge, and governance.
package engine

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/samas-it-services/smart-search/cachekey"
	"github.com/samas-it-services/smart-search/governance"
	"github.com/samas-it-services/smart-search/healthcache"
	"github.com/samas-it-services/smart-search/merge"
	"github.com/samas-it-services/smart-search/observe"
	"github.com/samas-it-services/smart-search/provider"
	"github.com/samas-it-services/smart-search/resilience"
	"github.com/samas-it-services/smart-search/searcherr"
	"github.com/samas-it-services/smart-search/strategy"
)

const cacheBreakerName = "cache"

// Engine is the search routing and resilience facade.
type Engine struct {
	database provider.DatabaseProvider
	cache    provider.CacheProvider

	strategyCfg strategy.Config
	cachePolicy cachekey.Policy
	hybrid      *HybridConfig

	healthCache *healthcache.HealthCache
	breakers    *resilience.Registry

	cacheExecutor *resilience.Executor
	dbExecutor    *resilience.Executor

	governance *governance.Governance

	observer   observe.Observer
	middleware *observe.Middleware
}

// New builds an Engine from cfg, applying opts afterward so an
// injected component (Observer, Registry, Governance) always takes
// precedence over what Config would otherwise derive.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if cfg.DatabaseProvider == nil {
		return nil, errors.New("engine: DatabaseProvider is required")
	}

	operationTimeout := cfg.OperationTimeout
	if operationTimeout <= 0 {
		operationTimeout = 5 * time.Second
	}

	e := &Engine{
		database:    cfg.DatabaseProvider,
		cache:       cfg.CacheProvider,
		strategyCfg: cfg.Strategy,
		cachePolicy: cfg.cachePolicy(),
		hybrid:      cfg.Hybrid,
		healthCache: healthcache.New(cfg.HealthCache),
		breakers:    resilience.NewRegistry(),
	}

	if cfg.Governance != nil {
		e.governance = governance.New(*cfg.Governance)
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.breakers == nil {
		e.breakers = resilience.NewRegistry()
	}

	cacheBreaker := e.breakers.GetOrCreate(cacheBreakerName, cfg.Breaker)

	retry := resilience.NewRetry(cfg.Retry)
	rateLimiter := resilience.NewRateLimiter(cfg.RateLimiter)
	cacheBulkhead := resilience.NewBulkhead(cfg.Bulkhead)
	dbBulkhead := resilience.NewBulkhead(cfg.Bulkhead)

	e.cacheExecutor = resilience.NewExecutor(
		resilience.WithRateLimiter(rateLimiter),
		resilience.WithBulkhead(cacheBulkhead),
		resilience.WithCircuitBreaker(cacheBreaker),
		resilience.WithRetry(retry),
		resilience.WithTimeout(operationTimeout),
	)

	// The database path is the fallback of last resort; it is never
	// circuit-breaker-protected, only concurrency-bounded, retried and
	// time-bounded.
	e.dbExecutor = resilience.NewExecutor(
		resilience.WithBulkhead(dbBulkhead),
		resilience.WithRetry(retry),
		resilience.WithTimeout(operationTimeout),
	)

	if e.observer == nil {
		serviceName := cfg.ServiceName
		if serviceName == "" {
			serviceName = "smart-search"
		}
		obs, err := observe.NewObserver(context.Background(), observe.Config{
			ServiceName: serviceName,
			Tracing:     observe.TracingConfig{Enabled: false},
			Metrics:     observe.MetricsConfig{Enabled: false},
			Logging:     observe.LoggingConfig{Enabled: false},
		})
		if err != nil {
			return nil, err
		}
		e.observer = obs
	}

	mw, err := observe.MiddlewareFromObserver(e.observer)
	if err != nil {
		return nil, err
	}
	e.middleware = mw

	return e, nil
}

func (e *Engine) instrument(ctx context.Context, meta observe.SearchMeta, fn func(ctx context.Context) (SearchResponse, error)) (SearchResponse, error) {
	wrapped := e.middleware.Wrap(func(ctx context.Context, _ observe.SearchMeta, _ any) (any, error) {
		return fn(ctx)
	})
	result, err := wrapped(ctx, meta, nil)
	resp, _ := result.(SearchResponse)
	return resp, err
}

// Search is the main cache-through entry point (C5). It never fails for
// routine provider errors unless both the primary and fallback paths
// fail; see executeWithStrategy.
func (e *Engine) Search(ctx context.Context, query string, opts provider.SearchOptions) (SearchResponse, error) {
	opts = opts.Normalize()
	strat := e.selectStrategy(ctx)

	meta := observe.SearchMeta{Operation: "search", Provider: string(strat.Primary), Strategy: strat.Reason}
	return e.instrument(ctx, meta, func(ctx context.Context) (SearchResponse, error) {
		return e.executeWithStrategy(ctx, query, opts, strat)
	})
}

func (e *Engine) selectStrategy(ctx context.Context) strategy.SearchStrategy {
	cacheConfigured := e.cache != nil

	var health provider.HealthStatus
	var healthKnown bool
	if cacheConfigured {
		health, healthKnown = e.healthCache.Get(ctx, cacheBreakerName, e.cache.CheckHealth)
	}

	snapshot := resilience.Snapshot{}
	if snap, ok := e.breakers.SnapshotAll()[cacheBreakerName]; ok {
		snapshot = snap
	}

	return strategy.Select(e.strategyCfg, cacheConfigured, health, healthKnown, snapshot)
}

func (e *Engine) executeWithStrategy(ctx context.Context, query string, opts provider.SearchOptions, strat strategy.SearchStrategy) (SearchResponse, error) {
	start := time.Now()

	key, keyErr := cachekey.Derive(query, opts)
	primary := strat.Primary
	if keyErr != nil && primary == strategy.PathCache {
		primary = strategy.PathDatabase
	}

	results, cacheHit, err := e.executePath(ctx, primary, query, opts, key)
	usedPath := primary
	var perfErrors []string

	if err != nil {
		perfErrors = append(perfErrors, err.Error())

		fallbackResults, fallbackHit, ferr := e.executePath(ctx, strat.Fallback, query, opts, key)
		if ferr != nil {
			return SearchResponse{}, ferr
		}
		results = fallbackResults
		cacheHit = fallbackHit
		usedPath = strat.Fallback
	}

	elapsed := time.Since(start)
	if elapsed < time.Millisecond {
		elapsed = time.Millisecond
	}

	return SearchResponse{
		Results: results,
		Performance: SearchPerformance{
			SearchTime:  elapsed,
			ResultCount: len(results),
			Strategy:    usedPath,
			CacheHit:    cacheHit,
			Errors:      perfErrors,
		},
		Strategy: strat,
	}, nil
}

func (e *Engine) executePath(ctx context.Context, path strategy.Path, query string, opts provider.SearchOptions, key string) (results []provider.SearchResult, cacheHit bool, err error) {
	if path == strategy.PathCache {
		return e.executeCachePath(ctx, query, opts, key)
	}
	return e.executeDatabasePath(ctx, query, opts, key)
}

// executeCachePath implements the cache-first routing branch: a hit
// returns the cached value with cacheHit=true; a miss populates the
// cache from the database and returns with cacheHit=false — cacheHit
// is true only when the value was served directly from the cache.
func (e *Engine) executeCachePath(ctx context.Context, query string, opts provider.SearchOptions, key string) ([]provider.SearchResult, bool, error) {
	var results []provider.SearchResult
	servedFromCache := false

	err := e.cacheExecutor.Execute(ctx, func(ctx context.Context) error {
		if key != "" {
			cached, ok, gerr := e.cache.Get(ctx, key)
			if gerr != nil {
				return gerr
			}
			if ok {
				results = cached
				servedFromCache = true
				return nil
			}
		}

		dbResults, serr := e.database.Search(ctx, query, opts)
		if serr != nil {
			return serr
		}
		results = dbResults

		if key != "" {
			ttl := e.cachePolicy.EffectiveTTL(opts.CacheTTL, len(dbResults))
			_ = e.cache.Set(ctx, key, dbResults, ttl) // populate failure is swallowed
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return results, servedFromCache, nil
}

// executeDatabasePath implements the database-first routing branch.
// On success it best-effort populates the cache without blocking the
// response.
func (e *Engine) executeDatabasePath(ctx context.Context, query string, opts provider.SearchOptions, key string) ([]provider.SearchResult, bool, error) {
	var results []provider.SearchResult

	err := e.dbExecutor.Execute(ctx, func(ctx context.Context) error {
		r, serr := e.database.Search(ctx, query, opts)
		if serr != nil {
			return serr
		}
		results = r
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if e.cache != nil && key != "" && opts.CacheEnabledOrDefault(true) {
		ttl := e.cachePolicy.EffectiveTTL(opts.CacheTTL, len(results))
		populate := results
		go func() {
			setCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = e.cache.Set(setCtx, key, populate, ttl)
		}()
	}

	return results, false, nil
}

// HybridSearch dispatches the cache and database branches concurrently
// (C6). Neither branch is cancelled by the other's completion; both
// always run to completion, per the fixed Open Question resolution.
// When hybrid isn't configured or no cache is present, it falls back
// to Search.
func (e *Engine) HybridSearch(ctx context.Context, query string, opts provider.SearchOptions) (SearchResponse, error) {
	if e.hybrid == nil || !e.hybrid.Enabled || e.cache == nil {
		return e.Search(ctx, query, opts)
	}
	opts = opts.Normalize()

	meta := observe.SearchMeta{Operation: "hybridSearch", Provider: "hybrid"}
	return e.instrument(ctx, meta, func(ctx context.Context) (SearchResponse, error) {
		return e.executeHybrid(ctx, query, opts)
	})
}

func (e *Engine) executeHybrid(ctx context.Context, query string, opts provider.SearchOptions) (SearchResponse, error) {
	start := time.Now()

	var cacheResults, dbResults []provider.SearchResult
	var cacheErr, dbErr error

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		cacheErr = e.cacheExecutor.Execute(ctx, func(ctx context.Context) error {
			r, err := e.cache.Search(ctx, query, opts)
			if err != nil {
				return err
			}
			cacheResults = r
			return nil
		})
	}()

	go func() {
		defer wg.Done()
		dbErr = e.dbExecutor.Execute(ctx, func(ctx context.Context) error {
			r, err := e.database.Search(ctx, query, opts)
			if err != nil {
				return err
			}
			dbResults = r
			return nil
		})
	}()

	wg.Wait()

	elapsed := time.Since(start)
	if elapsed < time.Millisecond {
		elapsed = time.Millisecond
	}

	switch {
	case cacheErr == nil && dbErr == nil:
		merged := merge.Apply(e.hybrid.algorithm(), cacheResults, dbResults, e.hybrid.cacheWeightOrDefault(), e.hybrid.databaseWeightOrDefault())
		return SearchResponse{
			Results: merged,
			Performance: SearchPerformance{
				SearchTime:  elapsed,
				ResultCount: len(merged),
				Strategy:    strategy.PathHybrid,
				CacheHit:    true,
			},
			Strategy: strategy.SearchStrategy{Primary: strategy.PathHybrid, Fallback: strategy.PathCache, Reason: "hybrid merge"},
		}, nil

	case dbErr != nil:
		return SearchResponse{
			Results: cacheResults,
			Performance: SearchPerformance{
				SearchTime:  elapsed,
				ResultCount: len(cacheResults),
				Strategy:    strategy.PathCache,
				CacheHit:    true,
				Errors:      []string{dbErr.Error()},
			},
			Strategy: strategy.SearchStrategy{Primary: strategy.PathCache, Fallback: strategy.PathDatabase, Reason: "hybrid: database branch failed"},
		}, nil

	case cacheErr != nil:
		return SearchResponse{
			Results: dbResults,
			Performance: SearchPerformance{
				SearchTime:  elapsed,
				ResultCount: len(dbResults),
				Strategy:    strategy.PathDatabase,
				CacheHit:    false,
				Errors:      []string{cacheErr.Error()},
			},
			Strategy: strategy.SearchStrategy{Primary: strategy.PathDatabase, Fallback: strategy.PathCache, Reason: "hybrid: cache branch failed"},
		}, nil

	default:
		return SearchResponse{}, searcherr.New(searcherr.ProviderFault, "hybrid search: both branches failed", errors.Join(cacheErr, dbErr))
	}
}

// SecureSearch wraps Search with the governance layer (C8): row-level
// security injection, post-query field masking, and one audit record
// per call, success or failure.
func (e *Engine) SecureSearch(ctx context.Context, sc governance.SecurityContext, query string, opts provider.SearchOptions) (SecureSearchResponse, error) {
	if e.governance == nil {
		return SecureSearchResponse{}, searcherr.New(searcherr.ProviderFault, "governance layer is not configured", nil)
	}

	auditID := newAuditID()
	record := governance.AuditRecord{
		ID:        auditID,
		Timestamp: time.Now(),
		UserID:    sc.UserID,
		Role:      sc.UserRole,
		Action:    "secureSearch",
		Query:     e.governance.RedactQuery(query),
		SessionID: sc.SessionID,
		IPAddress: sc.IPAddress,
		UserAgent: sc.UserAgent,
	}

	if err := e.governance.Authorize(sc); err != nil {
		record.Success = false
		record.ErrorMessage = err.Error()
		e.writeAudit(ctx, record)
		return SecureSearchResponse{}, err
	}

	securedOpts := opts
	e.governance.InjectRLS(sc, &securedOpts)

	resp, err := e.Search(ctx, query, securedOpts)
	if err != nil {
		record.Success = false
		record.ErrorMessage = err.Error()
		e.writeAudit(ctx, record)
		return SecureSearchResponse{}, err
	}

	maskedResults, sensitiveAccessed := e.governance.MaskResults(resp.Results, sc)
	resp.Results = maskedResults

	record.Success = true
	record.ResultCount = len(resp.Results)
	record.SearchTime = resp.Performance.SearchTime
	record.SensitiveDataAccessed = sensitiveAccessed
	record.ComplianceFlags = e.governance.ComplianceFlags(sc, len(resp.Results), sensitiveAccessed)
	e.writeAudit(ctx, record)

	return SecureSearchResponse{SearchResponse: resp, AuditID: auditID}, nil
}

func (e *Engine) writeAudit(ctx context.Context, record governance.AuditRecord) {
	if err := e.governance.Audit(ctx, record); err != nil {
		e.observer.Logger().Error(ctx, "audit write failed", observe.Field{Key: "error", Value: err.Error()}, observe.Field{Key: "auditId", Value: record.ID})
	}
}

// GetCacheHealth returns the cache provider's cached health status, or
// nil if no cache provider is configured.
func (e *Engine) GetCacheHealth(ctx context.Context) (*provider.HealthStatus, error) {
	if e.cache == nil {
		return nil, nil
	}
	status, _ := e.healthCache.Get(ctx, cacheBreakerName, e.cache.CheckHealth)
	return &status, nil
}

// ForceHealthCheck discards the cached health entry's freshness and
// re-checks immediately.
func (e *Engine) ForceHealthCheck(ctx context.Context) (*provider.HealthStatus, error) {
	if e.cache == nil {
		return nil, nil
	}
	status, _ := e.healthCache.ForceRefresh(ctx, cacheBreakerName, e.cache.CheckHealth)
	return &status, nil
}

// GetSearchStats summarizes cache health, database health, breaker
// state, and the strategy the next Search call would select.
func (e *Engine) GetSearchStats(ctx context.Context) (SearchStats, error) {
	cacheHealth, _ := e.GetCacheHealth(ctx)

	var databaseHealth *provider.HealthStatus
	if dbStatus, err := e.database.CheckHealth(ctx); err != nil {
		unhealthy := provider.Unhealthy(err.Error())
		databaseHealth = &unhealthy
	} else {
		databaseHealth = &dbStatus
	}

	snapshot := resilience.Snapshot{}
	if snap, ok := e.breakers.SnapshotAll()[cacheBreakerName]; ok {
		snapshot = snap
	}

	strat := e.selectStrategy(ctx)

	return SearchStats{
		CacheHealth:         cacheHealth,
		DatabaseHealth:      databaseHealth,
		CircuitBreaker:      snapshot,
		RecommendedStrategy: strat,
	}, nil
}

// ClearCache removes cached entries matching pattern. An empty pattern
// clears everything. A no-op when no cache provider is configured.
func (e *Engine) ClearCache(ctx context.Context, pattern string) error {
	if e.cache == nil {
		return nil
	}
	return e.cache.Clear(ctx, pattern)
}

func newAuditID() string {
	var b [12]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
