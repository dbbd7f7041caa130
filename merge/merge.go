// Package merge implements the three result-combination algorithms a
// hybrid search may use to fold a cache result list and a database
// result list into one ranked response.
package merge

import (
	"sort"

	"github.com/samas-it-services/smart-search/provider"
)

// DefaultCacheWeight and DefaultDatabaseWeight are the reference
// weights for Weighted when a caller has no preference.
const (
	DefaultCacheWeight    = 0.7
	DefaultDatabaseWeight = 0.3
)

// Algorithm selects which of the three merge functions Apply dispatches
// to for a hybrid search response.
type Algorithm string

const (
	AlgorithmUnion        Algorithm = "union"
	AlgorithmIntersection Algorithm = "intersection"
	AlgorithmWeighted     Algorithm = "weighted"
)

// Apply dispatches to Union, Intersection, or Weighted based on
// algorithm. cacheWeight/databaseWeight are only consulted for
// AlgorithmWeighted; an unrecognized algorithm falls back to Union.
func Apply(algorithm Algorithm, cache, database []provider.SearchResult, cacheWeight, databaseWeight float64) []provider.SearchResult {
	switch algorithm {
	case AlgorithmIntersection:
		return Intersection(cache, database)
	case AlgorithmWeighted:
		return Weighted(cache, database, cacheWeight, databaseWeight)
	default:
		return Union(cache, database)
	}
}

// Union returns every result from cache and database, deduplicated by
// ID with cache-first precedence, sorted by RelevanceScore descending.
// Ties are broken by stable insertion order (cache before database).
func Union(cache, database []provider.SearchResult) []provider.SearchResult {
	seen := make(map[string]bool, len(cache)+len(database))
	merged := make([]provider.SearchResult, 0, len(cache)+len(database))

	for _, r := range cache {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		merged = append(merged, r)
	}
	for _, r := range database {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		merged = append(merged, r)
	}

	stableSortByScoreDesc(merged)
	return merged
}

// Intersection keeps only results whose ID appears in both lists. When
// both sides carry an entry for an ID, the higher-scoring one is kept.
// Sorted by RelevanceScore descending, ties broken by cache-before-
// database stable order.
func Intersection(cache, database []provider.SearchResult) []provider.SearchResult {
	dbByID := make(map[string]provider.SearchResult, len(database))
	for _, r := range database {
		dbByID[r.ID] = r
	}

	merged := make([]provider.SearchResult, 0, len(cache))
	for _, c := range cache {
		d, ok := dbByID[c.ID]
		if !ok {
			continue
		}
		if d.RelevanceScore > c.RelevanceScore {
			merged = append(merged, d)
		} else {
			merged = append(merged, c)
		}
	}

	stableSortByScoreDesc(merged)
	return merged
}

// Weighted computes, for every ID appearing in either list,
// score = cacheWeight*scoreC + databaseWeight*scoreD (missing
// contributions are zero), stamps provenance into Metadata, and returns
// the list sorted by computed score descending (stable, cache-before-
// database ties).
func Weighted(cache, database []provider.SearchResult, cacheWeight, databaseWeight float64) []provider.SearchResult {
	type contribution struct {
		result   provider.SearchResult
		inCache  bool
		inDB     bool
		scoreC   float64
		scoreD   float64
		order    int
	}

	byID := make(map[string]*contribution)
	order := make([]string, 0, len(cache)+len(database))

	addOrUpdate := func(r provider.SearchResult, fromCache bool) {
		c, ok := byID[r.ID]
		if !ok {
			c = &contribution{result: r, order: len(order)}
			byID[r.ID] = c
			order = append(order, r.ID)
		}
		if fromCache {
			c.inCache = true
			c.scoreC = r.RelevanceScore
		} else {
			c.inDB = true
			c.scoreD = r.RelevanceScore
			if !c.inCache {
				// Prefer the cache entry's richer fields when both exist;
				// otherwise the database entry is the only shape we have.
				c.result = r
			}
		}
	}

	for _, r := range cache {
		addOrUpdate(r, true)
	}
	for _, r := range database {
		addOrUpdate(r, false)
	}

	merged := make([]provider.SearchResult, 0, len(order))
	for _, id := range order {
		c := byID[id]
		weighted := cacheWeight*c.scoreC + databaseWeight*c.scoreD

		result := c.result
		meta := make(map[string]any, len(result.Metadata)+3)
		for k, v := range result.Metadata {
			meta[k] = v
		}
		meta["source"] = sourceLabel(c.inCache, c.inDB)
		meta["cacheScore"] = c.scoreC
		meta["databaseScore"] = c.scoreD
		result.Metadata = meta
		result.RelevanceScore = weighted

		merged = append(merged, result)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].RelevanceScore > merged[j].RelevanceScore
	})
	return merged
}

func sourceLabel(inCache, inDB bool) string {
	switch {
	case inCache && inDB:
		return "hybrid"
	case inCache:
		return "cache"
	default:
		return "database"
	}
}

func stableSortByScoreDesc(results []provider.SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})
}
