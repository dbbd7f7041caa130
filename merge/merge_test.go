package merge

import (
	"testing"

	"github.com/samas-it-services/smart-search/provider"
)

func r(id string, score float64) provider.SearchResult {
	return provider.SearchResult{ID: id, RelevanceScore: score}
}

func TestUnion(t *testing.T) {
	cache := []provider.SearchResult{r("a1", 90), r("a2", 70)}
	database := []provider.SearchResult{r("a2", 50), r("a3", 40)}

	got := Union(cache, database)

	if len(got) != 3 {
		t.Fatalf("Union() len = %d, want 3", len(got))
	}
	// a2 should keep the cache-side score (cache-first uniqueness)
	var a2Score float64
	for _, res := range got {
		if res.ID == "a2" {
			a2Score = res.RelevanceScore
		}
	}
	if a2Score != 70 {
		t.Errorf("a2 score = %v, want 70 (cache-first precedence)", a2Score)
	}
	// sorted descending: a1(90) a2(70) a3(40)
	if got[0].ID != "a1" || got[1].ID != "a2" || got[2].ID != "a3" {
		t.Errorf("Union() order = %v, want a1,a2,a3", ids(got))
	}
}

func TestIntersection(t *testing.T) {
	cache := []provider.SearchResult{r("a1", 90), r("a2", 70), r("a3", 10)}
	database := []provider.SearchResult{r("a2", 95), r("a4", 60)}

	got := Intersection(cache, database)

	if len(got) != 1 {
		t.Fatalf("Intersection() len = %d, want 1", len(got))
	}
	if got[0].ID != "a2" || got[0].RelevanceScore != 95 {
		t.Errorf("Intersection() = %+v, want a2 with higher db score 95", got[0])
	}
}

func TestWeighted(t *testing.T) {
	cache := []provider.SearchResult{r("a1", 100), r("a2", 50)}
	database := []provider.SearchResult{r("a2", 80), r("a3", 60)}

	got := Weighted(cache, database, 0.7, 0.3)

	byID := make(map[string]provider.SearchResult, len(got))
	for _, res := range got {
		byID[res.ID] = res
	}

	if byID["a1"].RelevanceScore != 70 {
		t.Errorf("a1 weighted score = %v, want 70 (0.7*100 + 0.3*0)", byID["a1"].RelevanceScore)
	}
	if byID["a2"].RelevanceScore != 59 {
		t.Errorf("a2 weighted score = %v, want 59 (0.7*50 + 0.3*80)", byID["a2"].RelevanceScore)
	}
	if byID["a3"].RelevanceScore != 18 {
		t.Errorf("a3 weighted score = %v, want 18 (0.7*0 + 0.3*60)", byID["a3"].RelevanceScore)
	}
	if byID["a2"].Metadata["source"] != "hybrid" {
		t.Errorf("a2 source = %v, want hybrid", byID["a2"].Metadata["source"])
	}
	if byID["a1"].Metadata["source"] != "cache" {
		t.Errorf("a1 source = %v, want cache", byID["a1"].Metadata["source"])
	}
	if byID["a3"].Metadata["source"] != "database" {
		t.Errorf("a3 source = %v, want database", byID["a3"].Metadata["source"])
	}

	// sorted descending by weighted score: a1(70) a2(59) a3(18)
	if got[0].ID != "a1" || got[1].ID != "a2" || got[2].ID != "a3" {
		t.Errorf("Weighted() order = %v, want a1,a2,a3", ids(got))
	}
}

func TestWeighted_DefaultWeights(t *testing.T) {
	cache := []provider.SearchResult{r("a1", 10)}
	got := Weighted(cache, nil, DefaultCacheWeight, DefaultDatabaseWeight)
	if got[0].RelevanceScore != 7 {
		t.Errorf("score = %v, want 7 (0.7*10)", got[0].RelevanceScore)
	}
}

func ids(results []provider.SearchResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}
