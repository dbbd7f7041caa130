package governance

import (
	"sort"
	"strings"

	"github.com/samas-it-services/smart-search/provider"
)

// RLSPredicate produces a provider-specific filter expression for one
// logical table, given the caller's identity and security context. The
// core treats the returned string as opaque.
type RLSPredicate func(sc SecurityContext) string

// InjectRLS evaluates every configured predicate and places the
// combined expression into opts.Filters.Custom["rowLevelSecurity"].
// Predicates are evaluated in table-name order so the combined
// expression is deterministic across calls. A provider that cannot
// honor the expression returns provider.ErrRLSUnsupported from Search.
func InjectRLS(predicates map[string]RLSPredicate, sc SecurityContext, opts *provider.SearchOptions) {
	if len(predicates) == 0 {
		return
	}

	tables := make([]string, 0, len(predicates))
	for table := range predicates {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	clauses := make([]string, 0, len(tables))
	for _, table := range tables {
		expr := predicates[table](sc)
		if expr == "" {
			continue
		}
		clauses = append(clauses, expr)
	}
	if len(clauses) == 0 {
		return
	}

	if opts.Filters.Custom == nil {
		opts.Filters.Custom = make(map[string]any, 1)
	}
	opts.Filters.Custom["rowLevelSecurity"] = strings.Join(clauses, " AND ")
}
