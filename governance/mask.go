package governance

import (
	"strings"

	"github.com/samas-it-services/smart-search/provider"
)

// MaskFunc transforms a sensitive value into its masked form for
// display to a caller who isn't cleared to see it unmasked.
type MaskFunc func(value any, sc SecurityContext) any

// MaskRule binds a dot-notation path into a SearchResult's Metadata
// (e.g. "medical.codes.icd10") to the classification governing it and
// the function that masks its value.
type MaskRule struct {
	Path           string
	Classification Classification
	Tags           []Tag
	Mask           MaskFunc
}

func (r MaskRule) classification() FieldClassification {
	return FieldClassification{Path: r.Path, Classification: r.Classification, Tags: r.Tags}
}

// MaskResults applies every rule whose path is present in a result's
// Metadata. Unknown paths are skipped. It reports sensitiveAccessed,
// true iff any result carried a non-nil value at a path classified
// confidential/restricted/pii/phi, regardless of whether the caller's
// role was cleared to see it unmasked.
func MaskResults(results []provider.SearchResult, rules []MaskRule, policy Policy, roles []string, sc SecurityContext) (masked []provider.SearchResult, sensitiveAccessed bool) {
	masked = make([]provider.SearchResult, len(results))
	for i, result := range results {
		out := result
		if result.Metadata != nil {
			out.Metadata = cloneMetadata(result.Metadata)
		}

		for _, rule := range rules {
			value, ok := getPath(out.Metadata, rule.Path)
			if !ok || value == nil {
				continue
			}

			fc := rule.classification()
			if fc.sensitive() {
				sensitiveAccessed = true
			}

			if policy.Allows(roles, fc) {
				continue
			}
			if rule.Mask == nil {
				continue
			}
			setPath(out.Metadata, rule.Path, rule.Mask(value, sc))
		}

		masked[i] = out
	}
	return masked, sensitiveAccessed
}

func cloneMetadata(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			out[k] = cloneMetadata(nested)
			continue
		}
		out[k] = v
	}
	return out
}

func getPath(m map[string]any, path string) (any, bool) {
	segments := strings.Split(path, ".")
	cur := any(m)
	for _, seg := range segments {
		curMap, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		val, ok := curMap[seg]
		if !ok {
			return nil, false
		}
		cur = val
	}
	return cur, true
}

func setPath(m map[string]any, path string, value any) {
	segments := strings.Split(path, ".")
	cur := m
	for i, seg := range segments {
		if i == len(segments)-1 {
			cur[seg] = value
			return
		}
		next, ok := cur[seg].(map[string]any)
		if !ok {
			return
		}
		cur = next
	}
}

// MaskSSN masks all but the last four digits of a US SSN-shaped string,
// e.g. "123-45-6789" -> "***-**-6789". Non-string or malformed values
// are masked wholesale.
func MaskSSN(value any, _ SecurityContext) any {
	s, ok := value.(string)
	if !ok || len(s) < 4 {
		return "***"
	}
	return "***-**-" + s[len(s)-4:]
}

// MaskEmail replaces the local part of an email address with asterisks,
// keeping the domain visible, e.g. "jdoe@example.com" -> "***@example.com".
func MaskEmail(value any, _ SecurityContext) any {
	s, ok := value.(string)
	if !ok {
		return "***"
	}
	at := strings.Index(s, "@")
	if at < 0 {
		return "***"
	}
	return "***" + s[at:]
}

// MaskFull replaces any value with a fixed redaction marker.
func MaskFull(_ any, _ SecurityContext) any {
	return "[REDACTED]"
}
