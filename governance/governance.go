package governance

import (
	"context"
	"time"

	"github.com/samas-it-services/smart-search/provider"
	"github.com/samas-it-services/smart-search/searcherr"
)

// SecurityContext is supplied by the caller on every SecureSearch call.
// Governance never mutates it.
type SecurityContext struct {
	UserID         string
	UserRole       string
	InstitutionID  string
	ClearanceLevel Classification
	SessionID      string
	IPAddress      string
	UserAgent      string
	Timestamp      time.Time
}

// Roles returns the single-role slice Policy.Allows expects. A host
// with richer role sets can populate UserRole with any string the
// configured Policy recognizes; governance itself is role-set-of-one
// at the SecurityContext level (a single userRole field).
func (sc SecurityContext) Roles() []string {
	if sc.UserRole == "" {
		return nil
	}
	return []string{sc.UserRole}
}

// Config configures a Governance instance. As with engine.Config, this
// is composition: a host that doesn't need RLS or masking simply
// leaves those fields empty rather than subclassing a base config.
type Config struct {
	Policy Policy

	// Fields classifies every field path governance is aware of. Used
	// both for masking and for ValidateDataAccess.
	Fields []FieldClassification

	// RLS maps logical table name to its row-level-security predicate.
	RLS map[string]RLSPredicate

	// Masks lists the masking rules applied to returned results.
	Masks []MaskRule

	// MinClearance is the clearance a SecurityContext must declare (or
	// exceed) before SecureSearch even attempts the call. Zero value
	// (ClassificationPublic) admits every caller.
	MinClearance Classification

	// SensitiveDataRedaction enables regex-based redaction of the
	// audited (not the executed) query text.
	SensitiveDataRedaction bool

	// BulkAccessThreshold flags a result count above this value as bulk
	// access in the audit record's compliance flags. Default: 1000.
	BulkAccessThreshold int

	// AfterHoursStart/AfterHoursEnd (0-23, local time) bound the
	// business-hours window; access to sensitive data outside it is
	// flagged. Zero values (0, 0) disable the after-hours check.
	AfterHoursStart int
	AfterHoursEnd   int

	// Sink receives one AuditRecord per SecureSearch call.
	Sink AuditSink
}

func (c Config) bulkThreshold() int {
	if c.BulkAccessThreshold > 0 {
		return c.BulkAccessThreshold
	}
	return 1000
}

// Governance is the optional C8 layer: RLS predicate injection, field
// masking, and audit recording around a search call.
type Governance struct {
	cfg Config
}

// New constructs a Governance from cfg.
func New(cfg Config) *Governance {
	return &Governance{cfg: cfg}
}

// Authorize checks sc's declared clearance against the configured
// minimum before a call proceeds. It is the only point at which
// governance rejects a call outright with SecurityAccessDenied;
// masking handles per-field denial without failing the call.
func (g *Governance) Authorize(sc SecurityContext) error {
	if !sc.ClearanceLevel.AtLeast(g.cfg.MinClearance) {
		return searcherr.New(searcherr.SecurityAccessDenied,
			"caller clearance level does not meet the minimum required", nil)
	}
	return nil
}

// InjectRLS places the combined row-level-security expression for sc
// into opts.Filters.Custom.
func (g *Governance) InjectRLS(sc SecurityContext, opts *provider.SearchOptions) {
	InjectRLS(g.cfg.RLS, sc, opts)
}

// MaskResults applies the configured masking rules and reports whether
// any sensitive field was present in the response.
func (g *Governance) MaskResults(results []provider.SearchResult, sc SecurityContext) ([]provider.SearchResult, bool) {
	return MaskResults(results, g.cfg.Masks, g.cfg.Policy, sc.Roles(), sc)
}

// ValidateDataAccess partitions the configured field set into paths sc
// may see unmasked and paths it may not.
func (g *Governance) ValidateDataAccess(sc SecurityContext) (allowed, denied []string) {
	return ValidateDataAccess(g.cfg.Policy, sc.Roles(), g.cfg.Fields)
}

// RedactQuery applies regex redaction to query when
// SensitiveDataRedaction is enabled; otherwise it returns query
// unchanged.
func (g *Governance) RedactQuery(query string) string {
	if !g.cfg.SensitiveDataRedaction {
		return query
	}
	return RedactQuery(query)
}

// ComplianceFlags derives the audit record's compliance flags: after-
// hours access to sensitive data, bulk access, and a cross-institution
// review flag whenever sensitive data is accessed by a caller carrying
// an institution ID. Governance does not compare institutions itself;
// it has no second institution to compare against within a single call.
func (g *Governance) ComplianceFlags(sc SecurityContext, resultCount int, sensitiveAccessed bool) []string {
	var flags []string

	if sensitiveAccessed && g.isAfterHours(sc.Timestamp) {
		flags = append(flags, "after_hours_sensitive_access")
	}
	if resultCount > g.cfg.bulkThreshold() {
		flags = append(flags, "bulk_access")
	}
	if sensitiveAccessed && sc.InstitutionID != "" {
		flags = append(flags, "cross_institution_review_required")
	}

	return flags
}

func (g *Governance) isAfterHours(ts time.Time) bool {
	if g.cfg.AfterHoursStart == 0 && g.cfg.AfterHoursEnd == 0 {
		return false
	}
	if ts.IsZero() {
		ts = time.Now()
	}
	hour := ts.Hour()
	if g.cfg.AfterHoursStart <= g.cfg.AfterHoursEnd {
		return hour < g.cfg.AfterHoursStart || hour >= g.cfg.AfterHoursEnd
	}
	// Window wraps midnight, e.g. start=20, end=6.
	return hour < g.cfg.AfterHoursStart && hour >= g.cfg.AfterHoursEnd
}

// Audit hands record off to the configured sink. A nil sink makes
// Audit a no-op; sink errors are returned to the caller so the host
// can decide whether an unaudited call is acceptable, but they never
// unwind a successful search response - the engine logs them instead
// of failing the call.
func (g *Governance) Audit(ctx context.Context, record AuditRecord) error {
	if g.cfg.Sink == nil {
		return nil
	}
	return g.cfg.Sink.Write(ctx, record)
}
