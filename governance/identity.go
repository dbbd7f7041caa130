package governance

import (
	"context"
	"time"

	"github.com/samas-it-services/smart-search/auth"
	"github.com/samas-it-services/smart-search/searcherr"
)

// RequestMetadata carries the per-request fields SecurityContext needs
// that an authenticated auth.Identity doesn't itself capture (session
// and network origin, both typically read off the inbound HTTP
// request rather than a token's claims).
type RequestMetadata struct {
	SessionID string
	IPAddress string
	UserAgent string
}

// SecurityContextFromIdentity derives a SecurityContext from an
// authenticated identity. ClearanceLevel is resolved from id.Roles
// against g's configured Policy (the same Policy SecureSearch's
// masking and ValidateDataAccess already use), so a host never has to
// separately decide what clearance a given role carries. UserRole
// takes the identity's first role, matching Roles()'s role-set-of-one
// shape; a nil identity is treated as anonymous.
func (g *Governance) SecurityContextFromIdentity(id *auth.Identity, meta RequestMetadata) SecurityContext {
	if id == nil {
		id = auth.AnonymousIdentity()
	}

	var role string
	if len(id.Roles) > 0 {
		role = id.Roles[0]
	}

	return SecurityContext{
		UserID:         id.Principal,
		UserRole:       role,
		InstitutionID:  id.TenantID,
		ClearanceLevel: g.cfg.Policy.MaxClearance(id.Roles),
		SessionID:      meta.SessionID,
		IPAddress:      meta.IPAddress,
		UserAgent:      meta.UserAgent,
		Timestamp:      time.Now(),
	}
}

// AuthenticateRequest runs authenticator against req and, on success,
// builds the SecurityContext SecureSearch requires from the resulting
// identity. This is the expected bridge between a host's
// authentication layer and governance: a host fronting SecureSearch
// authenticates the inbound request first, then hands the resulting
// SecurityContext to Engine.SecureSearch.
//
// Both an authenticator-internal error and a failed authentication
// attempt are reported as errors; governance only ever builds a
// SecurityContext from an identity that actually passed
// authentication.
func (g *Governance) AuthenticateRequest(ctx context.Context, authenticator auth.Authenticator, req *auth.AuthRequest, meta RequestMetadata) (SecurityContext, error) {
	result, err := authenticator.Authenticate(ctx, req)
	if err != nil {
		return SecurityContext{}, searcherr.New(searcherr.ProviderFault, "authentication request failed", err)
	}
	if !result.Authenticated {
		return SecurityContext{}, searcherr.New(searcherr.SecurityAccessDenied, "authentication failed", result.Error)
	}
	return g.SecurityContextFromIdentity(result.Identity, meta), nil
}
