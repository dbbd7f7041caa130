// Package governance implements the optional security layer a host can
// wrap around engine.Search: row-level-security predicate injection,
// field masking, and audit recording.
//
// It generalizes auth.SimpleRBACAuthorizer's role-inheritance and
// deny-before-allow matching from tool permissions to data
// classifications (public < internal < confidential < restricted,
// plus cross-cutting pii/phi tags). The caller supplies a
// SecurityContext per call; governance never mutates it and never
// resolves identity itself - that is the host's job, typically using
// auth.Identity/auth.WithIdentity before governance.Governance.Secure
// is invoked.
package governance
