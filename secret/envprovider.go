package secret

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// EnvProvider resolves secret references against process environment
// variables, optionally namespaced under a prefix (e.g. a ref of
// "AUDIT_LOG_PATH" with Prefix "SMARTSEARCH_" reads
// "SMARTSEARCH_AUDIT_LOG_PATH"). It is the concrete Provider behind
// "secretref:env:..." references, the pattern FileAuditSink's doc
// comment describes.
type EnvProvider struct {
	// Prefix is prepended to every ref before the environment lookup.
	Prefix string
}

// NewEnvProvider creates an EnvProvider with the given prefix.
func NewEnvProvider(prefix string) *EnvProvider {
	return &EnvProvider{Prefix: prefix}
}

// Name returns "env".
func (p *EnvProvider) Name() string {
	return "env"
}

// Resolve looks up ref (prefixed) in the environment. A missing or
// empty variable is reported as an error, matching ExpandEnvStrict's
// strict-by-default treatment of unset references.
func (p *EnvProvider) Resolve(_ context.Context, ref string) (string, error) {
	key := p.Prefix + strings.TrimSpace(ref)
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return "", fmt.Errorf("secret: environment variable %q is not set", key)
	}
	return value, nil
}

// Close is a no-op; EnvProvider holds no resources.
func (p *EnvProvider) Close() error {
	return nil
}

var _ Provider = (*EnvProvider)(nil)

// RegisterEnvProvider registers an "env" provider factory on reg. The
// factory reads an optional "prefix" string key from its config map.
func RegisterEnvProvider(reg *Registry) error {
	return reg.Register("env", func(cfg map[string]any) (Provider, error) {
		prefix, _ := cfg["prefix"].(string)
		return NewEnvProvider(prefix), nil
	})
}
