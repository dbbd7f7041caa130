package secret

import (
	"context"
	"testing"
)

func TestEnvProvider_ResolvesSetVariable(t *testing.T) {
	t.Setenv("SMARTSEARCH_AUDIT_LOG_PATH", "/var/log/smart-search/audit.log")

	p := NewEnvProvider("SMARTSEARCH_")
	got, err := p.Resolve(context.Background(), "AUDIT_LOG_PATH")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "/var/log/smart-search/audit.log" {
		t.Errorf("Resolve() = %q, want the env value", got)
	}
}

func TestEnvProvider_MissingVariableErrors(t *testing.T) {
	p := NewEnvProvider("SMARTSEARCH_")
	if _, err := p.Resolve(context.Background(), "NOT_SET_ANYWHERE"); err == nil {
		t.Error("expected an error for an unset variable")
	}
}

func TestRegisterEnvProvider_WiresFactoryIntoRegistry(t *testing.T) {
	reg := NewRegistry()
	if err := RegisterEnvProvider(reg); err != nil {
		t.Fatalf("RegisterEnvProvider: %v", err)
	}

	p, err := reg.Create("env", map[string]any{"prefix": "SMARTSEARCH_"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	envProvider, ok := p.(*EnvProvider)
	if !ok {
		t.Fatalf("Create() returned %T, want *EnvProvider", p)
	}
	if envProvider.Prefix != "SMARTSEARCH_" {
		t.Errorf("Prefix = %q, want SMARTSEARCH_", envProvider.Prefix)
	}
}

func TestResolver_UsesEnvProviderForSecretRef(t *testing.T) {
	t.Setenv("SMARTSEARCH_AUDIT_LOG_PATH", "/tmp/audit.log")

	r := NewResolver(true, NewEnvProvider("SMARTSEARCH_"))
	got, err := r.ResolveValue(context.Background(), "secretref:env:AUDIT_LOG_PATH")
	if err != nil {
		t.Fatalf("ResolveValue() error = %v", err)
	}
	if got != "/tmp/audit.log" {
		t.Errorf("ResolveValue() = %q, want the resolved path", got)
	}
}
