package governance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/samas-it-services/smart-search/secret"
)

// AuditRecord is written once per SecureSearch call, success or
// failure.
type AuditRecord struct {
	ID          string
	Timestamp   time.Time
	UserID      string
	Role        string
	Action      string
	Query       string
	ResultCount int
	SearchTime  time.Duration
	Success     bool
	ErrorMessage string

	SensitiveDataAccessed bool
	ComplianceFlags       []string

	SessionID string
	IPAddress string
	UserAgent string
}

// AuditSink persists (or otherwise delivers) an AuditRecord. The core
// only formats the record and hands it off; on-disk or on-wire format
// is the sink's own contract.
type AuditSink interface {
	Write(ctx context.Context, record AuditRecord) error
}

// ConsoleAuditSink writes one JSON line per record to an io.Writer
// (os.Stdout by default).
type ConsoleAuditSink struct {
	w  io.Writer
	mu sync.Mutex
}

// NewConsoleAuditSink creates a ConsoleAuditSink writing to w. A nil w
// defaults to os.Stdout.
func NewConsoleAuditSink(w io.Writer) *ConsoleAuditSink {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleAuditSink{w: w}
}

// Write implements AuditSink.
func (s *ConsoleAuditSink) Write(_ context.Context, record AuditRecord) error {
	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("governance: marshal audit record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = fmt.Fprintln(s.w, string(line))
	return err
}

var _ AuditSink = (*ConsoleAuditSink)(nil)

// FileAuditSink appends one JSON line per record to a file. The
// destination may contain a secret reference (e.g.
// "secretref:env:AUDIT_LOG_PATH") resolved once, on first write,
// through a secret.Resolver - the same templated-destination pattern
// auth's transport configuration uses for credential material.
type FileAuditSink struct {
	destination string
	resolver    *secret.Resolver

	mu       sync.Mutex
	resolved string
}

// NewFileAuditSink creates a FileAuditSink targeting destination,
// resolved through resolver before the first write. A nil resolver
// resolves only environment-variable expansion, no secretref: lookups.
func NewFileAuditSink(destination string, resolver *secret.Resolver) *FileAuditSink {
	return &FileAuditSink{destination: destination, resolver: resolver}
}

// Write implements AuditSink.
func (s *FileAuditSink) Write(ctx context.Context, record AuditRecord) error {
	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("governance: marshal audit record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.resolved == "" {
		resolved, err := s.resolver.ResolveValue(ctx, s.destination)
		if err != nil {
			return fmt.Errorf("governance: resolve audit destination: %w", err)
		}
		s.resolved = resolved
	}

	f, err := os.OpenFile(s.resolved, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("governance: open audit file: %w", err)
	}
	defer f.Close()

	_, err = fmt.Fprintln(f, string(line))
	return err
}

var _ AuditSink = (*FileAuditSink)(nil)
