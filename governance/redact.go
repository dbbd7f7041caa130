package governance

import "regexp"

var (
	ssnPattern   = regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)
	emailPattern = regexp.MustCompile(`\b[\w.+-]+@[\w-]+\.[\w.-]+\b`)
	phonePattern = regexp.MustCompile(`\b(?:\+?1[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`)
)

// RedactQuery replaces SSN, email, and phone number patterns found in
// query with a fixed marker, for storage in an AuditRecord when
// sensitiveDataRedaction is enabled. The original query sent to
// providers is never touched - redaction applies only to the audited
// copy.
func RedactQuery(query string) string {
	redacted := ssnPattern.ReplaceAllString(query, "[REDACTED-SSN]")
	redacted = emailPattern.ReplaceAllString(redacted, "[REDACTED-EMAIL]")
	redacted = phonePattern.ReplaceAllString(redacted, "[REDACTED-PHONE]")
	return redacted
}
