package cache

import (
	"strings"
	"testing"
	"time"
)

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{"empty key", "", ErrInvalidKey},
		{"valid key", "search:abc123", nil},
		{"too long", strings.Repeat("x", MaxKeyLength+1), ErrKeyTooLong},
		{"contains newline", "key\nwith\nnewlines", ErrInvalidKey},
		{"contains carriage return", "key\rwith\rreturns", ErrInvalidKey},
		{"whitespace only", "   ", ErrInvalidKey},
		{"max length exactly", strings.Repeat("x", MaxKeyLength), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateKey(%q) = %v, want nil", tt.key, err)
				}
			} else if err != tt.wantErr {
				t.Errorf("ValidateKey(%q) = %v, want %v", tt.key, err, tt.wantErr)
			}
		})
	}
}

func TestPolicy_EffectiveTTL(t *testing.T) {
	p := Policy{MaxTTL: time.Hour}

	if got := p.EffectiveTTL(10 * time.Minute); got != 10*time.Minute {
		t.Errorf("got %v, want 10m unclamped", got)
	}
	if got := p.EffectiveTTL(2 * time.Hour); got != time.Hour {
		t.Errorf("got %v, want clamped to 1h", got)
	}

	unbounded := Policy{}
	if got := unbounded.EffectiveTTL(2 * time.Hour); got != 2*time.Hour {
		t.Errorf("got %v, want unclamped with no MaxTTL", got)
	}
}
