package cache

import (
	"testing"
	"time"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()

	if p.MaxEntries != DefaultMaxEntries {
		t.Errorf("MaxEntries = %d, want %d", p.MaxEntries, DefaultMaxEntries)
	}
	if p.TTL != 0 {
		t.Errorf("TTL = %v, want 0", p.TTL)
	}
	if p.RetainFailures {
		t.Error("RetainFailures should be false by default")
	}
}

func TestPermanentPolicy(t *testing.T) {
	p := PermanentPolicy()

	if p.capacity() != 0 {
		t.Errorf("capacity() = %d, want 0 (unbounded)", p.capacity())
	}
	if !p.RetainFailures {
		t.Error("RetainFailures should be true")
	}
}

func TestPolicy_Capacity(t *testing.T) {
	tests := []struct {
		name       string
		maxEntries int
		want       int
	}{
		{"zero uses default", 0, DefaultMaxEntries},
		{"negative is unbounded", -1, 0},
		{"explicit", 8, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Policy{MaxEntries: tt.maxEntries}
			if got := p.capacity(); got != tt.want {
				t.Errorf("capacity() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPolicy_TTL(t *testing.T) {
	if got := (Policy{TTL: -time.Second}).ttl(); got != 0 {
		t.Errorf("ttl() for negative TTL = %v, want 0", got)
	}
	if got := (Policy{TTL: time.Minute}).ttl(); got != time.Minute {
		t.Errorf("ttl() = %v, want 1m", got)
	}
}
