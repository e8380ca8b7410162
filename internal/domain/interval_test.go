package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"identical", at(10), at(12), at(10), at(12), true},
		{"partial tail", at(18), at(22), at(12), at(20), true},
		{"contained", at(13), at(14), at(12), at(20), true},
		{"touching end to start", at(10), at(12), at(12), at(14), false},
		{"touching start to end", at(12), at(14), at(10), at(12), false},
		{"disjoint before", at(9), at(11), at(12), at(20), false},
		{"disjoint after", at(21), at(22), at(12), at(20), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd), "overlap must be symmetric")
		})
	}
}

func TestOverlaps_TouchingChainNeverOverlaps(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	for i := 1; i <= 48; i++ {
		t1 := t0.Add(time.Duration(i) * 30 * time.Minute)
		t2 := t1.Add(time.Duration(i) * 15 * time.Minute)
		assert.False(t, Overlaps(t0, t1, t1, t2))
	}
}
