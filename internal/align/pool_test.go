package align

import (
	"errors"
	"testing"

	"cutplan/internal/services"
)

func TestPoolClaimAndOverlap(t *testing.T) {
	p := newPool(10)

	if err := p.Claim(2, 5); err != nil {
		t.Fatalf("Claim(2, 5) error = %v", err)
	}

	tests := []struct {
		name       string
		start, end int
		want       bool
	}{
		{"inside", 3, 4, true},
		{"touching left edge", 0, 3, true},
		{"touching right edge", 4, 7, true},
		{"adjacent before", 0, 2, false},
		{"adjacent after", 5, 8, false},
		{"disjoint", 8, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Overlaps(tt.start, tt.end); got != tt.want {
				t.Errorf("Overlaps(%d, %d) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestPoolClaimRejectsOverlap(t *testing.T) {
	p := newPool(10)
	if err := p.Claim(2, 5); err != nil {
		t.Fatalf("Claim(2, 5) error = %v", err)
	}
	err := p.Claim(4, 7)
	if !errors.Is(err, services.ErrInternal) {
		t.Errorf("Claim(4, 7) error = %v, want ErrInternal", err)
	}
}

func TestPoolClaimRejectsInvalidRange(t *testing.T) {
	p := newPool(10)
	for _, r := range [][2]int{{-1, 2}, {3, 3}, {5, 4}, {8, 11}} {
		if err := p.Claim(r[0], r[1]); !errors.Is(err, services.ErrInternal) {
			t.Errorf("Claim(%d, %d) error = %v, want ErrInternal", r[0], r[1], err)
		}
	}
}
