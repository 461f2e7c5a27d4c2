package align

import (
	"fmt"

	"cutplan/internal/services"
)

// pool tracks which transcript token ranges have been claimed by matched
// cues. It is owned exclusively by the engine's alignment loop; scoring only
// reads it. An explicit value rather than shared state so parallel runs
// cannot contaminate each other.
type pool struct {
	size    int
	claimed [][2]int
}

func newPool(size int) *pool {
	return &pool{size: size}
}

// Overlaps reports whether [start, end) intersects any claimed range.
func (p *pool) Overlaps(start, end int) bool {
	for _, r := range p.claimed {
		if start < r[1] && r[0] < end {
			return true
		}
	}
	return false
}

// Claim removes [start, end) from the unclaimed pool. Claiming a range that
// intersects an existing claim is a defect in the alignment loop, never a
// recoverable condition.
func (p *pool) Claim(start, end int) error {
	if start < 0 || end > p.size || start >= end {
		return services.Wrap(services.ErrInternal, "align", "claim",
			fmt.Sprintf("invalid token range [%d, %d) of %d", start, end, p.size), nil)
	}
	if p.Overlaps(start, end) {
		return services.Wrap(services.ErrInternal, "align", "claim",
			fmt.Sprintf("token range [%d, %d) already claimed", start, end), nil)
	}
	p.claimed = append(p.claimed, [2]int{start, end})
	return nil
}
