package sparse

import (
	"cmp"
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/hupe1980/catsim/model"
)

// Pair is an unordered item pair, normalized so that I < J.
type Pair struct {
	I, J model.ItemIndex
}

// MakePair normalizes (a, b) into a Pair. ok is false when a == b.
func MakePair(a, b model.ItemIndex) (p Pair, ok bool) {
	switch {
	case a < b:
		return Pair{I: a, J: b}, true
	case a > b:
		return Pair{I: b, J: a}, true
	default:
		return Pair{}, false
	}
}

// Counts accumulates non-negative integer values per unordered item pair.
// It is not safe for concurrent use.
type Counts struct {
	n int
	m map[Pair]uint32
}

// NewCounts creates an empty accumulator for n items.
func NewCounts(n int) *Counts {
	return &Counts{n: n, m: make(map[Pair]uint32)}
}

// N returns the number of items.
func (c *Counts) N() int { return c.n }

// Len returns the number of stored pairs.
func (c *Counts) Len() int { return len(c.m) }

// Get returns the value stored for (a, b). The diagonal is always 0.
func (c *Counts) Get(a, b model.ItemIndex) uint32 {
	p, ok := MakePair(a, b)
	if !ok {
		return 0
	}
	return c.m[p]
}

// Inc increments (a, b) by one unless limit > 0 and the pair already
// reached limit. It reports whether the value changed.
func (c *Counts) Inc(a, b model.ItemIndex, limit uint32) bool {
	p, ok := MakePair(a, b)
	if !ok {
		return false
	}
	v := c.m[p]
	if (limit > 0 && v >= limit) || v == math.MaxUint32 {
		return false
	}
	c.m[p] = v + 1
	return true
}

// Add adds v to the pair p.
func (c *Counts) Add(p Pair, v uint32) error {
	if v == 0 {
		return nil
	}
	cur := c.m[p]
	if cur > math.MaxUint32-v {
		return fmt.Errorf("pair (%d,%d): %w", p.I, p.J, ErrOverflow)
	}
	c.m[p] = cur + v
	return nil
}

// Merge adds every pair of other into c (key-wise summation).
func (c *Counts) Merge(other *Counts) error {
	return c.AddScaled(other, 1)
}

// AddScaled adds w × other into c.
func (c *Counts) AddScaled(other *Counts, w uint32) error {
	if other.n != c.n {
		return fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, other.n, c.n)
	}
	if w == 0 {
		return nil
	}
	for p, v := range other.m {
		if uint64(v)*uint64(w) > math.MaxUint32 {
			return fmt.Errorf("pair (%d,%d): %w", p.I, p.J, ErrOverflow)
		}
		if err := c.Add(p, v*w); err != nil {
			return err
		}
	}
	return nil
}

// Cap clamps every value to limit. A limit of 0 means no cap.
func (c *Counts) Cap(limit uint32) {
	if limit == 0 {
		return
	}
	for p, v := range c.m {
		if v > limit {
			c.m[p] = limit
		}
	}
}

// Max returns the largest stored value.
func (c *Counts) Max() uint32 {
	var mx uint32
	for _, v := range c.m {
		mx = max(mx, v)
	}
	return mx
}

// All returns an iterator over the stored pairs in unspecified order.
func (c *Counts) All() iter.Seq2[Pair, uint32] {
	return func(yield func(Pair, uint32) bool) {
		for p, v := range c.m {
			if !yield(p, v) {
				return
			}
		}
	}
}

// Pairs returns the stored pairs ordered by (I, J).
func (c *Counts) Pairs() []Pair {
	out := make([]Pair, 0, len(c.m))
	for p := range c.m {
		out = append(out, p)
	}
	slices.SortFunc(out, comparePairs)
	return out
}

func comparePairs(a, b Pair) int {
	if c := cmp.Compare(a.I, b.I); c != 0 {
		return c
	}
	return cmp.Compare(a.J, b.J)
}

// ToMatrix materializes the accumulator into a symmetric CSR matrix
// (M = U + Uᵗ, zero diagonal). value maps each stored pair to its matrix
// entry; entries mapped to 0 are dropped.
func (c *Counts) ToMatrix(value func(p Pair, v uint32) float64) *Matrix {
	entries := make([]Entry, 0, 2*len(c.m))
	for p, v := range c.m {
		x := value(p, v)
		if x == 0 {
			continue
		}
		entries = append(entries,
			Entry{Row: p.I, Col: p.J, Value: x},
			Entry{Row: p.J, Col: p.I, Value: x},
		)
	}
	// Pairs are unique and in range by construction.
	return buildCSR(c.n, entries)
}
