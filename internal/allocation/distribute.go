// Package allocation spreads a count of people over a count of slots.
package allocation

// Distribute splits n people over d slots. Every slot gets n/d people and the
// first n%d slots get one more. It returns nil when d <= 0 or n < 0; callers
// must guard against having no slots.
func Distribute(n, d int) []int {
	if d <= 0 || n < 0 {
		return nil
	}
	base, extra := n/d, n%d
	quotas := make([]int, d)
	for i := range quotas {
		quotas[i] = base
		if i < extra {
			quotas[i]++
		}
	}
	return quotas
}

// Span is a half-open [Start, End) index range over a pool
type Span struct {
	Start int
	End   int
}

// Len returns the number of indices covered by the span
func (s Span) Len() int { return s.End - s.Start }

// Cursor hands out consecutive spans of a pool of fixed size.
// It replaces a shared "next available person" counter: each caller owns its cursor.
type Cursor struct {
	next int
	size int
}

// NewCursor returns a cursor over a pool of size elements
func NewCursor(size int) *Cursor {
	return &Cursor{size: size}
}

// Take returns the next span of at most n elements. The span is shorter than n
// once the pool runs out.
func (c *Cursor) Take(n int) Span {
	start := c.next
	end := start + n
	if n < 0 {
		end = start
	}
	if end > c.size {
		end = c.size
	}
	c.next = end
	return Span{Start: start, End: end}
}

// Remaining returns the number of elements not yet handed out
func (c *Cursor) Remaining() int { return c.size - c.next }

// Rest returns the span of everything not yet handed out and exhausts the cursor
func (c *Cursor) Rest() Span {
	return c.Take(c.Remaining())
}

// Slices turns quotas into consecutive spans over a pool of size elements.
// Quotas beyond the pool end produce short or empty spans.
func Slices(quotas []int, size int) []Span {
	cur := NewCursor(size)
	spans := make([]Span, len(quotas))
	for i, q := range quotas {
		spans[i] = cur.Take(q)
	}
	return spans
}
