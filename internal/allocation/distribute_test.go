package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistribute(t *testing.T) {
	tests := []struct {
		name string
		n, d int
		want []int
	}{
		{"thirteen over twelve months", 13, 12, []int{2, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}},
		{"even split", 10, 5, []int{2, 2, 2, 2, 2}},
		{"fewer people than slots", 3, 5, []int{1, 1, 1, 0, 0}},
		{"nobody", 0, 4, []int{0, 0, 0, 0}},
		{"single slot", 7, 1, []int{7}},
		{"five over five days", 5, 5, []int{1, 1, 1, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Distribute(tt.n, tt.d))
		})
	}
}

func TestDistribute_NoSlots(t *testing.T) {
	assert.Nil(t, Distribute(5, 0))
	assert.Nil(t, Distribute(5, -1))
	assert.Nil(t, Distribute(-1, 3))
}

func TestDistribute_Properties(t *testing.T) {
	for n := 0; n <= 60; n++ {
		for d := 1; d <= 31; d++ {
			quotas := Distribute(n, d)
			assert.Len(t, quotas, d)

			base, extra := n/d, n%d
			sum := 0
			for i, q := range quotas {
				sum += q
				if i < extra {
					assert.Equal(t, base+1, q, "n=%d d=%d slot %d", n, d, i)
				} else {
					assert.Equal(t, base, q, "n=%d d=%d slot %d", n, d, i)
				}
			}
			assert.Equal(t, n, sum, "n=%d d=%d", n, d)
		}
	}
}

func TestCursor(t *testing.T) {
	c := NewCursor(5)

	assert.Equal(t, Span{0, 2}, c.Take(2))
	assert.Equal(t, 3, c.Remaining())
	assert.Equal(t, Span{2, 5}, c.Take(10), "take is capped at the pool end")
	assert.Equal(t, Span{5, 5}, c.Take(1))
	assert.Equal(t, 0, c.Remaining())
}

func TestCursor_Rest(t *testing.T) {
	c := NewCursor(4)
	c.Take(1)

	rest := c.Rest()
	assert.Equal(t, Span{1, 4}, rest)
	assert.Equal(t, 3, rest.Len())
	assert.Equal(t, 0, c.Remaining())
}

func TestSlices(t *testing.T) {
	spans := Slices([]int{2, 0, 3}, 4)
	assert.Equal(t, []Span{{0, 2}, {2, 2}, {2, 4}}, spans)
}
