package aggregate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/financeflow-app/financeflow/internal/aggregate"
)

func TestPage_RoundTripReproducesOrder(t *testing.T) {
	items := make([]int, 37)
	for i := range items {
		items[i] = i
	}

	var collected []int
	for page := 1; page <= aggregate.PageCount(len(items), 10); page++ {
		collected = append(collected, aggregate.Page(items, page, 10)...)
	}

	require.Len(t, collected, len(items), "no duplicates or omissions")
	assert.Equal(t, items, collected)
}

func TestPage_OutOfRange(t *testing.T) {
	items := []int{1, 2, 3}

	assert.Nil(t, aggregate.Page(items, 0, 10))
	assert.Nil(t, aggregate.Page(items, 2, 10))
	assert.Nil(t, aggregate.Page([]int{}, 1, 10))
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, aggregate.PageCount(0, 10))
	assert.Equal(t, 1, aggregate.PageCount(1, 10))
	assert.Equal(t, 1, aggregate.PageCount(10, 10))
	assert.Equal(t, 2, aggregate.PageCount(11, 10))
	assert.Equal(t, 4, aggregate.PageCount(37, 10))
}

func TestPaginator_BoundsAreNoOps(t *testing.T) {
	p := aggregate.NewPaginator(10)
	p.SetTotal(25)

	p.Prev()
	assert.Equal(t, 1, p.Page(), "prev on the first page is a no-op")

	p.Next()
	p.Next()
	assert.Equal(t, 3, p.Page())

	p.Next()
	assert.Equal(t, 3, p.Page(), "next on the last page is a no-op")

	assert.Equal(t, 3, p.PageCount())
}

func TestPaginator_ClampsWhenCollectionShrinks(t *testing.T) {
	p := aggregate.NewPaginator(10)
	p.SetTotal(50)

	for i := 0; i < 4; i++ {
		p.Next()
	}
	require.Equal(t, 5, p.Page())

	p.SetTotal(12)
	assert.Equal(t, 2, p.Page())
}

func TestPaginator_ResetOnFilterChange(t *testing.T) {
	p := aggregate.NewPaginator(10)
	p.SetTotal(30)
	p.Next()

	p.Reset()
	assert.Equal(t, 1, p.Page())
}

func TestSlice(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	p := aggregate.NewPaginator(2)
	p.SetTotal(len(items))
	p.Next()

	assert.Equal(t, []string{"c", "d"}, aggregate.Slice(p, items))
}
