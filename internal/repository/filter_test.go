package repository

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSortField(t *testing.T) {
	for _, ok := range []string{"", "read_count", "reading_time", "timestamp"} {
		f, err := ParseSortField(ok)
		assert.NoError(t, err)
		assert.Equal(t, SortField(ok), f)
	}
	for _, bad := range []string{"title", "READ_COUNT", "created_at", "read_count;drop"} {
		_, err := ParseSortField(bad)
		assert.Error(t, err, bad)
	}
}

func TestBlogFilter_Normalize(t *testing.T) {
	f := BlogFilter{}.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.PageSize)
	assert.Equal(t, 0, f.Offset())

	f = BlogFilter{Page: 3, PageSize: 10}.Normalize()
	assert.Equal(t, 20, f.Offset())

	f = BlogFilter{Page: -2, PageSize: 1000}.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, MaxPageSize, f.PageSize)

	f = BlogFilter{Page: math.MaxInt, PageSize: 1000}.Normalize()
	assert.Equal(t, MaxPage, f.Page)
	assert.Positive(t, f.Offset())
}
