package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	t.Parallel()

	items := []int{1, 2, 3, 4, 5}
	tests := []struct {
		name          string
		offset, limit int
		want          []int
	}{
		{name: "first page", offset: 0, limit: 2, want: []int{1, 2}},
		{name: "middle", offset: 1, limit: 1, want: []int{2}},
		{name: "tail shorter than limit", offset: 3, limit: 10, want: []int{4, 5}},
		{name: "offset past end", offset: 5, limit: 10, want: []int{}},
		{name: "no limit", offset: 2, limit: 0, want: []int{3, 4, 5}},
		{name: "negative offset", offset: -3, limit: 1, want: []int{1}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Paginate(items, tt.offset, tt.limit))
		})
	}
}

func TestParseIntDefault(t *testing.T) {
	t.Parallel()

	v, err := ParseIntDefault("", DefaultLimit)
	require.NoError(t, err)
	assert.Equal(t, DefaultLimit, v)

	v, err = ParseIntDefault("42", DefaultLimit)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_, err = ParseIntDefault("ten", DefaultLimit)
	assert.Error(t, err)
}
