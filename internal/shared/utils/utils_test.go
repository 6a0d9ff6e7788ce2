package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrRandom(t *testing.T) {
	s, err := StrRandom(40)
	require.NoError(t, err)
	assert.Len(t, s, 40)
	assert.Regexp(t, regexp.MustCompile(`^[a-zA-Z0-9]+$`), s)

	other, err := StrRandom(40)
	require.NoError(t, err)
	assert.NotEqual(t, s, other)

	empty, err := StrRandom(0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUploadFileName(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	name, err := UploadFileName(now, ".PNG")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^1700000000123-[a-zA-Z0-9]{30}\.png$`), name)
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       string
		limit      string
		want       Pagination
		wantOffset int
	}{
		{name: "defaults", want: Pagination{Page: 1, Limit: 20}, wantOffset: 0},
		{name: "explicit", page: "3", limit: "10", want: Pagination{Page: 3, Limit: 10}, wantOffset: 20},
		{name: "garbage falls back", page: "x", limit: "-4", want: Pagination{Page: 1, Limit: 20}, wantOffset: 0},
		{name: "limit clamped", page: "2", limit: "1000", want: Pagination{Page: 2, Limit: 100}, wantOffset: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPagination(tt.page, tt.limit)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOffset, got.Offset())
		})
	}
}
