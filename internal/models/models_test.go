package models

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2024, time.February, 29), d)
	assert.Equal(t, "2024-02-29", d.String())

	_, err = ParseDate("2023-02-29")
	assert.Error(t, err)

	empty, err := ParseDate("")
	require.NoError(t, err)
	assert.True(t, empty.IsZero())

	v, err := empty.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestDate_JSON(t *testing.T) {
	t.Parallel()

	var task Task
	require.NoError(t, json.Unmarshal([]byte(`{"title":"x","deadline":"2024-03-01"}`), &task))
	assert.Equal(t, "2024-03-01", task.Deadline.String())

	require.NoError(t, json.Unmarshal([]byte(`{"title":"x","deadline":null}`), &task))
	assert.True(t, task.Deadline.IsZero())

	data, err := json.Marshal(Task{Title: "x"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"deadline":null`)
}

func TestDate_Scan(t *testing.T) {
	t.Parallel()

	var d Date
	require.NoError(t, d.Scan("2024-03-01"))
	assert.Equal(t, "2024-03-01", d.String())

	require.NoError(t, d.Scan([]byte("2025-12-31")))
	assert.Equal(t, "2025-12-31", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())
}

func TestPageRequest_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, PageRequest{Size: 10}.Validate(MaxPageSize))
	assert.ErrorIs(t, PageRequest{Size: 0}.Validate(MaxPageSize), ErrInvalidPageSize)
	assert.ErrorIs(t, PageRequest{Size: -1}.Validate(MaxPageSize), ErrInvalidPageSize)
	assert.ErrorIs(t, PageRequest{Size: 5, Index: -1}.Validate(MaxPageSize), ErrInvalidPageIndex)
	assert.ErrorIs(t, PageRequest{Size: 101}.Validate(MaxPageSize), ErrPageSizeTooLarge)
	assert.NoError(t, PageRequest{Size: 1000}.Validate(0))
	assert.ErrorIs(t, PageRequest{Size: 2, Index: math.MaxInt/2 + 1}.Validate(MaxPageSize), ErrInvalidPageIndex)
	assert.ErrorIs(t, PageRequest{Size: 100, Index: math.MaxInt}.Validate(0), ErrInvalidPageIndex)
	assert.NoError(t, PageRequest{Size: 2, Index: math.MaxInt / 2}.Validate(MaxPageSize))

	assert.Equal(t, 20, PageRequest{Size: 10, Index: 2}.Offset())
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct{ total, size, want int }{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 5, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.size), "total=%d size=%d", tt.total, tt.size)
	}
}

func TestNewPage_NeverNilItems(t *testing.T) {
	t.Parallel()

	page := NewPage[*Project](nil, PageRequest{Size: 10, Index: 3}, 0)
	assert.NotNil(t, page.Items)

	data, err := json.Marshal(page)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"page":3,"size":10,"totalItems":0,"totalPages":0}`, string(data))
}

func TestRatio_JSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Ratio(math.NaN()))
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
	assert.True(t, Ratio(math.NaN()).IsUndefined())

	data, err = json.Marshal(Ratio(0.25))
	require.NoError(t, err)
	assert.Equal(t, "0.25", string(data))
}

func TestUserPasswordHashNeverSerialized(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(User{ID: 1, Username: "alice", PasswordHash: "secret-hash", Role: RoleUser})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret-hash")
}
