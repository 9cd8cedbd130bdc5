package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginationParamsValidate(t *testing.T) {
	tests := []struct {
		name        string
		in          PaginationParams
		wantPage    int
		wantPerPage int
	}{
		{"zero values fall back to defaults", PaginationParams{}, 1, 15},
		{"negative page", PaginationParams{Page: -3, PerPage: 10}, 1, 10},
		{"per_page capped at 100", PaginationParams{Page: 2, PerPage: 500}, 2, 100},
		{"valid values untouched", PaginationParams{Page: 4, PerPage: 25}, 4, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Validate()
			assert.Equal(t, tt.wantPage, tt.in.Page)
			assert.Equal(t, tt.wantPerPage, tt.in.PerPage)
		})
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 15, 31)

	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	last := NewPagination(3, 15, 31)
	assert.False(t, last.HasNext)
}

func TestCursorRoundTrip(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	encoded := EncodeCursor("abc-123", ts)

	params := CursorParams{Cursor: encoded}
	decoded, err := params.DecodeCursor()
	require.NoError(t, err)
	require.NotNil(t, decoded)
	assert.Equal(t, "abc-123", decoded.ID)
	assert.True(t, decoded.CreatedAt.Equal(ts))
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	params := CursorParams{Cursor: "not base64!!!"}
	_, err := params.DecodeCursor()
	assert.Error(t, err)
}

func TestNewCursorPaginationTrimsOverfetch(t *testing.T) {
	type row struct {
		ID        string
		CreatedAt time.Time
	}
	rows := []row{
		{"a", time.Now()},
		{"b", time.Now()},
		{"c", time.Now()}, // the +1 overfetch row
	}

	pag, items := NewCursorPagination(rows, 2,
		func(r row) string { return r.ID },
		func(r row) time.Time { return r.CreatedAt },
	)

	assert.Len(t, items, 2)
	assert.True(t, pag.HasNext)
	require.NotNil(t, pag.NextCursor)
}
