package utils

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
)

func TestNewPageRequest(t *testing.T) {
	req, err := NewPageRequest(3, 20)
	require.NoError(t, err)
	assert.Equal(t, 40, req.Offset())
	assert.Equal(t, 20, req.Limit())

	_, err = NewPageRequest(0, 20)
	assert.True(t, apierrors.IsKind(err, apierrors.KindInvalidArgument))

	_, err = NewPageRequest(1, 0)
	assert.True(t, apierrors.IsKind(err, apierrors.KindInvalidArgument))
}

func TestNewPageRequest_OffsetOverflow(t *testing.T) {
	_, err := NewPageRequest(math.MaxInt/2+2, 2)
	assert.True(t, apierrors.IsKind(err, apierrors.KindInvalidArgument))

	req, err := NewPageRequest(math.MaxInt/2+1, 2)
	require.NoError(t, err)
	assert.Positive(t, req.Offset())
}

func TestNewPage_FortyFiveElements(t *testing.T) {
	tests := []struct {
		page      int
		items     int
		wantFirst bool
		wantLast  bool
	}{
		{page: 1, items: 20, wantFirst: true, wantLast: false},
		{page: 2, items: 20, wantFirst: false, wantLast: false},
		{page: 3, items: 5, wantFirst: false, wantLast: true},
		{page: 4, items: 0, wantFirst: false, wantLast: true},
	}

	for _, tt := range tests {
		req, err := NewPageRequest(tt.page, 20)
		require.NoError(t, err)

		p := NewPage(make([]int, tt.items), req, 45)

		assert.Len(t, p.Items, tt.items)
		assert.Equal(t, 3, p.TotalPages)
		assert.Equal(t, int64(45), p.TotalElements)
		assert.Equal(t, tt.wantFirst, p.IsFirst, "page %d first", tt.page)
		assert.Equal(t, tt.wantLast, p.IsLast, "page %d last", tt.page)
	}
}

func TestNewPage_Empty(t *testing.T) {
	req, err := NewPageRequest(1, 10)
	require.NoError(t, err)

	p := NewPage[string](nil, req, 0)

	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
	assert.Equal(t, 0, p.TotalPages)
	assert.True(t, p.IsFirst)
	assert.True(t, p.IsLast)
}

func TestMapPage(t *testing.T) {
	req, _ := NewPageRequest(2, 2)
	p := MapPage(NewPage([]int{3, 4}, req, 5), func(v int) int { return v * 10 })

	assert.Equal(t, []int{30, 40}, p.Items)
	assert.Equal(t, 3, p.TotalPages)
	assert.False(t, p.IsFirst)
	assert.False(t, p.IsLast)
}

func TestGetPageRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query    string
		wantPage int
		wantSize int
		wantErr  bool
	}{
		{"", 1, 20, false},
		{"page=2&size=5", 2, 5, false},
		{"page=0", 0, 0, true},
		{"size=abc", 0, 0, true},
		{"size=1000", 0, 0, true},
		{"page=4611686018427387905&size=2", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/api/tasks?"+tt.query, nil)

			req, err := GetPageRequest(c)
			if tt.wantErr {
				assert.True(t, apierrors.IsKind(err, apierrors.KindInvalidArgument))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, req.Page)
			assert.Equal(t, tt.wantSize, req.Size)
		})
	}
}
