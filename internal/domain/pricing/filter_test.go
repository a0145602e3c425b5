package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"culturehub/internal/domain"
)

func listFixture() []domain.Booking {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	return []domain.Booking{
		{ID: 1, Title: "Họp tổ dân phố", UserName: "Trần Thị B", StartTime: base.Add(72 * time.Hour), CreatedAt: base.Add(1 * time.Hour)},
		{ID: 2, Title: "Cầu lông", BookerName: "Nguyễn Văn A", BookerPhone: "0901234567", StartTime: base.Add(24 * time.Hour), CreatedAt: base.Add(3 * time.Hour)},
		{ID: 3, Title: "Văn nghệ thiếu nhi", UserName: "Lê C", StartTime: base.Add(48 * time.Hour), CreatedAt: base.Add(2 * time.Hour)},
		{ID: 4, Title: "Tập nhảy", UserName: "Phạm D", StartTime: base.Add(24 * time.Hour), CreatedAt: base.Add(3 * time.Hour)},
	}
}

func ids(bs []domain.Booking) []int64 {
	out := make([]int64, len(bs))
	for i, b := range bs {
		out[i] = b.ID
	}
	return out
}

func TestFilterAndSort_Created(t *testing.T) {
	got := FilterAndSort(listFixture(), "", SortByCreated)
	// 2 and 4 tie on createdAt and keep input order
	assert.Equal(t, []int64{2, 4, 3, 1}, ids(got))
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].CreatedAt.After(got[i-1].CreatedAt))
	}
}

func TestFilterAndSort_Event(t *testing.T) {
	got := FilterAndSort(listFixture(), "", SortByEvent)
	assert.Equal(t, []int64{2, 4, 3, 1}, ids(got))
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].StartTime.Before(got[i-1].StartTime))
	}
}

func TestFilterAndSort_Search(t *testing.T) {
	in := listFixture()

	cases := []struct {
		term string
		want []int64
	}{
		{"văn a", []int64{2}},
		{"VĂN", []int64{2, 3}},
		{"0901", []int64{2}},
		{"trần", []int64{1}},
		{"  ", []int64{2, 4, 3, 1}},
		{"không có", []int64{}},
	}
	for _, tc := range cases {
		t.Run(tc.term, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(FilterAndSort(in, tc.term, SortByCreated)))
		})
	}
}

func TestFilterAndSort_DoesNotMutateInput(t *testing.T) {
	in := listFixture()
	_ = FilterAndSort(in, "", SortByEvent)
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(in))
}

func TestParseSortMode(t *testing.T) {
	assert.Equal(t, SortByEvent, ParseSortMode("event"))
	assert.Equal(t, SortByEvent, ParseSortMode(" EVENT "))
	assert.Equal(t, SortByCreated, ParseSortMode("created"))
	assert.Equal(t, SortByCreated, ParseSortMode(""))
	assert.Equal(t, SortByCreated, ParseSortMode("price"))
}
