package pricing

import (
	"sort"
	"strings"

	"culturehub/internal/domain"
)

type SortMode string

const (
	SortByEvent   SortMode = "event"
	SortByCreated SortMode = "created"
)

// ParseSortMode maps unknown or empty values to SortByCreated.
func ParseSortMode(s string) SortMode {
	if SortMode(strings.ToLower(strings.TrimSpace(s))) == SortByEvent {
		return SortByEvent
	}
	return SortByCreated
}

// FilterAndSort keeps bookings whose booker name, booker phone or title
// contains term (case-insensitive) and orders them by mode. The input slice is
// left untouched.
func FilterAndSort(bookings []domain.Booking, term string, mode SortMode) []domain.Booking {
	needle := strings.ToLower(strings.TrimSpace(term))

	out := make([]domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if needle == "" || matches(b, needle) {
			out = append(out, b)
		}
	}

	if mode == SortByEvent {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].StartTime.Before(out[j].StartTime)
		})
	} else {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}

func matches(b domain.Booking, needle string) bool {
	return strings.Contains(strings.ToLower(b.DisplayBookerName()), needle) ||
		strings.Contains(strings.ToLower(b.BookerPhone), needle) ||
		strings.Contains(strings.ToLower(b.Title), needle)
}
