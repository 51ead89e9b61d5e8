package core

import "strings"

const (
	// FilterAll passes every client, including those with no installments.
	FilterAll StatusFilter = "all"

	FilterOnTime     StatusFilter = StatusFilter(StatusOnTime)
	FilterUpcoming   StatusFilter = StatusFilter(StatusUpcoming)
	FilterDelinquent StatusFilter = StatusFilter(StatusDelinquent)
)

// StatusFilter selects which payment status a filtered view shows.
type StatusFilter string

// ParseStatusFilter maps a query-string value to a filter, defaulting to
// FilterAll for blank input.
func ParseStatusFilter(s string) (StatusFilter, bool) {
	switch StatusFilter(strings.TrimSpace(strings.ToLower(s))) {
	case "", FilterAll:
		return FilterAll, true
	case FilterOnTime:
		return FilterOnTime, true
	case FilterUpcoming:
		return FilterUpcoming, true
	case FilterDelinquent:
		return FilterDelinquent, true
	}
	return FilterAll, false
}

// Filter applies a status predicate and a case-insensitive name search over a
// classified client list and returns the filtered view. The source slice is
// never mutated and relative order is preserved.
//
// Both predicates are a conjunction, so applying them in either order gives
// the same result. The engine is synchronous and stateless; debouncing rapid
// keystrokes (~600ms of inactivity) is the caller's responsibility.
func Filter(clients []ClassifiedClient, status StatusFilter, searchText string) []ClassifiedClient {
	search := strings.ToLower(strings.TrimSpace(searchText))
	out := make([]ClassifiedClient, 0, len(clients))
	for _, c := range clients {
		if !matchStatus(c, status) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.DisplayName), search) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matchStatus(c ClassifiedClient, status StatusFilter) bool {
	if status == FilterAll {
		return true
	}
	return c.Status == PaymentStatus(status)
}
