package model

import (
	"fmt"
	"strings"
	"time"
)

// Filter restricts a note listing by due date
type Filter string

const (
	FilterAll      Filter = "all"
	FilterOverdue  Filter = "overdue"
	FilterUpcoming Filter = "upcoming"
)

// Filters in display order
var Filters = []Filter{FilterAll, FilterOverdue, FilterUpcoming}

// ParseFilter converts a string to a Filter. Empty means all.
func ParseFilter(s string) (Filter, error) {
	switch Filter(strings.ToLower(strings.TrimSpace(s))) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterOverdue:
		return FilterOverdue, nil
	case FilterUpcoming:
		return FilterUpcoming, nil
	default:
		return "", fmt.Errorf("unknown filter %q (want all, overdue or upcoming)", s)
	}
}

// Next cycles through Filters
func (f Filter) Next() Filter {
	for i, x := range Filters {
		if x == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// Accept reports whether n passes the filter at time now
func (f Filter) Accept(n *Note, now time.Time) bool {
	switch f {
	case FilterOverdue:
		return n.IsOverdue(now)
	case FilterUpcoming:
		return n.IsUpcoming(now)
	default:
		return true
	}
}
