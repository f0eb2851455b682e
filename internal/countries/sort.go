package countries

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// SortOrder selects one of the four list orderings.
type SortOrder int

const (
	NameAsc SortOrder = iota
	NameDesc
	AreaAsc
	AreaDesc
)

// SortOrders lists every order in display order.
var SortOrders = []SortOrder{NameAsc, NameDesc, AreaAsc, AreaDesc}

// String returns the flag form of the order.
func (o SortOrder) String() string {
	switch o {
	case NameAsc:
		return "name-asc"
	case NameDesc:
		return "name-desc"
	case AreaAsc:
		return "area-asc"
	case AreaDesc:
		return "area-desc"
	default:
		return fmt.Sprintf("SortOrder(%d)", int(o))
	}
}

// Label returns the short button title for the order.
func (o SortOrder) Label() string {
	switch o {
	case NameAsc:
		return "A-Z"
	case NameDesc:
		return "Z-A"
	case AreaAsc:
		return "Area ↑"
	case AreaDesc:
		return "Area ↓"
	default:
		return "?"
	}
}

// ParseSortOrder accepts the String form, case-insensitively.
func ParseSortOrder(s string) (SortOrder, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for _, o := range SortOrders {
		if o.String() == want {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown sort order %q", s)
}

// Sort reorders list in place. Ties keep their current relative order.
func Sort(list []Country, order SortOrder) {
	var less func(a, b Country) bool
	switch order {
	case NameAsc:
		less = func(a, b Country) bool { return a.Name < b.Name }
	case NameDesc:
		less = func(a, b Country) bool { return a.Name > b.Name }
	case AreaAsc:
		less = func(a, b Country) bool { return a.Area < b.Area }
	case AreaDesc:
		less = func(a, b Country) bool { return a.Area > b.Area }
	default:
		return
	}
	sort.SliceStable(list, func(i, j int) bool { return less(list[i], list[j]) })
}

// Bordering returns the countries of list whose alpha code appears in
// selected.Borders, in list order.
func Bordering(list []Country, selected Country) []Country {
	out := make([]Country, 0, len(selected.Borders))
	for _, c := range list {
		if slices.Contains(selected.Borders, c.AlphaCode) {
			out = append(out, c)
		}
	}
	return out
}

// Index returns the position of the country with the given alpha code, or -1.
// The comparison ignores case.
func Index(list []Country, code string) int {
	code = strings.TrimSpace(code)
	for i, c := range list {
		if strings.EqualFold(c.AlphaCode, code) {
			return i
		}
	}
	return -1
}
