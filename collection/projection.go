package collection

import (
	"math"
	"slices"
	"strings"
)

// FieldFunc returns the string value of a named field of an entity.
type FieldFunc[T any] func(item T, field string) string

// Query describes a view over a collection.
type Query struct {
	// Search is matched case-insensitively as a substring of any SearchFields.
	Search       string
	SearchFields []string

	// FilterValue, when non-empty, keeps only items whose FilterField equals it.
	FilterField string
	FilterValue string

	SortKey string
	Desc    bool
	// NumericKeys lists sort keys compared as integers rather than strings.
	NumericKeys []string
}

// ToggleSort returns q sorted by key. Selecting the current key flips the
// direction; a new key starts ascending.
func ToggleSort(q Query, key string) Query {
	if q.SortKey == key {
		q.Desc = !q.Desc
		return q
	}
	q.SortKey = key
	q.Desc = false
	return q
}

// Project filters and sorts items according to q. The result is a new slice;
// items is never modified. Equal sort keys keep their collection order.
func Project[T any](items []T, q Query, field FieldFunc[T]) []T {
	needle := strings.ToLower(q.Search)
	out := make([]T, 0, len(items))
	for _, it := range items {
		if !matchesSearch(it, needle, q.SearchFields, field) {
			continue
		}
		if q.FilterValue != "" && field(it, q.FilterField) != q.FilterValue {
			continue
		}
		out = append(out, it)
	}

	if q.SortKey == "" {
		return out
	}
	numeric := slices.Contains(q.NumericKeys, q.SortKey)
	slices.SortStableFunc(out, func(a, b T) int {
		av, bv := field(a, q.SortKey), field(b, q.SortKey)
		var c int
		if numeric {
			c = compareInts(leadingInt(av), leadingInt(bv))
		} else {
			c = strings.Compare(av, bv)
		}
		if q.Desc {
			return -c
		}
		return c
	})
	return out
}

// Distinct returns the sorted, non-empty distinct values of field.
func Distinct[T any](items []T, field string, get FieldFunc[T]) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, it := range items {
		v := get(it, field)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

func matchesSearch[T any](it T, needle string, fields []string, field FieldFunc[T]) bool {
	if needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(field(it, f)), needle) {
			return true
		}
	}
	return false
}

// leadingInt parses an optional sign followed by the leading decimal digits
// of s, ignoring surrounding whitespace. Anything unparsable yields 0.
// Values out of range saturate at math.MaxInt or math.MinInt.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n := 0
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		d := int(s[i] - '0')
		if n > (math.MaxInt-d)/10 {
			if neg {
				return math.MinInt
			}
			return math.MaxInt
		}
		n = n*10 + d
	}
	if neg {
		return -n
	}
	return n
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
