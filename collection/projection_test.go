package collection

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var roster = []rec{
	{ID: 1, Name: "Alice", RollNumber: "10", Class: "B"},
	{ID: 2, Name: "bob", RollNumber: "2", Class: "A"},
	{ID: 3, Name: "Carol", RollNumber: "x", Class: "A"},
	{ID: 4, Name: "Dave", RollNumber: "2", Class: "B"},
}

func TestProject_NumericSort(t *testing.T) {
	q := Query{SortKey: "rollNumber", NumericKeys: []string{"rollNumber"}}
	got := ids(Project(roster, q, recField))
	// "x" parses as 0; the two "2"s keep collection order
	if diff := cmp.Diff([]int{3, 2, 4, 1}, got); diff != "" {
		t.Fatalf("ascending (-want +got):\n%s", diff)
	}

	q.Desc = true
	got = ids(Project(roster, q, recField))
	if diff := cmp.Diff([]int{1, 2, 4, 3}, got); diff != "" {
		t.Fatalf("descending (-want +got):\n%s", diff)
	}
}

func TestProject_LexicographicSortWithoutNumericKey(t *testing.T) {
	got := ids(Project(roster, Query{SortKey: "rollNumber"}, recField))
	// "10" < "2" < "2" < "x"
	if diff := cmp.Diff([]int{1, 2, 4, 3}, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestProject_SearchAndFilter(t *testing.T) {
	q := Query{Search: "A", SearchFields: []string{"name"}, FilterField: "class", FilterValue: "A"}
	got := ids(Project(roster, q, recField))
	// "Carol" matches "a"; "bob" has no "a"; Alice and Dave are class B
	if diff := cmp.Diff([]int{3}, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	q = Query{Search: "BOB", SearchFields: []string{"name", "rollNumber"}}
	if got := ids(Project(roster, q, recField)); len(got) != 1 || got[0] != 2 {
		t.Fatalf("case-insensitive search failed: %v", got)
	}
}

func TestProject_IsSubsetAndDoesNotMutate(t *testing.T) {
	src := append([]rec(nil), roster...)
	queries := []Query{
		{},
		{Search: "o", SearchFields: []string{"name"}},
		{FilterField: "class", FilterValue: "B", SortKey: "name", Desc: true},
		{Search: "zzz", SearchFields: []string{"name"}},
	}
	for _, q := range queries {
		out := Project(src, q, recField)
		in := map[int]bool{}
		for _, r := range src {
			in[r.ID] = true
		}
		for _, r := range out {
			if !in[r.ID] {
				t.Fatalf("query %+v produced foreign id %d", q, r.ID)
			}
		}
		if diff := cmp.Diff(roster, src); diff != "" {
			t.Fatalf("source mutated:\n%s", diff)
		}
	}
}

func TestDistinctAndToggleSort(t *testing.T) {
	if diff := cmp.Diff([]string{"A", "B"}, Distinct(roster, "class", recField)); diff != "" {
		t.Fatalf("distinct:\n%s", diff)
	}

	q := ToggleSort(Query{SortKey: "name"}, "name")
	if !q.Desc {
		t.Fatalf("same key should flip direction")
	}
	q = ToggleSort(q, "class")
	if q.SortKey != "class" || q.Desc {
		t.Fatalf("new key should sort ascending: %+v", q)
	}
}

func TestLeadingInt(t *testing.T) {
	cases := map[string]int{
		"2":    2,
		"10":   10,
		" 7 ":  7,
		"12ab": 12,
		"-3":   -3,
		"abc":  0,
		"":     0,

		"99999999999999999999":  math.MaxInt,
		"-99999999999999999999": math.MinInt,
		"9223372036854775807x":  math.MaxInt,
	}
	for in, want := range cases {
		if got := leadingInt(in); got != want {
			t.Errorf("leadingInt(%q) = %d, want %d", in, got, want)
		}
	}
}
