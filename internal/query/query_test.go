package query

import (
	"errors"
	"net/url"
	"strings"
	"testing"
)

type item struct {
	name  string
	kind  string
	count int
	tags  []string
}

func (i item) Field(name string) (any, bool) {
	switch name {
	case "name":
		return i.name, true
	case "kind":
		return i.kind, true
	case "count":
		return i.count, true
	case "tags":
		return i.tags, true
	}
	return nil, false
}

var items = []item{
	{name: "Widget", kind: "tool", count: 3, tags: []string{"a", "b"}},
	{name: "gadget", kind: "toy", count: 10},
	{name: "Gizmo", kind: "tool", count: 1},
	{name: "Doohickey", kind: "toy", count: 3},
}

var allowed = []string{"name", "count"}

func names(in []item) string {
	out := make([]string, len(in))
	for i, it := range in {
		out[i] = it.name
	}
	return strings.Join(out, ",")
}

func TestParseParams(t *testing.T) {
	v := url.Values{
		"sort_by":      {"name"},
		"order":        {"desc"},
		"search":       {"g"},
		"show_retired": {"true"},
		"format":       {"csv"},
		"kind":         {"toy", "tool"},
	}
	p := ParseParams(v, "format")

	if p.SortBy != "name" || !p.Desc || p.Search != "g" {
		t.Errorf("unexpected control values %+v", p)
	}
	if len(p.Filters) != 1 || p.Filters["kind"] != "tool" {
		t.Errorf("expected only the last kind filter, got %v", p.Filters)
	}
}

func TestApply_Filters(t *testing.T) {
	got, err := Apply(items, Params{Filters: map[string]string{"kind": "tool", "count": "3"}}, allowed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if names(got) != "Widget" {
		t.Errorf("unexpected result %s", names(got))
	}
}

func TestApply_FiltersCommute(t *testing.T) {
	first, _ := Apply(items, Params{Filters: map[string]string{"kind": "toy"}}, allowed)
	then, _ := Apply(first, Params{Filters: map[string]string{"count": "3"}}, allowed)
	both, _ := Apply(items, Params{Filters: map[string]string{"kind": "toy", "count": "3"}}, allowed)
	if names(then) != names(both) {
		t.Errorf("sequential %s != combined %s", names(then), names(both))
	}
}

func TestApply_FilterErrors(t *testing.T) {
	_, err := Apply(items, Params{Filters: map[string]string{"color": "red"}}, allowed)
	if !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
	var fe *FieldError
	if !errors.As(err, &fe) || fe.Field != "color" {
		t.Errorf("expected field error naming color, got %v", err)
	}

	_, err = Apply(items, Params{Filters: map[string]string{"count": "many"}}, allowed)
	if !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}
}

func TestApply_FilterErrorsDoNotDependOnRecords(t *testing.T) {
	tests := []struct {
		name    string
		records []item
		filters map[string]string
		want    error
	}{
		{"unknown field on empty slice", nil, map[string]string{"color": "red"}, ErrUnknownField},
		{"unknown field next to a non-matching filter", items, map[string]string{"name": "Nothing", "color": "red"}, ErrUnknownField},
		{"malformed value on empty slice", []item{}, map[string]string{"count": "many"}, ErrInvalidValue},
		{"malformed value next to a non-matching filter", items, map[string]string{"name": "Nothing", "count": "many"}, ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// map order varies between runs; every run must fail the same way
			for range 50 {
				_, err := Apply(tt.records, Params{Filters: tt.filters}, allowed)
				if !errors.Is(err, tt.want) {
					t.Fatalf("expected %v, got %v", tt.want, err)
				}
			}
		})
	}
}

func TestApply_ListFilterMatchesJoinedForm(t *testing.T) {
	got, err := Apply(items, Params{Filters: map[string]string{"tags": "a, b"}}, allowed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if names(got) != "Widget" {
		t.Errorf("unexpected result %s", names(got))
	}
}

func TestApply_SearchIsCaseInsensitiveOverAllowedFields(t *testing.T) {
	got, _ := Apply(items, Params{Search: "G"}, allowed)
	for _, it := range got {
		if !strings.Contains(strings.ToLower(it.name), "g") {
			t.Errorf("%s does not contain the search string", it.name)
		}
	}
	if names(got) != "Widget,gadget,Gizmo" {
		t.Errorf("unexpected result %s", names(got))
	}

	got, _ = Apply(items, Params{Search: "10"}, allowed)
	if names(got) != "gadget" {
		t.Errorf("expected search over numeric fields, got %s", names(got))
	}

	got, _ = Apply(items, Params{Search: "toy"}, allowed)
	if len(got) != 0 {
		t.Errorf("expected kind to be outside the search fields, got %s", names(got))
	}
}

func TestApply_Sort(t *testing.T) {
	tests := []struct {
		name string
		p    Params
		want string
	}{
		{"ascending by count is stable", Params{SortBy: "count"}, "Gizmo,Widget,Doohickey,gadget"},
		{"descending by count", Params{SortBy: "count", Desc: true}, "gadget,Widget,Doohickey,Gizmo"},
		{"by name ignores case", Params{SortBy: "name"}, "Doohickey,gadget,Gizmo,Widget"},
		{"field outside allow-list", Params{SortBy: "kind"}, "Widget,gadget,Gizmo,Doohickey"},
		{"unknown field", Params{SortBy: "unknownfield"}, "Widget,gadget,Gizmo,Doohickey"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(items, tt.p, allowed)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if names(got) != tt.want {
				t.Errorf("expected %s, got %s", tt.want, names(got))
			}
		})
	}
}
