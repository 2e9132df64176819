// Package query narrows and orders record collections from flat request parameters.
package query

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// Reserved control keys. Every other parameter is an equality filter.
const (
	KeySortBy      = "sort_by"
	KeyOrder       = "order"
	KeySearch      = "search"
	KeyShowRetired = "show_retired"
)

var (
	ErrUnknownField = errors.New("unknown field")
	ErrInvalidValue = errors.New("invalid filter value")
)

// FieldError names the field a filter failed on.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Field)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Record is anything whose fields can be looked up by their wire name.
// Field values must be int, string, bool, []string or a Value.
type Record interface {
	Field(name string) (any, bool)
}

// Value is implemented by field types that are not Go primitives.
type Value interface {
	String() string
	Matches(raw string) (bool, error)
	Less(other any) bool
}

// Params is the parsed form of a list request's query string.
type Params struct {
	Filters map[string]string
	Search  string
	SortBy  string
	Desc    bool
}

// ParseParams separates control keys from filters. Keys in extraReserved are dropped.
// For a repeated key the last value wins.
func ParseParams(values url.Values, extraReserved ...string) Params {
	p := Params{Filters: map[string]string{}}
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		v := vals[len(vals)-1]
		switch key {
		case KeySortBy:
			p.SortBy = v
		case KeyOrder:
			p.Desc = v == "desc"
		case KeySearch:
			p.Search = v
		case KeyShowRetired:
		default:
			if slices.Contains(extraReserved, key) {
				continue
			}
			p.Filters[key] = v
		}
	}
	return p
}

// Apply runs equality filters, then search, then sort. allowed lists the fields
// eligible for search and sort. Filters are validated before any record is matched.
func Apply[T Record](records []T, p Params, allowed []string) ([]T, error) {
	var zero T
	if err := checkFilters(zero, p.Filters); err != nil {
		return nil, err
	}

	out := make([]T, 0, len(records))
	for _, r := range records {
		if matchesFilters(r, p.Filters) {
			out = append(out, r)
		}
	}

	if p.Search != "" {
		needle := strings.ToLower(p.Search)
		searched := out[:0]
		for _, r := range out {
			if containsAny(r, allowed, needle) {
				searched = append(searched, r)
			}
		}
		out = searched
	}

	if p.SortBy != "" && slices.Contains(allowed, p.SortBy) {
		sort.SliceStable(out, func(i, j int) bool {
			a, _ := out[i].Field(p.SortBy)
			b, _ := out[j].Field(p.SortBy)
			if p.Desc {
				return less(b, a)
			}
			return less(a, b)
		})
	}
	return out, nil
}

// checkFilters resolves every filter field on a zero record and parses its
// value. Fields are visited in name order.
func checkFilters(zero Record, filters map[string]string) error {
	fields := make([]string, 0, len(filters))
	for f := range filters {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	for _, field := range fields {
		v, ok := zero.Field(field)
		if !ok {
			return &FieldError{Field: field, Err: ErrUnknownField}
		}
		if _, err := equals(v, filters[field]); err != nil {
			return &FieldError{Field: field, Err: fmt.Errorf("%w: %v", ErrInvalidValue, err)}
		}
	}
	return nil
}

// matchesFilters assumes the filters passed checkFilters.
func matchesFilters(r Record, filters map[string]string) bool {
	for field, raw := range filters {
		v, _ := r.Field(field)
		if eq, err := equals(v, raw); err != nil || !eq {
			return false
		}
	}
	return true
}

func containsAny(r Record, fields []string, needle string) bool {
	for _, f := range fields {
		v, ok := r.Field(f)
		if ok && strings.Contains(strings.ToLower(text(v)), needle) {
			return true
		}
	}
	return false
}

func equals(v any, raw string) (bool, error) {
	switch x := v.(type) {
	case int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return false, err
		}
		return x == n, nil
	case string:
		return x == raw, nil
	case bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return false, err
		}
		return x == b, nil
	case []string:
		return strings.Join(x, ", ") == raw, nil
	case Value:
		return x.Matches(raw)
	}
	return false, fmt.Errorf("unsupported field type %T", v)
}

func text(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []string:
		return strings.Join(x, ", ")
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

func less(a, b any) bool {
	switch x := a.(type) {
	case int:
		y, _ := b.(int)
		return x < y
	case string:
		y, _ := b.(string)
		lx, ly := strings.ToLower(x), strings.ToLower(y)
		if lx != ly {
			return lx < ly
		}
		return x < y
	case bool:
		y, _ := b.(bool)
		return !x && y
	case Value:
		return x.Less(b)
	}
	return false
}
