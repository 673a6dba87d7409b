package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hupe1980/catsim/filter"
	"github.com/hupe1980/catsim/model"
)

var errNotAnID = fmt.Errorf("%w: want non-negative integer ids", model.ErrNotAnIDList)

// ParseMembers interprets v as a list of item ids. It accepts a single
// integer, integer slices, integral []float64, []any of those, []string of
// decimal ids and list literal strings. The result is sorted and
// de-duplicated. A nil or empty cell returns a nil set.
func ParseMembers(v any) (*model.ItemSet, error) {
	set, err := parseMembers(v)
	if err != nil {
		return nil, model.NewMalformedInputError(-1, "", v, err)
	}
	return set, nil
}

func parseMembers(v any) (*model.ItemSet, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case *model.ItemSet:
		return x.Clone(), nil
	case string:
		s := strings.TrimSpace(x)
		if isNull(s) {
			return nil, nil
		}
		if _, ok := closers[s[0]]; !ok {
			id, err := parseID(s)
			if err != nil {
				return nil, err
			}
			return model.NewItemSet(id), nil
		}
		toks, err := parseList(s)
		if err != nil {
			return nil, err
		}
		return collect(toks, parseID)
	case []string:
		return collect(x, parseID)
	case []any:
		return collect(x, toID)
	case []int:
		return collect(x, typedID[int])
	case []int64:
		return collect(x, typedID[int64])
	case []uint32:
		return collect(x, typedID[uint32])
	case []float64:
		return collect(x, typedID[float64])
	case []model.ItemIndex:
		return model.NewItemSet(x...), nil
	default:
		id, err := toID(v)
		if err != nil {
			return nil, err
		}
		return model.NewItemSet(id), nil
	}
}

func collect[T any](xs []T, conv func(T) (model.ItemIndex, error)) (*model.ItemSet, error) {
	set := model.NewItemSet()
	for _, x := range xs {
		id, err := conv(x)
		if err != nil {
			return nil, err
		}
		set.Add(id)
	}
	return set, nil
}

// typedID adapts toID to the element type of a typed slice.
func typedID[T int | int64 | uint32 | float64](v T) (model.ItemIndex, error) {
	return toID(v)
}

func parseID(s string) (model.ItemIndex, error) {
	s = strings.Trim(strings.TrimSpace(s), `'"`)
	if u, err := strconv.ParseUint(s, 10, 32); err == nil {
		return model.ItemIndex(u), nil
	}
	// Integer columns with gaps are often exported as floats ("3.0").
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errNotAnID, s)
	}
	return floatID(f)
}

func floatID(f float64) (model.ItemIndex, error) {
	if f < 0 || f > model.MaxItems || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %v", errNotAnID, f)
	}
	return model.ItemIndex(f), nil
}

func toID(v any) (model.ItemIndex, error) {
	switch x := v.(type) {
	case model.ItemIndex:
		return x, nil
	case int:
		return intID(int64(x))
	case int32:
		return intID(int64(x))
	case int64:
		return intID(x)
	case uint32:
		return model.ItemIndex(x), nil
	case uint64:
		if x > model.MaxItems {
			return 0, fmt.Errorf("%w: %d", errNotAnID, x)
		}
		return model.ItemIndex(x), nil
	case float64:
		return floatID(x)
	case string:
		return parseID(x)
	default:
		return 0, fmt.Errorf("%w: %T", errNotAnID, v)
	}
}

func intID(x int64) (model.ItemIndex, error) {
	if x < 0 || x > model.MaxItems {
		return 0, fmt.Errorf("%w: %d", errNotAnID, x)
	}
	return model.ItemIndex(x), nil
}

// ParseLabels interprets v as a list of category labels. Strings that look
// like list literals are split; any other string is a single label. Non-string
// elements are coerced with filter.Label. A nil or empty cell yields nil.
func ParseLabels(v any) ([]string, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		s := strings.TrimSpace(x)
		if isNull(s) {
			return nil, nil
		}
		if _, ok := closers[s[0]]; ok {
			return parseList(s)
		}
		return []string{s}, nil
	case []string:
		return append([]string(nil), x...), nil
	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			out = append(out, filter.Label(e))
		}
		return out, nil
	default:
		return []string{filter.Label(v)}, nil
	}
}
