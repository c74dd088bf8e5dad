// Package sorting orders lists of records by a named field and tracks the
// toggle state of a sortable table header.
package sorting

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Config is the active sort: a field name and a direction.
type Config struct {
	Key       string    `json:"key"`
	Direction Direction `json:"direction"`
}

// Fielder exposes record fields by name. ok is false when the record has no value for key.
type Fielder interface {
	SortField(key string) (value any, ok bool)
}

// Sort returns records ordered by cfg. The input slice is never modified and the
// result never shares its backing array. A nil cfg keeps the input order.
// Equal values keep their input order. Missing values sort first in both directions.
func Sort[T Fielder](records []T, cfg *Config) []T {
	out := make([]T, len(records))
	copy(out, records)
	if cfg == nil || cfg.Key == "" {
		return out
	}

	slices.SortStableFunc(out, func(a, b T) int {
		av, aok := fieldValue(a, cfg.Key)
		bv, bok := fieldValue(b, cfg.Key)
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return -1
		case !bok:
			return 1
		}
		c := compareValues(av, bv)
		if cfg.Direction == Descending {
			return -c
		}
		return c
	})
	return out
}

// Next returns the config that follows cur when the header for key is requested.
func Next(cur *Config, key string) Config {
	if cur != nil && cur.Key == key && cur.Direction == Ascending {
		return Config{Key: key, Direction: Descending}
	}
	return Config{Key: key, Direction: Ascending}
}

// ParseConfig builds a config from query-string values. An empty key means unsorted.
func ParseConfig(key, dir string) *Config {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	d := Ascending
	if strings.EqualFold(dir, string(Descending)) {
		d = Descending
	}
	return &Config{Key: key, Direction: d}
}

// State holds at most one active config.
type State struct {
	config *Config
}

func NewState(initial *Config) *State {
	s := &State{}
	if initial != nil {
		c := *initial
		s.config = &c
	}
	return s
}

// RequestSort flips the direction when key is already sorted ascending, otherwise
// it sorts by key ascending.
func (s *State) RequestSort(key string) {
	next := Next(s.config, key)
	s.config = &next
}

// Config returns a copy of the active config, nil when unsorted.
func (s *State) Config() *Config {
	if s.config == nil {
		return nil
	}
	c := *s.config
	return &c
}

func Apply[T Fielder](s *State, records []T) []T {
	return Sort(records, s.Config())
}

func fieldValue[T Fielder](r T, key string) (any, bool) {
	v, ok := r.SortField(key)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func compareValues(a, b any) int {
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return cmp.Compare(af, bf)
		}
		return 0
	}
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			default:
				return 1
			}
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	}
	return 0
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
