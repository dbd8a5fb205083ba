package todo

import (
	"fmt"
	"strings"
	"time"
)

type column string

const (
	colWeather    column = "weather"
	colModifiedAt column = "modified_at"
)

type operator int

const (
	opNone operator = iota
	opEqual
	opGreaterOrEqual
	opLessOrEqual
)

func (o operator) sql() string {
	switch o {
	case opEqual:
		return "="
	case opGreaterOrEqual:
		return ">="
	case opLessOrEqual:
		return "<="
	default:
		return ""
	}
}

// Spec is a predicate over a single todo column. The zero Spec matches
// everything. Specs passed together are combined with AND.
type Spec struct {
	col   column
	op    operator
	value any
}

// EqualWeather keeps todos whose weather equals *weather. A nil weather is a no-op.
func EqualWeather(weather *string) Spec {
	if weather == nil {
		return Spec{}
	}
	return Spec{col: colWeather, op: opEqual, value: *weather}
}

// UpdatedAfter keeps todos modified at or after *start. A nil start is a no-op.
func UpdatedAfter(start *time.Time) Spec {
	if start == nil {
		return Spec{}
	}
	return Spec{col: colModifiedAt, op: opGreaterOrEqual, value: *start}
}

// UpdatedBefore keeps todos modified at or before *end. A nil end is a no-op.
func UpdatedBefore(end *time.Time) Spec {
	if end == nil {
		return Spec{}
	}
	return Spec{col: colModifiedAt, op: opLessOrEqual, value: *end}
}

func (s Spec) IsNoop() bool { return s.op == opNone }

func (s Spec) String() string {
	if s.IsNoop() {
		return "noop"
	}
	return fmt.Sprintf("%s %s %v", s.col, s.op.sql(), s.value)
}

// Matches evaluates the predicate in memory.
func (s Spec) Matches(t Todo) bool {
	switch s.col {
	case colWeather:
		w, _ := s.value.(string)
		return s.op != opEqual || t.Weather == w
	case colModifiedAt:
		ts, _ := s.value.(time.Time)
		switch s.op {
		case opGreaterOrEqual:
			return !t.ModifiedAt.Before(ts)
		case opLessOrEqual:
			return !t.ModifiedAt.After(ts)
		}
	}
	return true
}

// MatchAll reports whether t satisfies every spec.
func MatchAll(t Todo, specs ...Spec) bool {
	for _, s := range specs {
		if !s.Matches(t) {
			return false
		}
	}
	return true
}

// Where renders specs as a SQL WHERE clause against table alias, numbering
// placeholders from $1. It returns an empty clause when every spec is a no-op.
func Where(alias string, specs ...Spec) (string, []any) {
	var conds []string
	var args []any
	for _, s := range specs {
		if s.IsNoop() {
			continue
		}
		args = append(args, s.value)
		conds = append(conds, fmt.Sprintf("%s.%s %s $%d", alias, s.col, s.op.sql(), len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}
