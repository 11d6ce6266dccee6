package validation

import (
	"fmt"
	"strings"
	"time"
)

// Kind is the expected type of a document field.
type Kind int

const (
	String Kind = iota
	Int
	Float
	Bool
	Time
)

// Rule is one row of a constraint table: the field name, its kind and
// whatever closed enumeration, bounds or casing policy applies to it.
// Min/Max bound numeric kinds; MaxFn is evaluated at validation time for
// bounds that move (the vehicle year ceiling).
type Rule struct {
	Field     string
	Kind      Kind
	Required  bool
	Enum      []string
	Min       *float64
	Max       *float64
	MaxFn     func() float64
	Lowercase bool
}

// RuleSet is the full constraint table for one collection.
type RuleSet []Rule

// Error carries the offending field and a human-readable reason.
type Error struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("validation failed on %q: %s", e.Field, e.Reason)
}

// Bound returns a pointer suitable for Rule.Min / Rule.Max.
func Bound(f float64) *float64 { return &f }

// Validate checks doc against the rule set. With partial=false every
// required field must be present; with partial=true absent fields are
// skipped so the same table serves create and update.
func (rs RuleSet) Validate(doc map[string]interface{}, partial bool) error {
	for _, r := range rs {
		v, ok := doc[r.Field]
		if !ok || v == nil {
			if r.Required && !partial {
				return &Error{Field: r.Field, Reason: "required field is missing"}
			}
			continue
		}
		if err := r.check(v); err != nil {
			return err
		}
	}
	return nil
}

func (r Rule) check(v interface{}) error {
	switch r.Kind {
	case String:
		s, ok := v.(string)
		if !ok {
			return &Error{Field: r.Field, Reason: "expected string"}
		}
		if r.Required && strings.TrimSpace(s) == "" {
			return &Error{Field: r.Field, Reason: "must not be empty"}
		}
		if len(r.Enum) > 0 && s != "" && !contains(r.Enum, strings.ToLower(s)) {
			return &Error{
				Field:  r.Field,
				Reason: fmt.Sprintf("%q is not one of [%s]", s, strings.Join(r.Enum, ", ")),
			}
		}
	case Int, Float:
		f, ok := toFloat(v)
		if !ok {
			return &Error{Field: r.Field, Reason: "expected number"}
		}
		min, max := r.Min, r.Max
		if r.MaxFn != nil {
			m := r.MaxFn()
			max = &m
		}
		if min != nil && f < *min {
			return &Error{Field: r.Field, Reason: fmt.Sprintf("must be at least %v", *min)}
		}
		if max != nil && f > *max {
			return &Error{Field: r.Field, Reason: fmt.Sprintf("must be at most %v", *max)}
		}
	case Bool:
		if _, ok := v.(bool); !ok {
			return &Error{Field: r.Field, Reason: "expected boolean"}
		}
	case Time:
		switch v.(type) {
		case time.Time, *time.Time:
		default:
			return &Error{Field: r.Field, Reason: "expected timestamp"}
		}
	}
	return nil
}

// Normalize lowercases every string field whose rule asks for it, and
// every enum field, so stored values stay inside the closed enumeration
// the exact-match filters query against. It mutates doc in place; callers
// must not assume case is preserved.
func (rs RuleSet) Normalize(doc map[string]interface{}) {
	for _, r := range rs {
		if !r.Lowercase && len(r.Enum) == 0 {
			continue
		}
		if s, ok := doc[r.Field].(string); ok {
			doc[r.Field] = strings.ToLower(s)
		}
	}
}

func contains(set []string, s string) bool {
	for _, e := range set {
		if e == s {
			return true
		}
	}
	return false
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
