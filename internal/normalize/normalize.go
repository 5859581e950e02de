// Package normalize coerces loosely-typed request bodies into canonical values.
//
// Every logical field may arrive under more than one key (camelCase from the
// current frontend, snake_case from older forms). A key whose value is null,
// missing, blank, or the literal string "null" or "undefined" is treated as if
// it had not been sent at all.
package normalize

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cast"
)

// Body is a decoded JSON object.
type Body map[string]any

// IsAbsent reports whether v counts as "not supplied".
func IsAbsent(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		s := strings.TrimSpace(t)
		return s == "" || s == "null" || s == "undefined"
	}
	return false
}

// Lookup returns the first non-absent value among keys, in order.
func (b Body) Lookup(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := b[k]; ok && !IsAbsent(v) {
			return v, true
		}
	}
	return nil, false
}

// Has reports whether any of keys is physically present, whatever its value.
func (b Body) Has(keys ...string) bool {
	for _, k := range keys {
		if _, ok := b[k]; ok {
			return true
		}
	}
	return false
}

// Received collects the raw values sent under keys, for error reports.
func (b Body) Received(keys ...string) map[string]any {
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if v, ok := b[k]; ok {
			out[k] = v
		} else {
			out[k] = nil
		}
	}
	return out
}

// Field describes one logical input field.
type Field struct {
	Label    string   // human name used in messages, e.g. "Zip code"
	Keys     []string // accepted keys, preferred first
	MaxLen   int      // 0 means unbounded
	Lower    bool     // lowercase after trimming
	Integer  bool     // truncate toward zero, like parseInt
	Positive bool     // reject values <= 0
}

// FieldError is a rejected input value.
type FieldError struct {
	Field    string         `json:"field"`
	Message  string         `json:"message"`
	Received map[string]any `json:"received"`
}

func (e *FieldError) Error() string { return e.Message }

func (f Field) name() string {
	if len(f.Keys) > 0 {
		return f.Keys[0]
	}
	return f.Label
}

func (f Field) reject(b Body, format string, args ...any) *FieldError {
	return &FieldError{
		Field:    f.name(),
		Message:  fmt.Sprintf(format, args...),
		Received: b.Received(f.Keys...),
	}
}

// Missing is the error for a required field nobody supplied.
func (f Field) Missing(b Body) *FieldError {
	return f.reject(b, "%s is required. Received %s", f.Label, describe(b, f.Keys))
}

// String normalizes a text field. ok is false when no key carries a value.
func String(b Body, f Field) (value string, ok bool, err error) {
	raw, found := b.Lookup(f.Keys...)
	if !found {
		return "", false, nil
	}
	switch raw.(type) {
	case map[string]any, []any, bool:
		return "", false, f.reject(b, "%s must be text. Received %s", f.Label, describe(b, f.Keys))
	}
	s, castErr := cast.ToStringE(raw)
	if castErr != nil {
		return "", false, f.reject(b, "%s must be text. Received %s", f.Label, describe(b, f.Keys))
	}
	s = strings.TrimSpace(s)
	if f.Lower {
		s = strings.ToLower(s)
	}
	if f.MaxLen > 0 {
		if n := utf8.RuneCountInString(s); n > f.MaxLen {
			return "", false, f.reject(b, "%s must be %d characters or fewer (got %d)", f.Label, f.MaxLen, n)
		}
	}
	return s, true, nil
}

// RequiredString is String with absence turned into an error.
func RequiredString(b Body, f Field) (string, error) {
	v, ok, err := String(b, f)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", f.Missing(b)
	}
	return v, nil
}

// Choice normalizes a text field and checks it against a closed set.
func Choice(b Body, f Field, allowed []string) (value string, ok bool, err error) {
	v, ok, err := String(b, f)
	if err != nil || !ok {
		return v, ok, err
	}
	for _, a := range allowed {
		if v == a {
			return v, true, nil
		}
	}
	return "", false, f.reject(b, "%s must be one of: %s. Received %q", f.Label, strings.Join(allowed, ", "), v)
}

// RequiredChoice is Choice with absence turned into an error.
func RequiredChoice(b Body, f Field, allowed []string) (string, error) {
	v, ok, err := Choice(b, f, allowed)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", f.reject(b, "%s is required and must be one of: %s. Received %s",
			f.Label, strings.Join(allowed, ", "), describe(b, f.Keys))
	}
	return v, nil
}

// MaxInteger bounds Integer fields so the truncated value always fits an int32
// column.
const MaxInteger = math.MaxInt32

// Number coerces a numeric field. Strings are parsed; NaN and infinities are
// rejected, as are non-positive values when f.Positive is set.
func Number(b Body, f Field) (value float64, ok bool, err error) {
	raw, found := b.Lookup(f.Keys...)
	if !found {
		return 0, false, nil
	}
	if _, isBool := raw.(bool); isBool {
		return 0, false, f.invalidNumber(b)
	}
	if s, isString := raw.(string); isString {
		raw = strings.TrimSpace(s)
	}
	n, castErr := cast.ToFloat64E(raw)
	if castErr != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false, f.invalidNumber(b)
	}
	if f.Integer {
		if math.Abs(n) > MaxInteger {
			return 0, false, f.invalidNumber(b)
		}
		n = math.Trunc(n)
	}
	if f.Positive && n <= 0 {
		return 0, false, f.invalidNumber(b)
	}
	return n, true, nil
}

func (f Field) invalidNumber(b Body) *FieldError {
	if f.Positive {
		return f.reject(b, "%s must be a valid number greater than 0. Received %s", f.Label, describe(b, f.Keys))
	}
	return f.reject(b, "%s must be a valid number. Received %s", f.Label, describe(b, f.Keys))
}

// RequiredNumber is Number with absence turned into an error.
func RequiredNumber(b Body, f Field) (float64, error) {
	v, ok, err := Number(b, f)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, f.invalidNumber(b)
	}
	return v, nil
}

// StringList reads an array of names (or a comma-separated string). Blank
// entries are dropped. ok reports whether any of the keys was sent at all,
// so an explicit null or [] yields an empty list with ok=true.
func StringList(b Body, f Field) (values []string, ok bool, err error) {
	if !b.Has(f.Keys...) {
		return nil, false, nil
	}
	raw, found := b.Lookup(f.Keys...)
	if !found {
		return []string{}, true, nil
	}

	var items []any
	switch t := raw.(type) {
	case []any:
		items = t
	case []string:
		for _, s := range t {
			items = append(items, s)
		}
	case string:
		for _, s := range strings.Split(t, ",") {
			items = append(items, s)
		}
	default:
		return nil, false, f.reject(b, "%s must be a list of names. Received %s", f.Label, describe(b, f.Keys))
	}

	values = make([]string, 0, len(items))
	for i, item := range items {
		if IsAbsent(item) {
			continue
		}
		s, castErr := cast.ToStringE(item)
		if castErr != nil {
			return nil, false, f.reject(b, "%s entry %d must be text", f.Label, i+1)
		}
		s = strings.TrimSpace(s)
		if f.MaxLen > 0 && utf8.RuneCountInString(s) > f.MaxLen {
			return nil, false, f.reject(b, "%s entry %d must be %d characters or fewer", f.Label, i+1, f.MaxLen)
		}
		values = append(values, s)
	}
	return values, true, nil
}

// describe renders what arrived under each key, e.g.
// `zipCode: undefined, zip_code: "null" (string)`.
func describe(b Body, keys []string) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v, ok := b[k]
		if !ok {
			parts = append(parts, k+": undefined")
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", k, describeValue(v)))
	}
	return strings.Join(parts, ", ")
}

func describeValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q (string)", t)
	case bool:
		return fmt.Sprintf("%t (boolean)", t)
	case float64, float32, int, int64, int32:
		return fmt.Sprintf("%v (number)", t)
	case []any:
		return fmt.Sprintf("array of %d", len(t))
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return fmt.Sprintf("object {%s}", strings.Join(keys, ", "))
	default:
		return fmt.Sprintf("%v (%T)", t, t)
	}
}
