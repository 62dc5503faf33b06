// Package validation provides the field-level checks the client runs before
// a request ever leaves the process. Failures collect into an Errors map so
// a form can show every problem at once instead of the first one found.
package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

var (
	usernameRx  = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	principalRx = regexp.MustCompile(`^[a-z0-9]{1,5}(-[a-z0-9]{1,5})*$`)
)

// Errors maps a field name to the first failed check for that field.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", f, e[f])
	}
	return b.String()
}

// Validator accumulates per-field errors. Only the first failure per field
// is kept, so checks should run from most to least specific.
type Validator struct {
	errs Errors
}

// Check records msg under field when ok is false.
func (v *Validator) Check(ok bool, field, msg string) {
	if ok {
		return
	}
	if v.errs == nil {
		v.errs = Errors{}
	}
	if _, exists := v.errs[field]; !exists {
		v.errs[field] = msg
	}
}

// Err returns the accumulated errors, or nil when every check passed.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return v.errs
}

// LenBetween reports whether s, trimmed, is between min and max runes long.
func LenBetween(s string, min, max int) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	return n >= min && n <= max
}

// NotBlank reports whether s contains any non-space characters.
func NotBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

// OneOf reports whether s is one of the allowed values.
func OneOf(s string, allowed ...string) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}

// Between reports whether n lies in [min, max].
func Between(n, min, max float64) bool {
	return n >= min && n <= max
}

// IsUsername reports whether s is 3 to 20 letters, digits or underscores.
func IsUsername(s string) bool {
	return usernameRx.MatchString(s)
}

// IsPrincipal reports whether s looks like a textual principal: lowercase
// base32 groups of up to five characters joined by dashes. Checksum
// verification happens elsewhere; this is the cheap shape check forms use.
func IsPrincipal(s string) bool {
	return principalRx.MatchString(s)
}
