// Package validation implements request input validation as a typed rule
// table: each input shape declares a map of field name to Rule, and Check
// evaluates the raw field values against it, collecting per-field messages.
package validation

import (
	"fmt"
	"regexp"

	"github.com/govalues/decimal"
)

type Kind string

const (
	KindString  Kind = "string"
	KindEmail   Kind = "email"
	KindDigits  Kind = "digits"  // fixed-length digit string, e.g. an ISBN
	KindDecimal Kind = "decimal" // non-negative decimal with a fixed scale
)

// Rule constrains a single input field.
type Rule struct {
	Required bool
	Kind     Kind
	Digits   int // exact digit count for KindDigits
	Scale    int // required fractional digits for KindDecimal
}

// Rules maps field names to their constraints for one input shape.
type Rules map[string]Rule

// Errors maps field names to validation messages.
type Errors map[string][]string

func (e Errors) Any() bool {
	return len(e) > 0
}

// Error carries field-level validation failures across service boundaries.
type Error struct {
	Fields Errors
}

func (e *Error) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Check evaluates raw field values against the rule table. Values absent from
// the map are treated as empty. All rules run before any mutation happens in
// the caller, so a failed check never leaves partial writes behind.
func Check(values map[string]string, rules Rules) Errors {
	errs := Errors{}

	for field, rule := range rules {
		value := values[field]

		if value == "" {
			if rule.Required {
				errs[field] = append(errs[field], fmt.Sprintf("The %s field is required.", field))
			}
			continue
		}

		switch rule.Kind {
		case KindString:
			// Any non-empty string passes.
		case KindEmail:
			// RFC 5321 caps addresses at 254 octets
			if len(value) > 254 || !emailPattern.MatchString(value) {
				errs[field] = append(errs[field], fmt.Sprintf("The %s field must be a valid email address.", field))
			}
		case KindDigits:
			if !isDigits(value) || len(value) != rule.Digits {
				errs[field] = append(errs[field], fmt.Sprintf("The %s field must be %d digits.", field, rule.Digits))
			}
		case KindDecimal:
			d, err := decimal.Parse(value)
			if err != nil || d.Scale() != rule.Scale {
				errs[field] = append(errs[field], fmt.Sprintf("The %s field must have %d decimal places.", field, rule.Scale))
			} else if d.IsNeg() {
				errs[field] = append(errs[field], fmt.Sprintf("The %s field must not be negative.", field))
			}
		}
	}

	return errs
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
