// Package forms defines the request DTOs for the HTML forms and their
// validation. Each field has a kind that carries its own parse rule; a form
// is a schema of fields validated by a pure function returning either the
// typed DTO or a map of per-field errors.
package forms

import (
	"net/mail"
	"strconv"
	"time"

	"github.com/kmalov/cashlogger/internal/models"
)

// Kind identifies how a submitted field value is parsed and validated.
type Kind int

const (
	// Text accepts any non-empty string (emptiness is governed by Required).
	Text Kind = iota
	// Password is Text that must never be echoed back into a re-rendered form.
	Password
	// Email must parse as an address.
	Email
	// Int must parse as a base-10 integer.
	Int
	// Date must parse as YYYY-MM-DD (the HTML date input format).
	Date
	// Choice must match one of the field's Choices values.
	Choice
)

// Field describes one form field: its submitted name, kind, and constraints.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	Choices  []string // Choice kind only
}

// Value is the parsed result for a single field. Raw is always set; the
// typed slot matching the field's kind is set when parsing succeeded.
type Value struct {
	Raw    string
	Int    int64
	Date   time.Time
	Choice string
}

// Errors maps field names to validation messages. An empty map means the
// submission is valid.
type Errors map[string]string

// Valid reports whether no field failed validation.
func (e Errors) Valid() bool { return len(e) == 0 }

// parse validates a single submitted value against the field definition.
func (f Field) parse(raw string) (Value, string) {
	v := Value{Raw: raw}

	if raw == "" {
		if f.Required {
			return v, "This field is required."
		}
		return v, ""
	}

	switch f.Kind {
	case Text, Password:
		// Presence is the only constraint.
	case Email:
		if _, err := mail.ParseAddress(raw); err != nil {
			return v, "Invalid email address."
		}
	case Int:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return v, "Must be a whole number."
		}
		v.Int = n
	case Date:
		d, err := time.Parse(models.DateFormat, raw)
		if err != nil {
			return v, "Must be a date in YYYY-MM-DD form."
		}
		v.Date = d
	case Choice:
		for _, c := range f.Choices {
			if raw == c {
				v.Choice = raw
				return v, ""
			}
		}
		return v, "Not a valid choice."
	}

	return v, ""
}

// validate runs every field of the schema against the submitted values.
// It returns the parsed values keyed by field name and any per-field errors.
func validate(schema []Field, get func(string) string) (map[string]Value, Errors) {
	values := make(map[string]Value, len(schema))
	errs := make(Errors)
	for _, f := range schema {
		v, msg := f.parse(get(f.Name))
		values[f.Name] = v
		if msg != "" {
			errs[f.Name] = msg
		}
	}
	return values, errs
}
