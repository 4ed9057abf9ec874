// Package form implements a field-state controller on top of pkg/validator.
//
// A Form owns a fixed set of named fields, each with ordered rule builders.
// Every change re-validates the whole form, so cross-field rules always see the
// latest value of their counterpart. Messages for a field are surfaced only after
// the field was touched or a submit was attempted.
package form

import (
	"errors"
	"net/url"
	"slices"
	"strings"

	"github.com/dmitrymomot/blogfront/pkg/validator"
)

// ErrInvalid is returned by Submit when at least one rule fails.
var ErrInvalid = errors.New("form: invalid")

// Values is a snapshot of field values keyed by field name.
type Values map[string]string

// Get returns the value for name or an empty string.
func (v Values) Get(name string) string {
	return v[name]
}

// RuleFunc builds a rule from the current values.
type RuleFunc func(v Values) validator.Rule

// Field declares a named input and its rules.
// Rules are evaluated in order; the first failing rule provides the field message.
type Field struct {
	Name  string
	Rules []RuleFunc
}

// Form is a per-request controller. It is not safe for concurrent use.
type Form struct {
	values    Values
	touched   map[string]bool
	errs      validator.ValidationErrors
	fields    []Field
	submitted bool
}

// New creates a form with empty values for every declared field.
func New(fields ...Field) *Form {
	f := &Form{
		fields:  fields,
		values:  make(Values, len(fields)),
		touched: make(map[string]bool, len(fields)),
	}
	for _, fd := range fields {
		f.values[fd.Name] = ""
	}
	f.validate()
	return f
}

// Fields returns declared field names in declaration order.
func (f *Form) Fields() []string {
	names := make([]string, 0, len(f.fields))
	for _, fd := range f.fields {
		names = append(names, fd.Name)
	}
	return names
}

// Set updates a field value, marks it touched and re-validates.
// Unknown fields are ignored.
func (f *Form) Set(name, value string) {
	if !f.has(name) {
		return
	}
	f.values[name] = value
	f.touched[name] = true
	f.validate()
}

// Load replaces all values from submitted form data without marking fields touched.
// The touched list restores state carried between partial requests.
func (f *Form) Load(data url.Values, touched ...string) {
	for _, fd := range f.fields {
		f.values[fd.Name] = data.Get(fd.Name)
	}
	for _, name := range touched {
		if f.has(name) {
			f.touched[name] = true
		}
	}
	f.validate()
}

// Touch marks a field as touched without changing its value.
func (f *Form) Touch(name string) {
	if f.has(name) {
		f.touched[name] = true
	}
}

// Touched returns touched field names in declaration order.
func (f *Form) Touched() []string {
	var names []string
	for _, fd := range f.fields {
		if f.touched[fd.Name] {
			names = append(names, fd.Name)
		}
	}
	return names
}

// IsTouched reports whether the field was changed by the user.
func (f *Form) IsTouched(name string) bool {
	return f.touched[name]
}

// Value returns the current value of a field.
func (f *Form) Value(name string) string {
	return f.values[name]
}

// Values returns a copy of the current values.
func (f *Form) Values() Values {
	out := make(Values, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Valid reports whether every rule of every field passes.
func (f *Form) Valid() bool {
	return len(f.errs) == 0
}

// Error returns the visible message for a field.
// Untouched fields stay silent until a submit was attempted.
func (f *Form) Error(name string) string {
	if !f.submitted && !f.touched[name] {
		return ""
	}
	return f.errs.First(name)
}

// Errors returns all current failures regardless of visibility.
func (f *Form) Errors() validator.ValidationErrors {
	return slices.Clone(f.errs)
}

// Submitted reports whether Submit was called.
func (f *Form) Submitted() bool {
	return f.submitted
}

// Submit marks the form as submitted and calls fn with the values only when valid.
func (f *Form) Submit(fn func(Values) error) error {
	f.submitted = true
	f.validate()
	if !f.Valid() {
		return ErrInvalid
	}
	return fn(f.Values())
}

// TouchedParam encodes the touched set for a hidden input.
func (f *Form) TouchedParam() string {
	return strings.Join(f.Touched(), ",")
}

// ParseTouched decodes a hidden input value produced by TouchedParam.
func ParseTouched(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// validate keeps only the first failure per field.
func (f *Form) validate() {
	f.errs = f.errs[:0]
	for _, fd := range f.fields {
		for _, build := range fd.Rules {
			err := validator.Apply(build(f.values))
			if ve := validator.ExtractValidationErrors(err); len(ve) > 0 {
				f.errs = append(f.errs, ve[0])
				break
			}
		}
	}
}

func (f *Form) has(name string) bool {
	for _, fd := range f.fields {
		if fd.Name == name {
			return true
		}
	}
	return false
}
