package common

import "fmt"

// ValidationError carries every failed field, and the first one that failed.
type ValidationError struct {
	Errors map[string]string
	Field  string
}

func (e ValidationError) Error() string {
	if msg, ok := e.Errors[e.Field]; ok {
		return msg
	}
	return fmt.Sprintf("validation errors: %+v", e.Errors)
}

type Validator struct {
	Errors map[string]string
	first  string
}

func NewValidator() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

func (v *Validator) AddError(field, message string) {
	if _, ok := v.Errors[field]; !ok {
		if len(v.Errors) == 0 {
			v.first = field
		}
		v.Errors[field] = message
	}
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

func (v *Validator) CheckStringLength(s string, min, max int) bool {
	return len(s) >= min && len(s) <= max
}

func (v *Validator) ValidationError() error {
	return ValidationError{Errors: v.Errors, Field: v.first}
}
