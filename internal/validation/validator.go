// Showlens - TV Show Popularity & Viewer Demographics Analytics
// Copyright 2026 Dana V. (showlens)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/showlens/showlens

// Package validation wraps go-playground/validator v10 behind a
// thread-safe singleton with error translation into the API's
// VALIDATION_ERROR shape.
//
//	type chartRequest struct {
//	    AgeGroups []string `validate:"omitempty,dive,min=1,max=32"`
//	    Genres    []string `validate:"omitempty,dive,min=1,max=64"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    code, msg, details := verr.APIError()
//	    ...
//	}
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// instance returns the singleton validator, creating it on first use.
// The validator caches struct metadata, so sharing one instance matters.
func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// FieldError is one failed constraint.
type FieldError struct {
	Field      string
	Constraint string
	Param      string
	Value      interface{}
}

func (e FieldError) message() string {
	switch e.Constraint {
	case "required":
		return fmt.Sprintf("%s is required", e.Field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.Field, e.Param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", e.Field, e.Param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.Field, e.Param)
	default:
		return fmt.Sprintf("%s failed validation (%s)", e.Field, e.Constraint)
	}
}

// RequestValidationError aggregates the failed constraints of one request.
type RequestValidationError struct {
	fields []FieldError
}

// Error implements the error interface.
func (ve *RequestValidationError) Error() string {
	if len(ve.fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(ve.fields))
	for i, f := range ve.fields {
		msgs[i] = f.message()
	}
	return strings.Join(msgs, "; ")
}

// Fields returns the individual failed constraints.
func (ve *RequestValidationError) Fields() []FieldError {
	return ve.fields
}

// APIError translates the failure into the API error triple: the
// VALIDATION_ERROR code, a combined message, and per-field details.
func (ve *RequestValidationError) APIError() (code, message string, details map[string]interface{}) {
	details = make(map[string]interface{}, len(ve.fields))
	for _, f := range ve.fields {
		details[f.Field] = f.message()
	}
	return "VALIDATION_ERROR", ve.Error(), details
}

// ValidateStruct validates v and returns nil on success or a
// *RequestValidationError describing every failed constraint.
func ValidateStruct(v interface{}) *RequestValidationError {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError: v was not a struct
		return &RequestValidationError{fields: []FieldError{{
			Field:      "request",
			Constraint: "struct",
		}}}
	}

	out := &RequestValidationError{}
	for _, fe := range verrs {
		out.fields = append(out.fields, FieldError{
			Field:      strings.ToLower(fe.Field()),
			Constraint: fe.Tag(),
			Param:      fe.Param(),
			Value:      fe.Value(),
		})
	}
	return out
}
