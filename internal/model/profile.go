// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// =============================================================================
// PROFILE TYPE
// =============================================================================

// Profile is the user's health profile as sent to the analysis endpoint.
type Profile struct {
	Age      int     `json:"age" yaml:"age" toml:"age" validate:"gt=0,lte=150"`
	Gender   string  `json:"gender" yaml:"gender" toml:"gender" validate:"required"`
	Weight   float64 `json:"weight" yaml:"weight" toml:"weight" validate:"gt=0,lte=1000"`
	Height   float64 `json:"height" yaml:"height" toml:"height" validate:"gt=0,lte=300"`
	Activity string  `json:"activity" yaml:"activity" toml:"activity" validate:"required"`
}

// Activity levels offered by the profile forms. Any non-empty value is accepted.
var ActivityLevels = []string{"sedentary", "light", "moderate", "active", "very_active"}

// Genders offered by the profile forms.
var Genders = []string{"male", "female", "other"}

// DefaultProfile returns the profile used before the first submission.
func DefaultProfile() Profile {
	return Profile{
		Age:      25,
		Gender:   "male",
		Weight:   70,
		Height:   170,
		Activity: "moderate",
	}
}

// Validate checks the profile's field constraints.
func (p Profile) Validate() error {
	err := validate().Struct(p)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	var errs ValidationErrors
	for _, fe := range fieldErrs {
		errs = append(errs, ValidationError{Field: fe.Field(), Message: describeRule(fe)})
	}
	return errs
}

// FormValues returns the profile rendered back into raw form strings.
func (p Profile) FormValues() FormValues {
	return FormValues{
		Age:      strconv.Itoa(p.Age),
		Gender:   p.Gender,
		Weight:   strconv.FormatFloat(p.Weight, 'f', -1, 64),
		Height:   strconv.FormatFloat(p.Height, 'f', -1, 64),
		Activity: p.Activity,
	}
}

// =============================================================================
// FORM PARSING
// =============================================================================

// FormValues holds the raw, unparsed profile form inputs.
type FormValues struct {
	Age      string `form:"age" json:"age"`
	Gender   string `form:"gender" json:"gender"`
	Weight   string `form:"weight" json:"weight"`
	Height   string `form:"height" json:"height"`
	Activity string `form:"activity" json:"activity"`
}

// ParseProfile coerces raw form inputs into a Profile.
// Age is truncated to an integer; weight and height keep their fraction.
// Non-numeric input, NaN and infinities are rejected. All problems are
// reported together as ValidationErrors.
func ParseProfile(form FormValues) (Profile, error) {
	var errs ValidationErrors
	var p Profile

	if age, err := parseNumber(form.Age); err != nil {
		errs = append(errs, ValidationError{Field: "age", Message: err.Error()})
	} else {
		p.Age = int(math.Trunc(age))
	}

	if weight, err := parseNumber(form.Weight); err != nil {
		errs = append(errs, ValidationError{Field: "weight", Message: err.Error()})
	} else {
		p.Weight = weight
	}

	if height, err := parseNumber(form.Height); err != nil {
		errs = append(errs, ValidationError{Field: "height", Message: err.Error()})
	} else {
		p.Height = height
	}

	p.Gender = strings.TrimSpace(form.Gender)
	p.Activity = strings.TrimSpace(form.Activity)

	// Rule checks only on fields that parsed; a bad number is reported once.
	if err := p.Validate(); err != nil {
		var ruleErrs ValidationErrors
		if !errors.As(err, &ruleErrs) {
			return Profile{}, err
		}
		for _, re := range ruleErrs {
			if !errs.Has(re.Field) {
				errs = append(errs, re)
			}
		}
	}

	if len(errs) > 0 {
		return Profile{}, errs
	}
	return p, nil
}

func parseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, errors.New("is required")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return f, nil
}

// =============================================================================
// VALIDATION
// =============================================================================

var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

// validate returns the shared validator, reporting fields by their JSON names.
func validate() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		validatorInst = v
	})
	return validatorInst
}

func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}

// ValidationError describes a single invalid profile field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether the collection contains an error for field.
func (e ValidationErrors) Has(field string) bool {
	for _, err := range e {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Fields returns the names of the offending fields in order.
func (e ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(e))
	for _, err := range e {
		fields = append(fields, err.Field)
	}
	return fields
}
