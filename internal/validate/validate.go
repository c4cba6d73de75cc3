// Package validate checks module records before they reach the store or the
// backend and reports failures as a field -> message map.
package validate

import (
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pkg/errors"

	"berdoz/internal/core"
)

var (
	// custom validation tags & texts
	notBlankTag  = "notblank"
	notBlankText = "{0} is required"

	requiredWithoutTag  = "required_without"
	requiredWithoutText = "{0} is required when no other case is given"
)

// Error is returned when a record fails validation. Fields maps the JSON
// field name to a readable message.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidationError reports whether err, or its cause, is an *Error.
func IsValidationError(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}

// Validator wraps a configured go-playground validator and its translator.
type Validator struct {
	v  *validator.Validate
	tr ut.Translator
}

// New returns a validator with English messages, JSON field names and the
// custom tags used by the record types.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	_en := en.New()
	uni := ut.New(_en, _en)
	tr, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, tr)

	// Use JSON tag names for errors instead of Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// amounts are compared as numbers
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if m, ok := field.Interface().(core.Money); ok {
			return m.Float64()
		}
		return nil
	}, core.Money{})

	_ = v.RegisterValidation(notBlankTag, validators.NotBlank)

	val := &Validator{v: v, tr: tr}
	val.registerCustomTranslation(notBlankTag, notBlankText)
	val.registerCustomTranslation(requiredWithoutTag, requiredWithoutText, true)
	return val
}

// registerCustomTranslation registers a custom translation for the specified validation tag.
func (val *Validator) registerCustomTranslation(tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = val.v.RegisterTranslation(
		tag, val.tr,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Struct validates a record. It returns nil, an *Error listing the failing
// fields, or a wrapped error when s is not a struct.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "validate")
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = fe.Translate(val.tr)
	}
	return &Error{Fields: fields}
}
