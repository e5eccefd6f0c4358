package dto

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"
)

var (
	decoder  = form.NewDecoder()
	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldErrors maps a form field name to the messages shown under it.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, msg string) { fe[field] = append(fe[field], msg) }

func (fe FieldErrors) Get(field string) []string { return fe[field] }

type normalizer interface{ normalize() }

// Bind decodes the posted form into dst and validates it. Validation problems
// come back as FieldErrors; the error is reserved for malformed requests.
func Bind(r *http.Request, dst any) (FieldErrors, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("parse form: %w", err)
	}
	if err := decoder.Decode(dst, r.PostForm); err != nil {
		return nil, fmt.Errorf("decode form: %w", err)
	}
	if n, ok := dst.(normalizer); ok {
		n.normalize()
	}

	fe := FieldErrors{}
	err := validate.Struct(dst)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, e := range verrs {
			fe.Add(e.Field(), message(e))
		}
		return fe, nil
	}
	if err != nil {
		return nil, fmt.Errorf("validate form: %w", err)
	}
	return fe, nil
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "max":
		return fmt.Sprintf("Must be at most %s characters.", e.Param())
	}
	return "Invalid value."
}

func trim(s string) string { return strings.TrimSpace(s) }
