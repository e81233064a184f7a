/*
bind.go - JSON decoding and input-shape validation

PURPOSE:
  Decodes request bodies into DTOs and checks their `validate` tags before
  the engine sees them. Every failure becomes a *BindError whose message
  names the first offending field, using the JSON field name.

RULES:
  - Body capped at 1 MiB
  - Unknown fields rejected
  - Trailing data after the JSON value rejected
  - Empty body rejected

VALIDATOR:
  go-playground/validator with English translations. Registered once per
  process; min/max messages are shortened to "{field} must be at least N".
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/warp/payroll-engine/logger"
)

const maxBodyBytes = 1 << 20

// BindError is a client-side decoding or validation failure.
type BindError struct {
	Field   string
	Message string
}

func (e *BindError) Error() string { return e.Message }

func bindErrf(format string, args ...any) *BindError {
	return &BindError{Message: fmt.Sprintf(format, args...)}
}

type validatorSvc struct {
	validate   *validator.Validate
	translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *validatorSvc
)

func getValidator() *validatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// use json tag names in messages
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)
		registerShort(v, trans, "min", "{0} must be at least {1}")
		registerShort(v, trans, "max", "{0} must be at most {1}")

		vSvc = &validatorSvc{validate: v, translator: trans}
	})
	return vSvc
}

func registerShort(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// bindJSON decodes r's body into T and validates it.
func bindJSON[T any](r *http.Request) (T, error) {
	defer r.Body.Close()
	return decodeJSON[T](r.Body)
}

// DecodePayrollRequest reads and validates a calculation request from any
// reader, applying the same rules as the HTTP endpoint.
func DecodePayrollRequest(r io.Reader) (PayrollRequest, error) {
	return decodeJSON[PayrollRequest](r)
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var zero T
	dec := json.NewDecoder(io.LimitReader(r, maxBodyBytes))
	dec.DisallowUnknownFields()

	var dst T
	if err := dec.Decode(&dst); err != nil {
		if errors.Is(err, io.EOF) {
			return zero, bindErrf("empty body")
		}
		return zero, bindErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return zero, bindErrf("unexpected trailing data")
	}

	if err := validateStruct(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

// validateStruct runs the validator and maps the first failure to a BindError.
func validateStruct(v any) error {
	svc := getValidator()
	err := svc.validate.Struct(v)
	if err == nil {
		return nil
	}

	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Get().Error().Err(inv).Msg("validator internal error")
		return bindErrf("validation error")
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &BindError{Field: fieldPath(fe), Message: fieldPath(fe) + ": " + fe.Translate(svc.translator)}
	}
	return bindErrf("%v", err)
}

// fieldPath strips the root struct name: "PayrollRequest.records[0].end_hour"
// becomes "records[0].end_hour".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}
