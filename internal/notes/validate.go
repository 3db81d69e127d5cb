package notes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/existflow/sticky/internal/model"
	"github.com/go-playground/validator/v10"
)

// ErrEmptyNote is returned when a note has neither title nor body
var ErrEmptyNote = errors.New("enter a title or some text")

// ValidationError reports a rejected form. It wraps ErrEmptyNote or the
// underlying validator error.
type ValidationError struct {
	Field string
	err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.err.Error()
	}
	return fmt.Sprintf("invalid %s: %v", e.Field, e.err)
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

// IsValidation reports whether err is a form validation failure
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

type formValidator struct {
	v *validator.Validate
}

func newFormValidator() *formValidator {
	return &formValidator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// check normalizes form and validates it
func (fv *formValidator) check(form model.FormData) (model.FormData, error) {
	form = form.Normalize()

	err := fv.v.Struct(form)
	if err == nil {
		return form, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return form, &ValidationError{err: err}
	}

	for _, fe := range verrs {
		if fe.Tag() == "required_without" {
			return form, &ValidationError{err: ErrEmptyNote}
		}
	}

	fe := verrs[0]
	return form, &ValidationError{
		Field: strings.ToLower(fe.Field()),
		err:   fmt.Errorf("%q fails %s", fe.Value(), fe.Tag()),
	}
}
