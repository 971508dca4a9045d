package academy

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrNotFound is returned when an id does not match any entity.
	ErrNotFound = errors.New("not found")
	// ErrInvalidTransition is returned when a session cannot move to the requested state.
	ErrInvalidTransition = errors.New("invalid session transition")
	// ErrValidation is returned when an entity breaks a required field or range rule.
	ErrValidation = errors.New("validation failed")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateEntity(v any) error {
	return wrapValidation(validate.Struct(v))
}

// validateSeed checks v but skips the named fields, which only the add
// forms require.
func validateSeed(v any, skip ...string) error {
	return wrapValidation(validate.StructExcept(v, skip...))
}

func wrapValidation(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("%w: %s failed on %q", ErrValidation, fe.Field(), fe.Tag())
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}
