package schemas

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/localnerve/gatesim/internal/units"
)

// ValidationErrors maps a JSON field path to the rule it failed
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for field, msg := range v {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var (
	validate     *validator.Validate
	validateOnce sync.Once

	// names become directory and file names, so keep them path safe
	namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		mustRegister("length_unit", unitOf(units.Length))
		mustRegister("energy_unit", unitOf(units.Energy))
		mustRegister("activity_unit", unitOf(units.Activity))
		mustRegister("axis", func(fl validator.FieldLevel) bool {
			return units.Axis(fl.Field().String()).Valid()
		})
		mustRegister("safename", func(fl validator.FieldLevel) bool {
			return namePattern.MatchString(fl.Field().String())
		})
		validate.RegisterStructValidation(validateActorCreate, ActorCreate{})
		mustRegister("actor_type", func(fl validator.FieldLevel) bool {
			return ActorType(fl.Field().String()).Valid()
		})
	})
	return validate
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %s: %v", tag, err))
	}
}

func unitOf(dim units.Dimension) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return units.Unit(fl.Field().String()).Dimension() == dim
	}
}

// Validate checks v against its struct tags and returns ValidationErrors on failure
func Validate(v interface{}) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(ValidationErrors, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[fieldPath(fe.Namespace())] = message(fe)
	}
	return out
}

// fieldPath drops the top-level struct name from a validator namespace
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "required_unless":
		return "Field required"
	case "len":
		return fmt.Sprintf("Must contain exactly %s items", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "oneof", "eq":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	case "length_unit":
		return "Must be a length unit (nm, um, mm, cm, m)"
	case "energy_unit":
		return "Must be an energy unit (eV, keV, MeV)"
	case "activity_unit":
		return "Must be an activity unit (Bq, kBq, MBq)"
	case "axis":
		return "Must be one of: x y z"
	case "safename":
		return "Must start with a letter or digit and contain only letters, digits, '.', '_' or '-'"
	case "actor_type":
		return "Must be one of: " + strings.Join(actorTypeNames(), " ")
	}
	return fmt.Sprintf("Failed on the '%s' rule", fe.Tag())
}
