package validator

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		_, err := ValidatePhoneDigits(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
		return ValidateEmail(fl.Field().String())
	})
}

// Validate checks struct tags and returns field -> failed tag, or nil.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}

var tagCodes = map[string]Code{
	"required":    CodeRequired,
	"phone":       CodeInvalidPhoneFormat,
	"loose_email": CodeInvalidEmail,
	"email":       CodeInvalidEmail,
	"gt":          CodeInvalidAmount,
	"gte":         CodeInvalidAmount,
}

// Check is Validate reduced to a single *ValidationError on the first
// failing field in alphabetical order, or nil.
func Check(v interface{}) error {
	errs := Validate(v)
	if len(errs) == 0 {
		return nil
	}

	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	field := fields[0]
	tag := errs[field]
	code, ok := tagCodes[tag]
	if !ok {
		code = CodeInvalidValue
	}
	return newError(code, field, "failed "+tag+" check")
}
