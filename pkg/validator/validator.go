package validator

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// ValidationError is a single failed rule on a request payload. Field carries
// the json name so the failure lines up with what the browser sent.
type ValidationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param"`
}

// Message renders the failure in the wording the forms display inline.
func (v ValidationError) Message() string {
	switch v.Tag {
	case "required":
		return v.Field + " is required"
	case "email":
		return v.Field + " must be a valid email address"
	case "min":
		return v.Field + " must be at least " + v.Param
	case "max":
		return v.Field + " must be at most " + v.Param
	case "oneof":
		return v.Field + " must be one of: " + v.Param
	case "gte":
		return v.Field + " must be " + v.Param + " or more"
	default:
		if v.Param != "" {
			return v.Field + " failed on " + v.Tag + "=" + v.Param
		}
		return v.Field + " failed on " + v.Tag
	}
}

// ValidationErrors collects every failed rule for one payload.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}

	parts := make([]string, len(v))
	for i, err := range v {
		parts[i] = err.Message()
	}
	return strings.Join(parts, "; ")
}

// ValidateStruct runs the tag rules on a request payload. Rule failures come
// back as ValidationErrors; any other error is an internal misuse (for
// example validating a non-struct).
func ValidateStruct(s interface{}) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	if ve, ok := err.(validator.ValidationErrors); ok {
		failures := make(ValidationErrors, 0, len(ve))
		for _, fe := range ve {
			failures = append(failures, ValidationError{
				Field: fe.Field(),
				Tag:   fe.Tag(),
				Param: fe.Param(),
			})
		}
		return failures
	}

	return err
}

// RegisterValidation installs a custom rule under the given tag.
func RegisterValidation(tag string, fn validator.Func) error {
	return getValidator().RegisterValidation(tag, fn)
}

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := fld.Tag.Get("json")
			if name == "" {
				return fld.Name
			}

			comma := strings.Index(name, ",")
			if comma != -1 {
				name = name[:comma]
			}

			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}
