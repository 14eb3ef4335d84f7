package request

import (
	"errors"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	cErr "ems/internal/pkg/error"

	"github.com/go-playground/validator/v10"
)

// Validator lets a request struct provide friendly messages keyed by "<field>.<tag>".
type Validator interface {
	GetMessages() ValidatorMessages
}

type ValidatorMessages map[string]string

var reg = regexp.MustCompile(`\[\d\]`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names ("employeeNumber") instead of Go field names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	if err := v.RegisterValidation("salary", salaryRule); err != nil {
		panic(err)
	}
	return v
}

// salaryRule accepts a number, or a string that parses as one.
func salaryRule(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(field.String()), 64)
		return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
	case reflect.Float32, reflect.Float64:
		f := field.Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

// Check validates request and returns one "<field>:<rule>" flag per violation.
// A nil slice means the request is clean.
func Check(request any) ([]string, error) {
	err := validate.Struct(request)
	if err == nil {
		return nil, nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, err
	}
	flags := make([]string, 0, len(validationErrors))
	for _, v := range validationErrors {
		flags = append(flags, v.Field()+":"+v.Tag())
	}
	return flags, err
}

// GetError turns validation errors into the first friendly message.
func GetError(request any, err error) *cErr.Error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		messenger, isValidator := request.(Validator)

		var errorMessages []string
		for _, v := range validationErrors {
			if isValidator {
				field := reg.ReplaceAllString(v.Field(), ".*")
				if message, exist := messenger.GetMessages()[field+"."+v.Tag()]; exist {
					errorMessages = append(errorMessages, message)
					continue
				}
			}
			errorMessages = append(errorMessages, v.Error())
		}
		if len(errorMessages) > 0 {
			return cErr.ValidateErr(errorMessages[0])
		}
	}

	return cErr.ValidateErr("Parameter error")
}
