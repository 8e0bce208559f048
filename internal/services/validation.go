package services

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"

	"motofibra/catalog/internal/constants"
	"motofibra/catalog/internal/models"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator with the catalog tags registered:
// brand, client, category and nonneg.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		mustRegister(v, "brand", func(fl validator.FieldLevel) bool {
			return constants.IsBrand(fl.Field().String())
		})
		mustRegister(v, "client", func(fl validator.FieldLevel) bool {
			return constants.IsClient(fl.Field().String())
		})
		mustRegister(v, "category", func(fl validator.FieldLevel) bool {
			return constants.IsCategory(fl.Field().String())
		})
		mustRegister(v, "nonneg", func(fl validator.FieldLevel) bool {
			f := fl.Field().Float()
			return !math.IsNaN(f) && !math.IsInf(f, 0) && f >= 0
		})
		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// Validate checks a request struct and returns a *models.ValidationError
// naming every rejected field.
func Validate(req any) error {
	err := Validator().Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return &models.ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "brand":
		return "must be one of " + joinValues(constants.Brands)
	case "client":
		return "must be one of " + joinValues(constants.Clients)
	case "category":
		return "must be one of " + joinValues(constants.Categories)
	case "nonneg":
		return "must be a non-negative number"
	default:
		return "failed " + fe.Tag()
	}
}

func joinValues[T ~string](values []T) string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return strings.Join(out, ", ")
}
