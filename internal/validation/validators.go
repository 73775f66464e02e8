package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ulule/limiter/v3"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	// report query parameters by their wire name
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("query")
	})

	if err := Validate.RegisterValidation("limiter_rate", validateLimiterRate); err != nil {
		panic(fmt.Sprintf("failed to register limiter_rate validator: %v", err))
	}
}

// validateLimiterRate accepts rates in ulule/limiter format, e.g. "60-M" or "5-S"
func validateLimiterRate(fl validator.FieldLevel) bool {
	_, err := limiter.NewRateFromFormatted(fl.Field().String())
	return err == nil
}

// Struct validates s and flattens validation failures into one readable error
func Struct(s any) error {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", name)
	case "limiter_rate":
		return fmt.Sprintf("%s must be a rate like 60-M or 5-S (got %q)", name, fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", name, fe.Tag())
	}
}
