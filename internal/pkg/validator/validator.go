package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Report category validation
	validate.RegisterValidation("report_category", func(fl validator.FieldLevel) bool {
		category := fl.Field().String()
		validCategories := []string{"spam", "harassment", "inappropriate", "misinformation", "other"}
		for _, c := range validCategories {
			if category == c {
				return true
			}
		}
		return false
	})

	// User type validation (student/faculty/alumni)
	validate.RegisterValidation("user_type", func(fl validator.FieldLevel) bool {
		userType := fl.Field().String()
		validTypes := []string{"student", "faculty", "alumni", ""}
		for _, t := range validTypes {
			if userType == t {
				return true
			}
		}
		return false
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "oneof":
			errors[field] = "Invalid value. Must be one of: " + err.Param()
		case "report_category":
			errors[field] = "Invalid category. Must be: spam, harassment, inappropriate, misinformation, or other"
		case "user_type":
			errors[field] = "Invalid user type. Must be: student, faculty, or alumni"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
