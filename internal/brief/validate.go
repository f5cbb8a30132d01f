package brief

import (
	"fmt"
	"reflect"
	"strings"

	validator "github.com/go-playground/validator/v10"
)

// Validator checks answer sets against the schema tags on Answers. Validation
// failures are return values, never panics; callers decide what to surface.
type Validator struct {
	validate *validator.Validate
}

// structFieldsByJSON maps the wire field names used by the wizard to the Go
// struct fields StructPartial expects.
var structFieldsByJSON = buildFieldIndex()

func buildFieldIndex() map[string]string {
	index := make(map[string]string)

	t := reflect.TypeOf(Answers{})
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := strings.Split(field.Tag.Get("json"), ",")[0]
		if tag == "" || tag == "-" {
			continue
		}
		index[tag] = field.Name
	}

	return index
}

// NewValidator builds a Validator whose error keys use the JSON field names.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.Split(field.Tag.Get("json"), ",")[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// ValidateFields validates only the named subset of fields against the schema.
// It reports success together with per-field messages for every named field
// that failed; the rest of the answer set is not required to be valid. Unknown
// field names are ignored, so the function is total.
func (v *Validator) ValidateFields(answers Answers, fields []string) (bool, map[string]string) {
	structFields := make([]string, 0, len(fields))
	for _, name := range fields {
		if goName, ok := structFieldsByJSON[name]; ok {
			structFields = append(structFields, goName)
		}
	}

	if len(structFields) == 0 {
		return true, nil
	}

	err := v.validate.StructPartial(answers, structFields...)
	if err == nil {
		return true, nil
	}

	return false, fieldErrors(err)
}

// ValidateAll validates the complete answer set, as required before submission.
func (v *Validator) ValidateAll(answers Answers) (bool, map[string]string) {
	err := v.validate.Struct(answers)
	if err == nil {
		return true, nil
	}

	return false, fieldErrors(err)
}

func fieldErrors(err error) map[string]string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	messages := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		messages[fe.Field()] = messageFor(fe)
	}

	return messages
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
