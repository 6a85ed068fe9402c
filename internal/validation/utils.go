package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/henriqued25/transporte-opina/internal/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
// - Define a request struct with validator tags (`validate:"required,max=20"`)
// - Implement Validate() error that runs validation.Struct(req)
// - Return validator.ValidationErrors (or CustomValidationErrors for custom cases)
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field.
// This is used for validation errors that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return errs.MessageValidationFailed
}

var validate = newValidator()

// newValidator returns a validator that reports fields by their JSON name.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	return v
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	return validate.Struct(s)
}

// Var validates a single value against a validator tag, reporting failures
// under field.
func Var(field string, value any, tag string) CustomValidationErrors {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return CustomValidationErrors{{Field: field, Message: err.Error()}}
	}

	out := make(CustomValidationErrors, 0, len(validationErrors))
	for _, fe := range validationErrors {
		out = append(out, CustomValidationError{Field: field, Message: message(fe)})
	}

	return out
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
// 1) c.Bind(payload) populates request struct from path params and the JSON body.
// 2) payload.Validate() applies validation rules.
// 3) Returns *errs.HTTPError (400) with field-level errors if validation fails.
//
// NOTE: c.Bind expects a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return bindError(err)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors)
	}

	return nil
}

// bindError converts an echo binding failure into a 400 with a readable
// message. The echo error text is never shown verbatim.
func bindError(err error) *errs.HTTPError {
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		return errs.NewBadRequestError("Não foi possível ler a requisição.", true, nil, nil)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(he.Internal, &typeErr) && typeErr.Field != "" {
		return errs.NewBadRequestError(errs.MessageValidationFailed, true, nil, []errs.FieldError{
			{
				Field: typeErr.Field,
				Error: fmt.Sprintf("deve ser do tipo %s", typeName(typeErr.Type)),
			},
		})
	}

	var syntaxErr *json.SyntaxError
	if errors.As(he.Internal, &syntaxErr) || errors.Is(he.Internal, io.ErrUnexpectedEOF) {
		return errs.NewBadRequestError("JSON malformado.", true, nil, nil)
	}

	if he.Code == http.StatusUnsupportedMediaType {
		return errs.NewBadRequestError("O corpo da requisição deve ser JSON.", true, nil, nil)
	}

	return errs.NewBadRequestError("Não foi possível ler a requisição.", true, nil, nil)
}

func typeName(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "desconhecido"
	}

	switch t.Kind() {
	case reflect.String:
		return "texto"
	case reflect.Bool:
		return "booleano"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "inteiro"
	case reflect.Float32, reflect.Float64:
		return "número"
	case reflect.Map, reflect.Struct:
		return "objeto"
	case reflect.Slice, reflect.Array:
		return "lista"
	default:
		return t.Kind().String()
	}
}

// validateStruct calls v.Validate() and extracts field errors if validation fails.
func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

// extractValidationError flattens validator and custom errors into field
// errors. The first field error becomes the response message.
func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	var validationErrors validator.ValidationErrors

	switch {
	case errors.As(err, &customValidationErrors):
		for _, err := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: err.Field,
				Error: err.Message,
			})
		}

	case errors.As(err, &validationErrors):
		for _, err := range validationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: err.Field(),
				Error: message(err),
			})
		}

	default:
		return err.Error(), []errs.FieldError{}
	}

	if len(fieldErrors) == 0 {
		return errs.MessageValidationFailed, []errs.FieldError{}
	}

	first := fieldErrors[0]
	return fmt.Sprintf("%s %s.", first.Field, first.Error), fieldErrors
}

// message returns the Portuguese text for a failed validator tag.
func message(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "é obrigatório"

	case "min":
		// min tag means:
		// - for strings: minimum length
		// - for numbers: minimum value
		if err.Kind() == reflect.String {
			return fmt.Sprintf("deve ter pelo menos %s caracteres", err.Param())
		}
		return fmt.Sprintf("deve ser no mínimo %s", err.Param())

	case "max":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("deve ter no máximo %s caracteres", err.Param())
		}
		return fmt.Sprintf("deve ser no máximo %s", err.Param())

	case "gt":
		return fmt.Sprintf("deve ser maior que %s", err.Param())

	case "oneof":
		return fmt.Sprintf("deve ser um de: %s", err.Param())

	default:
		if err.Param() != "" {
			return fmt.Sprintf("%s:%s", err.Tag(), err.Param())
		}
		return err.Tag()
	}
}
