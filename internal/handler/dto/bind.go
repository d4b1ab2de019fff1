package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kennel/kennel/internal/service"
)

var validate = newValidator()

// newValidator reports field names by their JSON tag so error locations
// match the wire format.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		default:
			return name
		}
	})
	return v
}

// DecodeJSON decodes a JSON request body into dst and validates it.
// Shape problems come back as *ValidationError; anything else, such as a
// body over the size limit, is returned unchanged.
// The body must hold exactly one JSON value.
func DecodeJSON(body io.Reader, dst any) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return err
		}
		return newValidationError(FieldError{
			Loc:  loc(LocBody),
			Msg:  "JSON decode error",
			Type: TypeJSONInvalid,
		})
	}
	return Validate(LocBody, dst)
}

func decodeError(err error) error {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)

	switch {
	case errors.Is(err, io.EOF):
		return newValidationError(FieldError{
			Loc:  loc(LocBody),
			Msg:  "Field required",
			Type: TypeMissing,
		})
	case errors.Is(err, io.ErrUnexpectedEOF):
		return newValidationError(FieldError{
			Loc:  loc(LocBody),
			Msg:  "JSON decode error",
			Type: TypeJSONInvalid,
		})
	case errors.As(err, &syntaxErr):
		return newValidationError(FieldError{
			Loc:  loc(LocBody, syntaxErr.Offset),
			Msg:  "JSON decode error",
			Type: TypeJSONInvalid,
		})
	case errors.As(err, &typeErr):
		return newValidationError(typeFieldError(typeErr))
	default:
		return err
	}
}

// typeFieldError maps a JSON type mismatch to a field error.
func typeFieldError(err *json.UnmarshalTypeError) FieldError {
	if err.Field == "" {
		return FieldError{
			Loc:  loc(LocBody),
			Msg:  "Input should be a valid dictionary or object to extract fields from",
			Type: TypeObjectExpected,
		}
	}

	fe := FieldError{Loc: loc(LocBody)}
	for _, part := range strings.Split(err.Field, ".") {
		fe.Loc = append(fe.Loc, part)
	}

	switch err.Type.Kind() {
	case reflect.String:
		fe.Msg = "Input should be a valid string"
		fe.Type = TypeStringType
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		fe.Msg = "Input should be a valid integer"
		fe.Type = TypeIntType
	default:
		fe.Msg = fmt.Sprintf("Input should be a valid %s", err.Type.Kind())
		fe.Type = err.Type.Kind().String() + "_type"
	}

	return fe
}

// Validate runs struct tag validation on v and reports failures under location.
func Validate(location string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, toFieldError(location, fe))
	}

	return newValidationError(fields...)
}

func toFieldError(location string, fe validator.FieldError) FieldError {
	out := FieldError{Loc: loc(location, fe.Field())}

	switch fe.Tag() {
	case "required":
		out.Msg = "Field required"
		out.Type = TypeMissing
	case "gte":
		out.Msg = "Input should be greater than or equal to " + fe.Param()
		out.Type = TypeGreaterThanEqual
	default:
		out.Msg = fe.Error()
		out.Type = fe.Tag()
	}

	return out
}

// ListQuery holds the offset/limit query parameters of list endpoints.
type ListQuery struct {
	Skip  int `json:"skip" validate:"gte=0"`
	Limit int `json:"limit" validate:"gte=1"`
}

// ToPage converts the query to a service page.
func (q ListQuery) ToPage() service.Page {
	return service.Page{Skip: q.Skip, Limit: q.Limit}
}

// ParseListQuery reads skip and limit, falling back to the service defaults
// for absent or empty parameters.
func ParseListQuery(values url.Values) (ListQuery, error) {
	q := ListQuery{Skip: service.DefaultSkip, Limit: service.DefaultLimit}

	var fields []FieldError
	if raw := values.Get("skip"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			fields = append(fields, intParsingError(LocQuery, "skip"))
		} else {
			q.Skip = n
		}
	}
	if raw := values.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			fields = append(fields, intParsingError(LocQuery, "limit"))
		} else {
			q.Limit = n
		}
	}
	if len(fields) > 0 {
		return q, newValidationError(fields...)
	}

	if err := Validate(LocQuery, &q); err != nil {
		return q, err
	}

	return q, nil
}

// ParseID parses an integer path parameter.
func ParseID(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, newValidationError(intParsingError(LocPath, name))
	}
	return id, nil
}

func intParsingError(location, name string) FieldError {
	return FieldError{
		Loc:  loc(location, name),
		Msg:  "Input should be a valid integer, unable to parse string as an integer",
		Type: TypeIntParsing,
	}
}
