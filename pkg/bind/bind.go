// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/shashiranjanraj/catalog/config"
	"github.com/shashiranjanraj/catalog/pkg/e"
	"github.com/shashiranjanraj/catalog/pkg/validate"
)

// Decode reads r.Body as JSON into dest, capped at MAX_BODY_BYTES.
// Numbers are kept as json.Number. An empty body leaves dest untouched.
//
// Errors are e.ErrTooLarge, e.ErrBadRequest, or a *e.ValidationError when
// a field has the wrong JSON type.
func Decode(r *http.Request, dest interface{}) error {
	if r.Body == nil {
		return nil
	}
	r.Body = http.MaxBytesReader(nil, r.Body, config.MaxBodyBytes())

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	err := dec.Decode(dest)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Errorf("%w (max %d bytes)", e.ErrTooLarge, maxErr.Limit)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return e.NewValidationError(map[string]string{
			typeErr.Field: fmt.Sprintf("The %s field must be a %s.", typeErr.Field, typeName(typeErr.Type.Kind().String())),
		})
	}

	return fmt.Errorf("%w: invalid JSON: %v", e.ErrBadRequest, err)
}

// JSON decodes r.Body into dest and runs validation. The error is nil,
// a *e.ValidationError, or one of the Decode errors.
func JSON(r *http.Request, dest interface{}) error {
	if err := Decode(r, dest); err != nil {
		return err
	}
	return validate.Check(dest)
}

func typeName(kind string) string {
	switch kind {
	case "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64",
		"float32", "float64":
		return "number"
	case "slice", "array":
		return "list"
	case "map", "struct":
		return "object"
	}
	return kind
}
