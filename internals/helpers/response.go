package helper

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator global (thread-safe, cache struct info).
// Nama field di pesan error memakai tag json supaya sama dengan payload klien.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidationFields: ubah validator.ValidationErrors → map field → []tag
func ValidationFields(err error) map[string][]string {
	out := map[string][]string{}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		out["_"] = []string{err.Error()}
		return out
	}
	for _, fe := range ve {
		msg := fe.Tag()
		if p := fe.Param(); p != "" {
			msg += "=" + p
		}
		out[fe.Field()] = append(out[fe.Field()], msg)
	}
	return out
}
