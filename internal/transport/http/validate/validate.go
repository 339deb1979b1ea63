package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/baechuer/real-time-ressys/services/events-api/internal/domain"
)

var v *validator.Validate

func init() {
	v = validator.New()

	// Report json names, not Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("rfc3339", validateRFC3339)
	_ = v.RegisterValidation("answer", validateAnswer)
}

func validateRFC3339(fl validator.FieldLevel) bool {
	_, err := time.Parse(time.RFC3339, fl.Field().String())
	return err == nil
}

func validateAnswer(fl validator.FieldLevel) bool {
	_, err := domain.ParseAnswer(fl.Field().String())
	return err == nil
}

// DecodeJSON decodes exactly one JSON object into dst. Unknown fields and
// trailing data are rejected.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must contain a single JSON object")
	}
	return nil
}

// Body decodes and validates a request DTO. Failures come back as
// validation AppErrors.
func Body(r *http.Request, dst any) error {
	if err := DecodeJSON(r, dst); err != nil {
		return domain.ErrValidationMeta("invalid json body", map[string]string{"body": err.Error()})
	}
	return Struct(dst)
}

func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return domain.ErrValidation(err.Error())
	}
	meta := make(map[string]string, len(ves))
	for _, fe := range ves {
		meta[fe.Field()] = formatFieldError(fe)
	}
	return domain.ErrValidationMeta("invalid field", meta)
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "rfc3339":
		return "must be an RFC3339 timestamp"
	case "answer":
		return "must be one of: accepted, maybe, rejected"
	default:
		return "is invalid"
	}
}

// PathID reads a positive int64 chi URL parameter.
func PathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrValidationMeta("invalid path param", map[string]string{
			name: "must be a positive integer",
		})
	}
	return id, nil
}

// Page reads the 1-based page query parameter. Missing means 1; anything
// else that is not a positive integer is rejected.
func Page(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("page"))
	if raw == "" {
		return 1, nil
	}
	p, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.ErrValidationMeta("invalid query param", map[string]string{
			"page": "must be an integer",
		})
	}
	if p < 1 {
		p = 1
	}
	return p, nil
}
