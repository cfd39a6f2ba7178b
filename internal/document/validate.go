package document

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// InputError lists every problem found in a document.
type InputError struct {
	Problems []string
}

func (e *InputError) Error() string {
	return "invalid document: " + strings.Join(e.Problems, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their YAML names so messages match the input file.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks required fields, date formats, and numeric ranges. It
// returns an *InputError naming each failing field.
func Validate(doc *Document) error {
	var problems []string

	if err := validate.Struct(doc); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validating document: %w", err)
		}
		for _, fe := range verrs {
			problems = append(problems, describe(fe))
		}
	}

	if doc.TaxConfig != nil && (doc.TaxRate != nil || doc.TaxType != "") {
		problems = append(problems, "tax_config: cannot be combined with tax_rate/tax_type")
	}
	if doc.Installment != nil && doc.Installment.Number > 0 && doc.Installment.Total > 0 &&
		doc.Installment.Number > doc.Installment.Total {
		problems = append(problems, fmt.Sprintf("installment.number: %d is beyond total %d",
			doc.Installment.Number, doc.Installment.Total))
	}

	if len(problems) > 0 {
		return &InputError{Problems: problems}
	}
	return nil
}

// describe turns a validator failure into "items[0].quantity: must be greater than 0".
func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	var msg string
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "gt":
		msg = "must be greater than " + fe.Param()
	case "gte":
		msg = "must be at least " + fe.Param()
	case "lte":
		msg = "must be at most " + fe.Param()
	case "min":
		msg = "must have at least " + fe.Param() + " entries"
	case "oneof":
		msg = "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		msg = "must be a date in YYYY-MM-DD format"
	case "email":
		msg = "must be an email address"
	default:
		msg = "failed " + fe.Tag() + " check"
	}
	return field + ": " + msg
}
