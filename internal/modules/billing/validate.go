package billing

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the request shape: a vendor, at least one line, positive
// quantities and a price on every line, non-negative with at most two
// decimal places.
func (r BillRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on %s", trimNamespace(fe.Namespace()), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	for i, item := range r.Items {
		if !item.SellingPrice.Valid {
			return fmt.Errorf("%w: items[%d].selling_price is required", ErrInvalidRequest, i)
		}
		price := item.SellingPrice.Decimal
		if price.IsNegative() {
			return fmt.Errorf("%w: items[%d].selling_price cannot be negative", ErrInvalidRequest, i)
		}
		if !price.Equal(price.Round(2)) {
			return fmt.Errorf("%w: items[%d].selling_price has more than two decimal places", ErrInvalidRequest, i)
		}
	}
	return nil
}

// "BillRequest.items[0].quantity" -> "items[0].quantity"
func trimNamespace(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
