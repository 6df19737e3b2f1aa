// internal/billing/amount.go
package billing

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Amounts outside these bounds are treated as input errors. Rescaling an
// unbounded exponent allocates the full digit string.
const (
	maxAmountInput  = 32
	maxAmountScale  = 20
	maxAmountDigits = 15
)

// ParseAmount converts form input into a non-negative amount. Blank,
// non-numeric, negative and out-of-range input all yield zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxAmountInput {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return ClampAmount(d)
}

// ClampAmount floors d at zero. Amounts with more than maxAmountDigits
// integer digits or a scale finer than maxAmountScale become zero.
func ClampAmount(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() || !inRange(d) {
		return decimal.Zero
	}
	return d
}

func inRange(d decimal.Decimal) bool {
	exp := int(d.Exponent())
	if exp < -maxAmountScale {
		return false
	}
	return d.NumDigits()+exp <= maxAmountDigits
}

// FormValue is a raw form input. Dashboards send it as a JSON number or string.
type FormValue string

func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}
	*v = FormValue(data)
	return nil
}

// Amount parses the input with ParseAmount.
func (v FormValue) Amount() decimal.Decimal {
	return ParseAmount(string(v))
}
