package allot

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

var errMissingAmount = errors.New("amount is null")

// Amount is an exact monetary quantity. Deposits, limits and balances are all
// amounts. The zero value is 0.
type Amount struct {
	value decimal.Decimal
}

// A creates an Amount from any numeric value.
func A[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Amount {
	return Amount{value: newDecimal(value)}
}

// ParseAmount parses a decimal string like "10500" or "99.95".
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Amount{value: d}, nil
}

// Sum returns the total of all amounts.
func Sum(amounts ...Amount) Amount {
	var total Amount
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

func (a Amount) Add(b Amount) Amount              { return Amount{value: a.value.Add(b.value)} }
func (a Amount) Sub(b Amount) Amount              { return Amount{value: a.value.Sub(b.value)} }
func (a Amount) Equal(b Amount) bool              { return a.value.Equal(b.value) }
func (a Amount) LessThan(b Amount) bool           { return a.value.LessThan(b.value) }
func (a Amount) GreaterThan(b Amount) bool        { return a.value.GreaterThan(b.value) }
func (a Amount) GreaterThanOrEqual(b Amount) bool { return a.value.GreaterThanOrEqual(b.value) }
func (a Amount) IsZero() bool                     { return a.value.IsZero() }
func (a Amount) IsPositive() bool                 { return a.value.IsPositive() }
func (a Amount) IsNegative() bool                 { return a.value.IsNegative() }
func (a Amount) String() string                   { return a.value.String() }
func (a Amount) Decimal() decimal.Decimal         { return a.value }
func (a Amount) InexactFloat64() float64          { return a.value.InexactFloat64() }
func (a Amount) Min(b Amount) Amount              { return Amount{value: decimal.Min(a.value, b.value)} }
func (a Amount) Max(b Amount) Amount              { return Amount{value: decimal.Max(a.value, b.value)} }

// Format returns the amount formatted for the given ISO currency code, e.g.
// "€10,500.00" for EUR. An empty currency falls back to String.
func (a Amount) Format(currency string) string {
	if currency == "" {
		return a.String()
	}
	// to get a never nil currency I need to call the Money constructor
	cur := *money.New(0, currency).Currency()
	minor := a.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

// MarshalJSON writes the amount as a JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return a.value.MarshalJSON()
}

// UnmarshalJSON reads a JSON number or a quoted decimal string. null is not
// an amount.
func (a *Amount) UnmarshalJSON(b []byte) error {
	if string(bytes.TrimSpace(b)) == "null" {
		return errMissingAmount
	}
	return a.value.UnmarshalJSON(b)
}
