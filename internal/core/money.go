// Package core provides money parsing and handling utilities.
//
// This file contains the Money type used by every module record, the strict
// parser used for user input and the lenient coercion used by totals.
package core

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Money is an exact decimal amount in Iraqi dinars.
type Money struct {
	d decimal.Decimal
}

// Zero is the zero amount.
var Zero = Money{}

var (
	numericPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)`)
	printer       = message.NewPrinter(language.English)
)

// NewMoney builds an amount from a whole number of dinars.
func NewMoney(v int64) Money {
	return Money{d: decimal.NewFromInt(v)}
}

// MoneyFromDecimal wraps a decimal value.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d: d}
}

// ParseMoney converts user input to an amount.
//
// It accepts dot (12.34) and comma (12,34) decimal separators as well as
// thousands separators (1,200,000 or 1.200.000) and rounds half-up to two
// decimals. Negative and empty values are rejected.
//
// Examples:
//
//	ParseMoney("1,200,000") -> 1200000, nil
//	ParseMoney("12,5")      -> 12.5, nil
//	ParseMoney("12.345")    -> 12.35, nil
func ParseMoney(s string) (Money, error) {
	s = normalizeNumber(s)
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return Zero, ErrInvalidAmount
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '.' {
			return Zero, ErrInvalidAmount
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, ErrInvalidAmount
	}
	return Money{d: d.Round(2)}, nil
}

// CoerceMoney converts any scalar to an amount. Values that are not numeric
// (nil, empty or non-numeric strings, NaN) become zero. Strings are read the
// way a browser parseFloat reads them: the longest numeric prefix wins.
func CoerceMoney(v any) Money {
	switch x := v.(type) {
	case nil:
		return Zero
	case Money:
		return x
	case *Money:
		if x == nil {
			return Zero
		}
		return *x
	case decimal.Decimal:
		return Money{d: x}
	case int:
		return NewMoney(int64(x))
	case int32:
		return NewMoney(int64(x))
	case int64:
		return NewMoney(x)
	case uint:
		return Money{d: decimal.NewFromUint64(uint64(x))}
	case uint32:
		return NewMoney(int64(x))
	case uint64:
		return Money{d: decimal.NewFromUint64(x)}
	case float32:
		return coerceFloat(float64(x))
	case float64:
		return coerceFloat(x)
	case json.Number:
		return coerceString(string(x))
	case string:
		return coerceString(x)
	case []byte:
		return coerceString(string(x))
	default:
		return Zero
	}
}

func coerceFloat(f float64) Money {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Zero
	}
	return Money{d: decimal.NewFromFloat(f)}
}

func coerceString(s string) Money {
	s = normalizeNumber(s)
	m := numericPrefix.FindString(s)
	if m == "" {
		return Zero
	}
	d, err := decimal.NewFromString(strings.TrimSuffix(m, "."))
	if err != nil {
		return Zero
	}
	return Money{d: d}
}

// normalizeNumber strips blanks and thousands separators and turns a
// decimal comma into a dot.
func normalizeNumber(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Map(func(r rune) rune {
		if r == ' ' || r == '_' || r == '\u00a0' {
			return -1
		}
		return r
	}, s)
	commas := strings.Count(s, ",")
	dots := strings.Count(s, ".")
	switch {
	case commas > 0 && dots > 0:
		// whichever comes last is the decimal separator
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case commas > 1:
		s = strings.ReplaceAll(s, ",", "")
	case commas == 1:
		if i := strings.Index(s, ","); len(s)-i-1 == 3 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case dots > 1:
		s = strings.ReplaceAll(s, ".", "")
	}
	return s
}

func (m Money) Add(o Money) Money { return Money{d: m.d.Add(o.d)} }
func (m Money) Sub(o Money) Money { return Money{d: m.d.Sub(o.d)} }
func (m Money) Neg() Money        { return Money{d: m.d.Neg()} }

// Cmp compares two amounts like decimal.Decimal.Cmp.
func (m Money) Cmp(o Money) int { return m.d.Cmp(o.d) }

func (m Money) Equal(o Money) bool { return m.d.Equal(o.d) }
func (m Money) IsZero() bool       { return m.d.IsZero() }
func (m Money) IsNegative() bool   { return m.d.IsNegative() }

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal { return m.d }

// Float64 returns an approximate value for display and validation only.
func (m Money) Float64() float64 { return m.d.InexactFloat64() }

// Percent returns m as a percentage of total, rounded to two decimals.
// A zero total yields zero.
func (m Money) Percent(total Money) decimal.Decimal {
	if total.d.IsZero() {
		return decimal.Zero
	}
	return m.d.Mul(decimal.NewFromInt(100)).Div(total.d).Round(2)
}

func (m Money) String() string { return m.d.String() }

// Format renders the amount with thousands separators (1,200,000 or
// 1,250.50).
func (m Money) Format() string {
	abs := m.d.Abs().Round(2)
	whole := abs.Truncate(0)

	var b strings.Builder
	if m.d.IsNegative() {
		b.WriteByte('-')
	}
	if whole.Cmp(maxInt64) <= 0 {
		b.WriteString(printer.Sprintf("%d", whole.IntPart()))
	} else {
		b.WriteString(groupThousands(whole.String()))
	}
	if !abs.Equal(whole) {
		frac := abs.StringFixed(2)
		b.WriteString(frac[strings.IndexByte(frac, '.'):])
	}
	return b.String()
}

var maxInt64 = decimal.NewFromInt(math.MaxInt64)

// groupThousands inserts commas into a string of digits.
func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatIQD renders the amount followed by the dinar symbol.
func (m Money) FormatIQD() string {
	return m.Format() + " د.ع"
}

// MarshalJSON renders the amount as a bare JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.d.String()), nil
}

// UnmarshalJSON accepts numbers and numeric strings. Anything else decodes
// to zero rather than failing the whole record.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = Zero
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*m = Zero
			return nil
		}
		*m = coerceString(s)
		return nil
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		*m = Zero
		return nil
	}
	*m = Money{d: d}
	return nil
}

// Scan implements sql.Scanner.
func (m *Money) Scan(src any) error {
	if src == nil {
		*m = Zero
		return nil
	}
	var d decimal.Decimal
	if err := d.Scan(src); err != nil {
		return fmt.Errorf("scan money: %w", err)
	}
	*m = Money{d: d}
	return nil
}

// Value implements driver.Valuer.
func (m Money) Value() (driver.Value, error) {
	return m.d.String(), nil
}
