package domain

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

// Money is an exact decimal amount held in hundredths (paise). It scans from
// DECIMAL columns and serialises as a JSON number with two fractional digits,
// so ledger sums never pick up float drift.
type Money int64

// ParseMoney accepts "12345.67", "12345" or "-50.05".
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	if intPart == "" {
		intPart = "0"
	}
	// two fractional digits, right-padded
	fracPart += "00"
	fracPart = fracPart[:2]

	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	frac, err := strconv.ParseInt(fracPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	v := units*100 + frac
	if neg {
		v = -v
	}
	return Money(v), nil
}

func (m Money) String() string {
	n := int64(m)
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return fmt.Sprintf("%s%d.%02d", sign, n/100, n%100)
}

func (m Money) Float() float64 { return float64(m) / 100 }

func (m Money) MarshalJSON() ([]byte, error) { return []byte(m.String()), nil }

func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		*m = 0
		return nil
	}
	v, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m Money) Value() (driver.Value, error) { return m.String(), nil }

func (m *Money) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*m = 0
		return nil
	case []byte:
		p, err := ParseMoney(string(v))
		if err != nil {
			return err
		}
		*m = p
		return nil
	case string:
		p, err := ParseMoney(v)
		if err != nil {
			return err
		}
		*m = p
		return nil
	case int64:
		*m = Money(v * 100)
		return nil
	case float64:
		// MySQL drivers may hand back DECIMAL as float in some modes; round
		// to the column's two digits.
		if v >= 0 {
			*m = Money(v*100 + 0.5)
		} else {
			*m = Money(v*100 - 0.5)
		}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Money", src)
	}
}
