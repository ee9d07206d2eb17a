package pricing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is an amount in centavos. All arithmetic stays on int64 so
// downstream equality checks never compare binary floats.
type Money int64

// FromReais converts a decimal amount to centavos, rounding half away
// from zero.
func FromReais(v float64) Money {
	return Money(math.Round(v * 100))
}

// Reais returns the decimal value. For display/serialization only.
func (m Money) Reais() float64 {
	return float64(m) / 100
}

func (m Money) String() string {
	return strconv.FormatFloat(m.Reais(), 'f', 2, 64)
}

// Percent applies pct (e.g. 30 for 30%) with half-away-from-zero rounding.
func (m Money) Percent(pct float64) Money {
	return Money(math.Round(float64(m) * pct / 100))
}

// MulRate multiplies by a plain rate (e.g. 0.95), rounding to the centavo.
func (m Money) MulRate(rate float64) Money {
	return Money(math.Round(float64(m) * rate))
}

// Half returns m/2 rounded to the centavo.
func (m Money) Half() Money {
	return Money(math.Round(float64(m) / 2))
}

// Third returns m/3 rounded to the centavo.
func (m Money) Third() Money {
	return Money(math.Round(float64(m) / 3))
}

func (m Money) Abs() Money {
	if m < 0 {
		return -m
	}
	return m
}

// MarshalJSON emits a plain number with 2 fraction digits, the format
// every boundary in the system speaks.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(m.Reais(), 'f', 2, 64)), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		*m = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid money amount %q", s)
	}
	*m = FromReais(v)
	return nil
}

// FormatReais renders "R$ 1.234,56" for documents and messages.
func FormatReais(m Money) string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	whole := int64(m) / 100
	cents := int64(m) % 100
	return fmt.Sprintf("%sR$ %s,%02d", sign, formatThousand(whole), cents)
}

// ParseReais parses "R$ 1.234,56", "1234.56" or "1234" into centavos.
func ParseReais(s string) (Money, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.ToLower(s), "r$")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid amount")
	}
	// Brazilian format uses '.' for thousands and ',' for decimals.
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return FromReais(v), nil
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(c)
	}
	return out.String()
}
