package pricing

import (
	"encoding/json"
	"testing"
)

func TestFromReaisRoundsHalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in   float64
		want Money
	}{
		{0, 0},
		{1.004, 100},
		{1.006, 101},
		{85.5, 8550},
		{-85.5, -8550},
		{33.333, 3333},
	}
	for _, c := range cases {
		if got := FromReais(c.in); got != c.want {
			t.Fatalf("FromReais(%v) = %d, want %d", c.in, got, c.want)
		}
	}

	// Exact half-centavo cases go through integer-based helpers.
	if got := Money(1).Half(); got != 1 {
		t.Fatalf("Half(0.01) = %d, want 1 (half away from zero)", got)
	}
	if got := Money(-1).Half(); got != -1 {
		t.Fatalf("Half(-0.01) = %d, want -1 (half away from zero)", got)
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	type payload struct {
		Amount Money `json:"amount"`
	}

	b, err := json.Marshal(payload{Amount: FromReais(105)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"amount":105.00}` {
		t.Fatalf("marshal = %s, want amount with 2 fraction digits", b)
	}

	var p payload
	if err := json.Unmarshal([]byte(`{"amount":85.5}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Amount != FromReais(85.5) {
		t.Fatalf("unmarshal = %d, want 8550", p.Amount)
	}

	if err := json.Unmarshal([]byte(`{"amount":"190.00"}`), &p); err != nil {
		t.Fatalf("unmarshal quoted: %v", err)
	}
	if p.Amount != FromReais(190) {
		t.Fatalf("unmarshal quoted = %d, want 19000", p.Amount)
	}
}

func TestFormatReais(t *testing.T) {
	if got := FormatReais(FromReais(1234.56)); got != "R$ 1.234,56" {
		t.Fatalf("FormatReais = %q", got)
	}
	if got := FormatReais(FromReais(-5)); got != "-R$ 5,00" {
		t.Fatalf("FormatReais negative = %q", got)
	}
}

func TestParseReais(t *testing.T) {
	cases := []struct {
		in   string
		want Money
	}{
		{"R$ 1.234,56", 123456},
		{"1234.56", 123456},
		{"300", 30000},
		{"r$ 90,00", 9000},
	}
	for _, c := range cases {
		got, err := ParseReais(c.in)
		if err != nil {
			t.Fatalf("ParseReais(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseReais(%q) = %d, want %d", c.in, got, c.want)
		}
	}
	if _, err := ParseReais("abc"); err == nil {
		t.Fatalf("expected error for garbage input")
	}
}

func TestMoneyHelpers(t *testing.T) {
	if got := FromReais(210).Half(); got != FromReais(105) {
		t.Fatalf("Half = %s", got)
	}
	if got := FromReais(100).Third(); got != FromReais(33.33) {
		t.Fatalf("Third = %s", got)
	}
	if got := FromReais(300).Percent(30); got != FromReais(90) {
		t.Fatalf("Percent = %s", got)
	}
	if got := FromReais(90).MulRate(0.95); got != FromReais(85.5) {
		t.Fatalf("MulRate = %s", got)
	}
}
